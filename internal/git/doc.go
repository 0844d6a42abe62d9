// Package git inspects the site's source repository: the commit a build was
// produced from and a content fingerprint of the working tree.
package git
