// Package generator drives the external static-site generator.
//
// The site's build automation boils down to four invocations of the
// generator: build, rebuild (build after wiping the output directory),
// publish (build with the publish profile), and the serve loop, which lives
// in package preview and calls back into Builder for every rebuild.
//
// Builder turns typed settings into an Invocation and hands it to a Runner.
// BinaryRunner executes the real command; tests inject their own Runner.
// Every run produces a Report carrying a build ID, timings, the source
// revision, and a fingerprint of the content directory.
package generator
