// Package templates exposes pagination helpers to Go templates and renders
// the site's pagination control.
//
// The helpers are registered under the names page templates already use:
//
//	{{ range iter_pages .Page.Number .Page.NumPages }}
//	  {{ if isGap . }}…{{ else }}{{ .Page }}{{ end }}
//	{{ end }}
//
// iter_pages accepts up to four trailing integers overriding the configured
// window thresholds (left_edge, left_current, right_current, right_edge).
package templates
