// Package preview serves the generated site locally and regenerates it when
// the content changes.
//
// Server performs an initial build, serves the output directory over HTTP,
// watches the content directory recursively, and funnels every change
// through a debouncer into a single rebuild worker, so at most one rebuild
// runs at a time and at most one more is queued behind it. An optional
// scheduler adds periodic rebuilds, and connected browsers reload through a
// server-sent events stream after every successful rebuild.
package preview
