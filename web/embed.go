// Package web provides the embedded chat UI files.
package web

import "embed"

// FS contains the embedded chat UI (index.html, static/css, static/js).
// Exported for use by the HTTP handler serving the front-end.
//
//go:embed index.html static
var FS embed.FS
