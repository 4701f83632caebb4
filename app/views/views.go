// Package views embeds the HTML templates.
package views

import "embed"

// FS holds layout.html and the posts/ and shared/ templates.
//
//go:embed layout.html posts/*.html shared/*.html
var FS embed.FS
