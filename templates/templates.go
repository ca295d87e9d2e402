// Package templates embeds the HTML page templates.
package templates

import "embed"

// FS holds layout.html, dialog.html and the page templates.
//
//go:embed *.html
var FS embed.FS
