// Package views embeds the shared HTML template set. The same templates
// serve both apps, parameterized by the locale bundle passed in the
// render data.
package views

import "embed"

//go:embed templates/*.html
var FS embed.FS
