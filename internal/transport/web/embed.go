package web

import "embed"

// templatesFS embeds the server-rendered pages.
//
//go:embed templates/*.html
var templatesFS embed.FS
