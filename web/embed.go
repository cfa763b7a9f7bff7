// Package web holds the embedded HTML templates and static assets for the
// server-rendered pages.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates. Panics on a malformed
// template, which can only happen at build time.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"formatDate": formatDate,
	}).ParseFS(templateFS, "templates/*.html"))
}

// formatDate renders timestamps the way the pages show them,
// e.g. "Monday, January 2, 2006 3:04 PM".
func formatDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006 3:04 PM")
}
