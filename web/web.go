// Package web embeds the HTML templates of the dashboard pages.
package web

import (
	"embed"
	"html/template"

	"econ-pulse/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"percent":  dashboard.Percent,
		"fixed":    dashboard.Fixed,
		"signed":   dashboard.SignedPercent,
		"delta":    dashboard.DeltaClass,
		"date":     dashboard.Date,
		"label":    dashboard.Label,
		"humanize": dashboard.Humanize,
		"band":     dashboard.ScoreBand,
		"add":      func(a, b int) int { return a + b },
	}
}

// Templates parses all pages. Each page is addressed by its file name,
// e.g. "dashboard.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}
