// Package webui renders the HTML dashboard and the debug pages.
package webui

import (
	"embed"
	"html/template"

	"mvpf.ccj.org/internal/app"
)

//go:embed templates/*.html
var templateFS embed.FS

type WebUI struct {
	*app.Application
	dashboard *template.Template
	debug     *template.Template
}

func NewWebUI(application *app.Application) *WebUI {
	return &WebUI{
		Application: application,
		dashboard:   template.Must(template.ParseFS(templateFS, "templates/dashboard.html")),
		debug:       template.Must(template.ParseFS(templateFS, "templates/debug_index.html")),
	}
}
