package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"mvpf.ccj.org/internal/appconf"
)

// SetWebUIRoutes registers the dashboard, and the debug pages outside production.
func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", webUI.dashboardHandler)
	if webUI.Config.Env != appconf.Production {
		router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
	}
}
