package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// protected applies per-key rate limiting and the API key check.
func (api *RestAPI) protected(finalHandler handlerFunc) http.Handler {
	handler := validateAPIKey(api, finalHandler)
	if api.rateLimiter == nil {
		return handler
	}
	return api.rateLimiter.Handler(handler)
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)

	router.Handler(http.MethodGet, "/api/alternatives.json", api.protected(api.alternativesHandler))
	router.Handler(http.MethodGet, "/api/alternative/:id", api.protected(api.alternativeHandler))
	router.Handler(http.MethodGet, "/api/mvpf/:id", api.protected(api.mvpfHandler))
	router.Handler(http.MethodGet, "/api/rows.json", api.protected(api.rowsHandler))
	router.Handler(http.MethodGet, "/api/scenarios.json", api.protected(api.scenariosHandler))

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
}

// Handler builds the router and applies the middleware chain around it.
// Extra route registrations, such as the HTML dashboard, run before wrapping.
func (api *RestAPI) Handler(extra ...func(*httprouter.Router)) http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)
	for _, register := range extra {
		register(router)
	}

	var handler http.Handler = router
	handler = api.WithSecurityHeaders(handler)
	handler = CompressionMiddleware(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}
