package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
//
// Chi answers 405 when a path matches a registered route but the method does
// not. This handler answers 404 instead, hiding the existence of the route
// from callers probing with unsupported methods. If the method turns out to
// be registered after all, the request is forwarded to the router's normal
// pipeline.
//
// The lookup compares route patterns against the raw request path, so only
// exact pattern matches are considered; parameterised segments fall through
// to the 404 branch, which is the desired answer for them anyway.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path
		requestedHTTPMethod := r.Method

		allRoutes := router.Routes()
		var foundRoute chi.Route
		for _, route := range allRoutes {
			if route.Pattern == requestedURL {
				foundRoute = route
				break
			}
		}

		if _, ok := foundRoute.Handlers[requestedHTTPMethod]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
