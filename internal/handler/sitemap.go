package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Endpoint is one line of the sitemap.
type Endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// SitemapResponse is the body of GET /.
type SitemapResponse struct {
	Endpoints []Endpoint `json:"endpoints"`
}

// Sitemap returns a handler listing every route registered on routes, so a
// client hitting the root URL can discover the API.
func Sitemap(routes chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		endpoints := make([]Endpoint, 0)
		err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			endpoints = append(endpoints, Endpoint{Method: method, Path: cleanPattern(route)})
			return nil
		})
		if err != nil {
			writeError(w, err)
			return
		}

		sort.Slice(endpoints, func(i, j int) bool {
			if endpoints[i].Path != endpoints[j].Path {
				return endpoints[i].Path < endpoints[j].Path
			}
			return endpoints[i].Method < endpoints[j].Method
		})
		writeJSON(w, http.StatusOK, SitemapResponse{Endpoints: endpoints})
	}
}

// cleanPattern turns "/planets/{id:[0-9]+}" into "/planets/{id}".
func cleanPattern(route string) string {
	var b strings.Builder
	for i := 0; i < len(route); i++ {
		c := route[i]
		if c != ':' {
			b.WriteByte(c)
			continue
		}
		// Inside a {name:regexp} parameter: skip to the closing brace,
		// minding braces nested in the regexp itself.
		depth := 0
		for ; i < len(route); i++ {
			if route[i] == '{' {
				depth++
			}
			if route[i] == '}' {
				if depth == 0 {
					b.WriteByte('}')
					break
				}
				depth--
			}
		}
	}
	return b.String()
}
