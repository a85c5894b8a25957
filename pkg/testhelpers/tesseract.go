// Package testhelpers provides an in-process fake Tesseract OLAP server for
// tests exercising the HTTP client end to end.
package testhelpers

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

// NewFakeTesseract starts a fake Tesseract server exposing the schema,
// members and data endpoints for the fixture cube. Callers own the returned
// server and must Close it.
func NewFakeTesseract() *httptest.Server {
	router := chi.NewRouter()

	router.Get("/cubes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, fmt.Sprintf(`{"name":"fake-tesseract","annotations":{},"cubes":[%s]}`, FixtureCubeJSON))
	})

	router.Get("/cubes/{name}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "name") != FixtureCubeName {
			http.Error(w, `{"error":"cube not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, FixtureCubeJSON)
	})

	router.Get("/members.{format}", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cube") != FixtureCubeName {
			http.Error(w, `{"error":"cube not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, FixtureMembersJSON)
	})

	router.Get("/data.{format}", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cube") != FixtureCubeName {
			http.Error(w, `{"error":"unknown cube"}`, http.StatusBadRequest)
			return
		}
		switch chi.URLParam(r, "format") {
		case "csv":
			w.Header().Set("Content-Type", "text/csv")
			fmt.Fprint(w, "Year,Trade Value\n2020,1000\n")
		default:
			writeJSON(w, `{"data":[{"Year":2020,"Trade Value":1000}]}`)
		}
	})

	return httptest.NewServer(router)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}
