// Package swagger serves the OpenAPI document and its interactive UI.
package swagger

import (
	"net/http"
	"os"
	"path/filepath"

	httpSwagger "github.com/swaggo/http-swagger"
)

var specPath = filepath.Join("api", "openapi.yml")

// ServeSpec streams the OpenAPI document.
func ServeSpec(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(specPath)
	if err != nil {
		http.Error(w, "openapi spec not available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

// Handler returns the swagger UI pointed at the served spec.
func Handler() http.HandlerFunc {
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
	)
}
