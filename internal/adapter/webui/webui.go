// Package webui serves the browser client for the users API.
package webui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var assets embed.FS

var indexTmpl = template.Must(template.ParseFS(assets, "static/index.html"))

type indexData struct {
	APIBaseURL string
}

// Register mounts the page at / and its script at /app.js. apiBaseURL is
// where the page sends API calls; empty means the serving origin.
func Register(r gin.IRoutes, apiBaseURL string) error {
	var page bytes.Buffer
	if err := indexTmpl.Execute(&page, indexData{APIBaseURL: apiBaseURL}); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	body := page.Bytes()

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
	})
	r.StaticFileFS("/app.js", "app.js", http.FS(static))
	r.StaticFileFS("/app.css", "app.css", http.FS(static))

	return nil
}
