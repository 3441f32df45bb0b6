package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

//go:embed all:static
var staticFiles embed.FS

// contentTypes covers the asset kinds under static/
var contentTypes = map[string]string{
	".css": "text/css; charset=utf-8",
	".js":  "application/javascript; charset=utf-8",
}

const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 500 500"><rect width="500" height="500" rx="40" fill="#c0392b"/><circle cx="250" cy="250" r="170" fill="none" stroke="white" stroke-opacity=".6" stroke-width="20"/><circle cx="250" cy="250" r="90" fill="none" stroke="white" stroke-opacity=".8" stroke-width="20"/><text x="250" y="300" font-family="Arial,sans-serif" font-weight="900" font-size="150" fill="white" text-anchor="middle">FR</text></svg>`

// SetupStaticFiles serves the favicon and the embedded stylesheet and script
func SetupStaticFiles(s *rweb.Server) {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logger.LogErr(err, "failed to get static subdirectory")
		return
	}

	s.Get("/favicon.ico", func(c rweb.Context) error {
		c.Response().SetHeader("Content-Type", "image/svg+xml")
		c.Response().SetHeader("Cache-Control", "public, max-age=86400")
		return c.Bytes([]byte(faviconSVG))
	})

	s.Get("/static/*", func(c rweb.Context) error {
		name := strings.TrimPrefix(c.Request().Path(), "/static/")

		contentType, ok := contentTypes[path.Ext(name)]
		if !ok {
			c.SetStatus(http.StatusNotFound)
			return nil
		}
		content, err := fs.ReadFile(staticFS, name)
		if err != nil {
			c.SetStatus(http.StatusNotFound)
			return nil
		}

		c.Response().SetHeader("Content-Type", contentType)
		c.Response().SetHeader("Cache-Control", cacheControl(c.Request().QueryParam("v")))
		return c.Bytes(content)
	})
}

// cacheControl lets versioned URLs (?v=N) be cached for a year.
// Pages bump the version when an asset changes.
func cacheControl(version string) string {
	if version != "" {
		return "public, max-age=31536000, immutable"
	}
	return "public, max-age=300"
}
