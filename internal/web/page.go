// Package web serves the tracker page. The page holds no logic of its own:
// it reports scroll and viewport on /control and paints the frames from /ws.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/coreman2200/funtimes-santatrack/internal/config"
	"github.com/coreman2200/funtimes-santatrack/internal/tracking"
)

//go:embed templates/index.html
var files embed.FS

var indexTmpl = template.Must(template.ParseFS(files, "templates/index.html"))

// pageData feeds templates/index.html.
type pageData struct {
	Ship     *tracking.Shipment
	Age      int
	Colors   map[tracking.Status]string
	Accent   string
	SplashMs int
	Layout   config.PageLayout
}

// Handler renders the page once up front and serves the bytes.
func Handler(cfg *config.Config, ship *tracking.Shipment) (http.Handler, error) {
	pal, err := cfg.Theme.Palette()
	if err != nil {
		return nil, err
	}
	d := pageData{
		Ship: ship,
		Age:  cfg.Recipient.Age,
		Colors: map[tracking.Status]string{
			tracking.Completed: config.Hex(pal.Completed),
			tracking.Current:   config.Hex(pal.Current),
			tracking.Pending:   config.Hex(pal.Pending),
			tracking.Warning:   config.Hex(pal.Warning),
		},
		Accent:   config.Hex(pal.Accent),
		SplashMs: cfg.SplashMs,
		Layout:   cfg.Layout,
	}
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("web: render index: %w", err)
	}
	page := buf.Bytes()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}), nil
}
