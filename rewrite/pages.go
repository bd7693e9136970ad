package rewrite

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed pages/*.html
var pageFS embed.FS

var pageTemplates = template.Must(template.ParseFS(pageFS, "pages/*.html"))

// reloadAfterMillis is how long the not deployed page waits before
// reloading itself.
const reloadAfterMillis = 5000

// pages holds the rendered static pages served by the handlers.
type pages struct {
	callback    string
	notDeployed string
}

func renderPages(cfg Config) (pages, error) {
	callback, err := renderPage("callback.html", struct {
		BranchHost string
	}{
		BranchHost: cfg.BranchHost(),
	})
	if err != nil {
		return pages{}, err
	}

	notDeployed, err := renderPage("not_deployed.html", struct {
		ReloadAfterMillis int
	}{
		ReloadAfterMillis: reloadAfterMillis,
	})
	if err != nil {
		return pages{}, err
	}

	return pages{
		callback:    callback,
		notDeployed: notDeployed,
	}, nil
}

func renderPage(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
