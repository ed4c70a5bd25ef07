package render

import (
	"html/template"
	"io"
	"time"

	"github.com/angeloszaimis/health-widget/internal/widget"
)

const fragmentTmpl = `{{define "widget"}}{{if eq .Phase "error"}}<div class="error">{{.Message}}</div>
{{else if eq .Phase "loading"}}<div>{{.Message}}</div>
{{else}}<div>
<h1>{{.Title}}</h1>
<table class="StatsTable">
<tbody>
{{range .Rows}}<tr>
<td>{{.Component}}:</td>
<td>{{.Health}}</td>
</tr>
{{end}}</tbody>
</table>
<h3>{{.Heading}}</h3>
</div>
{{end}}{{end}}`

const pageTmpl = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
{{if .RefreshSeconds}}<meta http-equiv="refresh" content="{{.RefreshSeconds}}">
{{end}}<title>Health Stats</title>
<style type="text/css">
body { font-family: "Roboto","Helvetica","Arial",sans-serif; font-size: 14px; }
table.StatsTable { border-collapse: collapse; }
table.StatsTable td { border: 1px solid gray; padding: 0.25em 0.5em; }
.error { color: #b00020; }
</style>
</head>
<body>
{{template "widget" .View}}</body>
</html>
`

var templates = template.Must(template.Must(template.New("fragment").Parse(fragmentTmpl)).New("page").Parse(pageTmpl))

// HTMLFragment writes the widget markup alone, for embedding in a host page.
func HTMLFragment(w io.Writer, view widget.View) error {
	return templates.ExecuteTemplate(w, "widget", view)
}

// HTMLPage writes a standalone page that reloads itself every refresh.
// A zero refresh disables reloading.
func HTMLPage(w io.Writer, view widget.View, refresh time.Duration) error {
	data := struct {
		View           widget.View
		RefreshSeconds int
	}{
		View: view,
	}

	if refresh > 0 {
		data.RefreshSeconds = max(int(refresh.Round(time.Second)/time.Second), 1)
	}

	return templates.ExecuteTemplate(w, "page", data)
}
