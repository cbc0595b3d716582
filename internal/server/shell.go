package server

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/zoodb/zoodb/pkg/routematch"
)

//go:embed client.js
var clientJS string

var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="app" data-route="{{.Route}}" data-found="{{.Found}}">
{{- if .Found}}{{.Route}}{{else}}Not found{{end -}}
</div>
<script id="zoodb-params" type="application/json">{{.Params}}</script>
<script>{{.Client}}</script>
</body>
</html>
`))

type shellData struct {
	Title  string
	Route  string
	Found  bool
	Params routematch.Params
	Client template.JS
}

// handleShell renders the page shell for any non-API path. Non-canonical
// paths are redirected first. The status is 404 when no view route matches
// and 400 when a parameter cannot be decoded.
func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	escaped := r.URL.EscapedPath()
	canonical, err := canonicalPath(escaped)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if canonical != escaped {
		target := canonical
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
		return
	}

	res, found, err := s.routes.Resolve(canonical)
	if err != nil {
		s.metrics.decodeErrors.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.metrics.recordResolution(res.Route.Name, found)

	status := http.StatusOK
	if !found {
		status = http.StatusNotFound
	}
	params := res.Params
	if params == nil {
		params = routematch.Params{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := shellTemplate.Execute(w, shellData{
		Title:  s.cfg.Name,
		Route:  res.Route.Name,
		Found:  found,
		Params: params,
		Client: template.JS(clientJS),
	}); err != nil {
		s.logger.Warn("rendering shell", "error", err)
	}
}
