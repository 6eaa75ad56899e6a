package api

import (
	"encoding/base64"
	"html/template"
	"strings"

	service "github.com/okian/podium/internal/app"
)

var funcs = template.FuncMap{
	"count": service.FormatCount,
	"chart": chartOf,
}

var pages = template.Must(template.New("layout").Funcs(funcs).Parse(`{{define "layout"}}<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:960px;color:#04838f}
.stats{display:flex;gap:1rem;margin:1rem 0}
.stat{border:2px solid #04838f;border-radius:10px;padding:.5rem 1.5rem;text-align:center}
.note{color:#7a3c53;font-style:italic}
iframe{border:0;width:100%;height:420px}
.athletes{border-collapse:collapse;margin:1rem 0}
.athletes td,.athletes th{border-bottom:1px solid #adc3de;padding:.25rem 1rem;text-align:right}
</style>
</head>
<body>
{{template "content" .}}
</body>
</html>{{end}}
{{define "chart"}}{{if .Image}}<img alt="{{.Alt}}" src="{{.Image}}">{{else if .Document}}<iframe sandbox="allow-scripts allow-top-navigation-by-user-activation" title="{{.Alt}}" srcdoc="{{.Document}}"></iframe>{{else}}<p class="note">{{.Note}}</p>{{end}}{{end}}`))

var homePage = template.Must(template.Must(pages.Clone()).Parse(`{{define "content"}}
<h1>Medals per Country</h1>
<div class="stats">
<div class="stat">Number of JOs<br><strong>{{count .Page.Summary.TotalDistinctYears}}</strong></div>
<div class="stat">Number of countries<br><strong>{{count .Page.Summary.TotalCountries}}</strong></div>
</div>
{{template "chart" chart .Page.Chart}}
<ul class="countries">
{{range $i, $name := .Page.Medals.Labels}}<li>{{if $.Page.Chart.Available}}<a href="/surfaces/{{$.Page.Chart.SurfaceID}}/select?index={{$i}}">{{$name}}</a>{{else}}<a href="/country/{{$name}}">{{$name}}</a>{{end}}</li>
{{end}}</ul>
{{end}}`))

var countryPage = template.Must(template.Must(pages.Clone()).Parse(`{{define "content"}}
<p><a href="/">&larr; Back</a></p>
<h1>{{.Page.Country}}</h1>
<div class="stats">
<div class="stat">Number of entries<br><strong>{{count .Page.Stats.TotalEntries}}</strong></div>
<div class="stat">Total number medals<br><strong>{{count .Page.Stats.TotalMedals}}</strong></div>
<div class="stat">Total number of athletes<br><strong>{{count .Page.Stats.TotalAthletes}}</strong></div>
</div>
{{template "chart" chart .Page.Chart}}
{{with .Page.AthletesPerYear}}<table class="athletes">
<tr><th>Year</th><th>Athletes</th></tr>
{{range .}}<tr><td>{{.Year}}</td><td>{{count .Count}}</td></tr>
{{end}}</table>{{end}}
{{end}}`))

var errorPage = template.Must(template.Must(pages.Clone()).Parse(`{{define "content"}}
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
<p><a href="/">Back to the dashboard</a></p>
{{end}}`))

// chartEmbed is what a page needs to show a drawn surface.
type chartEmbed struct {
	Alt      string
	Image    template.URL
	Document string
	Note     string
}

// chartOf embeds the surface content captured at render time, so every
// response shows the chart it computed even if another request redraws.
func chartOf(c service.Chart) chartEmbed {
	e := chartEmbed{Alt: c.SurfaceID, Note: c.Note}
	if !c.Available() {
		if e.Note == "" {
			e.Note = "chart unavailable"
		}
		return e
	}
	mt := c.Content.MediaType
	switch {
	case strings.HasPrefix(mt, "image/"):
		e.Image = template.URL("data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(c.Content.Bytes))
	case strings.HasPrefix(mt, "text/html"):
		e.Document = string(c.Content.Bytes)
	default:
		e.Note = "chart unavailable"
	}
	return e
}
