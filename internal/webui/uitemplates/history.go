package uitemplates

import "html/template"

type HistoryParams struct {
	Date  string
	Doses []*HistoryDose
}

type HistoryDose struct {
	Name  string
	Time  string
	State string
}

var historyText = `{{define "title"}}History{{end}}

{{define "content"}}
<p><a href="/back">&larr; Back</a></p>
<h1>Dose history</h1>
<form method="GET" action="/history" class="mb-3">
  <input type="date" class="form-control d-inline w-auto" name="date" value="{{.Date}}">
  <input type="submit" class="btn btn-outline-primary" value="Show">
</form>
{{if not .Doses}}
<p>No doses scheduled on {{.Date}}.</p>
{{else}}
<table class="table">
  <thead>
    <tr><th>Medication</th><th>Time</th><th>Status</th></tr>
  </thead>
  <tbody>
    {{range .Doses}}
    <tr><td>{{.Name}}</td><td>{{.Time}}</td><td>{{.State}}</td></tr>
    {{end}}
  </tbody>
</table>
{{end}}
{{end}}
`

var HistoryTemplate = template.Must(template.Must(template.New("base").Parse(baseText)).Parse(historyText))
