package uitemplates

import "html/template"

type ReportParams struct {
	WindowDays    int
	AdherenceRate int
	Medications   []*ReportMedication
}

type ReportMedication struct {
	Name           string
	Status         string
	PillsRemaining int
	TotalPills     int
}

var reportText = `{{define "title"}}Report{{end}}

{{define "content"}}
<p><a href="/back">&larr; Back</a></p>
<h1>Adherence report</h1>
<p class="display-5">{{.AdherenceRate}}%</p>
<p class="text-muted">Taken doses over the last {{.WindowDays}} days.</p>
<table class="table">
  <thead>
    <tr><th>Medication</th><th>Status</th><th>Supply</th></tr>
  </thead>
  <tbody>
    {{range .Medications}}
    <tr><td>{{.Name}}</td><td>{{.Status}}</td><td>{{.PillsRemaining}}/{{.TotalPills}}</td></tr>
    {{end}}
  </tbody>
</table>
{{end}}
`

var ReportTemplate = template.Must(template.Must(template.New("base").Parse(baseText)).Parse(reportText))
