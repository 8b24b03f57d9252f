package uitemplates

import "html/template"

type DashboardParams struct {
	UserName           string
	AdherenceRate      int
	InteractionWarning string
	Today              string
	Medications        []*DashboardMedication
}

type DashboardMedication struct {
	ID             string
	Name           string
	Dosage         string
	PillsRemaining int
	Exhausted      bool
	Slots          []*DashboardSlot
}

type DashboardSlot struct {
	Time  string
	Taken bool
}

var dashboardText = `{{define "title"}}Dashboard{{end}}

{{define "content"}}
<div class="card text-bg-primary mb-3">
  <div class="card-body">
    <p class="card-subtitle">Monthly compliance</p>
    <h2 class="card-title display-4">{{.AdherenceRate}}%</h2>
    <p class="card-text">{{.UserName}}</p>
  </div>
</div>

{{if .InteractionWarning}}
<div class="alert alert-warning">
  <strong>Drug interaction:</strong> {{.InteractionWarning}}
  <form method="POST" action="/dismiss-warning" class="d-inline">
    <input type="submit" class="btn btn-sm btn-outline-dark" value="Dismiss">
  </form>
</div>
{{end}}

<div class="d-flex justify-content-between align-items-center border-bottom pb-2 mb-3">
  <h5 class="m-0">Active cycles</h5>
  <span class="text-muted">{{.Today}}</span>
</div>

{{if not .Medications}}
<p><a href="/scanner" class="btn btn-outline-primary w-100">Scan a prescription</a></p>
{{else}}
{{range .Medications}}
<div class="card mb-3">
  <div class="card-body">
    <div class="d-flex justify-content-between">
      <div>
        <h5 class="card-title">{{.Name}}</h5>
        <p class="card-subtitle text-muted">{{.Dosage}} &middot; {{.PillsRemaining}} units left{{if .Exhausted}} &middot; <span class="text-danger">supply exhausted</span>{{end}}</p>
      </div>
      <form method="POST" action="/remove">
        <input type="hidden" name="id" value="{{.ID}}">
        <input type="submit" class="btn btn-sm btn-outline-danger" value="Remove">
      </form>
    </div>
    <div class="btn-group mt-3" role="group">
      {{$med := .}}
      {{range .Slots}}
      <form method="POST" action="/toggle" class="me-2">
        <input type="hidden" name="id" value="{{$med.ID}}">
        <input type="hidden" name="time" value="{{.Time}}">
        <input type="submit" class="btn {{if .Taken}}btn-success{{else}}btn-outline-secondary{{end}}" value="{{.Time}}">
      </form>
      {{end}}
    </div>
  </div>
</div>
{{end}}
<p><a href="/scanner" class="btn btn-primary w-100">Scan another prescription</a></p>
{{end}}

<nav class="mt-4 d-flex flex-wrap gap-2">
  <a href="/report">Report</a>
  <a href="/history">History</a>
  <a href="/settings">Settings</a>
  <a href="/premium">Premium</a>
  <a href="/help">Help</a>
  <form method="POST" action="/logout" class="ms-auto">
    <input type="submit" class="btn btn-link p-0" value="Log out">
  </form>
</nav>
{{end}}
`

var DashboardTemplate = template.Must(template.Must(template.New("base").Parse(baseText)).Parse(dashboardText))
