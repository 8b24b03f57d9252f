package uitemplates

import "html/template"

type VerifyParams struct {
	InteractionWarning string
	Candidates         []*VerifyCandidate
}

type VerifyCandidate struct {
	Index      int
	Name       string
	Dosage     string
	Form       string
	Times      string
	Duration   string
	Condition  string
	TotalPills string
}

var verifyText = `{{define "title"}}Verify{{end}}

{{define "content"}}
<h1>Verify extracted medications</h1>

{{if .InteractionWarning}}
<div class="alert alert-warning"><strong>Drug interaction:</strong> {{.InteractionWarning}}</div>
{{end}}

{{if not .Candidates}}
<p>No medications were recognized on the photo.</p>
{{end}}

{{range .Candidates}}
<form method="POST" action="/verify/update" class="card mb-3">
  <div class="card-body">
    <input type="hidden" name="index" value="{{.Index}}">
    <label class="form-label">Name</label>
    <input type="text" class="form-control" name="medication" value="{{.Name}}">
    <div class="row mt-2">
      <div class="col">
        <label class="form-label">Dosage</label>
        <input type="text" class="form-control" name="dosage" value="{{.Dosage}}">
      </div>
      <div class="col">
        <label class="form-label">Form</label>
        <input type="text" class="form-control" name="form" value="{{.Form}}">
      </div>
    </div>
    <div class="row mt-2">
      <div class="col">
        <label class="form-label">Times</label>
        <input type="text" class="form-control" name="times" value="{{.Times}}">
      </div>
      <div class="col">
        <label class="form-label">Total pills</label>
        <input type="text" class="form-control" name="total_pills" value="{{.TotalPills}}">
      </div>
    </div>
    <input type="submit" class="btn btn-sm btn-outline-secondary mt-2" value="Save edits">
  </div>
</form>
{{end}}

<form method="POST" action="/verify/commit" class="d-inline">
  <input type="submit" class="btn btn-primary" value="Add all">
</form>
<form method="POST" action="/verify/cancel" class="d-inline">
  <input type="submit" class="btn btn-outline-secondary" value="Cancel">
</form>
{{end}}
`

var VerifyTemplate = template.Must(template.Must(template.New("base").Parse(baseText)).Parse(verifyText))
