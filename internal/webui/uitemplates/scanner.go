package uitemplates

import "html/template"

type ScannerParams struct {
	Busy bool
}

var scannerText = `{{define "title"}}Scanner{{end}}

{{define "content"}}
<p><a href="/back">&larr; Back</a></p>
<h1>Scan a prescription</h1>
{{if .Busy}}
<div class="alert alert-info">Extraction in progress&hellip; this page refreshes automatically.</div>
<meta http-equiv="refresh" content="2">
{{else}}
<form method="POST" action="/scanner" enctype="multipart/form-data">
  <label for="image" class="form-label">Prescription photo</label>
  <input type="file" class="form-control" name="image" id="image" accept="image/*" required>
  <input type="submit" class="btn btn-primary mt-3" value="Extract medications">
</form>
{{end}}
{{end}}
`

var ScannerTemplate = template.Must(template.Must(template.New("base").Parse(baseText)).Parse(scannerText))
