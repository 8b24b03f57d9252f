package uitemplates

import "html/template"

type LogInParams struct {
	Email string
}

var logInText = `{{define "title"}}Log In{{end}}

{{define "content"}}
<h1>Welcome to PillPal</h1>
<form method="POST" action="/login">
  <label for="email" class="form-label">Medical portal email</label>
  <input type="email" class="form-control" name="email" id="email" value="{{.Email}}" required>
  <input type="submit" class="btn btn-primary mt-3" value="Start">
</form>
{{end}}
`

var LogInTemplate = template.Must(template.Must(template.New("base").Parse(baseText)).Parse(logInText))
