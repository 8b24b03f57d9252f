package uitemplates

import "html/template"

type SettingsParams struct {
	Name          string
	Email         string
	DOB           string
	Gender        string
	KinName       string
	KinPhone      string
	DoctorName    string
	DoctorPhone   string
	SnoozeMinutes int
	AlertTone     string
	AlertTones    []string
}

var settingsText = `{{define "title"}}Settings{{end}}

{{define "content"}}
<p><a href="/back">&larr; Back</a></p>
<h1>Settings</h1>
<form method="POST" action="/settings">
  <label class="form-label">Name</label>
  <input type="text" class="form-control" name="name" value="{{.Name}}">
  <label class="form-label mt-2">Email</label>
  <input type="email" class="form-control" name="email" value="{{.Email}}">

  <fieldset class="border rounded p-3 mt-3">
    <legend class="fs-6">Emergency contacts</legend>
    <label class="form-label">Kin name</label>
    <input type="text" class="form-control" name="kinName" value="{{.KinName}}">
    <label class="form-label mt-2">Kin phone</label>
    <input type="tel" class="form-control" name="kinPhone" value="{{.KinPhone}}">
    <label class="form-label mt-2">Doctor name</label>
    <input type="text" class="form-control" name="doctorName" value="{{.DoctorName}}">
    <label class="form-label mt-2">Doctor phone</label>
    <input type="tel" class="form-control" name="doctorPhone" value="{{.DoctorPhone}}">
  </fieldset>

  <fieldset class="border rounded p-3 mt-3">
    <legend class="fs-6">Reminders</legend>
    <label class="form-label">Snooze (minutes)</label>
    <select class="form-select" name="snooze">
      <option value="5" {{if eq .SnoozeMinutes 5}}selected{{end}}>5</option>
      <option value="10" {{if eq .SnoozeMinutes 10}}selected{{end}}>10</option>
      <option value="15" {{if eq .SnoozeMinutes 15}}selected{{end}}>15</option>
    </select>
    <label class="form-label mt-2">Alert tone</label>
    <select class="form-select" name="alertTone">
      {{$current := .AlertTone}}
      {{range .AlertTones}}
      <option {{if eq . $current}}selected{{end}}>{{.}}</option>
      {{end}}
    </select>
  </fieldset>

  <input type="submit" class="btn btn-primary mt-3" value="Save">
</form>
{{end}}
`

var SettingsTemplate = template.Must(template.Must(template.New("base").Parse(baseText)).Parse(settingsText))
