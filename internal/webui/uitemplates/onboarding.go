package uitemplates

import "html/template"

type OnboardingParams struct {
	Email string
}

var onboardingText = `{{define "title"}}Registry{{end}}

{{define "content"}}
<h1>Registry</h1>
<form method="POST" action="/onboarding">
  <label for="name" class="form-label">Full name</label>
  <input type="text" class="form-control" name="name" id="name" required>

  <label for="dob" class="form-label mt-2">Date of birth</label>
  <input type="date" class="form-control" name="dob" id="dob">

  <label for="gender" class="form-label mt-2">Gender</label>
  <select class="form-select" name="gender" id="gender">
    <option>Male</option>
    <option>Female</option>
  </select>

  <fieldset class="border rounded p-3 mt-3">
    <legend class="fs-6">Emergency contact</legend>
    <label for="kinName" class="form-label">Kin name</label>
    <input type="text" class="form-control" name="kinName" id="kinName">
    <label for="kinPhone" class="form-label mt-2">Kin phone</label>
    <input type="tel" class="form-control" name="kinPhone" id="kinPhone">
  </fieldset>

  <input type="submit" class="btn btn-primary mt-3" value="Finish setup">
</form>
{{end}}
`

var OnboardingTemplate = template.Must(template.Must(template.New("base").Parse(baseText)).Parse(onboardingText))
