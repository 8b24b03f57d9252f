package uitemplates

import "html/template"

var premiumText = `{{define "title"}}Premium{{end}}

{{define "content"}}
<p><a href="/back">&larr; Back</a></p>
<h1>PillPal Pro</h1>
<p>Missed-dose alerts to your emergency contact, refill forecasts, and export of your adherence record.</p>
{{end}}
`

var helpText = `{{define "title"}}Help{{end}}

{{define "content"}}
<p><a href="/back">&larr; Back</a></p>
<h1>Safety center</h1>
<p>PillPal extracts medication data from prescription photos with an AI service. Always verify the extracted
names, dosages, and times against the printed prescription before adding them. Interaction warnings are
informational and not a substitute for your pharmacist.</p>
{{end}}
`

var PremiumTemplate = template.Must(template.Must(template.New("base").Parse(baseText)).Parse(premiumText))

var HelpTemplate = template.Must(template.Must(template.New("base").Parse(baseText)).Parse(helpText))
