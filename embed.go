package dailypost

import (
	_ "embed"
	"text/template"
)

//go:embed embedded/style.css.tmpl
var stylesheetSource string

var stylesheetTemplate = template.Must(template.New("style.css").Parse(stylesheetSource))
