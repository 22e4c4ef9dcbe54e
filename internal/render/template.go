package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	_ "embed"
)

//go:embed assets/receita_especial.html
var specialControlTemplate string

var scriptBlockRE = regexp.MustCompile(`(?is)<script>.*?</script>`)

// fillTemplate substitutes the placeholder tokens in the special-control
// template. The two-copy layout is duplicated in the markup itself, so any
// script block that may sneak into the template is stripped after the fill.
func fillTemplate(in Input) string {
	replacer := strings.NewReplacer(
		"{{PATIENT_NAME}}", html.EscapeString(in.Patient.Name),
		"{{PATIENT_CPF}}", html.EscapeString(FormatCPF(in.Patient.CPF)),
		"{{PATIENT_ADDRESS}}", html.EscapeString(in.Patient.Address),
		"{{PATIENT_PHONE}}", html.EscapeString(in.Patient.Phone),
		"{{MEDICATIONS}}", medicationsHTML(in.Medications),
		"{{PRESCRIPTION_DATE}}", in.Date.Format("02/01/2006"),
		"{{DOCTOR_NAME}}", html.EscapeString(in.Doctor.Name),
		"{{DOCTOR_CRM}}", html.EscapeString(in.Doctor.CRM),
		"{{GENERAL_INSTRUCTIONS}}", html.EscapeString(in.Instructions),
	)
	filled := replacer.Replace(specialControlTemplate)
	return scriptBlockRE.ReplaceAllString(filled, "")
}

func medicationsHTML(meds []Medication) string {
	var b strings.Builder
	for i, m := range meds {
		b.WriteString(`<div style="margin-bottom: 8px; font-size: 11px;">`)
		fmt.Fprintf(&b, "<strong>%d.</strong> %s %s",
			i+1, html.EscapeString(m.Name), html.EscapeString(m.Dosage))
		if m.Instructions != "" {
			fmt.Fprintf(&b, `<br><em style="font-size: 10px;">%s</em>`,
				html.EscapeString(m.Instructions))
		}
		fmt.Fprintf(&b, "<br><strong>Quantidade:</strong> %s", html.EscapeString(m.Quantity))
		b.WriteString("</div>")
	}
	return b.String()
}
