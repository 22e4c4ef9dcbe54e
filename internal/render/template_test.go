package render

import (
	"strings"
	"testing"
	"time"
)

func templateInput() Input {
	return Input{
		Type:         TypeSpecialControl,
		Instructions: "Tomar com alimentos",
		Date:         time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC),
		Patient: Patient{
			Name:    "Maria Silva",
			CPF:     "52998224725",
			Phone:   "65999990000",
			Address: "Rua das Flores, 123",
		},
		Doctor: Doctor{Name: "Dr. João Souza", CRM: "CRM/MT 1234"},
		Medications: []Medication{
			{Name: "Clonazepam", Dosage: "2mg", Quantity: "1 caixa", Instructions: "1 comprimido à noite"},
		},
	}
}

func TestFillTemplateSubstitutesTokens(t *testing.T) {
	out := fillTemplate(templateInput())

	for _, want := range []string{
		"Maria Silva",
		"529.982.247-25",
		"Rua das Flores, 123",
		"65999990000",
		"Clonazepam",
		"09/03/2026",
		"Dr. João Souza",
		"CRM/MT 1234",
		"Tomar com alimentos",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("filled template missing %q", want)
		}
	}
	if strings.Contains(out, "{{") {
		t.Error("unreplaced placeholder left in template")
	}
}

func TestFillTemplateStripsScripts(t *testing.T) {
	orig := specialControlTemplate
	specialControlTemplate = orig + "<script>\nduplicate();\n</script>"
	defer func() { specialControlTemplate = orig }()

	out := fillTemplate(templateInput())
	if strings.Contains(strings.ToLower(out), "<script>") {
		t.Error("script block survived the fill")
	}
}

func TestFillTemplateEscapesValues(t *testing.T) {
	in := templateInput()
	in.Patient.Name = `<img src=x onerror="x()">`

	out := fillTemplate(in)
	if strings.Contains(out, "<img") {
		t.Error("patient name injected raw markup")
	}
}

func TestMedicationsHTMLNumbersAndOrder(t *testing.T) {
	meds := []Medication{
		{Name: "Primeiro", Dosage: "1mg", Quantity: "1 caixa"},
		{Name: "Segundo", Dosage: "2mg", Quantity: "2 caixas", Instructions: "após o almoço"},
	}
	out := medicationsHTML(meds)

	first := strings.Index(out, "Primeiro")
	second := strings.Index(out, "Segundo")
	if first < 0 || second < 0 || first > second {
		t.Error("medications out of order")
	}
	if !strings.Contains(out, "<strong>1.</strong>") || !strings.Contains(out, "<strong>2.</strong>") {
		t.Error("missing sequence numbers")
	}
	if !strings.Contains(out, "após o almoço") {
		t.Error("missing instructions")
	}
	if !strings.Contains(out, "<strong>Quantidade:</strong> 2 caixas") {
		t.Error("missing quantity line")
	}
}

func TestMedicationsHTMLOmitsEmptyInstructions(t *testing.T) {
	out := medicationsHTML([]Medication{{Name: "Sem bula", Dosage: "1mg", Quantity: "1"}})
	if strings.Contains(out, "<em") {
		t.Error("instructions markup present for medication without instructions")
	}
}
