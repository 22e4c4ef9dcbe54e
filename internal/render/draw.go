package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Layout constants for the drawn sheet, in millimeters on portrait A4.
const (
	leftMargin    = 28
	instrWidth    = 155
	instrIndent   = 3
	bottomReserve = 70
	sigHalfWidth  = 60
)

var ptBRMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func longDatePTBR(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), ptBRMonths[t.Month()-1], t.Year())
}

// drawSimple produces the ordinary prescription sheet: patient header, a
// centered usage banner, numbered medication blocks and the doctor's
// signature block. Medications that would run into the signature area push
// a new page that repeats the header.
func drawSimple(in Input) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()

	signature := func() {
		sigY := pageH * 0.75
		pdf.Line(pageW/2-sigHalfWidth, sigY, pageW/2+sigHalfWidth, sigY)

		pdf.SetFont("Helvetica", "", 14)
		pdf.SetXY(0, sigY+4)
		pdf.CellFormat(pageW, 6, tr(strings.ToUpper(in.Doctor.Name)), "", 2, "C", false, 0, "")
		pdf.CellFormat(pageW, 6, tr(in.Doctor.CRM), "", 0, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 12)
		pdf.SetXY(leftMargin, pageH*0.85)
		pdf.CellFormat(0, 6, tr("Sorriso – MT, "+longDatePTBR(in.Date)), "", 0, "L", false, 0, "")
	}

	header := func() {
		pdf.SetFont("Helvetica", "", 22)
		pdf.SetXY(leftMargin, pageH*0.15)
		pdf.CellFormat(0, 9, tr(in.Patient.Name), "", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 16)
		pdf.SetXY(0, pageH*0.26)
		pdf.CellFormat(pageW, 7, "USO ORAL", "", 0, "C", false, 0, "")
	}

	pdf.AddPage()
	header()
	y := pageH * 0.30
	limit := pageH - bottomReserve

	for i, med := range in.Medications {
		// Height this block needs: name line, quantity line, wrapped
		// instructions in between.
		pdf.SetFont("Helvetica", "", 12)
		var instrLines []string
		if med.Instructions != "" {
			instrLines = pdf.SplitText(tr(med.Instructions), instrWidth)
		}
		blockH := 6.0 + 8.0 + float64(len(instrLines))*5.0

		if y+blockH > limit {
			signature()
			pdf.AddPage()
			header()
			y = pageH*0.26 + 9
		}

		pdf.SetFont("Helvetica", "", 13)
		pdf.SetXY(leftMargin, y)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%d. %s %s", i+1, med.Name, med.Dosage)), "", 0, "L", false, 0, "")
		y += 6

		if len(instrLines) > 0 {
			pdf.SetFont("Helvetica", "", 12)
			pdf.SetXY(leftMargin+instrIndent, y)
			pdf.MultiCell(instrWidth, 5, tr(med.Instructions), "", "L", false)
			y += float64(len(instrLines))*5 + 1
		}

		pdf.SetFont("Helvetica", "", 12)
		pdf.SetXY(leftMargin, y)
		pdf.CellFormat(0, 6, tr("   Quantidade: "+med.Quantity), "", 0, "L", false, 0, "")
		y += 8
	}

	signature()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return buf.Bytes(), nil
}
