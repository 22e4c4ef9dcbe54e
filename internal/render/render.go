package render

import (
	"context"
	"encoding/base64"
	"fmt"
)

type strategy int

const (
	strategyDraw strategy = iota
	strategySingleHTML
	strategyMergedHTML
)

// dispatch picks a strategy from the prescription type and line-item count.
// Special-control prescriptions with several medications render each one as
// its own document and merge the results; ordinary prescriptions are drawn
// directly and never touch the HTML or merge paths.
func dispatch(typ string, medCount int) (strategy, error) {
	if medCount < 1 {
		return 0, ErrNoMedications
	}
	switch typ {
	case TypeSimple:
		return strategyDraw, nil
	case TypeSpecialControl:
		if medCount > 1 {
			return strategyMergedHTML, nil
		}
		return strategySingleHTML, nil
	default:
		return 0, fmt.Errorf("unknown prescription type %q", typ)
	}
}

// Renderer produces the final document for a prescription.
type Renderer struct {
	converter HTMLConverter
}

func NewRenderer(converter HTMLConverter) *Renderer {
	return &Renderer{converter: converter}
}

// Render returns the prescription document as base64-encoded PDF bytes. Any
// failure along the way aborts the whole render; there is no partial output.
func (r *Renderer) Render(ctx context.Context, in Input) (string, error) {
	pdf, err := r.renderPDF(ctx, in)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(pdf), nil
}

func (r *Renderer) renderPDF(ctx context.Context, in Input) ([]byte, error) {
	s, err := dispatch(in.Type, len(in.Medications))
	if err != nil {
		return nil, err
	}

	switch s {
	case strategyDraw:
		return drawSimple(in)

	case strategySingleHTML:
		return r.convertOne(ctx, in)

	case strategyMergedHTML:
		docs := make([][]byte, len(in.Medications))
		for i, med := range in.Medications {
			single := in
			single.Medications = []Medication{med}
			doc, err := r.convertOne(ctx, single)
			if err != nil {
				return nil, fmt.Errorf("render medication %d: %w", i+1, err)
			}
			docs[i] = doc
		}
		return mergePDFs(docs)
	}
	return nil, fmt.Errorf("unreachable strategy %d", s)
}

func (r *Renderer) convertOne(ctx context.Context, in Input) ([]byte, error) {
	pdf, err := r.converter.Convert(ctx, fillTemplate(in))
	if err != nil {
		return nil, fmt.Errorf("convert document: %w", err)
	}
	return pdf, nil
}
