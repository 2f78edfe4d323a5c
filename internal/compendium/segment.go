package compendium

import (
	"strconv"

	"github.com/mind-engage/compendium/internal/dialect"
)

// Span is the body text belonging to one variant header.
type Span struct {
	Number int
	Start  int // offset just past the header
	End    int // offset of the next header, or len(body)
	Text   string
}

// Segment locates every variant header first and only then slices the body, so
// spans never overlap and never contain header lines. Order is discovery order.
func Segment(p *dialect.Patterns, body string) []Span {
	headers := p.VariantHeader.FindAllStringSubmatchIndex(body, -1)
	spans := make([]Span, 0, len(headers))
	for i, h := range headers {
		num, err := strconv.Atoi(body[h[2]:h[3]])
		if err != nil {
			continue
		}
		end := len(body)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		spans = append(spans, Span{Number: num, Start: h[1], End: end, Text: body[h[1]:end]})
	}
	return spans
}
