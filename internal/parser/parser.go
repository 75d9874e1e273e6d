// Package parser turns the raw text an OCR engine read off a vehicle
// Registration Certificate into a fully keyed rc.ParsedRecord.
//
// Parsing is a pure, synchronous computation: it performs no I/O, keeps no
// state between calls and is safe for concurrent use. It never fails; bad
// input yields a record with empty fields, and an internal fault yields a
// record carrying RawText and ParseError.
package parser

import (
	"fmt"
	"time"

	"rc-service/internal/domain/rc"
)

// Options tune a Parser. The zero value selects the defaults.
type Options struct {
	// NoiseThreshold is the confidence below which single character
	// tokens and unexpected symbols are stripped before extraction.
	NoiseThreshold float64
}

// Parser extracts RC records from OCR text. It is safe for concurrent use.
type Parser struct {
	noiseThreshold float64
	fields         []fieldExtractor
	address        func(lines []string) string
	now            func() time.Time
}

// New returns a Parser configured by opts.
func New(opts Options) *Parser {
	threshold := opts.NoiseThreshold
	if threshold <= 0 {
		threshold = DefaultNoiseThreshold
	}
	return &Parser{
		noiseThreshold: threshold,
		fields:         defaultRegistry(),
		address:        reconstructAddress,
		now:            time.Now,
	}
}

var defaultParser = New(Options{})

// Parse runs the default parser.
func Parse(text string, confidence float64) rc.ParsedRecord {
	return defaultParser.Parse(text, confidence)
}

// Parse extracts every RC field from text. confidence is the OCR engine's
// 0-100 score and only decides whether noise suppression runs.
func (p *Parser) Parse(text string, confidence float64) (rec rc.ParsedRecord) {
	conf := clampConfidence(confidence)
	extracted := p.now().UTC()

	defer func() {
		if r := recover(); r != nil {
			rec = rc.ParsedRecord{
				OCRConfidence: conf,
				ExtractedDate: extracted,
				RawText:       text,
				ParseError:    fmt.Sprintf("failed to parse RC text: %v", r),
			}
		}
	}()

	rec = rc.ParsedRecord{
		OCRConfidence: conf,
		ExtractedDate: extracted,
	}

	lines, ok := normalize(text, conf, p.noiseThreshold)
	if !ok {
		return rec
	}

	d := &document{lines: lines, rec: &rec}
	for _, fe := range p.fields {
		rec.Set(fe.field, fe.strategy(d))
	}
	rec.Address = p.address(lines)

	return rec
}

// NoiseThreshold reports the confidence below which noise suppression runs.
func (p *Parser) NoiseThreshold() float64 {
	return p.noiseThreshold
}
