package parser

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultNoiseThreshold is the OCR confidence below which noise
// suppression is applied.
const DefaultNoiseThreshold = 50.0

const minCleanLength = 3

var (
	reControl    = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F\x{FFFD}]`)
	reLineBreaks = regexp.MustCompile(`\r\n?`)
	reNoiseChars = regexp.MustCompile(`[^A-Za-z0-9\s\-/.,:]`)
	reInlineWS   = regexp.MustCompile(`[ \t\f\v]+`)
)

// clampConfidence maps confidence into [0,100]. NaN means unknown and
// becomes 0.
func clampConfidence(c float64) float64 {
	switch {
	case math.IsNaN(c), c < 0:
		return 0
	case c > 100:
		return 100
	}
	return c
}

// normalize cleans raw OCR text and returns its non-empty trimmed lines in
// document order. ok is false when the cleaned text is too short or carries
// no letter at all.
func normalize(text string, confidence, noiseThreshold float64) (lines []string, ok bool) {
	text = strings.ToValidUTF8(text, "")
	text = reControl.ReplaceAllString(text, "")
	text = reLineBreaks.ReplaceAllString(text, "\n")

	noisy := confidence < noiseThreshold
	if noisy {
		text = reNoiseChars.ReplaceAllString(text, "")
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(reInlineWS.ReplaceAllString(raw, " "))
		if noisy {
			line = dropSingleCharTokens(line)
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	cleaned := strings.Join(lines, "\n")
	if utf8.RuneCountInString(cleaned) < minCleanLength || !hasLetter(cleaned) {
		return nil, false
	}
	return lines, true
}

// dropSingleCharTokens removes isolated one-character tokens, the most
// common artifact of low quality scans.
func dropSingleCharTokens(line string) string {
	tokens := strings.Fields(line)
	kept := tokens[:0]
	for _, t := range tokens {
		if utf8.RuneCountInString(t) > 1 {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " ")
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
