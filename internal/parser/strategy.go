package parser

import (
	"strings"

	"rc-service/internal/domain/rc"
)

// document is the input every strategy searches: the normalized lines and
// the record assembled so far. Strategies only read the record.
type document struct {
	lines []string
	rec   *rc.ParsedRecord
}

// Strategy extracts one value from a document, or returns "".
type Strategy func(d *document) string

// constraint validates or reshapes a candidate value. An empty result
// rejects the candidate.
type constraint func(d *document, candidate string) string

// firstOf tries strategies in order and returns the first non-empty value.
func firstOf(strategies ...Strategy) Strategy {
	return func(d *document) string {
		for _, s := range strategies {
			if v := s(d); v != "" {
				return v
			}
		}
		return ""
	}
}

const edgePunctuation = " \t:;-.,|_=*~"

// anchor describes a label-anchored extraction.
type anchor struct {
	label *Label
	// lines matching skip are ignored even when they carry the label.
	skip   *Label
	accept constraint
}

func anchored(l *Label, accept constraint) Strategy {
	return anchor{label: l, accept: accept}.strategy()
}

func anchoredExcept(l, skip *Label, accept constraint) Strategy {
	return anchor{label: l, skip: skip, accept: accept}.strategy()
}

func (a anchor) strategy() Strategy {
	return func(d *document) string {
		for i, line := range d.lines {
			loc := a.label.Pattern.FindStringIndex(line)
			if loc == nil {
				continue
			}
			if a.skip != nil && a.skip.Pattern.MatchString(line) {
				continue
			}
			for _, c := range candidates(d.lines, i, loc, a.label) {
				if v := a.accept(d, c); v != "" {
					return v
				}
			}
		}
		return ""
	}
}

// candidates returns the values a label at loc on lines[i] may refer to:
// the text after a colon, the text after the label when there is no colon,
// and the next line when the label line carries no value at all.
func candidates(lines []string, i int, loc []int, l *Label) []string {
	if inline := inlineValue(lines[i], loc, l); inline != "" {
		return []string{inline}
	}
	if i+1 < len(lines) && !IsFieldLabel(lines[i+1]) {
		if next := cleanCandidate(lines[i+1], l); next != "" {
			return []string{next}
		}
	}
	return nil
}

// inlineValue returns the value printed on the label's own line.
func inlineValue(line string, loc []int, l *Label) string {
	rest := line[loc[1]:]
	if idx := strings.Index(rest, ":"); idx >= 0 {
		return cleanCandidate(rest[idx+1:], l)
	}
	return cleanCandidate(rest, l)
}

// lineValue is inlineValue for the first occurrence of l on line.
func lineValue(line string, l *Label) string {
	loc := l.Pattern.FindStringIndex(line)
	if loc == nil {
		return ""
	}
	return inlineValue(line, loc, l)
}

// cleanCandidate trims edge punctuation, strips the label itself when it
// leaked into the value, and cuts the value where another field's label
// starts on the same line.
func cleanCandidate(s string, own *Label) string {
	s = strings.Trim(s, edgePunctuation)
	if own != nil {
		if loc := own.start.FindStringIndex(s); loc != nil && loc[1] < len(s) {
			s = s[loc[1]:]
		}
	}
	if loc := reDistinctAnywhere.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return strings.Trim(s, edgePunctuation)
}

// claimed reports whether v was already assigned to one of the identifier
// fields of the record.
func (d *document) claimed(v string) bool {
	v = compact(v)
	for _, f := range []rc.Field{rc.FieldRegNo, rc.FieldChassisNo, rc.FieldEngineNo} {
		if existing := d.rec.Get(f); existing != "" && compact(existing) == v {
			return true
		}
	}
	return false
}

func compact(s string) string {
	return strings.ToUpper(reNonAlnumLoose.ReplaceAllString(s, ""))
}
