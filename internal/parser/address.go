package parser

import (
	"regexp"
	"strings"
)

const (
	maxAddressLines = 6
	addressWindow   = 3
	minLooseAddress = 10
)

var (
	reAddressKeyword = regexp.MustCompile(`(?i)\b(?:FLOOR|FLR|ROAD|RD|NAGAR|NEAR|NR|STREET|ST|LANE|COLONY|SECTOR|VILLAGE|VILL|POST|PO|DIST|DISTRICT|TALUK|TEHSIL|MANDAL|PIN|PINCODE|CROSS|MAIN|LAYOUT|BLOCK|FLAT|HOUSE|APARTMENT|APTS?|OPP|BEHIND|PLOT|WARD|TOWN|CITY|MARG|CHOWK|BAZAR|GALI|STAGE|PHASE|EXTN|EXTENSION)\b|(?:NAGAR|PURAM|HALLI|PALYA|ABAD|GANJ)\b`)
	reHouseNumber    = regexp.MustCompile(`(?i)^(?:\d+[A-Z]?\s*[,/\-]|#\s*\d+|(?:H|D|HOUSE|DOOR|FLAT|PLOT)\.?\s*NO\b)`)
	reFloorNumber    = regexp.MustCompile(`(?i)\b\d+(?:ST|ND|RD|TH)\s*(?:FLOOR|FLR|CROSS|MAIN)\b|\b(?:GROUND|FIRST|SECOND|THIRD)\s*FLOOR\b`)
	rePinCode        = regexp.MustCompile(`\b\d{6}\b`)
	reAddressChars   = regexp.MustCompile(`^[A-Za-z0-9\s,.\-/#()]+$`)
)

type addressTactic func(lines []string) string

var addressTactics = []addressTactic{
	ownerAnchoredAddress,
	labelAnchoredAddress,
	heuristicAddress,
	windowedAddress,
}

// reconstructAddress returns the owner's address joined with ", ", or "".
func reconstructAddress(lines []string) string {
	for _, t := range addressTactics {
		if v := t(lines); v != "" {
			return v
		}
	}
	return ""
}

// ownerAnchoredAddress reads the block printed below the owner name,
// skipping the name itself and any son/wife/daughter-of line.
func ownerAnchoredAddress(lines []string) string {
	i := indexOfLabel(lines, labelOwner)
	if i < 0 {
		return ""
	}
	j := i + 1
	if lineValue(lines[i], labelOwner) == "" && j < len(lines) && !IsFieldLabel(lines[j]) {
		j++
	}
	for j < len(lines) && labelRelation.Pattern.MatchString(lines[j]) {
		hasValue := lineValue(lines[j], labelRelation) != ""
		j++
		if !hasValue && j < len(lines) && !IsFieldLabel(lines[j]) {
			j++
		}
	}
	return joinAddress(collectAddress(lines, j, nil))
}

// labelAnchoredAddress reads the block starting at an explicit address
// label, keeping any text printed after the label on the same line.
func labelAnchoredAddress(lines []string) string {
	i := indexOfLabel(lines, labelAddress)
	if i < 0 {
		return ""
	}
	var parts []string
	if inline := lineValue(lines[i], labelAddress); inline != "" {
		parts = append(parts, inline)
	}
	return joinAddress(collectAddress(lines, i+1, parts))
}

// heuristicAddress starts at the first line that looks like an address and
// is neither a label nor the value of a bare label.
func heuristicAddress(lines []string) string {
	pendingValue := false
	for i, line := range lines {
		if IsFieldLabel(line) {
			pendingValue = isBareLabel(line)
			continue
		}
		if pendingValue {
			pendingValue = false
			continue
		}
		if looksLikeAddress(line) {
			return joinAddress(collectAddress(lines, i, nil))
		}
	}
	return ""
}

// windowedAddress slides a three line window over the document and starts
// at the first label-free window holding an address-like line.
func windowedAddress(lines []string) string {
	for i := 0; i+addressWindow <= len(lines); i++ {
		window := lines[i : i+addressWindow]
		labelled, addressLike := false, false
		for _, l := range window {
			if IsFieldLabel(l) {
				labelled = true
				break
			}
			if looksLikeAddress(l) {
				addressLike = true
			}
		}
		if !labelled && addressLike {
			return joinAddress(collectAddress(lines, i, nil))
		}
	}
	return ""
}

// collectAddress appends lines from start until the first label line.
func collectAddress(lines []string, start int, parts []string) []string {
	for j := start; j < len(lines) && len(parts) < maxAddressLines; j++ {
		if IsFieldLabel(lines[j]) {
			break
		}
		if p := strings.Trim(lines[j], edgePunctuation); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func joinAddress(parts []string) string {
	return strings.Join(parts, ", ")
}

func indexOfLabel(lines []string, l *Label) int {
	for i, line := range lines {
		if l.Pattern.MatchString(line) {
			return i
		}
	}
	return -1
}

// looksLikeAddress reports whether line reads like part of a postal
// address: a street keyword, a house or floor number, a PIN code next to
// text, or a plain alphanumeric line longer than minLooseAddress. The loose
// rule needs at least two words so a bare chassis or engine token is never
// taken for an address.
func looksLikeAddress(line string) bool {
	switch {
	case reAddressKeyword.MatchString(line),
		reHouseNumber.MatchString(line),
		reFloorNumber.MatchString(line):
		return true
	case rePinCode.MatchString(line) && hasLetter(line):
		return true
	}
	return len(line) > minLooseAddress &&
		reAddressChars.MatchString(line) &&
		hasLetter(line) &&
		strings.ContainsAny(line, " ,")
}
