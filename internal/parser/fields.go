package parser

import (
	"regexp"
	"strings"

	"rc-service/internal/domain/rc"
)

type fieldExtractor struct {
	field    rc.Field
	strategy Strategy
}

// defaultRegistry lists, per field, the strategies tried in order. Fields
// are extracted top to bottom; later identifier strategies skip values
// claimed by earlier ones, so the order of the identifier rows matters.
func defaultRegistry() []fieldExtractor {
	return []fieldExtractor{
		{rc.FieldRegNo, firstOf(anchored(labelRegNo, plateValue), scanPlates)},
		{rc.FieldRegDate, anchored(labelRegDate, dateValue)},
		{rc.FieldFormNo, firstOf(formFromFormLine, formFromRegLine)},
		{rc.FieldSerialNo, anchored(labelSerialNo, serialValue)},
		{rc.FieldChassisNo, firstOf(anchored(labelChassisNo, identifierValue), scanIdentifierLines)},
		{rc.FieldEngineNo, firstOf(anchored(labelEngineNo, identifierValue), scanIdentifierLines)},
		{rc.FieldManufacturer, anchored(labelManufacturer, textValue)},
		{rc.FieldModel, anchored(labelModel, textValue)},
		{rc.FieldVehicleClass, anchored(labelVehicleClass, textValue)},
		{rc.FieldColour, anchored(labelColour, textValue)},
		{rc.FieldBodyType, anchored(labelBodyType, bodyTypeValue)},
		{rc.FieldWheelBase, firstOf(anchored(labelWheelBase, firstNumber), wheelBaseFromUnladenLine)},
		{rc.FieldMfgDate, anchored(labelMfgDate, dateValue)},
		{rc.FieldFuelType, firstOf(anchored(labelFuel, textValue), scanFuelKeywords)},
		{rc.FieldRegValidity, anchoredExcept(labelRegValidity, labelTax, dateValue)},
		{rc.FieldTaxValidUntil, anchored(labelTax, dateValue)},
		{rc.FieldNoOfCylinders, anchored(labelCylinders, firstNumber)},
		{rc.FieldUnladenWeight, anchored(labelUnladen, lastNumber)},
		{rc.FieldSeatingCapacity, anchored(labelSeating, firstNumber)},
		{rc.FieldStandingCapacity, anchored(labelStanding, firstNumber)},
		{rc.FieldCubicCapacity, anchored(labelCubic, firstNumber)},
		{rc.FieldOwnerName, anchored(labelOwner, textValue)},
		{rc.FieldRelationName, anchored(labelRelation, textValue)},
	}
}

var (
	reNonAlnumLoose = regexp.MustCompile(`[^A-Za-z0-9]+`)

	// Registration plates, most specific first.
	plateScanPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z]{1,3}\d{4}\b`),
		regexp.MustCompile(`\b[A-Z]{2}[\s-]?\d{1,2}[\s-]?[A-Z]{1,3}[\s-]?\d{4}\b`),
		regexp.MustCompile(`\b[A-Z]{2}\d{1,2}[A-Z0-9]{4,8}\b`),
	}
	rePlateLoose   = regexp.MustCompile(`\b[A-Z]{2}[\s-]?\d{1,2}[\s-]?(?:[A-Z]{1,3}[\s-]?)?\d{4}\b`)
	rePlateShape   = regexp.MustCompile(`^[A-Z]{2}\d{1,2}[A-Z]{0,3}\d{4}$`)
	rePlateGrouped = regexp.MustCompile(`^([A-Z]{2})(\d{2})([A-Z]{3})(\d{4})$`)

	// Dates, most specific first.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{1,2}[-/.]\d{1,2}[-/.]\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}\s+\d{1,2}\s+\d{4}\b`),
		regexp.MustCompile(`\b\d{4}[-/.]\d{1,2}[-/.]\d{1,2}\b`),
		regexp.MustCompile(`\b\d{1,2}[-/ ]?(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)[A-Z]*[-/ ]?\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}[-/.]\d{4}\b`),
	}

	reIdentifier     = regexp.MustCompile(`\b[A-Z0-9]{6,20}\b`)
	reIdentifierLine = regexp.MustCompile(`^[A-Z0-9]{6,20}$`)

	reFormNumber     = regexp.MustCompile(`(?i)\bFORM\b\s*(?:NO\.?)?\s*[:\-]?\s*(\d{1,3}[A-Z]?)\b`)
	reTrailingFormNo = regexp.MustCompile(`(?i)\b(\d{1,3}[A-Z]?)\s*$`)
	reFormToken      = regexp.MustCompile(`^\d{1,3}[A-Z]?$`)

	reTrailingDigits = regexp.MustCompile(`(\d+)\s*$`)
	reNumber         = regexp.MustCompile(`\d+(?:\.\d+)?`)

	reFuelKeyword = regexp.MustCompile(`\b(?:PETROL\s*/\s*(?:CNG|LPG|ETHANOL)|DIESEL\s*/\s*CNG|PETROL|DIESEL|CNG|LPG|ELECTRIC(?:\s*\(BOV\))?|HYBRID)\b`)
)

// fusedCylinderLabel is the "C NO OF CYL" label run into the previous value
// without any separator.
const fusedCylinderLabel = "CNOOFCYL"

// formatPlate groups a compact AA00AAA0000 plate as AA-00-AAA-0000 and
// leaves every other shape untouched.
func formatPlate(compactPlate string) string {
	if m := rePlateGrouped.FindStringSubmatch(compactPlate); m != nil {
		return strings.Join(m[1:], "-")
	}
	return compactPlate
}

func isPlateShaped(s string) bool {
	return rePlateShape.MatchString(compact(s))
}

func acceptPlate(raw string) string {
	p := compact(raw)
	if len(p) < 8 || len(p) > 12 {
		return ""
	}
	return formatPlate(p)
}

func plateValue(_ *document, c string) string {
	m := rePlateLoose.FindString(strings.ToUpper(c))
	if m == "" {
		return ""
	}
	return acceptPlate(m)
}

// scanPlates looks for a plate-shaped token anywhere in the document. Lines
// carrying chassis or engine labels are skipped.
func scanPlates(d *document) string {
	for _, re := range plateScanPatterns {
		for _, line := range d.lines {
			if labelChassisNo.Pattern.MatchString(line) || labelEngineNo.Pattern.MatchString(line) {
				continue
			}
			if m := re.FindString(strings.ToUpper(line)); m != "" {
				if p := acceptPlate(m); p != "" {
					return p
				}
			}
		}
	}
	return ""
}

// dateValue prefers a date-shaped substring and falls back to the raw
// candidate.
func dateValue(_ *document, c string) string {
	upper := strings.ToUpper(c)
	for _, re := range datePatterns {
		if m := re.FindString(upper); m != "" {
			return m
		}
	}
	return c
}

func formFromFormLine(d *document) string {
	for _, line := range d.lines {
		if !labelForm.Pattern.MatchString(line) {
			continue
		}
		if m := reFormNumber.FindStringSubmatch(line); m != nil {
			return strings.ToUpper(m[1])
		}
		if m := reTrailingFormNo.FindStringSubmatch(line); m != nil {
			return strings.ToUpper(m[1])
		}
	}
	return ""
}

// formFromRegLine reads a form number printed after the plate on the
// registration number line.
func formFromRegLine(d *document) string {
	for _, line := range d.lines {
		loc := labelRegNo.Pattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		tokens := strings.Fields(line[loc[1]:])
		if len(tokens) < 2 {
			continue
		}
		last := strings.ToUpper(strings.Trim(tokens[len(tokens)-1], edgePunctuation))
		if reFormToken.MatchString(last) && !isPlateShaped(last) {
			return last
		}
	}
	return ""
}

func serialValue(_ *document, c string) string {
	if m := reTrailingDigits.FindStringSubmatch(c); m != nil {
		return m[1]
	}
	return c
}

// identifierValue accepts the first 6-20 character alphanumeric run that
// carries a digit and is not already another field's value.
func identifierValue(d *document, c string) string {
	for _, tok := range reIdentifier.FindAllString(strings.ToUpper(c), -1) {
		if hasDigit(tok) && !d.claimed(tok) {
			return tok
		}
	}
	return ""
}

// scanIdentifierLines accepts the first line that is a lone chassis or
// engine shaped token. It is permissive and may pick an unrelated number.
func scanIdentifierLines(d *document) string {
	for _, line := range d.lines {
		tok := strings.ToUpper(strings.Trim(line, edgePunctuation))
		if !reIdentifierLine.MatchString(tok) || !hasDigit(tok) || !hasLetter(tok) {
			continue
		}
		if isPlateShaped(tok) || d.claimed(tok) || IsFieldLabel(tok) {
			continue
		}
		return tok
	}
	return ""
}

func textValue(_ *document, c string) string {
	if !hasLetter(c) {
		return ""
	}
	return c
}

func bodyTypeValue(d *document, c string) string {
	upper := strings.ToUpper(c)
	if i := strings.Index(upper, fusedCylinderLabel); i >= 0 && len(upper) == len(c) {
		c = strings.Trim(c[:i], edgePunctuation)
	}
	return textValue(d, c)
}

func firstNumber(_ *document, c string) string {
	return reNumber.FindString(c)
}

func lastNumber(_ *document, c string) string {
	nums := reNumber.FindAllString(c, -1)
	if len(nums) == 0 {
		return ""
	}
	return nums[len(nums)-1]
}

// wheelBaseFromUnladenLine reads the wheel base from the unladen weight
// line: the number printed, unlabelled, in front of the label, or the first
// of two numbers fused after it.
func wheelBaseFromUnladenLine(d *document) string {
	for _, line := range d.lines {
		loc := labelUnladen.Pattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if before := reNumber.FindAllString(line[:loc[0]], -1); len(before) > 0 {
			return before[len(before)-1]
		}
		if after := reNumber.FindAllString(line[loc[1]:], -1); len(after) > 1 {
			return after[0]
		}
	}
	return ""
}

func scanFuelKeywords(d *document) string {
	for _, line := range d.lines {
		if m := reFuelKeyword.FindString(strings.ToUpper(line)); m != "" {
			return strings.ReplaceAll(m, " ", "")
		}
	}
	return ""
}
