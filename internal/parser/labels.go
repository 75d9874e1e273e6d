package parser

import (
	"regexp"
	"strings"
)

// LabelCatalogVersion changes whenever a label is added, removed or its
// pattern changes. Stored records carry it so re-parses can be detected.
const LabelCatalogVersion = 3

// Label is a textual anchor printed on the certificate.
type Label struct {
	Name string
	// Aliases are compared against whole lines, ignoring case and
	// everything but letters and digits.
	Aliases []string
	// Pattern locates the label inside a line.
	Pattern *regexp.Regexp
	// Distinct labels are specific enough to end a value that shares
	// their line. Words that also show up in addresses are not distinct.
	Distinct bool

	src   string
	start *regexp.Regexp
}

func newLabel(name, pattern string, distinct bool, aliases ...string) *Label {
	return &Label{
		Name:     name,
		Aliases:  aliases,
		Pattern:  regexp.MustCompile(`(?i)(?:` + pattern + `)`),
		Distinct: distinct,
		src:      pattern,
		start:    regexp.MustCompile(`(?i)^(?:` + pattern + `)\s*[:\-]?\s*`),
	}
}

var (
	labelRegNo = newLabel("REG NO",
		`\bREG(?:ISTRATION|N|D)?\.?\s*(?:NO|NUMBER|NUM)\b\.?`, true,
		"REG NO", "REGN NO", "REGD NO", "REGISTRATION NO", "REGISTRATION NUMBER")
	labelRegDate = newLabel("REG DATE",
		`\bREG(?:ISTRATION|N|D)?\.?\s*DATE\b|\bDATE\s*OF\s*REG(?:ISTRATION|N)?\b\.?`, true,
		"REG DATE", "REGN DATE", "REGISTRATION DATE", "DATE OF REG", "DATE OF REGISTRATION")
	labelForm = newLabel("FORM",
		`\bFORM\b`, false,
		"FORM")
	labelSerialNo = newLabel("O.SL.NO",
		`\bO\.?\s*SL\.?\s*NO\b\.?|\bSERIAL\s*NO\b\.?|\bSL\.?\s*NO\b\.?`, true,
		"O SL NO", "SL NO", "SERIAL NO")
	labelChassisNo = newLabel("CHASSIS NO",
		`\bCHASSIS\s*(?:NO|NUMBER)?\.?|\bCH\.\s*NO\b\.?`, true,
		"CHASSIS NO", "CHASSIS NUMBER", "CHASSIS", "CH NO")
	labelEngineNo = newLabel("ENGINE NO",
		`\bENGINE\s*/\s*MOTOR\s*(?:NO|NUMBER)\b\.?|\bENG(?:INE|\.)?\s*(?:NO|NUMBER)\b\.?|\bE\.\s*NO\b\.?`, true,
		"ENGINE NO", "ENGINE NUMBER", "ENG NO", "ENGINE MOTOR NO", "E NO")
	labelManufacturer = newLabel("MAKER'S NAME",
		`\bMAKER'?S?\s*NAME\b|\bMANUFACTURER(?:'?S)?(?:\s*NAME)?\b|\bMFR\b|^MAKE\b`, true,
		"MAKERS NAME", "MAKER NAME", "MANUFACTURER", "MANUFACTURERS NAME", "MAKE")
	labelModel = newLabel("MODEL NAME",
		`\bMODEL\s*NAME\b|^MODEL\b`, false,
		"MODEL", "MODEL NAME")
	labelVehicleClass = newLabel("VEHICLE CLASS",
		`\bVEH(?:ICLE)?\.?\s*CLASS\b|\bCLASS\s*OF\s*VEH(?:ICLE)?\b\.?`, true,
		"VEHICLE CLASS", "VEH CLASS", "CLASS OF VEHICLE")
	labelColour = newLabel("COLOUR",
		`\bCOLOU?R\b`, true,
		"COLOUR", "COLOR")
	labelBodyType = newLabel("BODY TYPE",
		`\bBODY\s*TYPE\b|\bTYPE\s*OF\s*BODY\b`, true,
		"BODY TYPE", "TYPE OF BODY")
	labelWheelBase = newLabel("WHEEL BASE",
		`\bWHEEL\s*BASE\b`, true,
		"WHEEL BASE", "WHEELBASE")
	labelMfgDate = newLabel("MFG DATE",
		`\bMFG\.?\s*DATE\b|\bMONTH\s*(?:&|AND)?\s*Y(?:EA)?R\.?\s*OF\s*MFG\b\.?|\bDATE\s*OF\s*MFG\b\.?|\bMFG\b\.?`, true,
		"MFG DATE", "MONTH YR OF MFG", "MONTH YEAR OF MFG", "DATE OF MFG", "MFG")
	labelFuel = newLabel("FUEL",
		`\bFUEL(?:\s*USED|\s*TYPE)?\b`, true,
		"FUEL", "FUEL USED", "FUEL TYPE")
	labelRegValidity = newLabel("REG/FC VALIDITY",
		`\bREGN?\.?\s*/?\s*FC\s*VALIDITY\b|\bREG(?:ISTRATION|N)?\.?\s*VALID(?:ITY)?(?:\s*UP\s*TO|\s*UPTO)?\b|\bFC\s*VALIDITY\b|\bFITNESS\s*(?:VALID\s*)?UP\s*TO\b|\bVALID(?:ITY)?\s*(?:UP\s*TO|UPTO|TILL)\b|\bVALIDITY\b`, true,
		"REG FC VALIDITY", "REGN VALIDITY", "REG VALIDITY", "FC VALIDITY", "VALID UPTO", "VALIDITY")
	labelTax = newLabel("TAX UPTO",
		`\bTAX\s*(?:PAID\s*)?(?:VALID(?:ITY)?\s*)?(?:UP\s*TO|UPTO|TILL)\b|\bTAX\s*VALID(?:ITY)?\b`, true,
		"TAX UPTO", "TAX UP TO", "TAX VALID UPTO", "TAX VALIDITY", "TAX PAID UPTO")
	labelCylinders = newLabel("NO OF CYL",
		`\bNO\.?\s*OF\s*CYL(?:INDERS?|S)?\b\.?|CNO\.?\s*OF\s*CYL(?:INDERS?|S)?\.?`, true,
		"NO OF CYL", "NO OF CYLINDERS", "CNOOFCYL")
	labelUnladen = newLabel("UNLADEN WT",
		`\bUNLADEN(?:\s*(?:WT|WEIGHT))?\b\.?|\bULW\b`, true,
		"UNLADEN WT", "UNLADEN WEIGHT", "ULW")
	labelSeating = newLabel("SEATING CAPACITY",
		`\bSEAT(?:ING)?\s*CAP(?:ACITY)?\b\.?|\bSEATING\b`, true,
		"SEATING CAPACITY", "SEATING CAP", "SEAT CAP", "SEATING")
	labelStanding = newLabel("STANDING CAPACITY",
		`\bSTAND(?:ING)?\s*(?:/\s*SLEEPER\s*)?CAP(?:ACITY)?\b\.?|\bSLEEPER\s*CAP(?:ACITY)?\b\.?`, true,
		"STANDING CAPACITY", "STANDING CAP", "STANDING SLEEPER CAP", "SLEEPER CAPACITY")
	labelCubic = newLabel("CUBIC CAPACITY",
		`\bCUBIC\s*CAP(?:ACITY)?\b\.?|\bENGINE\s*CAPACITY\b|^C\.?\s*C\b\.?`, false,
		"CUBIC CAPACITY", "CUBIC CAP", "ENGINE CAPACITY", "CC")
	labelOwner = newLabel("OWNER NAME",
		`\bOWNER(?:'?S)?\s*NAME\b|\bNAME\s*OF\s*(?:THE\s*)?OWNER\b|\bREGISTERED\s*OWNER\b`, true,
		"OWNER NAME", "OWNERS NAME", "NAME OF OWNER", "REGISTERED OWNER")
	labelRelation = newLabel("S/W/D OF",
		`\bS\s*/\s*W\s*/\s*D\s*(?:OF)?\b|\bSON\s*/\s*WIFE\s*/\s*DAUGHTER\s*OF\b|\bSON\s*/\s*DAUGHTER\s*/\s*WIFE\s*OF\b|\b[SWD]\s*/\s*O\b|\b(?:SON|WIFE|DAUGHTER)\s*OF\b`, true,
		"S W D OF", "SWD OF", "SON WIFE DAUGHTER OF", "SON DAUGHTER WIFE OF", "S O", "W O", "D O")
	labelAddress = newLabel("ADDRESS",
		`\b(?:PERMANENT|PRESENT)\s*ADDRESS\b|\bADDRESS\b|\bADDR\b\.?`, true,
		"ADDRESS", "PERMANENT ADDRESS", "PRESENT ADDRESS", "ADDR")
	labelSignature = newLabel("SIGNATURE",
		`\bSIGNATURE\b`, true,
		"SIGNATURE", "SIGNATURE OF REGISTERING AUTHORITY", "SIGNATURE OF OWNER")
	labelAuthority = newLabel("REGISTERING AUTHORITY",
		`\bREGISTERING\s*AUTHORITY\b|\bREGD?\.?\s*AUTHORITY\b`, true,
		"REGISTERING AUTHORITY", "REG AUTHORITY")
)

var catalog = []*Label{
	labelRegNo,
	labelRegDate,
	labelForm,
	labelSerialNo,
	labelChassisNo,
	labelEngineNo,
	labelManufacturer,
	labelModel,
	labelVehicleClass,
	labelColour,
	labelBodyType,
	labelWheelBase,
	labelMfgDate,
	labelFuel,
	labelRegValidity,
	labelTax,
	labelCylinders,
	labelUnladen,
	labelSeating,
	labelStanding,
	labelCubic,
	labelOwner,
	labelRelation,
	labelAddress,
	labelSignature,
	labelAuthority,
}

var (
	aliasKeys map[string]struct{}

	// reLabelWithSeparator matches any catalog label at the start of a
	// line followed by ':' or '-'.
	reLabelWithSeparator *regexp.Regexp
	// reDistinctStart matches a distinct label at the start of a line.
	reDistinctStart *regexp.Regexp
	// reDistinctAnywhere finds the first distinct label inside a value.
	reDistinctAnywhere *regexp.Regexp

	reLabelShape = regexp.MustCompile(`^[A-Za-z][A-Za-z .'/&()]*:`)
	reNonAlnum   = regexp.MustCompile(`[^A-Z0-9]+`)
)

const maxLabelShapeLen = 50

func init() {
	aliasKeys = make(map[string]struct{})
	var all, distinct []string
	for _, l := range catalog {
		for _, a := range l.Aliases {
			if k := labelKey(a); k != "" {
				aliasKeys[k] = struct{}{}
			}
		}
		all = append(all, "(?:"+l.src+")")
		if l.Distinct {
			distinct = append(distinct, "(?:"+l.src+")")
		}
	}
	reLabelWithSeparator = regexp.MustCompile(`(?i)^(?:` + strings.Join(all, "|") + `)\s*[:\-]`)
	reDistinctStart = regexp.MustCompile(`(?i)^(?:` + strings.Join(distinct, "|") + `)`)
	reDistinctAnywhere = regexp.MustCompile(`(?i)` + strings.Join(distinct, "|"))
}

// Labels returns the label catalog.
func Labels() []*Label {
	out := make([]*Label, len(catalog))
	copy(out, catalog)
	return out
}

func labelKey(s string) string {
	return reNonAlnum.ReplaceAllString(strings.ToUpper(s), "")
}

// IsFieldLabel reports whether line is a field label rather than a value.
// A line is a label when it is exactly one of the known label aliases, when
// it has the short "Label:" shape, when it starts with a catalog label
// followed by ':' or '-', or when it starts with a distinct label.
func IsFieldLabel(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if _, ok := aliasKeys[labelKey(line)]; ok {
		return true
	}
	if len(line) < maxLabelShapeLen && reLabelShape.MatchString(line) {
		return true
	}
	if reLabelWithSeparator.MatchString(line) {
		return true
	}
	return reDistinctStart.MatchString(line)
}

// isBareLabel reports whether line is a label carrying no value of its own,
// so the value is expected on the following line.
func isBareLabel(line string) bool {
	line = strings.TrimSpace(line)
	if _, ok := aliasKeys[labelKey(line)]; ok {
		return true
	}
	return IsFieldLabel(line) && strings.HasSuffix(line, ":")
}
