package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rc-service/internal/domain/rc"
)

func extract(t *testing.T, text string, f rc.Field) string {
	t.Helper()
	return Parse(text, 90).Get(f)
}

func TestChassisAndEngineNumbers(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantChassis string
		wantEngine  string
	}{
		{
			name:        "inline values",
			text:        "CHASSIS NO: MA3EWDE1S00123456\nENGINE NO: K12MN1234567",
			wantChassis: "MA3EWDE1S00123456",
			wantEngine:  "K12MN1234567",
		},
		{
			name:        "values on next line",
			text:        "CHASSIS NO\nMA3EWDE1S00123456\nENGINE NO\nK12MN1234567",
			wantChassis: "MA3EWDE1S00123456",
			wantEngine:  "K12MN1234567",
		},
		{
			name:        "shared header line",
			text:        "CHASSIS NO ENGINE NO\nMA3EWDE1S00123456 K12MN1234567",
			wantChassis: "MA3EWDE1S00123456",
			wantEngine:  "K12MN1234567",
		},
		{
			name:        "too short value rejected",
			text:        "CHASSIS NO: AB12\nSOMETHING",
			wantChassis: "",
			wantEngine:  "",
		},
		{
			name:        "unlabelled token recovered once",
			text:        "SOME HEADER\nMA3EWDE1S00123456\nOWNER NAME\nJOHN",
			wantChassis: "MA3EWDE1S00123456",
			wantEngine:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Parse(tt.text, 90)
			assert.Equal(t, tt.wantChassis, rec.ChassisNo)
			assert.Equal(t, tt.wantEngine, rec.EngineNo)
		})
	}
}

func TestFormNumber(t *testing.T) {
	assert.Equal(t, "23", extract(t, "FORM 23\nREG NO KA01AB1234", rc.FieldFormNo))
	assert.Equal(t, "23A", extract(t, "FORM-23A\nREG NO KA01AB1234", rc.FieldFormNo))
	assert.Equal(t, "23A", extract(t, "REG NO KA01AB1234 23A", rc.FieldFormNo))
	assert.Equal(t, "", extract(t, "REG NO KA01AB1234", rc.FieldFormNo))
}

func TestSerialNumber(t *testing.T) {
	assert.Equal(t, "0042", extract(t, "O.SL.NO: KA/0042", rc.FieldSerialNo))
	assert.Equal(t, "ABC", extract(t, "SERIAL NO: ABC", rc.FieldSerialNo))
}

func TestColourAndBodyType(t *testing.T) {
	rec := Parse("COLOUR COLOUR WHITE\nBODY TYPE: SALOONCNOOFCYL 4", 90)

	assert.Equal(t, "WHITE", rec.Colour)
	assert.Equal(t, "SALOON", rec.BodyType)
	assert.Equal(t, "4", rec.NoOfCylinders)
}

func TestWheelBaseAndUnladenWeight(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantWheel   string
		wantUnladen string
	}{
		{"separate labels", "WHEEL BASE: 2450\nUNLADEN WT: 875", "2450", "875"},
		{"shared line", "WHEEL BASE 2450 UNLADEN WT 875 KG", "2450", "875"},
		{"header then values", "WHEEL BASE UNLADEN WT\n2450 875", "2450", "875"},
		{"wheel base before unladen label", "2450 UNLADEN WT 875", "2450", "875"},
		{"fused unladen numbers", "UNLADEN WT: 2450 875", "2450", "875"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Parse(tt.text, 90)
			assert.Equal(t, tt.wantWheel, rec.WheelBase)
			assert.Equal(t, tt.wantUnladen, rec.UnladenWeight)
		})
	}
}

func TestCapacities(t *testing.T) {
	rec := Parse("SEATING CAPACITY 5 STANDING CAP 0\nCUBIC CAPACITY: 1197.00 CC", 90)

	assert.Equal(t, "5", rec.SeatingCapacity)
	assert.Equal(t, "0", rec.StandingCapacity)
	assert.Equal(t, "1197.00", rec.CubicCapacity)
}

func TestFuelType(t *testing.T) {
	assert.Equal(t, "DIESEL", extract(t, "FUEL USED: DIESEL", rc.FieldFuelType))
	assert.Equal(t, "PETROL/CNG", extract(t, "TYPE M CAR PETROL / CNG BS IV", rc.FieldFuelType))
}

func TestOwnerAndRelation(t *testing.T) {
	rec := Parse("OWNER NAME: RAMESH KUMAR S/O SURESH KUMAR", 90)

	assert.Equal(t, "RAMESH KUMAR", rec.OwnerName)
	assert.Equal(t, "SURESH KUMAR", rec.RelationName)
}

func TestValidityDates(t *testing.T) {
	rec := Parse("REG VALIDITY: 11-05-2035\nTAX VALID UPTO: 31/03/2027", 90)

	assert.Equal(t, "11-05-2035", rec.RegValidity)
	assert.Equal(t, "31/03/2027", rec.TaxValidUntil)

	rec = Parse("TAX VALIDITY: LTT", 90)
	assert.Equal(t, "", rec.RegValidity)
	assert.Equal(t, "LTT", rec.TaxValidUntil)
}

func TestFirstOf(t *testing.T) {
	calls := 0
	s := firstOf(
		func(*document) string { calls++; return "" },
		func(*document) string { calls++; return "second" },
		func(*document) string { calls++; return "third" },
	)

	assert.Equal(t, "second", s(&document{rec: &rc.ParsedRecord{}}))
	assert.Equal(t, 2, calls)
}

func TestFormatPlate(t *testing.T) {
	assert.Equal(t, "KA-01-ABC-1234", formatPlate("KA01ABC1234"))
	assert.Equal(t, "KA01AB1234", formatPlate("KA01AB1234"))
	assert.Equal(t, "DL3CAB1234", formatPlate("DL3CAB1234"))
}
