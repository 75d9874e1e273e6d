package rc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldAccessors(t *testing.T) {
	var rec ParsedRecord
	for _, f := range Fields() {
		rec.Set(f, string(f)+"-value")
	}

	assert.Equal(t, len(Fields()), rec.FilledCount())
	assert.Equal(t, "regNo-value", rec.RegNo)
	assert.Equal(t, "address-value", rec.Address)

	rec.Set("unknown", "x")
	assert.Equal(t, "", rec.Get("unknown"))
	assert.Nil(t, rec.Ptr("unknown"))
}

func TestFieldsReturnsCopy(t *testing.T) {
	fields := Fields()
	fields[0] = "mutated"

	assert.Equal(t, FieldRegNo, Fields()[0])
	assert.Len(t, Fields(), 24)
}

func TestParseField(t *testing.T) {
	f, ok := ParseField("chassisNo")
	assert.True(t, ok)
	assert.Equal(t, FieldChassisNo, f)

	_, ok = ParseField("ChassisNo")
	assert.False(t, ok)
}

func TestReadAccessorsOnValues(t *testing.T) {
	assert.Equal(t, "KA01AB1234", ParsedRecord{RegNo: "KA01AB1234"}.Get(FieldRegNo))
	assert.Equal(t, 2, ParsedRecord{Colour: "RED", Model: "SWIFT"}.FilledCount())
}
