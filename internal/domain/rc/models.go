package rc

import (
	"time"
)

// Field names a ParsedRecord value. The string is the JSON key.
type Field string

const (
	FieldRegNo            Field = "regNo"
	FieldRegDate          Field = "regDate"
	FieldFormNo           Field = "formNo"
	FieldSerialNo         Field = "serialNo"
	FieldChassisNo        Field = "chassisNo"
	FieldEngineNo         Field = "engineNo"
	FieldManufacturer     Field = "manufacturer"
	FieldModel            Field = "model"
	FieldVehicleClass     Field = "vehicleClass"
	FieldColour           Field = "colour"
	FieldBodyType         Field = "bodyType"
	FieldWheelBase        Field = "wheelBase"
	FieldMfgDate          Field = "mfgDate"
	FieldFuelType         Field = "fuelType"
	FieldRegValidity      Field = "regValidity"
	FieldTaxValidUntil    Field = "taxValidUntil"
	FieldNoOfCylinders    Field = "noOfCylinders"
	FieldUnladenWeight    Field = "unladenWeight"
	FieldSeatingCapacity  Field = "seatingCapacity"
	FieldStandingCapacity Field = "standingCapacity"
	FieldCubicCapacity    Field = "cubicCapacity"
	FieldOwnerName        Field = "ownerName"
	FieldRelationName     Field = "relationName"
	FieldAddress          Field = "address"
)

var allFields = []Field{
	FieldRegNo,
	FieldRegDate,
	FieldFormNo,
	FieldSerialNo,
	FieldChassisNo,
	FieldEngineNo,
	FieldManufacturer,
	FieldModel,
	FieldVehicleClass,
	FieldColour,
	FieldBodyType,
	FieldWheelBase,
	FieldMfgDate,
	FieldFuelType,
	FieldRegValidity,
	FieldTaxValidUntil,
	FieldNoOfCylinders,
	FieldUnladenWeight,
	FieldSeatingCapacity,
	FieldStandingCapacity,
	FieldCubicCapacity,
	FieldOwnerName,
	FieldRelationName,
	FieldAddress,
}

// Fields returns every record field in document order.
func Fields() []Field {
	out := make([]Field, len(allFields))
	copy(out, allFields)
	return out
}

// ParseField resolves a JSON field name.
func ParseField(name string) (Field, bool) {
	for _, f := range allFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// ParsedRecord is the structured result of reading one RC scan.
// Every field is always present; a field that was not found is "".
type ParsedRecord struct {
	RegNo            string `json:"regNo"`
	RegDate          string `json:"regDate"`
	FormNo           string `json:"formNo"`
	SerialNo         string `json:"serialNo"`
	ChassisNo        string `json:"chassisNo"`
	EngineNo         string `json:"engineNo"`
	Manufacturer     string `json:"manufacturer"`
	Model            string `json:"model"`
	VehicleClass     string `json:"vehicleClass"`
	Colour           string `json:"colour"`
	BodyType         string `json:"bodyType"`
	WheelBase        string `json:"wheelBase"`
	MfgDate          string `json:"mfgDate"`
	FuelType         string `json:"fuelType"`
	RegValidity      string `json:"regValidity"`
	TaxValidUntil    string `json:"taxValidUntil"`
	NoOfCylinders    string `json:"noOfCylinders"`
	UnladenWeight    string `json:"unladenWeight"`
	SeatingCapacity  string `json:"seatingCapacity"`
	StandingCapacity string `json:"standingCapacity"`
	CubicCapacity    string `json:"cubicCapacity"`
	OwnerName        string `json:"ownerName"`
	RelationName     string `json:"relationName"`
	Address          string `json:"address"`

	OCRConfidence float64   `json:"ocrConfidence"`
	ExtractedDate time.Time `json:"extractedDate"`

	RawText    string `json:"rawText,omitempty"`
	ParseError string `json:"parseError,omitempty"`
}

// Ptr returns the slot holding f, or nil for an unknown field.
func (r *ParsedRecord) Ptr(f Field) *string {
	switch f {
	case FieldRegNo:
		return &r.RegNo
	case FieldRegDate:
		return &r.RegDate
	case FieldFormNo:
		return &r.FormNo
	case FieldSerialNo:
		return &r.SerialNo
	case FieldChassisNo:
		return &r.ChassisNo
	case FieldEngineNo:
		return &r.EngineNo
	case FieldManufacturer:
		return &r.Manufacturer
	case FieldModel:
		return &r.Model
	case FieldVehicleClass:
		return &r.VehicleClass
	case FieldColour:
		return &r.Colour
	case FieldBodyType:
		return &r.BodyType
	case FieldWheelBase:
		return &r.WheelBase
	case FieldMfgDate:
		return &r.MfgDate
	case FieldFuelType:
		return &r.FuelType
	case FieldRegValidity:
		return &r.RegValidity
	case FieldTaxValidUntil:
		return &r.TaxValidUntil
	case FieldNoOfCylinders:
		return &r.NoOfCylinders
	case FieldUnladenWeight:
		return &r.UnladenWeight
	case FieldSeatingCapacity:
		return &r.SeatingCapacity
	case FieldStandingCapacity:
		return &r.StandingCapacity
	case FieldCubicCapacity:
		return &r.CubicCapacity
	case FieldOwnerName:
		return &r.OwnerName
	case FieldRelationName:
		return &r.RelationName
	case FieldAddress:
		return &r.Address
	}
	return nil
}

// Get returns the value of f, "" for unknown fields.
func (r ParsedRecord) Get(f Field) string {
	if p := r.Ptr(f); p != nil {
		return *p
	}
	return ""
}

// Set assigns v to f. Unknown fields are ignored.
func (r *ParsedRecord) Set(f Field, v string) {
	if p := r.Ptr(f); p != nil {
		*p = v
	}
}

// FilledCount returns the number of non-empty fields.
func (r ParsedRecord) FilledCount() int {
	n := 0
	for _, f := range allFields {
		if r.Get(f) != "" {
			n++
		}
	}
	return n
}

type QualityReport struct {
	FieldsFound         int      `json:"fields_found"`
	TotalFields         int      `json:"total_fields"`
	CompletenessPercent float64  `json:"completeness_percent"`
	MissingFields       []Field  `json:"missing_fields"`
	Confidence          float64  `json:"confidence"`
	ConfidenceTier      string   `json:"confidence_tier"`
	Suggestions         []string `json:"suggestions"`
	LabelCatalogVersion int      `json:"label_catalog_version"`
}
