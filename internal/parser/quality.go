package parser

import (
	"math"

	"rc-service/internal/domain/rc"
)

// Confidence tiers reported by ConfidenceTier.
const (
	TierHigh    = "High"
	TierMedium  = "Medium"
	TierLow     = "Low"
	TierVeryLow = "Very Low"
)

const suggestionConfidence = 60

// ConfidenceTier buckets an OCR confidence score.
func ConfidenceTier(confidence float64) string {
	switch c := clampConfidence(confidence); {
	case c >= 80:
		return TierHigh
	case c >= 60:
		return TierMedium
	case c >= 40:
		return TierLow
	default:
		return TierVeryLow
	}
}

// Assess summarises how much of rec was recovered and what the caller can
// do to improve the next scan.
func Assess(rec rc.ParsedRecord, confidence float64) rc.QualityReport {
	fields := rc.Fields()
	missing := make([]rc.Field, 0, len(fields))
	for _, f := range fields {
		if rec.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	found := len(fields) - len(missing)
	conf := clampConfidence(confidence)

	return rc.QualityReport{
		FieldsFound:         found,
		TotalFields:         len(fields),
		CompletenessPercent: math.Round(float64(found)/float64(len(fields))*1000) / 10,
		MissingFields:       missing,
		Confidence:          conf,
		ConfidenceTier:      ConfidenceTier(conf),
		Suggestions:         suggestions(rec, conf, found, len(fields)),
		LabelCatalogVersion: LabelCatalogVersion,
	}
}

func suggestions(rec rc.ParsedRecord, conf float64, found, total int) []string {
	var out []string
	if rec.ParseError != "" {
		out = append(out, "The text could not be parsed; enter the details manually.")
	}
	if conf < suggestionConfidence {
		out = append(out,
			"Scan in brighter, even lighting and avoid glare on the laminate.",
			"Hold the camera steady and parallel to the certificate.",
			"Make sure the whole certificate is inside the frame.",
		)
	}
	if found*2 < total {
		out = append(out, "Fewer than half of the fields were recognised; review every field before saving.")
	}
	if rec.RegNo == "" {
		out = append(out, "Registration number not found; check that the top of the certificate is visible.")
	}
	if rec.Address == "" && rec.OwnerName != "" {
		out = append(out, "Owner address not found; make sure the owner block is not cropped.")
	}
	return out
}
