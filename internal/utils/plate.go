package utils

import "strings"

// NormalizePlate reduces a registration number to its comparable form:
// upper case with spaces, dashes and dots removed.
func NormalizePlate(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, ".", "")
	normalized = strings.ToUpper(normalized)
	return normalized
}
