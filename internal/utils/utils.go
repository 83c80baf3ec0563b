package utils

import (
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

func GenerateUUID() string {
	return uuid.New().String()
}

// NormalizeText brings user-entered text (event titles, remarks) to NFC so
// equal-looking strings compare equal in the database.
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}
