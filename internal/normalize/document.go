package normalize

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

var (
	nonDocumentChars = regexp.MustCompile(`[^A-Z0-9]`)
	dniShape         = regexp.MustCompile(`^\d{8}[A-Z]$`)
	nieShape         = regexp.MustCompile(`^[XYZ]\d{7}[A-Z]$`)
	nifShape         = regexp.MustCompile(`^[A-Z]\d{7}[A-Z0-9]$`)
)

// DocumentID uppercases an identity document number and drops separators.
func DocumentID(id string) string {
	return nonDocumentChars.ReplaceAllString(strings.ToUpper(id), "")
}

// DocumentType classifies an identity document number by shape.
// NIE is checked before NIF since every NIE also has the NIF shape.
func DocumentType(id string) domain.DocumentType {
	clean := DocumentID(id)
	switch {
	case clean == "":
		return domain.DocumentUnknown
	case dniShape.MatchString(clean):
		return domain.DocumentDNI
	case nieShape.MatchString(clean):
		return domain.DocumentNIE
	case nifShape.MatchString(clean):
		return domain.DocumentNIF
	}
	return domain.DocumentOther
}
