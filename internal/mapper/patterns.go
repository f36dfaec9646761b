package mapper

import "github.com/goliatone/go-fieldschema/pkg/fields"

// URLPattern is the pattern documented for URL fields. Generated snapshots
// depend on it byte for byte.
const URLPattern = `^((http[s]?|ftp):\/)?\/?([^:\/\s]+)((\/\w+)*\/)([\w\-\.]+[^#?\s]+)(.*)?(#[\w\-]+)?$`

// UUID patterns per textual encoding.
const (
	UUIDHexVerbosePattern = `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`
	UUIDHexPattern        = `^[0-9a-f]{32}$`
	UUIDURNPattern        = `^urn:uuid:[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`
)

// TextareaFormat is the format hint for multi-line text inputs.
const TextareaFormat = "textarea"

// uuidPattern returns "" for formats without a documented pattern.
func uuidPattern(format fields.UUIDFormat) string {
	switch format {
	case fields.UUIDHexVerbose:
		return UUIDHexVerbosePattern
	case fields.UUIDHex:
		return UUIDHexPattern
	case fields.UUIDURN:
		return UUIDURNPattern
	default:
		return ""
	}
}

func regexPattern(validators []fields.Validator) string {
	for _, v := range validators {
		switch rv := v.(type) {
		case fields.RegexValidator:
			if rv.Regex != nil {
				return rv.Regex.String()
			}
		case *fields.RegexValidator:
			if rv != nil && rv.Regex != nil {
				return rv.Regex.String()
			}
		}
	}
	return ""
}
