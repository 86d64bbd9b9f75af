package diag

// Severity ranks a diagnostic. Only SevError blocks lowering; the two
// lower levels are advisory.
type Severity uint8

const (
	// SevInfo is purely informational.
	SevInfo Severity = iota
	// SevWarning flags something suspicious that is still accepted.
	SevWarning
	// SevError rejects the program.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
