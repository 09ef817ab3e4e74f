package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation        ErrCode = "VALIDATION_ERROR"
	ErrInvalidID         ErrCode = "INVALID_ID"
	ErrInvalidPayload    ErrCode = "INVALID_PAYLOAD"
	ErrInvalidTaskFormat ErrCode = "INVALID_TASK_FORMAT"
	ErrFormatMismatch    ErrCode = "TASK_FORMAT_MISMATCH"
	ErrInvalidClosedType ErrCode = "INVALID_CLOSED_TASK_TYPE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validierung fehlgeschlagen. Bitte Eingaben prüfen."
	case ErrInvalidID:
		return "Ungültiges ID-Format."
	case ErrInvalidPayload:
		return "Ungültiger Anfrageinhalt."
	case ErrInvalidTaskFormat:
		return "Unbekanntes Aufgabenformat."
	case ErrFormatMismatch:
		return "Antworttyp passt nicht zum Aufgabenformat."
	case ErrInvalidClosedType:
		return "Unbekannter Typ für geschlossene Aufgaben."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Ressource nicht gefunden."
	case ErrConflict:
		return "Ressource existiert bereits."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Interner Serverfehler."
	default:
		return "Ein unerwarteter Fehler ist aufgetreten."
	}
}
