package validation

import (
	"estate-access/models/validationlog"
)

// DenyText maps a failure reason to the human text shown to guards. Both
// channels use this table; the default branch covers any reason a newer
// engine might emit that an older adapter does not know yet.
func DenyText(reason validationlog.FailureReason) string {
	switch reason {
	case validationlog.ReasonInvalidCode:
		return "Invalid code"
	case validationlog.ReasonCodeExpired:
		return "Code expired"
	case validationlog.ReasonCodeNotActive:
		return "Code not active"
	case validationlog.ReasonResidentSuspended:
		return "Resident suspended"
	case validationlog.ReasonGateNotFound:
		return "Invalid gate"
	default:
		return "Invalid or expired code"
	}
}

// DenyMessage renders the full deny body used by the guard app.
func DenyMessage(reason validationlog.FailureReason) string {
	return "Access Denied\nReason: " + DenyText(reason)
}
