package accesscode

// PassType represents the kind of pass a code grants
type PassType string

const (
	PassTypeGuest PassType = "guest"
	PassTypeStaff PassType = "staff"
)

func (pt PassType) String() string {
	return string(pt)
}

func (pt PassType) IsValid() bool {
	return pt == PassTypeGuest || pt == PassTypeStaff
}

// CodeStatus represents the lifecycle state of an access code
type CodeStatus string

const (
	CodeStatusActive  CodeStatus = "active"
	CodeStatusUsed    CodeStatus = "used"
	CodeStatusExpired CodeStatus = "expired"
	CodeStatusRevoked CodeStatus = "revoked"
)

func (cs CodeStatus) String() string {
	return string(cs)
}

func (cs CodeStatus) IsValid() bool {
	switch cs {
	case CodeStatusActive, CodeStatusUsed, CodeStatusExpired, CodeStatusRevoked:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the code can never grant entry again.
// Expired staff codes are not terminal; renewal returns them to active.
func (cs CodeStatus) IsTerminal() bool {
	return cs == CodeStatusUsed || cs == CodeStatusRevoked
}
