package validationlog

// Decision is the engine's verdict for one validation attempt
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionDeny  Decision = "deny"
)

func (d Decision) String() string {
	return string(d)
}

// Outcome mirrors the decision for reporting purposes
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// FailureReason is the closed enum of deny reasons. Adapters map these to
// user-facing text; nothing outside this package invents new values.
type FailureReason string

const (
	ReasonNone              FailureReason = ""
	ReasonGateNotFound      FailureReason = "GATE_NOT_FOUND"
	ReasonInvalidCode       FailureReason = "INVALID_CODE"
	ReasonResidentSuspended FailureReason = "RESIDENT_SUSPENDED"
	ReasonCodeNotActive     FailureReason = "CODE_NOT_ACTIVE"
	ReasonCodeExpired       FailureReason = "CODE_EXPIRED"
)

func (fr FailureReason) String() string {
	return string(fr)
}

func (fr FailureReason) IsValid() bool {
	switch fr {
	case ReasonGateNotFound, ReasonInvalidCode, ReasonResidentSuspended,
		ReasonCodeNotActive, ReasonCodeExpired:
		return true
	default:
		return false
	}
}
