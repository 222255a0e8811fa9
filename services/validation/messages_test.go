package validation_test

import (
	"testing"

	"estate-access/models/validationlog"
	"estate-access/services/validation"

	"github.com/stretchr/testify/assert"
)

func TestDenyText(t *testing.T) {
	cases := []struct {
		reason validationlog.FailureReason
		want   string
	}{
		{validationlog.ReasonInvalidCode, "Invalid code"},
		{validationlog.ReasonCodeExpired, "Code expired"},
		{validationlog.ReasonCodeNotActive, "Code not active"},
		{validationlog.ReasonResidentSuspended, "Resident suspended"},
		{validationlog.ReasonGateNotFound, "Invalid gate"},
		{validationlog.FailureReason("SOMETHING_NEW"), "Invalid or expired code"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, validation.DenyText(tc.reason), string(tc.reason))
	}
}

func TestDenyMessage(t *testing.T) {
	got := validation.DenyMessage(validationlog.ReasonResidentSuspended)
	assert.Equal(t, "Access Denied\nReason: Resident suspended", got)
}
