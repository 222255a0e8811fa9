package accesscode

// CreateCodeRequest is the resident-facing issuance payload
type CreateCodeRequest struct {
	PassType string `json:"pass_type" validate:"required,oneof=guest staff"`
}

// RenewCodeRequest renews a staff code by id
type RenewCodeRequest struct {
	CodeID string `json:"code_id" validate:"required,uuid4"`
}

// RevokeCodeRequest revokes a code by id
type RevokeCodeRequest struct {
	CodeID string `json:"code_id" validate:"required,uuid4"`
}
