package validation

// ValidateRequest is the guard-facing validation payload
type ValidateRequest struct {
	Code   string `json:"code" validate:"required,min=3"`
	GateID uint   `json:"gate_id" validate:"required"`
}

// ValidateResponse is returned on an allowed validation
type ValidateResponse struct {
	OK           bool   `json:"ok"`
	ResidentName string `json:"resident_name"`
	HouseNumber  string `json:"house_number"`
	PassType     string `json:"pass_type"`
}
