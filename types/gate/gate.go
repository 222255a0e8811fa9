package gate

// CreateGateRequest is the admin payload for adding a gate
type CreateGateRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}
