package domain

// PositionInput asks for the queue position of an email
type PositionInput struct {
	Email string `json:"email" validate:"required,email,max=254" example:"user@company.com"`
}
