package domain

// CreateInput is the payload for creating an entry
type CreateInput struct {
	Question string   `json:"question" validate:"required,min=3,max=500" example:"How do I reset my password?"`
	Answer   string   `json:"answer" validate:"required,min=3,max=4000" example:"Use the self service portal."`
	Category string   `json:"category,omitempty" validate:"omitempty,max=100" example:"accounts"`
	Keywords []string `json:"keywords,omitempty" validate:"omitempty,max=20,dive,min=1,max=50" example:"password,reset"`
	Priority int      `json:"priority,omitempty" validate:"omitempty,min=0,max=100" example:"10"`
}

// UpdateInput is the payload for updating an entry; empty fields keep their value
type UpdateInput struct {
	Question *string   `json:"question,omitempty" validate:"omitempty,min=3,max=500"`
	Answer   *string   `json:"answer,omitempty" validate:"omitempty,min=3,max=4000"`
	Category *string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Keywords *[]string `json:"keywords,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	Priority *int      `json:"priority,omitempty" validate:"omitempty,min=0,max=100"`
}

// SearchInput carries a free text retrieval query
type SearchInput struct {
	Query string `json:"query" validate:"required,min=2,max=1000" example:"vpn not connecting"`
}
