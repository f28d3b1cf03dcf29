package dto

// UpdateFieldRequest sets one draft value. Value may be empty.
type UpdateFieldRequest struct {
	Field string  `json:"field" binding:"required"`
	Value *string `json:"value" binding:"required"`
}

// SubmitRequest optionally merges fields into the draft before committing
type SubmitRequest struct {
	Fields map[string]string `json:"fields"`
}
