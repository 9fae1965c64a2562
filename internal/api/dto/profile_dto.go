package dto

// UpdateProfileRequest is a partial update; absent fields stay unchanged.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// UpdatePhoneRequest single-field variant.
type UpdatePhoneRequest struct {
	Phone string `json:"phone"`
}

// UpdateEmailRequest single-field variant.
type UpdateEmailRequest struct {
	Email string `json:"email"`
}
