package types

// ContactInput is the body of a contact form submission.
type ContactInput struct {
	Name    string `json:"name" validate:"min=2"`
	Email   string `json:"email" validate:"email"`
	Subject string `json:"subject" validate:"min=3"`
	Message string `json:"message" validate:"min=10"`
}
