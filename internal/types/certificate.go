package types

// CertificateInput is the body used to create a certificate.
type CertificateInput struct {
	Title         string `json:"title" validate:"min=2"`
	Issuer        string `json:"issuer" validate:"min=2"`
	Date          string `json:"date" validate:"min=2"`
	Description   string `json:"description" validate:"min=10"`
	CredentialID  string `json:"credentialId"`
	CredentialURL string `json:"credentialUrl" validate:"optional_url"`
	ImageURL      string `json:"imageUrl"`
}

// CertificatePatch is a partial certificate update. Nil fields keep their stored value.
type CertificatePatch struct {
	Title         *string `json:"title" validate:"omitempty,min=2"`
	Issuer        *string `json:"issuer" validate:"omitempty,min=2"`
	Date          *string `json:"date" validate:"omitempty,min=2"`
	Description   *string `json:"description" validate:"omitempty,min=10"`
	CredentialID  *string `json:"credentialId"`
	CredentialURL *string `json:"credentialUrl" validate:"omitempty,optional_url"`
	ImageURL      *string `json:"imageUrl"`
}

// Updates returns the column updates carried by the patch.
func (p CertificatePatch) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	setIfPresent(updates, "title", p.Title)
	setIfPresent(updates, "issuer", p.Issuer)
	setIfPresent(updates, "date", p.Date)
	setIfPresent(updates, "description", p.Description)
	setIfPresent(updates, "credential_id", p.CredentialID)
	setIfPresent(updates, "credential_url", p.CredentialURL)
	setIfPresent(updates, "image_url", p.ImageURL)
	return updates
}

func setIfPresent(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
