package types

// ProfileInput is the body used to create a profile summary.
type ProfileInput struct {
	Title     string `json:"title" validate:"min=2"`
	Headline  string `json:"headline" validate:"min=5"`
	Bio       string `json:"bio" validate:"min=20"`
	ResumeURL string `json:"resumeUrl"`
}

// ProfilePatch is a partial profile update. Nil fields keep their stored value.
type ProfilePatch struct {
	Title     *string `json:"title" validate:"omitempty,min=2"`
	Headline  *string `json:"headline" validate:"omitempty,min=5"`
	Bio       *string `json:"bio" validate:"omitempty,min=20"`
	ResumeURL *string `json:"resumeUrl"`
}

// Updates returns the column updates carried by the patch.
func (p ProfilePatch) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	setIfPresent(updates, "title", p.Title)
	setIfPresent(updates, "headline", p.Headline)
	setIfPresent(updates, "bio", p.Bio)
	setIfPresent(updates, "resume_url", p.ResumeURL)
	return updates
}
