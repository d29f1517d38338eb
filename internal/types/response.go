package types

// Response is the envelope returned by every API endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  string      `json:"errors,omitempty"`
}

// ResumeUpload is the payload of a successful resume upload.
type ResumeUpload struct {
	ResumeURL string      `json:"resumeUrl"`
	Profile   interface{} `json:"profile"`
}

// ImageUpload is the payload of a successful certificate image upload.
type ImageUpload struct {
	ImageURL string `json:"imageUrl"`
}
