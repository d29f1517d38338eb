package types

// Credentials is the body of login and register requests.
type Credentials struct {
	Username string `json:"username" validate:"min=3,max=50"`
	Password string `json:"password" validate:"min=8,max=72"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}
