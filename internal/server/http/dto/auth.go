package dto

// RegisterRequest describes the registration payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest describes the password login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginCodeRequest asks for a one-time login code.
type LoginCodeRequest struct {
	Email string `json:"email"`
}

// CodeLoginRequest exchanges a one-time code for a token.
type CodeLoginRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}
