package dto

type RegisterRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	ConfirmPswd string `json:"confirmPswd"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RecoverAccountRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password    string `json:"password"`
	ConfirmPswd string `json:"confirmPswd"`
}
