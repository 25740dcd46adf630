package auth

// RequestOTPRequest is the payload for requesting a login code.
type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=10,max=20"`
}

// VerifyOTPRequest is the payload for submitting a login code.
type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=10,max=20"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// AdminLoginRequest is the payload for the admin email/password login.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUser is the minimal user info returned with a session token.
type LoginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}
