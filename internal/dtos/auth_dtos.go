package dtos

// LoginRequest is the body of POST /login. Identifier may be the
// administrator email or username.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// MfaRequest is the body of POST /mfa.
type MfaRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// OtpRequestRequest is the body of POST /otp/request.
type OtpRequestRequest struct {
	Destination string `json:"destination" validate:"required"`
}

// OtpRequestResponse echoes the generated code only when the demo flag
// is enabled.
type OtpRequestResponse struct {
	OK   bool   `json:"ok"`
	Code string `json:"code,omitempty"`
}

// OtpVerifyRequest is the body of POST /otp/verify.
type OtpVerifyRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// OkResponse is the plain success envelope.
type OkResponse struct {
	OK bool `json:"ok"`
}

// CsrfResponse returns the freshly issued anti-forgery token; the same
// value rides in the csrf_token cookie.
type CsrfResponse struct {
	Token string `json:"token"`
}
