package aggregate

// AuthClaims carries the identity claims returned by the government
// sign-in provider after a successful OTP verification.
type AuthClaims struct {
	Sub        string `json:"sub"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"nationalId,omitempty"`
}
