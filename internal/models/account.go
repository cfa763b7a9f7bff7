package models

// Account is the account record owned by the upstream API. The upstream
// returns it under the "info" key of the account-info envelope.
type Account struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"emailAddress"`
	Phone     string `json:"phoneNumber"`
}

// RegistrationPayload is forwarded verbatim to POST /accounts/register.
type RegistrationPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"emailAddress"`
	Phone     string `json:"phoneNumber"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

// LoginPayload is forwarded verbatim to POST /accounts/login.
type LoginPayload struct {
	Email    string `json:"emailAddress"`
	Password string `json:"accountPassword"`
}

// OTPPayload is forwarded verbatim to POST /accounts/otp.
type OTPPayload struct {
	Email string `json:"accountEmail"`
	Code  string `json:"otpCode"`
}
