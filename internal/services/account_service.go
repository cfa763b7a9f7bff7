package services

import (
	"context"
	"errors"
	"strings"

	"github.com/recipenest/recipenest-web/internal/models"
	"github.com/recipenest/recipenest-web/internal/upstream"
)

// Local validation failures. These are the only checks performed on this side
// of the upstream boundary; their text is shown to the user via flash.
var (
	ErrTermsNotAccepted = errors.New("You have not accepted the terms of condition!")
	ErrPasswordMismatch = errors.New("Password Confirmation Incorrect!")
)

// AccountService drives the registration/login/OTP pipeline against the
// upstream API.
type AccountService struct {
	upstream *upstream.Client
}

// NewAccountService creates a new account service instance
func NewAccountService(client *upstream.Client) *AccountService {
	return &AccountService{upstream: client}
}

// Register validates the form locally and forwards it upstream. A validation
// error means no upstream call was made.
func (s *AccountService) Register(ctx context.Context, form models.RegisterForm) (*upstream.StatusResult, error) {
	if form.Terms == "" {
		return nil, ErrTermsNotAccepted
	}
	if form.Password1 != form.Password2 {
		return nil, ErrPasswordMismatch
	}

	payload := models.RegistrationPayload{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Phone:     strings.ReplaceAll(form.Phone, "-", ""),
		Password1: form.Password1,
		Password2: form.Password2,
	}
	return s.upstream.Register(ctx, payload), nil
}

// VerifyToken forwards an email-verification token upstream.
func (s *AccountService) VerifyToken(ctx context.Context, token string) *upstream.StatusResult {
	return s.upstream.Verify(ctx, token)
}

// Login forwards credentials upstream.
func (s *AccountService) Login(ctx context.Context, form models.LoginForm) *upstream.StatusResult {
	return s.upstream.Login(ctx, models.LoginPayload{
		Email:    form.Email,
		Password: form.Password,
	})
}

// SubmitOTP forwards a one-time code upstream.
func (s *AccountService) SubmitOTP(ctx context.Context, form models.OTPForm) *upstream.StatusResult {
	return s.upstream.SubmitOTP(ctx, models.OTPPayload{
		Email: form.Email,
		Code:  form.OTP,
	})
}

// AccountInfo resolves the account record behind a session identity.
func (s *AccountService) AccountInfo(ctx context.Context, email string) *upstream.AccountInfoResult {
	return s.upstream.AccountInfoByEmail(ctx, email)
}

// MaskEmail hides the local part of an address for the OTP page, keeping the
// first character: alice@example.com -> a****@example.com.
func MaskEmail(email string) string {
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}
	return local[:1] + "****@" + domain
}

// DisplayName builds the page heading for an account's recipe pages.
func DisplayName(account models.Account) string {
	if account.FirstName == "" {
		return "Your Recipe Page"
	}
	return account.FirstName + "'s Recipes"
}
