package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/recipenest/recipenest-web/config"
	"github.com/recipenest/recipenest-web/internal/models"
	"github.com/recipenest/recipenest-web/internal/upstream"
	"github.com/recipenest/recipenest-web/pkg/httpclient"
	"github.com/recipenest/recipenest-web/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Initialize(logger.Config{Level: "error", Environment: "development"})
}

func newUpstreamClient(baseURL string) *upstream.Client {
	return upstream.New(config.UpstreamConfig{
		BaseURL:         baseURL,
		TimeoutSeconds:  5,
		BreakerDisabled: true,
	}, httpclient.NewStandardClient())
}

func TestAccountService_Register_LocalValidation(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"success":true,"code":200,"message":"registered"}`))
	}))
	defer srv.Close()

	svc := NewAccountService(newUpstreamClient(srv.URL))

	tests := []struct {
		name    string
		form    models.RegisterForm
		wantErr error
	}{
		{
			name:    "terms not accepted",
			form:    models.RegisterForm{Password1: "pw", Password2: "pw"},
			wantErr: ErrTermsNotAccepted,
		},
		{
			name:    "password mismatch",
			form:    models.RegisterForm{Terms: "on", Password1: "pw1", Password2: "pw2"},
			wantErr: ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Register(context.Background(), tt.form)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
		})
	}

	assert.Zero(t, calls.Load(), "local validation failures must not reach the upstream")
}

func TestAccountService_Register_StripsPhoneDashes(t *testing.T) {
	var got models.RegistrationPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, jsonDecode(r, &got))
		_, _ = w.Write([]byte(`{"success":true,"code":200,"message":"registered"}`))
	}))
	defer srv.Close()

	svc := NewAccountService(newUpstreamClient(srv.URL))

	res, err := svc.Register(context.Background(), models.RegisterForm{
		FirstName: "Alice",
		Email:     "alice@example.com",
		Phone:     "555-123-4567",
		Password1: "pw",
		Password2: "pw",
		Terms:     "on",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "5551234567", got.Phone)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice@example.com", "a****@example.com"},
		{"b@x.org", "b****@x.org"},
		{"no-at-sign", "no-at-sign"},
		{"@example.com", "@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskEmail(tt.in))
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Alice's Recipes", DisplayName(models.Account{FirstName: "Alice"}))
	assert.Equal(t, "Your Recipe Page", DisplayName(models.Account{}))
}
