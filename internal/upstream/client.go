package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/recipenest/recipenest-web/config"
	"github.com/recipenest/recipenest-web/internal/models"
	"github.com/recipenest/recipenest-web/pkg/circuitbreaker"
	apperrors "github.com/recipenest/recipenest-web/pkg/errors"
	"github.com/recipenest/recipenest-web/pkg/httpclient"
	"github.com/recipenest/recipenest-web/pkg/logger"
	"github.com/recipenest/recipenest-web/pkg/metrics"
	"github.com/recipenest/recipenest-web/pkg/retry"
	"github.com/recipenest/recipenest-web/pkg/tracing"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Client issues calls against the upstream recipe/account API and normalizes
// every outcome into an envelope. It never returns a Go error for a request:
// transport failures become the synthesized code-0 envelope so callers handle
// exactly two cases, fatal and business failure.
//
// Mutating operations attempt exactly one request. Pure reads may retry with
// backoff, bounded by config.
type Client struct {
	baseURL     string
	http        httpclient.Client
	timeout     time.Duration
	retryMaxGET int
	breaker     *gobreaker.CircuitBreaker
}

// New creates an upstream client from configuration.
func New(cfg config.UpstreamConfig, hc httpclient.Client) *Client {
	var cb *gobreaker.CircuitBreaker
	if !cfg.BreakerDisabled {
		cb = circuitbreaker.New(circuitbreaker.DefaultConfig("upstream"))
	}

	return &Client{
		baseURL:     cfg.BaseURL,
		http:        hc,
		timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		retryMaxGET: cfg.RetryMaxGET,
		breaker:     cb,
	}
}

// Register forwards a registration to POST /accounts/register.
func (c *Client) Register(ctx context.Context, payload models.RegistrationPayload) *StatusResult {
	var res StatusResult
	c.call(ctx, call{op: "register", method: http.MethodPost, path: "/accounts/register", payload: payload}, &res, &res.Envelope)
	return &res
}

// Verify forwards an email-verification token to GET /accounts/verify. The
// token is single-use upstream, so the call is not retried.
func (c *Client) Verify(ctx context.Context, token string) *StatusResult {
	var res StatusResult
	c.call(ctx, call{
		op:     "verify",
		method: http.MethodGet,
		path:   "/accounts/verify?token=" + url.QueryEscape(token),
	}, &res, &res.Envelope)
	return &res
}

// Login forwards credentials to POST /accounts/login.
func (c *Client) Login(ctx context.Context, payload models.LoginPayload) *StatusResult {
	var res StatusResult
	c.call(ctx, call{op: "login", method: http.MethodPost, path: "/accounts/login", payload: payload}, &res, &res.Envelope)
	return &res
}

// SubmitOTP forwards a one-time code to POST /accounts/otp.
func (c *Client) SubmitOTP(ctx context.Context, payload models.OTPPayload) *StatusResult {
	var res StatusResult
	c.call(ctx, call{op: "otp", method: http.MethodPost, path: "/accounts/otp", payload: payload}, &res, &res.Envelope)
	return &res
}

// AccountInfoByEmail resolves an account record via GET /accounts/info/:email.
func (c *Client) AccountInfoByEmail(ctx context.Context, email string) *AccountInfoResult {
	var res AccountInfoResult
	c.call(ctx, call{
		op:        "account_info",
		method:    http.MethodGet,
		path:      "/accounts/info/" + url.PathEscape(email),
		retryable: true,
	}, &res, &res.Envelope)
	return &res
}

// RecipesByAccount lists an account's recipes via GET /recipes/all. The
// upstream takes the account ID in the "accountid" header.
func (c *Client) RecipesByAccount(ctx context.Context, accountID string) *RecipeListResult {
	var res RecipeListResult
	c.call(ctx, call{
		op:        "recipe_list",
		method:    http.MethodGet,
		path:      "/recipes/all",
		headers:   map[string]string{"accountid": accountID},
		retryable: true,
	}, &res, &res.Envelope)
	return &res
}

// CreateRecipe submits a new recipe to POST /recipes/create.
func (c *Client) CreateRecipe(ctx context.Context, payload models.RecipePayload) *StatusResult {
	var res StatusResult
	c.call(ctx, call{op: "recipe_create", method: http.MethodPost, path: "/recipes/create", payload: payload}, &res, &res.Envelope)
	return &res
}

// RecipeByID fetches a single recipe via GET /recipes/recipe/:id.
func (c *Client) RecipeByID(ctx context.Context, id string) *RecipeResult {
	var res RecipeResult
	c.call(ctx, call{
		op:        "recipe_get",
		method:    http.MethodGet,
		path:      "/recipes/recipe/" + url.PathEscape(id),
		retryable: true,
	}, &res, &res.Envelope)
	return &res
}

// UpdateRecipe replaces a recipe via PUT /recipes/edit/:id.
func (c *Client) UpdateRecipe(ctx context.Context, id string, payload models.RecipePayload) *RecipeResult {
	var res RecipeResult
	c.call(ctx, call{
		op:      "recipe_update",
		method:  http.MethodPut,
		path:    "/recipes/edit/" + url.PathEscape(id),
		payload: payload,
	}, &res, &res.Envelope)
	return &res
}

// DeleteRecipe removes a recipe via DELETE /recipes/delete/:id.
func (c *Client) DeleteRecipe(ctx context.Context, id string) *StatusResult {
	var res StatusResult
	c.call(ctx, call{
		op:     "recipe_delete",
		method: http.MethodDelete,
		path:   "/recipes/delete/" + url.PathEscape(id),
	}, &res, &res.Envelope)
	return &res
}

type call struct {
	op        string
	method    string
	path      string
	headers   map[string]string
	payload   any
	retryable bool
}

// call performs one logical upstream operation, decoding the response body
// into out. Any failure along the way collapses into env.fail.
func (c *Client) call(ctx context.Context, cl call, out any, env *Envelope) {
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "upstream."+cl.op)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	attempt := func() error {
		return c.roundTrip(ctx, cl, out)
	}

	var err error
	if c.breaker != nil {
		_, err = circuitbreaker.Execute(c.breaker, func() (struct{}, error) {
			return struct{}{}, c.attemptWithRetry(ctx, cl, attempt)
		})
	} else {
		err = c.attemptWithRetry(ctx, cl, attempt)
	}

	duration := metrics.MeasureDuration(start)
	status := "success"
	switch {
	case err != nil:
		status = "error"
	case !env.Success:
		status = "business_error"
	}
	metrics.UpstreamRequestDuration.WithLabelValues(cl.op, status).Observe(duration)
	metrics.UpstreamRequestTotal.WithLabelValues(cl.op, status).Inc()
	logger.LogAPICall(cl.op, status, duration)

	if err != nil {
		logger.Warn("Upstream call failed",
			zap.String("operation", cl.op),
			zap.Error(err))
		env.fail(err)
	}
}

// attemptWithRetry retries pure reads with backoff; everything else gets
// exactly one attempt.
func (c *Client) attemptWithRetry(ctx context.Context, cl call, attempt func() error) error {
	if !cl.retryable || c.retryMaxGET <= 0 {
		return attempt()
	}
	return retry.Do(ctx, retry.UpstreamGETConfig(c.retryMaxGET), "upstream."+cl.op, attempt)
}

// roundTrip performs a single HTTP exchange and decodes the JSON body.
func (c *Client) roundTrip(ctx context.Context, cl call, out any) error {
	var body io.Reader
	if cl.payload != nil {
		raw, err := json.Marshal(cl.payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range cl.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.UpstreamError(cl.op, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.UpstreamError(cl.op, err)
	}

	return nil
}
