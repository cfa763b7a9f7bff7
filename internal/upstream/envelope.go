package upstream

import (
	"encoding/json"

	"github.com/recipenest/recipenest-web/internal/models"
)

// CodeTransport is the code of a synthesized failure envelope: the upstream
// was unreachable, timed out, or returned a body that did not decode. The
// upstream itself never uses code 0.
const CodeTransport = 0

// Message normalizes the upstream "message" field, which arrives either as a
// plain string or as an object wrapping one under a "message" key.
type Message string

func (m *Message) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*m = Message(s)
		return nil
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &obj); err == nil && obj.Message != "" {
		*m = Message(obj.Message)
		return nil
	}

	// Last resort: keep the raw JSON so the text is not silently lost
	*m = Message(b)
	return nil
}

// Envelope is the normalized result shape shared by every upstream response.
// Callers branch on two things only: Fatal() for the error page path, and
// Success for the flash-and-redirect path. Data of a failed envelope is never
// usable.
type Envelope struct {
	Success bool    `json:"success"`
	Code    int     `json:"code"`
	Message Message `json:"message"`
}

// Fatal reports whether this envelope was synthesized from a transport-level
// failure and must be rendered as a generic error page.
func (e *Envelope) Fatal() bool {
	return e.Code == CodeTransport
}

// fail overwrites the envelope with a synthesized transport failure.
func (e *Envelope) fail(err error) {
	e.Success = false
	e.Code = CodeTransport
	e.Message = Message(err.Error())
}

// StatusResult is the result of operations whose payload the front-end does
// not consume (register, verify, login, otp, create, delete).
type StatusResult struct {
	Envelope
}

// AccountInfoResult carries the account record of GET /accounts/info/:email.
type AccountInfoResult struct {
	Envelope
	Info models.Account `json:"info"`
}

// RecipeListResult carries the recipe list of GET /recipes/all.
type RecipeListResult struct {
	Envelope
	Count   int             `json:"count"`
	Recipes []models.Recipe `json:"data"`
}

// RecipeResult carries a single recipe (GET /recipes/recipe/:id and the echo
// of PUT /recipes/edit/:id).
type RecipeResult struct {
	Envelope
	Recipe models.Recipe `json:"data"`
}
