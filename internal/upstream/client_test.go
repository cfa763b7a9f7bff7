package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/recipenest/recipenest-web/config"
	"github.com/recipenest/recipenest-web/internal/models"
	"github.com/recipenest/recipenest-web/pkg/httpclient"
	"github.com/recipenest/recipenest-web/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Initialize(logger.Config{Level: "error", Environment: "development"})
}

func newTestClient(baseURL string, retryMaxGET int) *Client {
	return New(config.UpstreamConfig{
		BaseURL:         baseURL,
		TimeoutSeconds:  5,
		RetryMaxGET:     retryMaxGET,
		BreakerDisabled: true,
	}, httpclient.NewStandardClient())
}

func TestClient_AccountInfo_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/accounts/info/alice@example.com", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"code":    200,
			"message": "found",
			"info": map[string]any{
				"_id":          "acc-1",
				"firstName":    "Alice",
				"emailAddress": "alice@example.com",
			},
		})
	}))
	defer srv.Close()

	res := newTestClient(srv.URL, 0).AccountInfoByEmail(context.Background(), "alice@example.com")

	require.True(t, res.Success)
	assert.False(t, res.Fatal())
	assert.Equal(t, "acc-1", res.Info.ID)
	assert.Equal(t, "Alice", res.Info.FirstName)
}

func TestClient_BusinessFailurePassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"code":    401,
			"message": "Password Confirmation Incorrect!",
		})
	}))
	defer srv.Close()

	res := newTestClient(srv.URL, 0).Login(context.Background(), models.LoginPayload{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	assert.False(t, res.Success)
	assert.False(t, res.Fatal(), "a reported business failure is not a transport failure")
	assert.Equal(t, 401, res.Code)
	assert.Equal(t, "Password Confirmation Incorrect!", string(res.Message))
}

func TestClient_MessageObjectNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"code":    400,
			"message": map[string]any{"message": "token expired"},
		})
	}))
	defer srv.Close()

	res := newTestClient(srv.URL, 0).Verify(context.Background(), "tok-1")

	assert.Equal(t, "token expired", string(res.Message))
}

func TestClient_TransportFailureSynthesized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	res := newTestClient(srv.URL, 0).AccountInfoByEmail(context.Background(), "alice@example.com")

	assert.False(t, res.Success)
	assert.True(t, res.Fatal())
	assert.Equal(t, CodeTransport, res.Code)
	assert.NotEmpty(t, string(res.Message))
}

func TestClient_MalformedBodySynthesized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL, 0).Login(context.Background(), models.LoginPayload{})

	assert.False(t, res.Success)
	assert.True(t, res.Fatal())
}

func TestClient_RecipeListSendsAccountIDHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "acc-1", r.Header.Get("accountid"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"code":    200,
			"message": "ok",
			"count":   1,
			"data": []map[string]any{
				{"_id": "rec-1", "recipeName": "Pancakes"},
			},
		})
	}))
	defer srv.Close()

	res := newTestClient(srv.URL, 0).RecipesByAccount(context.Background(), "acc-1")

	require.True(t, res.Success)
	assert.Equal(t, 1, res.Count)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Pancakes", res.Recipes[0].Name)
}

func TestClient_MutationsUseExpectedVerbs(t *testing.T) {
	var method, path atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method.Store(r.Method)
		path.Store(r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "code": 200, "message": "ok"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)

	c.DeleteRecipe(context.Background(), "rec-1")
	assert.Equal(t, http.MethodDelete, method.Load())
	assert.Equal(t, "/recipes/delete/rec-1", path.Load())

	c.UpdateRecipe(context.Background(), "rec-1", models.RecipePayload{Name: "Pancakes"})
	assert.Equal(t, http.MethodPut, method.Load())
	assert.Equal(t, "/recipes/edit/rec-1", path.Load())

	c.CreateRecipe(context.Background(), models.RecipePayload{Name: "Pancakes"})
	assert.Equal(t, http.MethodPost, method.Load())
	assert.Equal(t, "/recipes/create", path.Load())
}

func TestClient_ReadsRetryWritesDoNot(t *testing.T) {
	var gets, posts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			if gets.Add(1) == 1 {
				// malformed first response forces one retry
				_, _ = w.Write([]byte("not json"))
				return
			}
		} else {
			posts.Add(1)
			_, _ = w.Write([]byte("not json"))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true, "code": 200, "message": "ok",
			"info": map[string]any{"_id": "acc-1"},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 2)

	res := c.AccountInfoByEmail(context.Background(), "alice@example.com")
	require.True(t, res.Success)
	assert.Equal(t, int32(2), gets.Load(), "read retried once after malformed body")

	login := c.Login(context.Background(), models.LoginPayload{})
	assert.True(t, login.Fatal())
	assert.Equal(t, int32(1), posts.Load(), "writes get exactly one attempt")
}
