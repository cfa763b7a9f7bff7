package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/recipenest/recipenest-web/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonDecode(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func TestNormalizeIngredients(t *testing.T) {
	tests := []struct {
		name       string
		names      []string
		quantities []string
		want       []models.IngredientLine
	}{
		{
			name:       "parallel arrays preserve order",
			names:      []string{"a", "b"},
			quantities: []string{"1", "2"},
			want: []models.IngredientLine{
				{Name: "a", Quantity: "1"},
				{Name: "b", Quantity: "2"},
			},
		},
		{
			name:       "scalar inputs yield one line",
			names:      []string{"a"},
			quantities: []string{"1"},
			want:       []models.IngredientLine{{Name: "a", Quantity: "1"}},
		},
		{
			name:       "missing quantity pairs as empty",
			names:      []string{"a", "b"},
			quantities: []string{"1"},
			want: []models.IngredientLine{
				{Name: "a", Quantity: "1"},
				{Name: "b", Quantity: ""},
			},
		},
		{
			name:       "no ingredients",
			names:      nil,
			quantities: nil,
			want:       []models.IngredientLine{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIngredients(tt.names, tt.quantities))
		})
	}
}

func TestRecipeService_Create_ResolvesAuthor(t *testing.T) {
	var payload models.RecipePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/info/alice@example.com":
			_, _ = w.Write([]byte(`{"success":true,"code":200,"message":"found","info":{"_id":"acc-1","firstName":"Alice"}}`))
		case "/recipes/create":
			require.NoError(t, jsonDecode(r, &payload))
			_, _ = w.Write([]byte(`{"success":true,"code":200,"message":"Recipe created!"}`))
		default:
			t.Errorf("unexpected upstream path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	svc := NewRecipeService(newUpstreamClient(srv.URL))

	res := svc.Create(context.Background(), "alice@example.com", models.RecipeForm{
		Title:              "Pancakes",
		IngredientName:     []string{"flour", "milk"},
		IngredientQuantity: []string{"200g", "300ml"},
		Note:               "flip once",
	})

	require.True(t, res.Success)
	assert.Equal(t, "acc-1", payload.AuthorID)
	assert.Equal(t, "Pancakes", payload.Name)
	assert.Equal(t, []models.IngredientLine{
		{Name: "flour", Quantity: "200g"},
		{Name: "milk", Quantity: "300ml"},
	}, payload.Ingredients)
}

func TestRecipeService_Create_AccountResolutionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"code":404,"message":"Account not found"}`))
	}))
	defer srv.Close()

	svc := NewRecipeService(newUpstreamClient(srv.URL))

	res := svc.Create(context.Background(), "ghost@example.com", models.RecipeForm{Title: "x"})

	assert.False(t, res.Success)
	assert.Equal(t, 404, res.Code)
	assert.Equal(t, "Account not found", string(res.Message))
}

func TestRecipeService_Update_EchoesRecipeName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/accounts/info/alice@example.com":
			_, _ = w.Write([]byte(`{"success":true,"code":200,"message":"found","info":{"_id":"acc-1"}}`))
		case r.URL.Path == "/recipes/edit/rec-1" && r.Method == http.MethodPut:
			_, _ = w.Write([]byte(`{"success":true,"code":200,"message":"updated","data":{"_id":"rec-1","recipeName":"Waffles"}}`))
		default:
			t.Errorf("unexpected upstream call %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	svc := NewRecipeService(newUpstreamClient(srv.URL))

	res := svc.Update(context.Background(), "alice@example.com", "rec-1", models.RecipeForm{Title: "Waffles"})

	require.True(t, res.Success)
	assert.Equal(t, "Waffles", res.Recipe.Name)
}
