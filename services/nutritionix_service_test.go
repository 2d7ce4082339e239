package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nutritionixTestService(srv *httptest.Server) *NutritionixService {
	return &NutritionixService{
		appID:   "test-id",
		appKey:  "test-key",
		baseURL: srv.URL,
		client:  srv.Client(),
	}
}

func TestNaturalSearch_ParsesFirstFood(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/natural/nutrients", r.URL.Path)
		assert.Equal(t, "test-id", r.Header.Get("x-app-id"))
		assert.Equal(t, "test-key", r.Header.Get("x-app-key"))

		w.Header().Set("Content-Type", "application/json")
		// serving_qty as a string on purpose: the API mixes forms
		w.Write([]byte(`{"foods":[
			{"food_name":"egg","serving_qty":"2","nf_calories":143.1,"nf_total_fat":9.96,"nf_protein":12.4,"nf_total_carbohydrate":0.77},
			{"food_name":"bacon","serving_qty":3,"nf_calories":161,"nf_total_fat":12,"nf_protein":12,"nf_total_carbohydrate":0.6}
		]}`))
	}))
	defer srv.Close()

	raw, err := nutritionixTestService(srv).NaturalSearch(context.Background(), "2 eggs and bacon")
	require.NoError(t, err)

	assert.Equal(t, "egg", raw.FoodName)
	assert.Equal(t, "2", raw.ServingQty)
	assert.Equal(t, 143.1, raw.Calories)

	entry, err := NormalizeFood(raw)
	require.NoError(t, err)
	assert.Equal(t, 2.0, entry.Quantity)
	assert.Equal(t, 143.0, entry.Calories)
}

func TestNaturalSearch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"We couldn't match any of your foods"}`))
	}))
	defer srv.Close()

	_, err := nutritionixTestService(srv).NaturalSearch(context.Background(), "asdfgh")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNaturalSearch_EmptyFoodsIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods":[]}`))
	}))
	defer srv.Close()

	_, err := nutritionixTestService(srv).NaturalSearch(context.Background(), "air")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNaturalSearch_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := nutritionixTestService(srv).NaturalSearch(context.Background(), "2 eggs")
	assert.ErrorIs(t, err, ErrLookupUnavailable)
}

func TestNaturalSearch_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := nutritionixTestService(srv).NaturalSearch(ctx, "2 eggs")
	assert.ErrorIs(t, err, ErrLookupTimeout)
}
