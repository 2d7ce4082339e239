package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// FoodSearcher resolves a free-text food query into a raw nutrition
// record. Implemented by NutritionixService; faked in tests.
type FoodSearcher interface {
	NaturalSearch(ctx context.Context, query string) (*RawFood, error)
}

// RawFood is a single item of a Nutritionix natural-language search
// result. The numeric fields are declared as any because the API
// intermittently returns numbers as strings; NormalizeFood owns the
// coercion into proper floats.
type RawFood struct {
	FoodName   string `json:"food_name"`
	ServingQty any    `json:"serving_qty"`
	Calories   any    `json:"nf_calories"`
	TotalFat   any    `json:"nf_total_fat"`
	Protein    any    `json:"nf_protein"`
	Carbs      any    `json:"nf_total_carbohydrate"`
}

type naturalNutrientsResponse struct {
	Foods []RawFood `json:"foods"`
}

type NutritionixService struct {
	appID, appKey string
	baseURL       string
	client        *http.Client
}

func NewNutritionixService() *NutritionixService {
	return &NutritionixService{
		appID:   os.Getenv("NUTRITIONIX_APP_ID"),
		appKey:  os.Getenv("NUTRITIONIX_APP_KEY"),
		baseURL: "https://trackapi.nutritionix.com",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NaturalSearch calls the Nutritionix natural/nutrients endpoint and
// returns the first matched food. A 404 means the query matched no
// food and maps to ErrNotFound so callers can answer with a
// 404-equivalent outcome instead of a generic failure.
func (s *NutritionixService) NaturalSearch(ctx context.Context, query string) (*RawFood, error) {
	b, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v2/natural/nutrients", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", s.appID)
	req.Header.Set("x-app-key", s.appKey)

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %v", ErrLookupTimeout, err)
		}
		var ue *url.Error
		if errors.As(err, &ue) && ue.Timeout() {
			return nil, fmt.Errorf("%w: %v", ErrLookupTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrLookupUnavailable, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: no food matched %q", ErrNotFound, query)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: nutritionix API error %d: %s", ErrLookupUnavailable, resp.StatusCode, body)
	}

	var nr naturalNutrientsResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, fmt.Errorf("failed to parse nutritionix JSON: %w", err)
	}
	if len(nr.Foods) == 0 {
		return nil, fmt.Errorf("%w: no food matched %q", ErrNotFound, query)
	}
	return &nr.Foods[0], nil
}
