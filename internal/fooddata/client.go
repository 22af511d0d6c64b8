// Package fooddata searches the USDA FoodData Central API and maps its
// nutrient taxonomy onto the tracked nutrient keys.
package fooddata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
)

// DefaultBaseURL is the public FoodData Central v1 endpoint
const DefaultBaseURL = "https://api.nal.usda.gov/fdc/v1"

// maxResponseBytes caps how much of a search response is read
var maxResponseBytes int64 = 8 << 20

// labelToNutrient maps lower-cased FoodData Central nutrient names to tracked keys.
// Labels not listed here are ignored and leave the tracked value at 0.
var labelToNutrient = map[string]models.Nutrient{
	"energy":                         models.Calories,
	"protein":                        models.Protein,
	"total lipid (fat)":              models.Fat,
	"carbohydrate, by difference":    models.Carbs,
	"fiber, total dietary":           models.Fiber,
	"vitamin c, total ascorbic acid": models.VitaminC,
}

// Client calls the foods search endpoint
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a FoodData Central client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type searchResponse struct {
	Foods []searchFood `json:"foods"`
}

type searchFood struct {
	Description   string           `json:"description"`
	FoodNutrients []searchNutrient `json:"foodNutrients"`
}

type searchNutrient struct {
	NutrientName string  `json:"nutrientName"`
	Value        float64 `json:"value"`
}

// Search returns the foods matching query. A response without a foods
// array yields an empty list.
func (c *Client) Search(ctx context.Context, query string) ([]models.FoodItem, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("api_key", c.apiKey)
	endpoint := fmt.Sprintf("%s/foods/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call food search")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read food search response")
	}
	if int64(len(body)) > maxResponseBytes {
		return nil, errors.Newf("food search response exceeds %d bytes", maxResponseBytes)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("food search returned status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, errors.Wrap(err, "failed to parse food search response")
	}

	items := make([]models.FoodItem, 0, len(sr.Foods))
	for _, food := range sr.Foods {
		items = append(items, toFoodItem(food))
	}
	return items, nil
}

func toFoodItem(food searchFood) models.FoodItem {
	item := models.FoodItem{Name: food.Description}
	for _, n := range food.FoodNutrients {
		if key, ok := labelToNutrient[strings.ToLower(n.NutrientName)]; ok {
			item.SetValue(key, n.Value)
		}
	}
	return item
}
