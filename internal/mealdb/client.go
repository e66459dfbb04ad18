package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"mealview/config"
	"mealview/internal/model"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client fetches random recipes from TheMealDB.
type Client struct {
	url     string
	headers map[string]string
	client  *http.Client
}

// NewClient creates a client for the configured random endpoint.
func NewClient(cfg *config.MealDBConfig) *Client {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. MealDB client will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Client{
		url:     cfg.URL,
		headers: cfg.Headers,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// FetchRandom issues exactly one GET to the random endpoint and returns the
// first meal of the response. It never retries.
func (c *Client) FetchRandom(ctx context.Context) (model.Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return model.Recipe{}, &TransportError{URL: c.url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return model.Recipe{}, &TransportError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Recipe{}, &ResponseError{URL: c.url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return model.Recipe{}, &TransportError{URL: c.url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return DecodeRandom(body)
}

// DecodeRandom turns a random.php body into a Recipe. Any malformed,
// empty or incomplete payload yields a *PayloadError and no Recipe.
func DecodeRandom(body []byte) (model.Recipe, error) {
	var apiResp randomResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return model.Recipe{}, &PayloadError{Reason: "failed to unmarshal response", Err: err}
	}
	if len(apiResp.Meals) == 0 {
		return model.Recipe{}, &PayloadError{Reason: "meals list is empty"}
	}
	return apiResp.Meals[0].toRecipe()
}

func (m mealItem) toRecipe() (model.Recipe, error) {
	var missing []string
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"idMeal", m.IDMeal},
		{"strMeal", m.StrMeal},
		{"strMealThumb", m.StrMealThumb},
		{"strInstructions", m.StrInstructions},
	} {
		if f.value == nil || strings.TrimSpace(*f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return model.Recipe{}, &PayloadError{Reason: "missing fields " + strings.Join(missing, ", ")}
	}

	return model.Recipe{
		ID:           *m.IDMeal,
		Name:         *m.StrMeal,
		ImageURL:     *m.StrMealThumb,
		Instructions: *m.StrInstructions,
	}, nil
}
