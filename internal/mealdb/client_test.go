package mealdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealview/config"
	"mealview/internal/model"
)

func newTestClient(url string) *Client {
	return NewClient(&config.MealDBConfig{
		URL:     url,
		Headers: map[string]string{"Accept": "application/json"},
		Timeout: 5 * time.Second,
	})
}

func serveBody(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchRandom_Success(t *testing.T) {
	var hits int32
	server := serveBody(t, http.StatusOK,
		`{"meals":[{"idMeal":"1","strMeal":"Soup","strMealThumb":"http://x/img.png","strInstructions":"Boil.","strArea":"British"}]}`,
		&hits)

	recipe, err := newTestClient(server.URL).FetchRandom(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Recipe{ID: "1", Name: "Soup", ImageURL: "http://x/img.png", Instructions: "Boil."}, recipe)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchRandom_UsesFirstMeal(t *testing.T) {
	server := serveBody(t, http.StatusOK,
		`{"meals":[{"idMeal":"7","strMeal":"Pie","strMealThumb":"http://x/pie.png","strInstructions":"Bake."},
		           {"idMeal":"8","strMeal":"Tart","strMealThumb":"http://x/tart.png","strInstructions":"Chill."}]}`,
		nil)

	recipe, err := newTestClient(server.URL).FetchRandom(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7", recipe.ID)
	assert.Equal(t, "Pie", recipe.Name)
}

func TestFetchRandom_PayloadErrors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"empty meals", `{"meals":[]}`},
		{"null meals", `{"meals":null}`},
		{"no meals field", `{}`},
		{"not json", `<html>oops</html>`},
		{"missing id", `{"meals":[{"strMeal":"Soup","strMealThumb":"http://x/img.png","strInstructions":"Boil."}]}`},
		{"missing name", `{"meals":[{"idMeal":"1","strMealThumb":"http://x/img.png","strInstructions":"Boil."}]}`},
		{"missing image", `{"meals":[{"idMeal":"1","strMeal":"Soup","strInstructions":"Boil."}]}`},
		{"missing instructions", `{"meals":[{"idMeal":"1","strMeal":"Soup","strMealThumb":"http://x/img.png"}]}`},
		{"null instructions", `{"meals":[{"idMeal":"1","strMeal":"Soup","strMealThumb":"http://x/img.png","strInstructions":null}]}`},
		{"blank name", `{"meals":[{"idMeal":"1","strMeal":"  ","strMealThumb":"http://x/img.png","strInstructions":"Boil."}]}`},
		{"numeric id", `{"meals":[{"idMeal":1,"strMeal":"Soup","strMealThumb":"http://x/img.png","strInstructions":"Boil."}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := serveBody(t, http.StatusOK, tc.body, nil)

			recipe, err := newTestClient(server.URL).FetchRandom(context.Background())
			require.Error(t, err)
			assert.Equal(t, model.Recipe{}, recipe)

			var payloadErr *PayloadError
			assert.True(t, errors.As(err, &payloadErr), "expected *PayloadError, got %T", err)
			assert.Equal(t, KindPayload, Kind(err))
		})
	}
}

func TestFetchRandom_MissingFieldsAreNamed(t *testing.T) {
	_, err := DecodeRandom([]byte(`{"meals":[{"idMeal":"1"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strMeal, strMealThumb, strInstructions")
}

func TestFetchRandom_NonSuccessStatusIsNotRetried(t *testing.T) {
	var hits int32
	server := serveBody(t, http.StatusInternalServerError, `{"meals":[]}`, &hits)

	_, err := newTestClient(server.URL).FetchRandom(context.Background())
	require.Error(t, err)

	var responseErr *ResponseError
	require.True(t, errors.As(err, &responseErr))
	assert.Equal(t, http.StatusInternalServerError, responseErr.StatusCode)
	assert.Equal(t, KindResponse, Kind(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchRandom_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // connection refused from here on

	_, err := newTestClient(url).FetchRandom(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
	assert.Equal(t, KindTransport, Kind(err))
}

func TestFetchRandom_Canceled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := newTestClient(server.URL).FetchRandom(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, KindCanceled, Kind(err))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, KindTransport, Kind(errors.New("boom")))
	assert.Equal(t, KindResponse, Kind(&ResponseError{StatusCode: 404}))
	assert.Equal(t, KindPayload, Kind(&PayloadError{Reason: "x"}))
}
