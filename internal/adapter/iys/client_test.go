package iys

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulkmailer/internal/config/configs"
	"bulkmailer/internal/core/port"
)

func newTestClient(url string) *Client {
	return NewClient(configs.IYS{BaseURL: url, APIKey: "test-key", Timeout: 5 * time.Second})
}

func TestConsentedSubset(t *testing.T) {
	var received statusRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/consent/multiple/status", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("IYS-API-KEY"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"list": []string{"a@example.com"}},
		})
	}))
	defer srv.Close()

	subset, err := newTestClient(srv.URL).ConsentedSubset(context.Background(),
		port.ConsentQuery{IYSCode: 699905, BrandCode: 699906, RecipientType: "TACIR"},
		[]string{"a@example.com", "b@example.com"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a@example.com"}, subset)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, received.Recipients)
	assert.Equal(t, "TACIR", received.RecipientType)
	assert.Equal(t, "EPOSTA", received.Type)
	assert.Equal(t, 699905, received.IYSCode)
	assert.Equal(t, 699906, received.BrandCode)
}

func TestConsentedSubsetDefaultsRecipientType(t *testing.T) {
	var received statusRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"list": []string{}}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ConsentedSubset(context.Background(),
		port.ConsentQuery{IYSCode: 1, BrandCode: 1}, []string{"a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "BIREYSEL", received.RecipientType)
}

func TestConsentedSubsetErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid iys code"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ConsentedSubset(context.Background(),
		port.ConsentQuery{IYSCode: 1, BrandCode: 1}, []string{"a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid iys code")
}

func TestConsentedSubsetMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ConsentedSubset(context.Background(),
		port.ConsentQuery{IYSCode: 1, BrandCode: 1}, []string{"a@example.com"})
	assert.Error(t, err)
}
