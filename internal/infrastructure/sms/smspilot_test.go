package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/config"
)

func newTestService(apiURL string) *SmsPilotService {
	return NewSmsPilotService(config.SMSConfig{
		APIURL:        apiURL,
		APIKey:        "test-key",
		CountryPrefix: "+7",
		TrunkPrefix:   "8",
		Timeout:       2 * time.Second,
	})
}

func TestNormalizePhone(t *testing.T) {
	svc := newTestService("http://unused")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already international", "+79161234567", "+79161234567"},
		{"trunk prefix rewritten", "89161234567", "+79161234567"},
		{"separators stripped", "8 (916) 123-45-67", "+79161234567"},
		{"no prefix gets default", "9161234567", "+79161234567"},
		{"plus with separators", "+7 916 123 45 67", "+79161234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.NormalizePhone(tt.input))
		})
	}
}

func TestSmsPilotService_Send(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotTo string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotTo = r.URL.Query().Get("to")
			assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
			w.Write([]byte(`{"send":[{"status":0}]}`))
		}))
		defer server.Close()

		svc := newTestService(server.URL)
		err := svc.Send(context.Background(), "8 916 123-45-67", "hello")

		require.NoError(t, err)
		assert.Equal(t, "+79161234567", gotTo)
	})

	t.Run("provider rejects message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"send":[{"status":-1,"error":{"description":"invalid number"}}]}`))
		}))
		defer server.Close()

		svc := newTestService(server.URL)
		err := svc.Send(context.Background(), "+79161234567", "hello")

		require.Error(t, err)
	})

	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		svc := newTestService(server.URL)
		err := svc.Send(context.Background(), "+79161234567", "hello")

		require.Error(t, err)
	})
}
