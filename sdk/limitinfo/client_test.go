package limitinfo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetLimitInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/companies/7/seller/limit-info", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"count":3,"limit":10}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	info := client.GetLimitInfo(context.Background(), 7, "seller")

	assert.Equal(t, LimitInfo{Count: 3, Limit: 10}, info)
	assert.False(t, info.Unlimited())
}

func TestGetLimitInfo_FailsOpen(t *testing.T) {
	fallback := LimitInfo{Count: 0, Limit: Unlimited}

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true,"data":`))
			},
		},
		{
			name: "unsuccessful envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"error":{"type":"internal","message":"boom"}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL)
			info := client.GetLimitInfo(context.Background(), 1, "warehouse")

			assert.Equal(t, fallback, info)
			assert.True(t, info.Unlimited())
		})
	}
}

func TestGetLimitInfo_FailsOpenOnConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL)
	info := client.GetLimitInfo(context.Background(), 1, "contact")

	assert.Equal(t, LimitInfo{Count: 0, Limit: Unlimited}, info)
}

func TestGetLimitInfo_FailsOpenOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"success":true,"data":{"count":1,"limit":2}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithTimeout(20*time.Millisecond))
	info := client.GetLimitInfo(context.Background(), 1, "establishment")

	assert.Equal(t, LimitInfo{Count: 0, Limit: Unlimited}, info)
}

func TestGetLimitInfo_FailsOpenOnCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"count":1,"limit":2}}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL)
	info := client.GetLimitInfo(ctx, 1, "emission_point")

	assert.Equal(t, LimitInfo{Count: 0, Limit: Unlimited}, info)
}
