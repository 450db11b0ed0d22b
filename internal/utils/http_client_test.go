package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient()
	client2 := NewHTTPClient()

	require.NotNil(t, client1.Client)
	require.NotNil(t, client2.Client)
	assert.NotSame(t, client1.Client, client2.Client)
}

func TestNewHTTPClient_Options(t *testing.T) {
	client := NewHTTPClient(
		WithBaseURL("https://api.example.com"),
		WithTimeout(3*time.Second),
	)

	assert.Equal(t, "https://api.example.com", client.BaseURL)
	assert.Equal(t, 3*time.Second, client.GetClient().Timeout)
}

func TestNewHTTPClient_ZeroTimeoutIgnored(t *testing.T) {
	client := NewHTTPClient(WithTimeout(0))

	assert.Zero(t, client.GetClient().Timeout)
}

func TestNewHTTPClient_UserAgent(t *testing.T) {
	tests := []struct {
		name string
		opts []HTTPClientOption
		want string
	}{
		{name: "default", want: userAgent},
		{name: "override", opts: []HTTPClientOption{WithUserAgent("pool-tests")}, want: "pool-tests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("User-Agent")
			}))
			defer srv.Close()

			client := NewHTTPClient(append([]HTTPClientOption{WithBaseURL(srv.URL)}, tt.opts...)...)
			_, err := client.R().Get("/")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
