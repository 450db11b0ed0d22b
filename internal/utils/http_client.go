package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// userAgent identifies the client to the remote repository API, which
// rejects requests without one.
const userAgent = "cue-sync"

// HTTPClient is a wrapper around the resty.Client HTTP client used to talk
// to the remote document repository.
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOption tunes a client built by NewHTTPClient.
type HTTPClientOption func(c *resty.Client)

// WithBaseURL makes relative request paths resolve against baseURL.
func WithBaseURL(baseURL string) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetBaseURL(baseURL)
	}
}

// WithTimeout bounds every request of the client. Zero or negative keeps
// the resty default of no timeout.
func WithTimeout(timeout time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		if timeout > 0 {
			c.SetTimeout(timeout)
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetHeader("User-Agent", ua)
	}
}

// NewHTTPClient creates an independent HTTPClient. Redirects are limited and
// the User-Agent is set before opts are applied, so an option may override
// either.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.WithBaseURL("https://api.github.com"))
//	resp, err := client.R().Get("/repos/owner/repo/contents/appx/data.json")
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	c := resty.New().
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", userAgent)

	for _, opt := range opts {
		opt(c)
	}

	return &HTTPClient{Client: c}
}
