package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/cue-sync/internal/config"
	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/metrics"
	"github.com/MKhiriev/cue-sync/internal/utils"
	"github.com/MKhiriev/cue-sync/models"
)

const (
	acceptGitHubJSON  = "application/vnd.github.v3+json"
	contentsRoute     = "/repos/{owner}/{repo}/contents/{path}"
	defaultRawTimeout = 10 * time.Second

	// requestTimeout caps a single request when the caller's context carries
	// no deadline.
	requestTimeout = time.Minute
)

type contentsResponse struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type githubClient struct {
	client *utils.HTTPClient
	rawURL string

	pullTimeout time.Duration

	mu    sync.RWMutex
	creds models.Credentials

	logger *logger.Logger
}

// NewGitHubClient constructs the resty implementation of [RemoteObjectClient].
// It normalises and validates both base URLs from cfg and seeds the
// credentials from cfg.Owner, cfg.Repo, cfg.Branch and cfg.Token, which may
// be empty.
//
// Returns an error if either URL is empty or cannot be parsed.
func NewGitHubClient(cfg config.ClientRemote, logger *logger.Logger) (RemoteObjectClient, error) {
	apiURL, err := normalizeBaseURL(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote api url: %w", err)
	}
	rawURL, err := normalizeBaseURL(cfg.RawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote raw url: %w", err)
	}

	pullTimeout := cfg.PullTimeout
	if pullTimeout <= 0 {
		pullTimeout = defaultRawTimeout
	}

	client := utils.NewHTTPClient(utils.WithBaseURL(apiURL), utils.WithTimeout(requestTimeout))

	g := &githubClient{client: client, rawURL: rawURL, pullTimeout: pullTimeout, logger: logger}
	g.SetCredentials(models.Credentials{
		Owner:  cfg.Owner,
		Repo:   cfg.Repo,
		Branch: cfg.Branch,
		Token:  cfg.Token,
	})

	return g, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetCredentials implements [RemoteObjectClient].
func (g *githubClient) SetCredentials(creds models.Credentials) {
	g.mu.Lock()
	defer g.mu.Unlock()
	creds.Token = strings.TrimSpace(creds.Token)
	g.creds = creds
}

// Credentials implements [RemoteObjectClient].
func (g *githubClient) Credentials() models.Credentials {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.creds
}

// FetchCurrent implements [RemoteObjectClient]. It GETs
// /repos/{owner}/{repo}/contents/{path}?ref={branch} and decodes the base64
// body. A body that does not decode to a JSON object is logged and reported
// as nil content with the version kept, so that a following Put can replace
// it.
func (g *githubClient) FetchCurrent(ctx context.Context, path string) (RemoteObject, error) {
	creds, err := g.requireCredentials()
	if err != nil {
		return RemoteObject{}, err
	}

	resp, err := g.authedRequest(ctx, creds).
		SetHeader("Accept", acceptGitHubJSON).
		SetPathParams(map[string]string{"owner": creds.Owner, "repo": creds.Repo}).
		SetRawPathParam("path", path).
		SetQueryParam("ref", creds.BranchOrDefault()).
		Get(contentsRoute)
	if err != nil {
		err = mapRequestError(err)
		g.observe(ctx, "fetch_current", path, err)
		return RemoteObject{}, fmt.Errorf("fetch current request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		g.observe(ctx, "fetch_current", path, err)
		if errors.Is(err, ErrNotFound) {
			return RemoteObject{}, nil
		}
		return RemoteObject{}, err
	}
	g.observe(ctx, "fetch_current", path, nil)

	var body contentsResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return RemoteObject{}, fmt.Errorf("%w: decode contents response: %w", ErrTransport, err)
	}

	obj := RemoteObject{Version: body.SHA}
	doc, err := decodeContent(body.Content)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "githubClient.FetchCurrent").
			Str("path", path).
			Str("sha", body.SHA).
			Msg("remote content is malformed, treating it as absent")
		return obj, nil
	}
	obj.Content = &doc

	return obj, nil
}

// FetchRaw implements [RemoteObjectClient]. It GETs
// {raw}/{owner}/{repo}/{branch}/{path} with caching disabled and gives up
// after the configured pull timeout.
func (g *githubClient) FetchRaw(ctx context.Context, path string) (*models.Document, error) {
	creds, err := g.requireCredentials()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.pullTimeout)
	defer cancel()

	rawURL := strings.Join([]string{
		g.rawURL,
		url.PathEscape(creds.Owner),
		url.PathEscape(creds.Repo),
		url.PathEscape(creds.BranchOrDefault()),
		strings.TrimLeft(path, "/"),
	}, "/")

	resp, err := g.authedRequest(ctx, creds).
		SetHeader("Accept", "application/json").
		SetHeader("Cache-Control", "no-cache").
		Get(rawURL)
	if err != nil {
		err = mapRequestError(err)
		g.observe(ctx, "fetch_raw", path, err)
		return nil, fmt.Errorf("fetch raw request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		g.observe(ctx, "fetch_raw", path, err)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	g.observe(ctx, "fetch_raw", path, nil)

	doc, err := models.DecodeDocument(resp.Body())
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "githubClient.FetchRaw").
			Str("path", path).
			Msg("remote raw content is malformed, treating it as absent")
		return nil, nil
	}

	return &doc, nil
}

// Put implements [RemoteObjectClient]. It PUTs the base64 encoding of the
// two-space indented document to /repos/{owner}/{repo}/contents/{path},
// sending the sha only when obj.Version is set. 409 and 422 map to
// [ErrConflict].
func (g *githubClient) Put(ctx context.Context, obj PutObject) error {
	creds, err := g.requireCredentials()
	if err != nil {
		return err
	}

	content, err := obj.Content.EncodeIndent()
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	resp, err := g.authedRequest(ctx, creds).
		SetHeader("Accept", acceptGitHubJSON).
		SetHeader("Content-Type", "application/json").
		SetPathParams(map[string]string{"owner": creds.Owner, "repo": creds.Repo}).
		SetRawPathParam("path", obj.Path).
		SetBody(putRequest{
			Message: obj.Message,
			Content: base64.StdEncoding.EncodeToString(content),
			Branch:  creds.BranchOrDefault(),
			SHA:     obj.Version,
		}).
		Put(contentsRoute)
	if err != nil {
		err = mapRequestError(err)
		g.observe(ctx, "put", obj.Path, err)
		return fmt.Errorf("put request: %w", err)
	}

	err = mapHTTPError(resp)
	g.observe(ctx, "put", obj.Path, err)
	if errors.Is(err, ErrNotFound) {
		// the contents API answers 404 for a missing branch or repository
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return err
}

func (g *githubClient) requireCredentials() (models.Credentials, error) {
	creds := g.Credentials()
	if !creds.Configured() {
		return creds, ErrNoCredentials
	}
	return creds, nil
}

func (g *githubClient) authedRequest(ctx context.Context, creds models.Credentials) *resty.Request {
	req := g.client.R().SetContext(ctx)
	if creds.Token != "" {
		req.SetHeader("Authorization", "Bearer "+creds.Token)
	}
	return req
}

func (g *githubClient) observe(ctx context.Context, method, path string, err error) {
	result := resultLabel(err)
	metrics.RecordRemoteRequest(method, result)

	if err != nil && !errors.Is(err, ErrNotFound) {
		logger.FromContext(ctx).Err(err).
			Str("func", "githubClient."+method).
			Str("path", path).
			Str("result", result).
			Msg("remote request failed")
	}
}

// decodeContent decodes the line-wrapped base64 body of a contents response.
func decodeContent(encoded string) (models.Document, error) {
	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(encoded)

	raw, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode base64 content: %w", err)
	}

	return models.DecodeDocument(raw)
}
