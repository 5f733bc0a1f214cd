package slack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultAPIBase is the documented Web API root, serving emoji.list.
	DefaultAPIBase = "https://slack.com/api"

	// defaultWorkspaceBase produces the workspace root that serves the
	// browser-only endpoints, emoji.add among them.
	defaultWorkspaceBase = "https://%s.slack.com"

	// emoji.add is served to browsers, not API clients, so every request
	// carries a browser User-Agent.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:109.0) Gecko/20100101 Firefox/115.0"
)

// HTTPClient represents the functionality needed from an *http.Client, or
// similar.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the two Slack surfaces the tool needs: the documented Web
// API for reading a workspace's emoji catalog, and the in-browser emoji.add
// endpoint for writing to one. The write side is unsupported outside a
// browser and rate-sensitive, so callers are expected to pace themselves.
type Client struct {
	HTTP HTTPClient

	// APIBase overrides DefaultAPIBase, mainly for tests.
	APIBase string

	// WorkspaceBase is a printf pattern producing the workspace root from a
	// team identifier. A value without a %s verb is used verbatim.
	WorkspaceBase string
}

func NewClient() *Client {
	return &Client{
		HTTP:          &http.Client{Timeout: 30 * time.Second},
		APIBase:       DefaultAPIBase,
		WorkspaceBase: defaultWorkspaceBase,
	}
}

// Source binds a read credential to the client for catalog listing.
type Source struct {
	c     *Client
	token string
}

func (c *Client) Source(token string) *Source {
	return &Source{c: c, token: token}
}

// ListPage fetches one page of the custom emoji catalog. An empty next cursor
// means the catalog is exhausted.
func (s *Source) ListPage(ctx context.Context, cursor string) (map[string]string, string, error) {
	return s.c.listPage(ctx, s.token, cursor)
}

type listResponse struct {
	OK               bool              `json:"ok"`
	Error            string            `json:"error"`
	Emoji            map[string]string `json:"emoji"`
	ResponseMetadata struct {
		NextCursor string `json:"next_cursor"`
	} `json:"response_metadata"`
}

func (c *Client) listPage(ctx context.Context, token, cursor string) (map[string]string, string, error) {
	endpoint := c.apiBase() + "/emoji.list"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to build request for %q", endpoint)
	}
	if cursor != "" {
		val := url.Values{}
		val.Set("cursor", cursor)
		req.URL.RawQuery = val.Encode()
	}
	req.Header.Set("Authorization", "Bearer "+token)
	setUA(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to make GET request to %q", endpoint)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to read emoji.list response")
	}

	var lr listResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, "", errors.Wrap(err, "failed to parse emoji.list response")
	}
	if !lr.OK {
		return nil, "", apiError(lr.Error)
	}
	return lr.Emoji, lr.ResponseMetadata.NextCursor, nil
}

// FetchImage downloads the image behind a catalog URL, returning the bytes
// and the declared Content-Type.
func (c *Client) FetchImage(ctx context.Context, srcURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to build request for %q", srcURL)
	}
	setUA(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to make GET request to %q", srcURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &RejectionError{Code: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to read image from %q", srcURL)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// UploadCredentials is the browser-session triple that emoji.add requires:
// the raw Cookie header of a signed-in session, the xoxc client token the web
// app embeds, and the destination team's subdomain.
type UploadCredentials struct {
	Cookie string
	Token  string
	TeamID string
}

// Sink binds upload credentials to the client for emoji submission.
type Sink struct {
	c     *Client
	creds UploadCredentials
}

func (c *Client) Sink(creds UploadCredentials) *Sink {
	return &Sink{c: c, creds: creds}
}

// AddEmoji submits one image under the given name. The returned error
// distinguishes duplicates, rate limiting, credential rejection and other
// endpoint rejections; see IsAlreadyExists and RateLimitHint.
func (s *Sink) AddEmoji(ctx context.Context, name string, image []byte, filename string) error {
	return s.c.addEmoji(ctx, s.creds, name, image, filename)
}

type addResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (c *Client) addEmoji(ctx context.Context, creds UploadCredentials, name string, image []byte, filename string) error {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("mode", "data"); err != nil {
		return errors.Wrap(err, "failed to encode form")
	}
	if err := form.WriteField("name", name); err != nil {
		return errors.Wrap(err, "failed to encode form")
	}
	if err := form.WriteField("token", creds.Token); err != nil {
		return errors.Wrap(err, "failed to encode form")
	}
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return errors.Wrap(err, "failed to encode form")
	}
	if _, err := part.Write(image); err != nil {
		return errors.Wrap(err, "failed to encode form")
	}
	if err := form.Close(); err != nil {
		return errors.Wrap(err, "failed to encode form")
	}

	endpoint := c.workspaceURL(creds.TeamID) + "/api/emoji.add"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return errors.Wrapf(err, "failed to build request for %q", endpoint)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Cookie", creds.Cookie)
	setUA(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to make POST request to %q", endpoint)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read emoji.add response")
	}

	var ar addResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		return errors.Wrap(err, "failed to parse emoji.add response")
	}
	if !ar.OK {
		return apiError(ar.Error)
	}
	return nil
}

func (c *Client) httpClient() HTTPClient {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) apiBase() string {
	if c.APIBase == "" {
		return DefaultAPIBase
	}
	return c.APIBase
}

func (c *Client) workspaceURL(team string) string {
	base := c.WorkspaceBase
	if base == "" {
		base = defaultWorkspaceBase
	}
	if strings.Contains(base, "%s") {
		return fmt.Sprintf(base, team)
	}
	return base
}

// statusError maps HTTP-level failures shared by both Slack surfaces.
func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: retryAfter(resp)}
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Wrap(ErrInvalidAuth, resp.Status)
	default:
		return &RejectionError{Code: resp.Status}
	}
}

func retryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func setUA(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
}
