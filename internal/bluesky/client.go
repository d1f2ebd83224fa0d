package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultService = "https://bsky.social"

var ErrNotAuthenticated = errors.New("not authenticated: call Login first")

// Client is a minimal AT Protocol client: session, blob upload and post records.
// One client holds one session; it is not safe to share across goroutines
// while Login is running.
type Client struct {
	service    string
	userAgent  string
	httpClient *http.Client

	// populated after Login
	accessJwt string
	did       string
}

// NewClient creates a client for the given PDS. If service is empty, it
// defaults to https://bsky.social.
func NewClient(service, userAgent string, httpClient *http.Client) *Client {
	if service == "" {
		service = DefaultService
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		service:    service,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// Login creates a session via com.atproto.server.createSession.
func (c *Client) Login(ctx context.Context, identifier, password string) error {
	body := map[string]string{
		"identifier": identifier,
		"password":   password,
	}

	var resp createSessionResponse
	if err := c.post(ctx, "/xrpc/com.atproto.server.createSession", body, &resp); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if resp.AccessJwt == "" || resp.DID == "" {
		return fmt.Errorf("create session: empty session in response")
	}

	c.accessJwt = resp.AccessJwt
	c.did = resp.DID
	return nil
}

// DID returns the authenticated account DID. Only valid after Login.
func (c *Client) DID() string {
	return c.did
}

// UploadBlob uploads raw bytes and returns the blob reference to embed in a record.
func (c *Client) UploadBlob(ctx context.Context, data []byte, mimeType string) (*BlobRef, error) {
	if c.accessJwt == "" {
		return nil, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.service+"/xrpc/com.atproto.repo.uploadBlob", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Authorization", "Bearer "+c.accessJwt)

	var result uploadBlobResponse
	if err := c.do(req, &result); err != nil {
		return nil, fmt.Errorf("upload blob: %w", err)
	}
	return &result.Blob, nil
}

// CreatePost writes an app.bsky.feed.post record to the account repo.
func (c *Client) CreatePost(ctx context.Context, record PostRecord) (*RecordRef, error) {
	if c.accessJwt == "" {
		return nil, ErrNotAuthenticated
	}
	record.Type = PostCollection

	body := createRecordRequest{
		Repo:       c.did,
		Collection: PostCollection,
		Record:     record,
	}

	var ref RecordRef
	if err := c.post(ctx, "/xrpc/com.atproto.repo.createRecord", body, &ref); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	return &ref, nil
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.service+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessJwt != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessJwt)
	}

	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result any) error {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

type createSessionResponse struct {
	AccessJwt string `json:"accessJwt"`
	DID       string `json:"did"`
	Handle    string `json:"handle"`
}

type createRecordRequest struct {
	Repo       string `json:"repo"`
	Collection string `json:"collection"`
	Record     any    `json:"record"`
}

type uploadBlobResponse struct {
	Blob BlobRef `json:"blob"`
}
