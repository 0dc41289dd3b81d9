package assetstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/visitordesk/api/internal/config"
)

// ErrUploadTimeout indicates the bounded upload window elapsed before the
// media host responded.
var ErrUploadTimeout = errors.New("asset store upload timed out")

// UpstreamError wraps a provider-side failure so handlers can map it to a
// bad-gateway response. StatusCode is zero for transport errors.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("asset store request failed: %s", e.Message)
	}
	return fmt.Sprintf("asset store rejected upload (%d): %s", e.StatusCode, e.Message)
}

const defaultUploadTimeout = 15 * time.Second

// Client uploads image buffers to the remote media host.
type Client struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	apiSecret string
	folder    string
	timeout   time.Duration
}

// New builds a client from the asset store configuration.
func New(client *http.Client, cfg config.AssetStoreConfig) *Client {
	if cfg.BaseURL == "" {
		panic("asset store base URL must not be empty")
	}
	if client == nil {
		client = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}
	return &Client{
		client:    client,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		folder:    cfg.Folder,
		timeout:   timeout,
	}
}

// Upload posts the buffer under the given asset name and returns the durable
// URL of the stored asset. The call is bounded by the configured timeout.
func (c *Client) Upload(ctx context.Context, data []byte, name, contentType string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	fields := map[string]string{
		"public_id":    name,
		"folder":       c.folder,
		"quality":      "auto",
		"fetch_format": "auto",
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return "", fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/image/upload", body)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	if rid := requestIDFrom(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}
	if contentType != "" {
		req.Header.Set("X-Original-Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return "", ErrUploadTimeout
		case errors.Is(err, context.Canceled):
			// Caller abandoned the request; not a provider failure.
			return "", fmt.Errorf("upload cancelled: %w", err)
		}
		return "", &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: extractProviderError(resp.Body)}
	}

	var payload struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil && err != io.EOF {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: "could not decode upload response"}
	}

	url := payload.SecureURL
	if url == "" {
		url = payload.URL
	}
	if url == "" {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: "no asset url in upload response"}
	}
	return url, nil
}

func extractProviderError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return "asset store returned an error"
	}

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return string(data)
}
