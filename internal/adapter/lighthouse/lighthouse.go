package lighthouse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	portaudit "github.com/alanyang/dao-janny/internal/port/audit"
)

var _ portaudit.Store = (*Client)(nil)

const (
	DefaultNodeURL    = "https://node.lighthouse.storage"
	DefaultGatewayURL = "https://gateway.lighthouse.storage"
)

var ErrNoAPIKey = errors.New("lighthouse: api key not configured")

// Client uploads text documents to Lighthouse and reads them back through
// the IPFS gateway.
type Client struct {
	HTTP       *http.Client
	APIKey     string
	NodeURL    string
	GatewayURL string
}

func New(apiKey string, timeout time.Duration) *Client {
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		APIKey:     apiKey,
		NodeURL:    DefaultNodeURL,
		GatewayURL: DefaultGatewayURL,
	}
}

type addResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// Upload stores content under name and returns its CID.
func (c *Client) Upload(ctx context.Context, name string, content []byte) (string, error) {
	if c.APIKey == "" {
		return "", ErrNoAPIKey
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(content); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(c.NodeURL, "/") + "/api/v0/add"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("lighthouse: upload %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("lighthouse: upload %s: status %d: %s", name, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out addResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("lighthouse: decoding upload response: %w", err)
	}
	if out.Hash == "" {
		return "", fmt.Errorf("lighthouse: upload %s: empty hash", name)
	}
	return out.Hash, nil
}

func (c *Client) Fetch(ctx context.Context, id string) ([]byte, error) {
	endpoint := strings.TrimRight(c.GatewayURL, "/") + "/ipfs/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lighthouse: fetch %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lighthouse: fetch %s: status %d", id, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
