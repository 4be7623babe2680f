// Package designclient calls the design service over HTTP on behalf of the
// local client.
package designclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"beadatelier/pkg/catalog"
	"beadatelier/pkg/domain"
)

// Client calls the design service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError represents a design service error response.
type APIError struct {
	Status  int
	Message string
	Details []domain.FieldViolation
}

func (e *APIError) Error() string {
	return e.Message
}

// NewClient constructs a design service client. Generation calls can take as
// long as the provider allows, so the timeout is generous.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// Generate submits a design request and returns the stored artifact.
func (c *Client) Generate(params domain.GenerateParams) (domain.Artifact, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return domain.Artifact{}, err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return domain.Artifact{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var artifact domain.Artifact
	if err := c.do(req, &artifact); err != nil {
		return domain.Artifact{}, err
	}
	return artifact, nil
}

// GetGenerated fetches a generated artifact record by identifier.
func (c *Client) GetGenerated(id string) (domain.Artifact, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/generated/%s", c.baseURL, id), nil)
	if err != nil {
		return domain.Artifact{}, err
	}
	var artifact domain.Artifact
	if err := c.do(req, &artifact); err != nil {
		return domain.Artifact{}, err
	}
	return artifact, nil
}

// ListBrooches returns the product catalog.
func (c *Client) ListBrooches() ([]catalog.Product, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/brooches", nil)
	if err != nil {
		return nil, err
	}
	var products []catalog.Product
	if err := c.do(req, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errResp struct {
			Error   string                  `json:"error"`
			Details []domain.FieldViolation `json:"details"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Error
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: msg, Details: errResp.Details}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
