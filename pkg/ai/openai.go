package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "dall-e-3"

	// One image per call at a fixed resolution and quality tier.
	imageCount   = 1
	imageSize    = "1024x1024"
	imageQuality = "standard"

	maxImageFetchBytes = 32 << 20
)

// OpenAIImageClient calls the OpenAI images API (or any compatible endpoint).
type OpenAIImageClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIImageClient builds an image generator backed by the OpenAI API.
// baseURL should include the /v1 prefix; empty selects the public endpoint.
func NewOpenAIImageClient(apiKey, baseURL, model string) (*OpenAIImageClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIImageClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// GenerateImage implements ImageGenerator. The provider may answer with
// inline base64 data or with a fetchable URL; both are normalized into a
// Payload. Any failure surfaces as a *ProviderError.
func (c *OpenAIImageClient) GenerateImage(ctx context.Context, prompt string) (Payload, error) {
	reqBody := imagesRequest{
		Model:          c.model,
		Prompt:         prompt,
		N:              imageCount,
		Size:           imageSize,
		Quality:        imageQuality,
		ResponseFormat: "b64_json",
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return Payload{}, &ProviderError{Message: "encode request", Err: err}
	}

	url := c.baseURL + "/images/generations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Payload{}, &ProviderError{Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Payload{}, &ProviderError{Message: "images request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp imagesErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error.Message != "" {
			return Payload{}, &ProviderError{Message: "api error: " + errResp.Error.Message}
		}
		return Payload{}, &ProviderError{Message: "api error: " + resp.Status}
	}

	var imagesResp imagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&imagesResp); err != nil {
		return Payload{}, &ProviderError{Message: "decode response", Err: err}
	}
	if len(imagesResp.Data) == 0 {
		return Payload{}, &ProviderError{Message: "no image data returned"}
	}

	item := imagesResp.Data[0]
	switch {
	case item.B64JSON != "":
		data, err := base64.StdEncoding.DecodeString(item.B64JSON)
		if err != nil {
			return Payload{}, &ProviderError{Message: "decode image data", Err: err}
		}
		return Payload{Data: data, ContentType: "image/png"}, nil
	case item.URL != "":
		return c.fetchImage(ctx, item.URL)
	default:
		return Payload{}, &ProviderError{Message: "no image data returned"}
	}
}

// fetchImage downloads a URL-variant response so callers always get bytes.
func (c *OpenAIImageClient) fetchImage(ctx context.Context, url string) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Payload{}, &ProviderError{Message: "build image fetch", Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Payload{}, &ProviderError{Message: "fetch image", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Payload{}, &ProviderError{Message: "fetch image: " + resp.Status}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageFetchBytes))
	if err != nil {
		return Payload{}, &ProviderError{Message: "read image", Err: err}
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return Payload{Data: data, ContentType: contentType}, nil
}

// OpenAI images API request/response types.

type imagesRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

type imagesResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
}

type imagesErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
