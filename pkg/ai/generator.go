package ai

import (
	"context"
	"fmt"
)

// Payload is a normalized generated image: raw bytes plus content type.
// Providers that answer with a fetchable URL and providers that answer with
// inline base64 data both collapse to this shape, so downstream code never
// branches on the provider's response representation.
type Payload struct {
	Data        []byte
	ContentType string
}

// ImageGenerator produces one image for a prompt.
// Implementations issue exactly one provider call and never retry.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (Payload, error)
}

// ProviderError is any failure at the synthesis provider boundary: an API
// error, an unparseable response, a response without image data, or a plain
// transport failure. Callers do not need to tell these apart.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider: %s: %v", e.Message, e.Err)
	}
	return "provider: " + e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }
