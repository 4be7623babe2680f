// Package app coordinates a generation request end to end: validate,
// synthesize the prompt, call the image provider, persist the artifact.
package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"beadatelier/internal/util"
	"beadatelier/pkg/ai"
	"beadatelier/pkg/domain"
	"beadatelier/pkg/prompt"
	"beadatelier/pkg/storage"
	"beadatelier/pkg/store"
)

const (
	defaultProviderTimeout = 60 * time.Second
	defaultPresignExpiry   = 24 * time.Hour

	dataURIPrefix = "data:image/png;base64,"
)

// Config holds runtime dependencies for the core application.
type Config struct {
	Generator ai.ImageGenerator
	Store     store.Store
	// Objects is optional; when set, image payloads are offloaded to object
	// storage and records carry a presigned URL instead of inline data.
	Objects         storage.ObjectStore
	ProviderTimeout time.Duration
	PresignExpiry   time.Duration
}

// App is the generation orchestrator.
type App struct {
	generator       ai.ImageGenerator
	store           store.Store
	objects         storage.ObjectStore
	providerTimeout time.Duration
	presignExpiry   time.Duration
}

// New constructs the orchestrator.
func New(cfg Config) (*App, error) {
	if cfg.Generator == nil {
		return nil, fmt.Errorf("image generator required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("artifact store required")
	}
	providerTimeout := cfg.ProviderTimeout
	if providerTimeout <= 0 {
		providerTimeout = defaultProviderTimeout
	}
	presignExpiry := cfg.PresignExpiry
	if presignExpiry <= 0 {
		presignExpiry = defaultPresignExpiry
	}
	return &App{
		generator:       cfg.Generator,
		store:           cfg.Store,
		objects:         cfg.Objects,
		providerTimeout: providerTimeout,
		presignExpiry:   presignExpiry,
	}, nil
}

// Submit runs one generation. Validation failures return before any external
// call; nothing is ever stored on a failure path, so the store only holds
// records whose generation fully completed.
func (a *App) Submit(ctx context.Context, params domain.GenerateParams) (domain.Artifact, error) {
	req, err := params.Validate()
	if err != nil {
		return domain.Artifact{}, err
	}

	p := prompt.Synthesize(req)
	logger := util.LoggerFromContext(ctx)
	logger.Info("generating design", "shape", req.Shape, "size", req.Size)

	callCtx, cancel := context.WithTimeout(ctx, a.providerTimeout)
	defer cancel()
	payload, err := a.generator.GenerateImage(callCtx, p)
	if err != nil {
		return domain.Artifact{}, err
	}

	artifact := domain.Artifact{
		ID:          uuid.NewString(),
		Size:        req.Size,
		Shape:       req.Shape,
		Colors:      req.Colors,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if a.objects != nil {
		key := "generated/" + artifact.ID + ".png"
		if err := a.objects.Put(ctx, key, bytes.NewReader(payload.Data), int64(len(payload.Data)), payload.ContentType); err != nil {
			return domain.Artifact{}, fmt.Errorf("offload image: %w", err)
		}
		url, err := a.objects.PresignGet(ctx, key, a.presignExpiry)
		if err != nil {
			return domain.Artifact{}, fmt.Errorf("presign image: %w", err)
		}
		artifact.StorageKey = key
		artifact.ImageURL = url
	} else {
		artifact.ImageURL = dataURIPrefix + base64.StdEncoding.EncodeToString(payload.Data)
	}

	if err := a.store.SaveArtifact(artifact); err != nil {
		return domain.Artifact{}, err
	}
	logger.Info("design generated", "artifact_id", artifact.ID, "bytes", len(payload.Data))
	return artifact, nil
}

// GetArtifact returns a stored record.
func (a *App) GetArtifact(id string) (domain.Artifact, error) {
	artifact, ok, err := a.store.GetArtifact(id)
	if err != nil {
		return domain.Artifact{}, err
	}
	if !ok {
		return domain.Artifact{}, ErrArtifactNotFound
	}
	return artifact, nil
}

// ArtifactImage returns the raw image bytes and content type for a record,
// fetching from object storage or decoding the inline data URI.
func (a *App) ArtifactImage(ctx context.Context, id string) ([]byte, string, error) {
	artifact, err := a.GetArtifact(id)
	if err != nil {
		return nil, "", err
	}
	if artifact.StorageKey != "" && a.objects != nil {
		data, contentType, err := a.objects.Get(ctx, artifact.StorageKey)
		if err != nil {
			return nil, "", fmt.Errorf("fetch image: %w", err)
		}
		if contentType == "" {
			contentType = "image/png"
		}
		return data, contentType, nil
	}
	encoded := strings.TrimPrefix(artifact.ImageURL, dataURIPrefix)
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("decode image data: %w", err)
	}
	return data, "image/png", nil
}
