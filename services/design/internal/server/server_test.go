package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"beadatelier/pkg/ai"
	"beadatelier/pkg/domain"
	"beadatelier/pkg/store"
	"beadatelier/services/design/internal/app"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// fakeGenerator is an in-process provider double.
type fakeGenerator struct {
	calls int
	fail  bool
}

func (f *fakeGenerator) GenerateImage(_ context.Context, _ string) (ai.Payload, error) {
	f.calls++
	if f.fail {
		return ai.Payload{}, &ai.ProviderError{Message: "synthetic failure"}
	}
	return ai.Payload{Data: pngBytes, ContentType: "image/png"}, nil
}

func newTestServer(t *testing.T, gen ai.ImageGenerator) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	memStore := store.NewMemoryStore(0)
	t.Cleanup(memStore.Close)
	core, err := app.New(app.Config{Generator: gen, Store: memStore})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv, err := New(Config{App: core})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, memStore
}

func newTestServerFor(t *testing.T, srv *Server) string {
	t.Helper()
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts.URL
}

func postGenerate(t *testing.T, url string, params domain.GenerateParams) *http.Response {
	t.Helper()
	body, _ := json.Marshal(params)
	resp, err := http.Post(url+"/api/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post generate: %v", err)
	}
	return resp
}

func validGenerateParams() domain.GenerateParams {
	return domain.GenerateParams{
		Size:        "M",
		Shape:       "bee",
		Colors:      []string{"#D4AF37"},
		Description: "A shimmering golden bee.",
	}
}

func TestGenerateSuccess(t *testing.T) {
	gen := &fakeGenerator{}
	ts, memStore := newTestServer(t, gen)

	resp := postGenerate(t, ts.URL, validGenerateParams())
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var artifact domain.Artifact
	if err := json.NewDecoder(resp.Body).Decode(&artifact); err != nil {
		t.Fatalf("decode artifact: %v", err)
	}
	if artifact.ID == "" || artifact.CreatedAt.IsZero() {
		t.Fatalf("artifact missing id or timestamp: %+v", artifact)
	}
	if artifact.Shape != "bee" || artifact.Size != domain.SizeM {
		t.Fatalf("request fields not copied onto record: %+v", artifact)
	}
	if gen.calls != 1 {
		t.Fatalf("provider called %d times, want exactly 1", gen.calls)
	}
	if count, _ := memStore.CountArtifacts(); count != 1 {
		t.Fatalf("store count = %d, want 1", count)
	}

	// The stored record resolves through the metadata endpoint.
	resp2, err := http.Get(ts.URL + "/api/generated/" + artifact.ID)
	if err != nil {
		t.Fatalf("get generated: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("get generated status = %d, want 200", resp2.StatusCode)
	}
}

func TestGenerateValidationFailureSkipsProvider(t *testing.T) {
	gen := &fakeGenerator{}
	ts, memStore := newTestServer(t, gen)

	params := validGenerateParams()
	params.Colors = nil
	params.Description = "short"
	resp := postGenerate(t, ts.URL, params)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body struct {
		Error   string                  `json:"error"`
		Details []domain.FieldViolation `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if len(body.Details) != 2 {
		t.Fatalf("details = %+v, want violations for colors and description", body.Details)
	}
	if gen.calls != 0 {
		t.Fatalf("provider must not be called on validation failure")
	}
	if count, _ := memStore.CountArtifacts(); count != 0 {
		t.Fatalf("store count = %d, want 0", count)
	}
}

func TestGenerateProviderFailureStoresNothing(t *testing.T) {
	ts, memStore := newTestServer(t, &fakeGenerator{fail: true})

	resp := postGenerate(t, ts.URL, validGenerateParams())
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] == "" {
		t.Fatalf("expected error message in body")
	}
	if body["error"] == "synthetic failure" {
		t.Fatalf("provider diagnostic must not be shown verbatim")
	}
	if count, _ := memStore.CountArtifacts(); count != 0 {
		t.Fatalf("store count = %d, want 0 after provider failure", count)
	}
}

func TestGeneratedImageEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, &fakeGenerator{})

	resp := postGenerate(t, ts.URL, validGenerateParams())
	var artifact domain.Artifact
	_ = json.NewDecoder(resp.Body).Decode(&artifact)
	resp.Body.Close()

	imgResp, err := http.Get(ts.URL + "/api/generated/" + artifact.ID + "/image")
	if err != nil {
		t.Fatalf("get image: %v", err)
	}
	defer imgResp.Body.Close()
	if imgResp.StatusCode != http.StatusOK {
		t.Fatalf("image status = %d, want 200", imgResp.StatusCode)
	}
	if ct := imgResp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q, want image/png", ct)
	}
	if cc := imgResp.Header.Get("Cache-Control"); cc != "public, max-age=3600" {
		t.Fatalf("cache control = %q", cc)
	}
	data, _ := io.ReadAll(imgResp.Body)
	if !bytes.Equal(data, pngBytes) {
		t.Fatalf("image bytes mismatch")
	}
}

func TestGeneratedUnknownIDReturns404(t *testing.T) {
	ts, memStore := newTestServer(t, &fakeGenerator{})

	for _, path := range []string{"/api/generated/nope", "/api/generated/nope/image"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s status = %d, want 404", path, resp.StatusCode)
		}
	}
	if count, _ := memStore.CountArtifacts(); count != 0 {
		t.Fatalf("lookups must have no side effects")
	}
}

func TestCatalogEndpoints(t *testing.T) {
	ts, _ := newTestServer(t, &fakeGenerator{})

	resp, err := http.Get(ts.URL + "/api/brooches")
	if err != nil {
		t.Fatalf("list brooches: %v", err)
	}
	defer resp.Body.Close()
	var products []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(products) != 8 {
		t.Fatalf("products = %d, want 8", len(products))
	}

	one, err := http.Get(ts.URL + "/api/brooches/1")
	if err != nil {
		t.Fatalf("get brooch: %v", err)
	}
	one.Body.Close()
	if one.StatusCode != http.StatusOK {
		t.Fatalf("get brooch status = %d, want 200", one.StatusCode)
	}

	missing, err := http.Get(ts.URL + "/api/brooches/999")
	if err != nil {
		t.Fatalf("get missing brooch: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("missing brooch status = %d, want 404", missing.StatusCode)
	}
}

func TestOptionsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, &fakeGenerator{})

	resp, err := http.Get(ts.URL + "/api/options")
	if err != nil {
		t.Fatalf("get options: %v", err)
	}
	defer resp.Body.Close()
	var body struct {
		Sizes  []string             `json:"sizes"`
		Shapes map[string][]string  `json:"shapes"`
		Colors []domain.ColorOption `json:"colors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode options: %v", err)
	}
	if len(body.Sizes) != 4 || len(body.Colors) != 10 || len(body.Shapes) != 4 {
		t.Fatalf("options incomplete: %d sizes, %d colors, %d shape groups",
			len(body.Sizes), len(body.Colors), len(body.Shapes))
	}
}
