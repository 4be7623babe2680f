package prompt

import (
	"strings"
	"testing"

	"beadatelier/pkg/domain"
)

func TestSynthesizeIsDeterministic(t *testing.T) {
	req := domain.GenerationRequest{
		Size:        domain.SizeL,
		Shape:       "dragonfly",
		Colors:      []string{"turquoise", "#C0C0C0"},
		Description: "Iridescent wings with silver veins.",
	}
	first := Synthesize(req)
	second := Synthesize(req)
	if first != second {
		t.Fatalf("synthesize not deterministic:\n%q\n%q", first, second)
	}
}

func TestSynthesizeGoldenBee(t *testing.T) {
	req := domain.GenerationRequest{
		Size:        domain.SizeM,
		Shape:       "bee",
		Colors:      []string{"#D4AF37"},
		Description: "A shimmering golden bee.",
	}
	got := Synthesize(req)
	for _, want := range []string{
		"bee",
		"medium, 5cm",
		"color #D4AF37",
		"A shimmering golden bee.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestSynthesizeResolvesKnownColorIDs(t *testing.T) {
	req := domain.GenerationRequest{
		Size:        domain.SizeS,
		Shape:       "flower",
		Colors:      []string{"gold", "coral"},
		Description: "Petals in warm tones.",
	}
	got := Synthesize(req)
	if !strings.Contains(got, "gold, coral") {
		t.Fatalf("prompt should join lowercase color names, got:\n%s", got)
	}
	if !strings.Contains(got, "small, delicate, 3cm") {
		t.Fatalf("prompt missing size phrase for S:\n%s", got)
	}
}
