// Package prompt turns a validated generation request into the provider
// prompt. Synthesis is pure and deterministic so identical requests always
// produce byte-identical prompts.
package prompt

import (
	"fmt"
	"strings"

	"beadatelier/pkg/domain"
)

// sizePhrases maps each size class to its fixed descriptive phrase.
var sizePhrases = map[domain.Size]string{
	domain.SizeS:  "small, delicate, 3cm",
	domain.SizeM:  "medium, 5cm",
	domain.SizeL:  "large, statement piece, 7cm",
	domain.SizeXL: "extra large, dramatic, 10cm",
}

const template = `Photorealistic image of a handmade beaded brooch in the shape of a %s.
Size: %s.
Primary colors: %s.
Style: %s.
The brooch is made of tiny glass beads, intricate beadwork, artisanal craftsmanship.
Professional jewelry photography, white background, sharp focus, high detail, luxury product photography.
The beads should be clearly visible, showing the texture and craftsmanship of handmade beadwork.`

// Synthesize builds the image prompt for a validated request.
func Synthesize(req domain.GenerationRequest) string {
	return fmt.Sprintf(template,
		req.Shape,
		sizePhrases[req.Size],
		describeColors(req.Colors),
		req.Description,
	)
}

// describeColors resolves each color token to a descriptive phrase and joins
// them with ", ". Hex tokens are described literally; known ids resolve to
// their lowercase display name; unknown tokens pass through as-is.
func describeColors(colors []string) string {
	phrases := make([]string, 0, len(colors))
	for _, token := range colors {
		phrases = append(phrases, describeColor(token))
	}
	return strings.Join(phrases, ", ")
}

func describeColor(token string) string {
	if strings.HasPrefix(token, "#") {
		return "color " + token
	}
	if opt, ok := domain.ColorByID(token); ok {
		return strings.ToLower(opt.Name)
	}
	return token
}
