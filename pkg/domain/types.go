package domain

import "time"

// Size is the brooch size class picked in the generator.
type Size string

const (
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

// SizeOptions lists valid sizes in display order.
var SizeOptions = []Size{SizeS, SizeM, SizeL, SizeXL}

// ColorOption is a palette entry the generator UI offers.
// Requests may reference a color either by ID or by hex value.
type ColorOption struct {
	ID     string `json:"id"`
	Hex    string `json:"hex"`
	Name   string `json:"name"`
	NameDE string `json:"nameDE"`
}

// ColorOptions is the known color-identifier table.
var ColorOptions = []ColorOption{
	{ID: "black", Hex: "#000000", Name: "Black", NameDE: "Schwarz"},
	{ID: "white", Hex: "#FFFFFF", Name: "White", NameDE: "Weiß"},
	{ID: "gold", Hex: "#D4AF37", Name: "Gold", NameDE: "Gold"},
	{ID: "silver", Hex: "#C0C0C0", Name: "Silver", NameDE: "Silber"},
	{ID: "red", Hex: "#DC143C", Name: "Red", NameDE: "Rot"},
	{ID: "blue", Hex: "#1E3A5F", Name: "Blue", NameDE: "Blau"},
	{ID: "green", Hex: "#2D5A27", Name: "Green", NameDE: "Grün"},
	{ID: "purple", Hex: "#6B3FA0", Name: "Purple", NameDE: "Lila"},
	{ID: "coral", Hex: "#FF6B6B", Name: "Coral", NameDE: "Koralle"},
	{ID: "turquoise", Hex: "#40E0D0", Name: "Turquoise", NameDE: "Türkis"},
}

// ColorByID looks up a palette entry by identifier.
func ColorByID(id string) (ColorOption, bool) {
	for _, c := range ColorOptions {
		if c.ID == id {
			return c, true
		}
	}
	return ColorOption{}, false
}

// ShapeCategories groups suggested shape tags for the generator UI.
// Shape is an open vocabulary; requests are not restricted to these.
var ShapeCategories = map[string][]string{
	"insects":   {"butterfly", "bee", "dragonfly", "beetle", "moth"},
	"animals":   {"bird", "fish", "cat", "fox", "rabbit"},
	"abstract":  {"geometric", "spiral", "wave", "starburst", "organic"},
	"botanical": {"flower", "leaf", "vine", "mushroom", "tree"},
}

// GenerateParams is the raw generation request body before validation.
type GenerateParams struct {
	Size        string   `json:"size"`
	Shape       string   `json:"shape"`
	Colors      []string `json:"colors"`
	Description string   `json:"description"`
}

// GenerationRequest is a validated, immutable generation request.
type GenerationRequest struct {
	Size        Size     `json:"size"`
	Shape       string   `json:"shape"`
	Colors      []string `json:"colors"`
	Description string   `json:"description"`
}

// Artifact is a generated image plus the request fields it was built from.
// Records are immutable once created. ImageURL is either a data URI holding
// the PNG inline or a fetchable URL when the payload lives in object storage
// (StorageKey set).
type Artifact struct {
	ID          string    `json:"id"`
	ImageURL    string    `json:"imageUrl"`
	StorageKey  string    `json:"-"`
	Size        Size      `json:"size"`
	Shape       string    `json:"shape"`
	Colors      []string  `json:"colors"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
