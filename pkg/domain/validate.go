package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	minColors         = 1
	maxColors         = 4
	minDescriptionLen = 10
	maxDescriptionLen = 500
)

// FieldViolation describes one failed constraint on a request field.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every violated constraint on a generation request.
// All fields are checked; callers receive the full list rather than only the
// first violation.
type ValidationError struct {
	Fields []FieldViolation
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		reasons = append(reasons, f.Field+": "+f.Reason)
	}
	return "invalid generation request: " + strings.Join(reasons, "; ")
}

// Validate checks the raw params against the request schema and returns the
// validated request. On failure it returns a *ValidationError enumerating
// every violated field. It has no side effects.
func (p GenerateParams) Validate() (GenerationRequest, error) {
	var violations []FieldViolation

	size := Size(p.Size)
	if !validSize(size) {
		violations = append(violations, FieldViolation{
			Field:  "size",
			Reason: fmt.Sprintf("must be one of S, M, L, XL, got %q", p.Size),
		})
	}

	if strings.TrimSpace(p.Shape) == "" {
		violations = append(violations, FieldViolation{
			Field:  "shape",
			Reason: "is required",
		})
	}

	if len(p.Colors) < minColors || len(p.Colors) > maxColors {
		violations = append(violations, FieldViolation{
			Field:  "colors",
			Reason: fmt.Sprintf("must contain between %d and %d entries, got %d", minColors, maxColors, len(p.Colors)),
		})
	} else {
		for i, token := range p.Colors {
			if validColorToken(token) {
				continue
			}
			violations = append(violations, FieldViolation{
				Field:  fmt.Sprintf("colors[%d]", i),
				Reason: fmt.Sprintf("%q is neither a hex color nor a known color id", token),
			})
		}
	}

	if n := utf8.RuneCountInString(p.Description); n < minDescriptionLen || n > maxDescriptionLen {
		violations = append(violations, FieldViolation{
			Field:  "description",
			Reason: fmt.Sprintf("length must be between %d and %d characters, got %d", minDescriptionLen, maxDescriptionLen, n),
		})
	}

	if len(violations) > 0 {
		return GenerationRequest{}, &ValidationError{Fields: violations}
	}
	return GenerationRequest{
		Size:        size,
		Shape:       p.Shape,
		Colors:      append([]string(nil), p.Colors...),
		Description: p.Description,
	}, nil
}

func validSize(s Size) bool {
	for _, opt := range SizeOptions {
		if s == opt {
			return true
		}
	}
	return false
}

// validColorToken accepts "#" followed by six hex digits, or a known color id.
func validColorToken(token string) bool {
	if IsHexColor(token) {
		return true
	}
	_, ok := ColorByID(token)
	return ok
}

// IsHexColor reports whether token has the form "#RRGGBB".
func IsHexColor(token string) bool {
	if len(token) != 7 || token[0] != '#' {
		return false
	}
	for _, c := range token[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
