// Package objectkey derives storage keys and content types for receipt photos.
package objectkey

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	fallbackName = "receipt"
	maxNameLen   = 100
)

// Sanitize folds accents and replaces everything outside [A-Za-z0-9._-]
// with an underscore.
func Sanitize(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := b.String()
	if len(out) > maxNameLen {
		out = out[len(out)-maxNameLen:]
	}
	if strings.Trim(out, "._") == "" {
		return fallbackName
	}
	return out
}

// New builds a collision-resistant key: capture time in milliseconds, a
// random fragment, then the sanitized original name.
func New(originalName string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return strconv.FormatInt(now.UnixMilli(), 10) + "_" + random + "_" + Sanitize(originalName)
}

// ContentType sniffs data and reports its MIME type.
func ContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

// IsImage reports whether data looks like an image.
func IsImage(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}
