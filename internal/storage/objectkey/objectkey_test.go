package objectkey

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"foto.jpg", "foto.jpg"},
		{"Recibo São João.png", "Recibo_Sao_Joao.png"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"a b/c\\d?.jpeg", "a_b_c_d_.jpeg"},
		{"nota-fiscal_01.JPG", "nota-fiscal_01.JPG"},
		{"", "receipt"},
		{"..", "receipt"},
		{"çãõ", "cao"},
	}

	allowed := regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	for _, tc := range cases {
		got := Sanitize(tc.in)
		if got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if !allowed.MatchString(got) {
			t.Errorf("Sanitize(%q) produced forbidden characters: %q", tc.in, got)
		}
	}
}

func TestSanitizeTruncatesKeepingExtension(t *testing.T) {
	got := Sanitize(strings.Repeat("a", 300) + ".jpg")
	if len(got) != maxNameLen || !strings.HasSuffix(got, ".jpg") {
		t.Fatalf("unexpected truncation: %d %q", len(got), got)
	}
}

func TestNew(t *testing.T) {
	now := time.UnixMilli(1715351400123)
	key := New("São Paulo.jpg", now)

	if !regexp.MustCompile(`^1715351400123_[0-9a-f]{8}_Sao_Paulo\.jpg$`).MatchString(key) {
		t.Fatalf("unexpected key: %q", key)
	}
	if other := New("São Paulo.jpg", now); other == key {
		t.Fatal("keys generated at the same instant must differ")
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType(pngHeader); got != "image/png" {
		t.Fatalf("expected image/png, got %s", got)
	}
	if !IsImage(pngHeader) {
		t.Fatal("expected png to be an image")
	}
	if IsImage([]byte("plain text, not a picture")) {
		t.Fatal("text must not be an image")
	}
}
