package assets_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/product-catalog/internal/assets"
)

func TestParseDataURI(t *testing.T) {
	img, err := assets.ParseDataURI("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("ParseDataURI() failed: %v", err)
	}

	if img.Subtype != "png" {
		t.Errorf("Subtype = %q, want %q", img.Subtype, "png")
	}
	if img.Ext != "png" {
		t.Errorf("Ext = %q, want %q", img.Ext, "png")
	}
	if string(img.Data) != "hello" {
		t.Errorf("Data = %q, want %q", img.Data, "hello")
	}
}

func TestParseDataURI_Unpadded(t *testing.T) {
	img, err := assets.ParseDataURI("data:image/jpeg;base64,aGVsbG8")
	if err != nil {
		t.Fatalf("ParseDataURI() failed: %v", err)
	}
	if string(img.Data) != "hello" {
		t.Errorf("Data = %q, want %q", img.Data, "hello")
	}
}

func TestParseDataURI_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a data uri", "http://shop/product-images/preview_1.png"},
		{"no separator", "data:image/png;base64"},
		{"not base64 encoded", "data:image/png,aGVsbG8="},
		{"missing subtype", "data:image/;base64,aGVsbG8="},
		{"bad payload", "data:image/png;base64,***"},
		{"empty payload", "data:image/png;base64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := assets.ParseDataURI(tt.value)
			if !errors.Is(err, assets.ErrInvalidImage) {
				t.Errorf("ParseDataURI() error = %v, want ErrInvalidImage", err)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		subtype string
		want    string
	}{
		{"jpeg", "jpeg"},
		{"png", "png"},
		{"jpg", "jpg"},
		{"x-png", "png"},
		{"pjpeg", "jpeg"},
		{"gif", ""},
		{"svg+xml", ""},
	}

	for _, tt := range tests {
		if got := assets.Extension(tt.subtype); got != tt.want {
			t.Errorf("Extension(%q) = %q, want %q", tt.subtype, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	id := uuid.MustParse("6f1c2a9e-8f5b-4a0e-9b7a-2d3c4e5f6a7b")

	if got := assets.Filename(id, "png"); got != "preview_6f1c2a9e-8f5b-4a0e-9b7a-2d3c4e5f6a7b.png" {
		t.Errorf("Filename() = %q", got)
	}
	if got := assets.Filename(id, ""); got != "preview_6f1c2a9e-8f5b-4a0e-9b7a-2d3c4e5f6a7b." {
		t.Errorf("Filename() with empty ext = %q", got)
	}
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://h/product-images/preview_42.jpg", "preview_42.jpg"},
		{"https://shop.example.com/product-images/preview_1.png?v=2", "preview_1.png"},
		{"/product-images/preview_1.png", "preview_1.png"},
		{"preview_1.png", "preview_1.png"},
	}

	for _, tt := range tests {
		if got := assets.FilenameFromURL(tt.url); got != tt.want {
			t.Errorf("FilenameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestValidateFilename(t *testing.T) {
	valid := []string{"preview_1.png", "preview_1.", "a..b.png"}
	for _, name := range valid {
		if err := assets.ValidateFilename(name); err != nil {
			t.Errorf("ValidateFilename(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", ".", "..", "../config.toml", "a/b.png", `..\secret`, "/etc/passwd", "a\x00.png", ".preview_1.png.123.tmp", ".env"}
	for _, name := range invalid {
		if err := assets.ValidateFilename(name); !errors.Is(err, assets.ErrInvalidFilename) {
			t.Errorf("ValidateFilename(%q) = %v, want ErrInvalidFilename", name, err)
		}
	}
}
