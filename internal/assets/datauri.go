package assets

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/product-catalog/internal/products"
)

var extPattern = regexp.MustCompile(`jpeg|png|jpg`)

// Image is a decoded data-URI payload.
type Image struct {
	Subtype string
	Ext     string
	Data    []byte
}

// ParseDataURI decodes "data:image/<subtype>;base64,<payload>". Values that
// are not of that form, carry invalid base64 or decode to nothing return
// ErrInvalidImage.
func ParseDataURI(value string) (Image, error) {
	rest, ok := strings.CutPrefix(value, products.DataURIPrefix)
	if !ok {
		return Image{}, fmt.Errorf("%w: missing %q prefix", ErrInvalidImage, products.DataURIPrefix)
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Image{}, fmt.Errorf("%w: missing payload separator", ErrInvalidImage)
	}

	params := strings.Split(header, ";")
	subtype := params[0]
	if subtype == "" || len(params) < 2 || params[len(params)-1] != "base64" {
		return Image{}, fmt.Errorf("%w: expected data:image/<type>;base64,<payload>", ErrInvalidImage)
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}

	return Image{
		Subtype: subtype,
		Ext:     Extension(subtype),
		Data:    data,
	}, nil
}

// Extension returns the first of jpeg, png or jpg found in subtype, or ""
// when none occurs.
func Extension(subtype string) string {
	return extPattern.FindString(subtype)
}

// Filename returns the stored image name for a product. An empty ext
// yields "preview_<id>.".
func Filename(id uuid.UUID, ext string) string {
	return fmt.Sprintf("preview_%s.%s", id, ext)
}

func decodeBase64(payload string) ([]byte, error) {
	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, payload)

	if strings.HasSuffix(payload, "=") || len(payload)%4 == 0 {
		return base64.StdEncoding.DecodeString(payload)
	}
	return base64.RawStdEncoding.DecodeString(payload)
}
