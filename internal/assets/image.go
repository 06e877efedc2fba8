package assets

import "time"

// StoredImage is an image file read back for serving.
type StoredImage struct {
	Name    string
	ModTime time.Time
	Data    []byte
}
