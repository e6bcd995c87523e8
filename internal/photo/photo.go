// Package photo holds the upload constraints and object naming rules
// for registration photos.
package photo

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// MaxSize is the inclusive upper bound for a photo upload (2 MiB).
const MaxSize = 2 * 1024 * 1024

// ErrBadType rejects media types outside jpeg/jpg/png.
var ErrBadType = errors.New("photo must be a jpeg or png image")

// ErrTooLarge rejects files above MaxSize.
var ErrTooLarge = errors.New("photo must be at most 2 MB")

// ErrMissing rejects submissions with no photo attached.
var ErrMissing = errors.New("photo is required")

// File is a client-selected photo pending upload.
type File struct {
	Data        []byte
	Filename    string
	ContentType string
	Size        int64
}

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// CheckHeader validates the declared media type and size. It needs
// only the multipart header, so callers can reject an oversized
// upload before buffering any of its bytes. The size boundary is
// inclusive: exactly MaxSize bytes passes.
func CheckHeader(contentType string, size int64) error {
	if !allowedTypes[strings.ToLower(contentType)] {
		return ErrBadType
	}
	if size > MaxSize {
		return ErrTooLarge
	}
	return nil
}

// Check validates a fully read file against the same constraints.
func Check(f File) error {
	if len(f.Data) == 0 {
		return ErrMissing
	}
	return CheckHeader(f.ContentType, f.Size)
}

// ObjectName generates a storage path unique per upload: the prefix,
// current time, a random suffix and the original extension.
func ObjectName(prefix, filename string) string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%d-%s%s", prefix, time.Now().UnixNano(), hex.EncodeToString(suffix), ext)
}

// PublicIDFromURL derives the stored-object id from a photo URL: the
// last two path segments with the extension stripped.
func PublicIDFromURL(url string) string {
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	last := parts[len(parts)-1]
	if ext := path.Ext(last); ext != "" {
		last = strings.TrimSuffix(last, ext)
	}
	return parts[len(parts)-2] + "/" + last
}
