package photo

import (
	"errors"
	"strings"
	"testing"
)

func file(contentType string, size int64) File {
	return File{Data: []byte{0xFF}, Filename: "photo.png", ContentType: contentType, Size: size}
}

func TestCheck(t *testing.T) {
	cases := []struct {
		name string
		file File
		want error
	}{
		{"png under limit", file("image/png", 1900*1024), nil},
		{"png over limit", file("image/png", 2100*1024), ErrTooLarge},
		{"jpeg exactly at boundary", file("image/jpeg", 2097152), nil},
		{"one byte over boundary", file("image/jpeg", 2097153), ErrTooLarge},
		{"gif rejected regardless of size", file("image/gif", 10), ErrBadType},
		{"jpg alias accepted", file("image/jpg", 1024), nil},
		{"case-insensitive type", file("IMAGE/PNG", 1024), nil},
		{"missing file", File{}, ErrMissing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(tc.file)
			if !errors.Is(err, tc.want) {
				t.Errorf("Check() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCheckHeader_NoBytesNeeded(t *testing.T) {
	// Header-only rejection: an oversized or wrong-typed upload is
	// refused without any of its bytes being available.
	if err := CheckHeader("image/png", 3<<30); !errors.Is(err, ErrTooLarge) {
		t.Errorf("3 GiB png: got %v, want ErrTooLarge", err)
	}
	if err := CheckHeader("image/gif", 10); !errors.Is(err, ErrBadType) {
		t.Errorf("gif: got %v, want ErrBadType", err)
	}
	if err := CheckHeader("image/jpeg", MaxSize); err != nil {
		t.Errorf("jpeg at boundary: got %v", err)
	}
}

func TestObjectName(t *testing.T) {
	name := ObjectName("registrations", "My Photo.JPG")
	if !strings.HasPrefix(name, "registrations/") {
		t.Errorf("name %q missing prefix", name)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Errorf("name %q missing lowercased extension", name)
	}
	if other := ObjectName("registrations", "My Photo.JPG"); other == name {
		t.Errorf("consecutive names not unique: %q", name)
	}
}

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://res.example.com/demo/image/upload/v1/registrations/1712-ab12cd.jpg", "registrations/1712-ab12cd"},
		{"https://cdn.example.com/registrations/xyz.png", "registrations/xyz"},
		{"noslashes", ""},
	}
	for _, tc := range cases {
		if got := PublicIDFromURL(tc.url); got != tc.want {
			t.Errorf("PublicIDFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
