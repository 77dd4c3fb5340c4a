package uploads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeStore struct {
	lastPath        string
	lastContentType string
	lastBody        []byte
	uploads         int
}

func (s *fakeStore) Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error) {
	s.uploads++
	s.lastPath = path
	s.lastContentType = contentType
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.lastBody = b
	return "https://bucket.example/" + path, nil
}

func (s *fakeStore) Remove(ctx context.Context, publicURL string) error {
	return nil
}

func newTestService(store *fakeStore) *Service {
	svc := NewService(store)
	svc.newID = func() string { return "fixed-id" }
	return svc
}

func TestService_UploadPetImage_StoresUnderPets(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	url, err := svc.UploadPetImage(context.Background(), "Luna Final.JPG", strings.NewReader("jpegdata"))
	if err != nil {
		t.Fatalf("UploadPetImage error: %v", err)
	}
	if url != "https://bucket.example/pets/fixed-id.jpg" {
		t.Fatalf("bad url: %s", url)
	}
	if store.lastPath != "pets/fixed-id.jpg" {
		t.Fatalf("bad object path: %s", store.lastPath)
	}
	if store.lastContentType != "image/jpeg" {
		t.Fatalf("bad content type: %s", store.lastContentType)
	}
	if string(store.lastBody) != "jpegdata" {
		t.Fatalf("body not forwarded: %q", store.lastBody)
	}
}

func TestService_UploadPetImage_RejectsOversized(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	big := bytes.Repeat([]byte("x"), MaxImageSize+1)
	if _, err := svc.UploadPetImage(context.Background(), "huge.png", bytes.NewReader(big)); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if store.uploads != 0 {
		t.Fatalf("oversized file must not reach the store")
	}
}

func TestService_UploadPetImage_AcceptsExactLimit(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	exact := bytes.Repeat([]byte("x"), MaxImageSize)
	if _, err := svc.UploadPetImage(context.Background(), "big.png", bytes.NewReader(exact)); err != nil {
		t.Fatalf("UploadPetImage at limit error: %v", err)
	}
	if len(store.lastBody) != MaxImageSize {
		t.Fatalf("expected %d bytes stored, got %d", MaxImageSize, len(store.lastBody))
	}
}

func TestService_UploadPetImage_RejectsUnsupportedExt(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	for _, name := range []string{"doc.pdf", "video.mp4", "noext", ""} {
		if _, err := svc.UploadPetImage(context.Background(), name, strings.NewReader("x")); !errors.Is(err, ErrUnsupported) {
			t.Fatalf("%q: expected ErrUnsupported, got %v", name, err)
		}
	}
	if store.uploads != 0 {
		t.Fatalf("unsupported files must not reach the store")
	}
}

func TestService_NotConfigured(t *testing.T) {
	svc := NewService(nil)

	if _, err := svc.UploadPetImage(context.Background(), "a.jpg", strings.NewReader("x")); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("upload: expected ErrNotConfigured, got %v", err)
	}
	if err := svc.DeleteImage(context.Background(), "https://bucket.example/pets/a.jpg"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("delete: expected ErrNotConfigured, got %v", err)
	}
}

func TestService_DeleteImage_RequiresURL(t *testing.T) {
	svc := newTestService(&fakeStore{})

	if err := svc.DeleteImage(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
