package bucket

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type stubTransport struct {
	lastReq  *http.Request
	lastBody string
	status   int
	respBody string
}

func (t *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.lastReq = req
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		t.lastBody = string(b)
	}

	status := t.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(t.respBody)),
		Header:     http.Header{},
	}, nil
}

func newTestClient(t *testing.T, tr *stubTransport) *Client {
	t.Helper()
	c, err := NewClientWithTransport(Config{
		BaseURL:    "https://proj.supabase.co",
		ServiceKey: "service-key",
		Bucket:     "pet-images",
	}, tr)
	if err != nil {
		t.Fatalf("NewClientWithTransport error: %v", err)
	}
	return c
}

func TestNewClient_RequiresConfig(t *testing.T) {
	if _, err := NewClient(Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := NewClient(Config{BaseURL: "https://x", ServiceKey: "k"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("missing bucket: expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_Upload_BuildsRequestAndPublicURL(t *testing.T) {
	tr := &stubTransport{}
	c := newTestClient(t, tr)

	url, err := c.Upload(context.Background(), "pets/abc.jpg", "image/jpeg", strings.NewReader("jpegdata"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	want := "https://proj.supabase.co/storage/v1/object/public/pet-images/pets/abc.jpg"
	if url != want {
		t.Fatalf("public url mismatch:\n got %s\nwant %s", url, want)
	}

	req := tr.lastReq
	if req.Method != http.MethodPost {
		t.Fatalf("expected POST, got %s", req.Method)
	}
	if got := req.URL.String(); got != "https://proj.supabase.co/storage/v1/object/pet-images/pets/abc.jpg" {
		t.Fatalf("bad upload url: %s", got)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer service-key" {
		t.Fatalf("bad auth header: %q", got)
	}
	if got := req.Header.Get("Content-Type"); got != "image/jpeg" {
		t.Fatalf("bad content type: %q", got)
	}
	if tr.lastBody != "jpegdata" {
		t.Fatalf("body not forwarded: %q", tr.lastBody)
	}
}

func TestClient_Upload_PropagatesHTTPError(t *testing.T) {
	tr := &stubTransport{status: http.StatusForbidden, respBody: `{"message":"denied"}`}
	c := newTestClient(t, tr)

	if _, err := c.Upload(context.Background(), "pets/abc.jpg", "image/jpeg", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error on 403")
	}
}

func TestClient_Remove_ParsesPublicURL(t *testing.T) {
	tr := &stubTransport{}
	c := newTestClient(t, tr)

	err := c.Remove(context.Background(), "https://proj.supabase.co/storage/v1/object/public/pet-images/pets/abc.jpg")
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if tr.lastReq.Method != http.MethodDelete {
		t.Fatalf("expected DELETE, got %s", tr.lastReq.Method)
	}
	if got := tr.lastReq.URL.String(); got != "https://proj.supabase.co/storage/v1/object/pet-images/pets/abc.jpg" {
		t.Fatalf("bad delete url: %s", got)
	}
}

func TestClient_Remove_RejectsForeignURL(t *testing.T) {
	tr := &stubTransport{}
	c := newTestClient(t, tr)

	err := c.Remove(context.Background(), "https://otherhost/storage/v1/object/public/pet-images/pets/abc.jpg")
	if !errors.Is(err, ErrBadPublicURL) {
		t.Fatalf("expected ErrBadPublicURL, got %v", err)
	}
}
