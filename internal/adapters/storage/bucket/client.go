// Package bucket habla la API REST de storage estilo Supabase
// (POST/DELETE sobre /storage/v1/object). El backend solo la usa como
// proxy de subida de imágenes; la durabilidad es problema del bucket.
package bucket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pet-adoption-api/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("bucket client not configured")
	ErrBadPublicURL  = errors.New("not a public url of this bucket")
)

type Config struct {
	// BaseURL del proyecto, p.ej. https://xyz.supabase.co
	BaseURL string
	// ServiceKey va como Bearer en cada request.
	ServiceKey string
	// Bucket es el nombre del bucket (pet-images).
	Bucket string

	Timeout time.Duration
}

type Client struct {
	http       *httpclient.Client
	serviceKey string
	bucket     string
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.ServiceKey) == "" || strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrNotConfigured
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:       hc,
		serviceKey: strings.TrimSpace(cfg.ServiceKey),
		bucket:     strings.TrimSpace(cfg.Bucket),
	}, nil
}

// NewClientWithTransport inyecta el transport (tests).
func NewClientWithTransport(cfg Config, tr http.RoundTripper) (*Client, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	c.http = httpclient.NewWithTransport(cfg.Timeout, tr)
	c.http.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return c, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.serviceKey,
	}
}

func (c *Client) objectPath(path string) string {
	return "/storage/v1/object/" + c.bucket + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) publicPrefix() string {
	return c.http.BaseURL + "/storage/v1/object/public/" + c.bucket + "/"
}

// Upload sube el objeto y devuelve su URL pública.
func (c *Client) Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error) {
	if c == nil || c.http == nil {
		return "", ErrNotConfigured
	}
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "" {
		return "", errors.New("bucket: empty object path")
	}

	if _, err := c.http.DoBytes(ctx, http.MethodPost, c.objectPath(path), c.headers(), contentType, body); err != nil {
		return "", fmt.Errorf("bucket: upload %s: %w", path, err)
	}

	return c.publicPrefix() + path, nil
}

// Remove borra el objeto a partir de su URL pública.
func (c *Client) Remove(ctx context.Context, publicURL string) error {
	if c == nil || c.http == nil {
		return ErrNotConfigured
	}

	path, ok := strings.CutPrefix(strings.TrimSpace(publicURL), c.publicPrefix())
	if !ok || path == "" {
		return ErrBadPublicURL
	}

	if _, err := c.http.DoBytes(ctx, http.MethodDelete, c.objectPath(path), c.headers(), "", nil); err != nil {
		return fmt.Errorf("bucket: remove %s: %w", path, err)
	}
	return nil
}
