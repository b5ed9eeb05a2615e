// Package fetch fournit un client HTTP léger et testable pour télécharger
// des pages et des documents texte avec les identifiants de l'utilisateur.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultTimeout        = 15 * time.Second
	DefaultMaxBytes       = 10_000_000
	DefaultUserAgent      = "HearLingo/1.0"
	DefaultAcceptLanguage = "en-US,en;q=0.8"
)

// Erreurs exportées
var (
	ErrStatus   = errors.New("unexpected HTTP status")
	ErrTooLarge = errors.New("response body too large")
)

// FetchError décrit l'échec d'une requête : statut non 2xx, ou échec transport (StatusCode == 0).
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected http status %s", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: request failed: %v", e.URL, e.Cause)
}

// Unwrap permet errors.Is(err, ErrStatus) pour les statuts HTTP.
func (e *FetchError) Unwrap() error {
	if e.StatusCode != 0 {
		return ErrStatus
	}
	return e.Cause
}

// Client télécharge des URL avec un cookie de session optionnel.
type Client struct {
	http           *http.Client
	timeout        time.Duration
	maxBytes       int64
	userAgent      string
	acceptLanguage string
	cookie         string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout : si <=0 on garde DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxBytes : si <=0 on garde DefaultMaxBytes.
func WithMaxBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithAcceptLanguage(al string) Option {
	return func(c *Client) {
		if al != "" {
			c.acceptLanguage = al
		}
	}
}

// WithCookie fixe l'en-tête Cookie envoyé à chaque requête (requête "credentialed").
func WithCookie(cookie string) Option {
	return func(c *Client) {
		c.cookie = cookie
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		http:           &http.Client{},
		timeout:        DefaultTimeout,
		maxBytes:       DefaultMaxBytes,
		userAgent:      DefaultUserAgent,
		acceptLanguage: DefaultAcceptLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get télécharge l'URL et retourne les octets.
// Note : lit tout en mémoire (OK pour une page watch ou un document de sous-titres).
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// valider l'URL tôt
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("fetch: invalid url %q: %w", rawURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", c.acceptLanguage)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	// si Content-Length connu et supérieur à maxBytes -> échouer vite
	if resp.ContentLength > 0 && resp.ContentLength > c.maxBytes {
		return nil, fmt.Errorf("fetch: content-length %d exceeds limit %d: %w", resp.ContentLength, c.maxBytes, ErrTooLarge)
	}

	r := io.LimitReader(resp.Body, c.maxBytes+1) // +1 pour détecter dépassement
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("fetch: body too large (>%d bytes): %w", c.maxBytes, ErrTooLarge)
	}
	return data, nil
}
