package session

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"time"

	// Page rasters are PNG or JPEG depending on the renderer's settings.
	_ "image/jpeg"
	_ "image/png"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"docfields/internal/geometry"
	"docfields/internal/model"
)

// Prober resolves a page raster's natural pixel dimensions. The image is
// fetched once purely to read its size; the bytes are not kept.
type Prober interface {
	Probe(ctx context.Context, imageURL string) (geometry.ViewBox, error)
}

// HTTPProber probes dimensions by fetching the image over HTTP and decoding
// only its header.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber returns a prober with an instrumented HTTP client.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Probe fetches imageURL and reads its intrinsic dimensions.
func (p *HTTPProber) Probe(ctx context.Context, imageURL string) (geometry.ViewBox, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return geometry.ViewBox{}, fmt.Errorf("build probe request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return geometry.ViewBox{}, fmt.Errorf("fetch page image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return geometry.ViewBox{}, fmt.Errorf("fetch page image: status %d", resp.StatusCode)
	}
	cfg, _, err := image.DecodeConfig(resp.Body)
	if err != nil {
		return geometry.ViewBox{}, fmt.Errorf("decode page image: %w", err)
	}
	return geometry.ViewBox{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}

// ProbeAll resolves dimensions for every page of the session's document, one
// independent fetch per page, awaited collectively. A failed probe logs and
// leaves that page on the fallback view box without blocking the others; the
// session is marked ready once all probes have settled either way.
func ProbeAll(ctx context.Context, p Prober, s *Session, doc *model.Document, maxConcurrent int) {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for _, page := range doc.Content {
		page := page
		g.Go(func() error {
			view, err := p.Probe(ctx, page.ImageURL)
			if err != nil {
				logProbe(page.Page, err)
				s.SetPageView(page.Page, geometry.DefaultViewBox(), false)
				return nil
			}
			s.SetPageView(page.Page, view, true)
			return nil
		})
	}
	_ = g.Wait()
	s.MarkReady()
}

func logProbe(page int, err error) {
	entry := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     "warn",
		"component": "session",
		"event":     "dimension_probe_failed",
		"page":      page,
		"error":     err.Error(),
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
