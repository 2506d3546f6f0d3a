package tiles

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	_ "image/jpeg"
	_ "image/png"
)

// Tile is one resolved fetch result. Placeholder tiles stand in for
// coordinates the server could not deliver; they never abort a render.
type Tile struct {
	Image       image.Image
	Placeholder bool
}

// Options configures a Fetcher. Zero fields fall back to defaults matching
// the tile server budget: 20 workers, 10 pooled connections, 3s per-tile
// timeout, 3 retries with 300ms base backoff.
type Options struct {
	URLTemplate string
	UserAgent   string
	Cache       *Cache
	TileSize    int
	Workers     int
	MaxConns    int
	Timeout     time.Duration
	RetryBase   time.Duration
	MaxRetries  uint64
	RatePerSec  float64
}

// Fetcher downloads map tiles concurrently over a shared pooled connection
// set. It is safe for use from multiple goroutines; the cache is shared
// across all fetch sessions.
type Fetcher struct {
	client      *http.Client
	cache       *Cache
	limiter     *rate.Limiter
	placeholder image.Image
	urlTemplate string
	userAgent   string
	timeout     time.Duration
	retryBase   time.Duration
	maxRetries  uint64
	workers     int
}

// NewFetcher creates a fetcher for the given tile URL template. The template
// uses {z}, {x} and {y} markers in any order.
func NewFetcher(opts Options) *Fetcher {
	if opts.TileSize <= 0 {
		opts.TileSize = 256
	}
	if opts.Workers <= 0 {
		opts.Workers = 20
	}
	if opts.MaxConns <= 0 {
		opts.MaxConns = 10
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = 300 * time.Millisecond
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "cropmap/1.0"
	}

	var limiter *rate.Limiter
	if opts.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSec), opts.MaxConns)
	}

	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        opts.MaxConns,
				MaxIdleConnsPerHost: opts.MaxConns,
				MaxConnsPerHost:     opts.MaxConns,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cache:       opts.Cache,
		limiter:     limiter,
		placeholder: placeholderTile(opts.TileSize),
		urlTemplate: opts.URLTemplate,
		userAgent:   opts.UserAgent,
		timeout:     opts.Timeout,
		retryBase:   opts.RetryBase,
		maxRetries:  opts.MaxRetries,
		workers:     opts.Workers,
	}
}

// Fetch resolves every requested coordinate to either real tile pixels or a
// gray placeholder. The returned map always holds exactly one entry per
// coordinate. Cache hits bypass the worker pool and the connection layer.
func (f *Fetcher) Fetch(ctx context.Context, coords []Coordinate) map[Coordinate]Tile {
	out := make(map[Coordinate]Tile, len(coords))

	var misses []Coordinate
	for _, c := range coords {
		if f.cache != nil {
			if data, ok := f.cache.Get(c); ok {
				if img, err := decodeTile(data); err == nil {
					out[c] = Tile{Image: img}
					continue
				}
			}
		}
		misses = append(misses, c)
	}

	if len(misses) == 0 {
		return out
	}

	type fetchResult struct {
		coord Coordinate
		tile  Tile
	}

	jobs := make(chan Coordinate, len(misses))
	results := make(chan fetchResult, len(misses))

	workers := f.workers
	if workers > len(misses) {
		workers = len(misses)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				results <- fetchResult{coord: c, tile: f.fetchOne(ctx, c)}
			}
		}()
	}

	go func() {
		for _, c := range misses {
			jobs <- c
		}
		close(jobs)
	}()

	wg.Wait()
	close(results)

	for res := range results {
		out[res.coord] = res.tile
	}

	return out
}

func (f *Fetcher) fetchOne(ctx context.Context, c Coordinate) Tile {
	data, err := f.download(ctx, c)
	if err != nil {
		log.Warn().Err(err).
			Int("zoom", c.Zoom).Int("x", c.X).Int("y", c.Y).
			Msg("Tile fetch failed, substituting placeholder")
		return Tile{Image: f.placeholder, Placeholder: true}
	}

	img, err := decodeTile(data)
	if err != nil {
		log.Warn().Err(err).
			Int("zoom", c.Zoom).Int("x", c.X).Int("y", c.Y).
			Msg("Tile decode failed, substituting placeholder")
		return Tile{Image: f.placeholder, Placeholder: true}
	}

	if f.cache != nil {
		f.cache.Put(c, data)
	}
	return Tile{Image: img}
}

// download performs the HTTP GET with exponential backoff on transient
// failures (429/500/502/503/504 and timeouts).
func (f *Fetcher) download(ctx context.Context, c Coordinate) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = f.retryBase
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0

	return backoff.RetryWithData(
		func() ([]byte, error) { return f.attempt(ctx, c) },
		backoff.WithContext(backoff.WithMaxRetries(policy, f.maxRetries), ctx),
	)
}

func (f *Fetcher) attempt(ctx context.Context, c Coordinate) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, f.buildURL(c), nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		return io.ReadAll(resp.Body)
	case transientStatus(resp.StatusCode):
		return nil, fmt.Errorf("status code %d", resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("status code %d", resp.StatusCode))
	}
}

func (f *Fetcher) buildURL(c Coordinate) string {
	s := strings.ReplaceAll(f.urlTemplate, "{z}", fmt.Sprintf("%d", c.Zoom))
	s = strings.ReplaceAll(s, "{x}", fmt.Sprintf("%d", c.X))
	s = strings.ReplaceAll(s, "{y}", fmt.Sprintf("%d", c.Y))
	return s
}

func transientStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func decodeTile(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	return img, nil
}

func placeholderTile(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	gray := color.RGBA{200, 200, 200, 255}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = gray.R
		img.Pix[i+1] = gray.G
		img.Pix[i+2] = gray.B
		img.Pix[i+3] = gray.A
	}
	return img
}
