package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Divyaprada-G/cropmap/internal/config"
	"github.com/Divyaprada-G/cropmap/internal/geo"
	"github.com/Divyaprada-G/cropmap/internal/mosaic"
	"github.com/Divyaprada-G/cropmap/internal/tiles"
)

// Engine renders annotated satellite images. It owns the tile fetcher (and
// through it the shared connection pool and tile cache) and the font set; a
// single engine serves any number of concurrent Render calls.
type Engine struct {
	fetcher *tiles.Fetcher
	fonts   *Fonts

	tileSize     int
	maxZoom      int
	tileCap      int
	legendHeight int
}

// New builds an engine from configuration.
func New(cfg *config.Config) (*Engine, error) {
	cache, err := tiles.NewCache(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create tile cache: %w", err)
	}

	fetcher := tiles.NewFetcher(tiles.Options{
		URLTemplate: cfg.TileURL,
		UserAgent:   cfg.UserAgent,
		Cache:       cache,
		TileSize:    cfg.TileSize,
		Workers:     cfg.Concurrency,
		MaxConns:    cfg.MaxConns,
		Timeout:     time.Duration(cfg.TimeoutSec * float64(time.Second)),
		RetryBase:   time.Duration(cfg.RetryBaseMS) * time.Millisecond,
		MaxRetries:  uint64(cfg.RetryAttempts),
		RatePerSec:  cfg.RatePerSec,
	})

	return &Engine{
		fetcher:      fetcher,
		fonts:        NewFonts(cfg.FontRegular, cfg.FontBold),
		tileSize:     cfg.TileSize,
		maxZoom:      cfg.MaxZoom,
		tileCap:      cfg.TileCap,
		legendHeight: LegendHeight,
	}, nil
}

// Render produces the final annotated raster for one request: base satellite
// mosaic, classification overlay, region boundary, location labels and the
// statistics legend. The only fatal condition is an invalid bounding box;
// every failure below the engine boundary degrades to a partial or gray
// base image.
func (e *Engine) Render(ctx context.Context, req *Request) (image.Image, error) {
	req.ApplyDefaults()

	bbox := req.BoundingBox()
	if err := bbox.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	zoom := geo.SelectZoom(bbox, req.Width, req.Height, e.tileSize, 18)
	if zoom > e.maxZoom {
		zoom = e.maxZoom
	}

	coords := tiles.Coverage(bbox, zoom, e.tileCap)
	fetched := e.fetcher.Fetch(ctx, coords)
	fetchDone := time.Now()

	var base *image.RGBA
	if m := mosaic.Assemble(fetched, zoom, e.tileSize); m != nil {
		base = m.CropAndResize(bbox, req.Width, req.Height)
	} else {
		base = mosaic.Placeholder(req.Width, req.Height)
	}

	overlay := image.NewRGBA(base.Bounds())
	drawPolygons(overlay, req.Overlay, bbox, req.Width, req.Height)
	drawBoundary(overlay, bbox, req.Width, req.Height)
	drawLabels(overlay, req.Labels, bbox, req.Width, req.Height, e.fonts)

	draw.Draw(base, base.Bounds(), overlay, image.Point{}, draw.Over)

	final := image.NewRGBA(image.Rect(0, 0, req.Width, req.Height+e.legendHeight))
	draw.Draw(final, final.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(final, base.Bounds(), base, image.Point{}, draw.Src)
	drawLegend(final, req.Stats, req.Height, e.fonts)

	log.Info().
		Int("zoom", zoom).
		Int("tiles", len(coords)).
		Int("width", req.Width).
		Int("height", req.Height+e.legendHeight).
		Dur("fetch", fetchDone.Sub(start)).
		Dur("draw", time.Since(fetchDone)).
		Msg("Render complete")

	return final, nil
}
