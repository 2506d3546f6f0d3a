package main

import (
	"context"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/Divyaprada-G/cropmap/internal/config"
	"github.com/Divyaprada-G/cropmap/internal/logger"
	"github.com/Divyaprada-G/cropmap/internal/render"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"   env:"CONFIG_FILE" description:"Path to engine configuration file"`
	Input      string `short:"i" long:"input"    env:"INPUT_FILE"  description:"Render request JSON file (default: stdin)"`
	Output     string `short:"o" long:"output"   env:"OUTPUT_FILE" description:"Output image file" default:"map.png"`
	Format     string `short:"f" long:"format"   env:"FORMAT"      description:"Output format" choice:"png" choice:"webp" default:"png"`
	Width      int    `short:"W" long:"width"    description:"Override output width in pixels"`
	Height     int    `short:"H" long:"height"   description:"Override output height in pixels"`
	Simulate   bool   `short:"s" long:"simulate" description:"Generate a synthetic crop grid when the request has no overlay"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg := config.Default()
	if opts.ConfigFile != "" {
		loaded, err := config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		cfg = loaded
	}

	var (
		data []byte
		err  error
	)
	if opts.Input != "" {
		data, err = os.ReadFile(opts.Input)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read render request")
	}

	req, err := render.ParseRequest(data)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse render request")
	}

	if opts.Width > 0 {
		req.Width = opts.Width
	}
	if opts.Height > 0 {
		req.Height = opts.Height
	}

	if opts.Simulate && len(req.Overlay.Features) == 0 {
		req.Overlay = render.SimulateOverlay(req.BoundingBox(), req.Stats)
		log.Info().Int("features", len(req.Overlay.Features)).Msg("Generated synthetic crop overlay")
	}

	engine, err := render.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build render engine")
	}

	img, err := engine.Render(context.Background(), req)
	if err != nil {
		log.Fatal().Err(err).Msg("Render failed")
	}

	out, err := os.Create(opts.Output)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create output file")
	}
	defer func() { _ = out.Close() }()

	if err := render.Encode(out, img, opts.Format); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode output image")
	}

	log.Info().Str("path", opts.Output).Str("format", opts.Format).Msg("Image written")
}
