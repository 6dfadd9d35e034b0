package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ironsheep/cubemap-net-mcp/internal/config"
	"github.com/ironsheep/cubemap-net-mcp/internal/imaging"
)

// runDecompose splits the net named by -in and writes the strip to -out.
func runDecompose(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("decompose", flag.ContinueOnError)
	in := fs.String("in", "", "Cubemap net image")
	out := fs.String("out", "", "Output strip image; the format follows the extension")
	configPath := fs.String("config", os.Getenv(config.EnvConfigPath), "YAML config file")
	faceSize := fs.Int("face-size", -1, "Resize faces to N x N (0 keeps the measured side, default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		fs.Usage()
		return errors.New("-in and -out are required")
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	setupLogging(cfg)
	if *faceSize >= 0 {
		if err := imaging.ValidateFaceSize(*faceSize); err != nil {
			return err
		}
		cfg.Output.FaceSize = *faceSize
	}

	filter, err := imaging.ParseFilter(cfg.Output.Filter)
	if err != nil {
		return err
	}
	img, err := imaging.LoadRGBA(imaging.NewImageCache(), *in)
	if err != nil {
		return err
	}
	strip, err := cfg.Options().Decompose(img)
	if err != nil {
		return err
	}
	scaled, err := imaging.ScaleStrip(strip.Image, cfg.Output.FaceSize, filter)
	if err != nil {
		return err
	}
	if err := imaging.SaveImage(scaled, *out); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "background: %s\n", imaging.ColorOf(strip.Background).Hex)
	fmt.Fprintf(stdout, "vec_x: %v\n", strip.Measurements.X)
	fmt.Fprintf(stdout, "vec_y: %v\n", strip.Measurements.Y)
	fmt.Fprintf(stdout, "side: %d\n", strip.Side)
	fmt.Fprintf(stdout, "wrote %s (%dx%d)\n", *out, scaled.Bounds().Dx(), scaled.Bounds().Dy())
	return nil
}

// runInitConfig writes the default configuration to -out.
func runInitConfig(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("init-config", flag.ContinueOnError)
	out := fs.String("out", "cubemap-mcp.yaml", "Config file to create")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := config.CreateDefaultConfigFile(*out); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", *out)
	return nil
}
