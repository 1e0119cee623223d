// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command lifedemo runs a Game of Life universe headless and reports frame
// statistics, optionally saving the last frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"github.com/gogpu/life"
	"github.com/gogpu/life/render"
	"github.com/gogpu/life/surface"

	_ "github.com/gogpu/wgpu/hal/allbackends"
)

// config holds the parsed command line.
type config struct {
	width, height uint32
	surfW, surfH  uint32
	frames        int
	backend       string
	zoom          float64
	offsetX       int
	offsetY       int
	seed          int64
	noiseScale    float64
	noiseThresh   float64
	output        string
	scale         int
	strict        bool
	verbose       bool
	list          bool
}

func main() {
	cfg := config{width: 64, height: 64, surfW: 512, surfH: 512}
	flag.Var((*uint32Flag)(&cfg.width), "width", "grid width in cells")
	flag.Var((*uint32Flag)(&cfg.height), "height", "grid height in cells")
	flag.Var((*uint32Flag)(&cfg.surfW), "surface-width", "offscreen surface width in pixels")
	flag.Var((*uint32Flag)(&cfg.surfH), "surface-height", "offscreen surface height in pixels")
	flag.IntVar(&cfg.frames, "frames", 120, "number of frames to run")
	flag.StringVar(&cfg.backend, "backend", render.BackendSoftware, "GPU backend (empty for best available)")
	flag.Float64Var(&cfg.zoom, "zoom", 1, "camera zoom")
	flag.IntVar(&cfg.offsetX, "offset-x", 0, "camera offset x in pixels")
	flag.IntVar(&cfg.offsetY, "offset-y", 0, "camera offset y in pixels")
	flag.Int64Var(&cfg.seed, "noise-seed", 0, "seed the board with Perlin noise (0 uses the modulo pattern)")
	flag.Float64Var(&cfg.noiseScale, "noise-scale", 0.1, "Perlin sample spacing per cell")
	flag.Float64Var(&cfg.noiseThresh, "noise-threshold", 0, "Perlin value above which a cell starts alive")
	flag.StringVar(&cfg.output, "output", "", "write the last frame to this PNG file")
	flag.IntVar(&cfg.scale, "scale", 1, "upscale factor for the PNG snapshot")
	flag.BoolVar(&cfg.strict, "strict", false, "fail if the shader does not link")
	flag.BoolVar(&cfg.verbose, "v", false, "log debug output to stderr")
	flag.BoolVar(&cfg.list, "list", false, "list backends and exit")
	flag.Parse()

	if err := demo(cfg); err != nil {
		log.Fatal(err)
	}
}

// demo runs the universe described by cfg. Everything it acquires is
// released before it returns.
func demo(cfg config) error {
	if cfg.verbose {
		life.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	adopted := render.RegisterHALBackends()
	if cfg.list {
		fmt.Println(strings.Join(render.Backends(), "\n"))
		return nil
	}
	if len(adopted) > 0 {
		log.Printf("Native backends: %s", strings.Join(adopted, ", "))
	}

	surface.Register("demo", 50, surface.Offscreen(cfg.surfW, cfg.surfH), nil)

	opts := []life.Option{life.WithBackend(cfg.backend)}
	if cfg.seed != 0 {
		opts = append(opts, life.WithSeeder(life.NewNoiseSeeder(cfg.seed, cfg.noiseScale, cfg.noiseThresh)))
	}
	if cfg.strict {
		opts = append(opts, life.WithLinkPolicy(render.LinkStrict))
	}

	u, err := life.New("demo", cfg.width, cfg.height, opts...)
	if err != nil {
		return fmt.Errorf("create universe: %w", err)
	}
	defer u.Destroy()

	u.SetZoom(float32(cfg.zoom))
	u.SetOffset(cfg.offsetX, cfg.offsetY)

	if err := run(u, cfg.frames); err != nil {
		return fmt.Errorf("frame loop: %w", err)
	}

	if cfg.output != "" {
		if err := snapshot(u, cfg.output, cfg.scale); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		log.Printf("Snapshot saved to %s", cfg.output)
	}
	return nil
}

// uint32Flag is a flag.Value that rejects values outside uint32.
type uint32Flag uint32

func (f *uint32Flag) String() string { return strconv.FormatUint(uint64(*f), 10) }

func (f *uint32Flag) Set(s string) error {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	*f = uint32Flag(v)
	return nil
}

// run ticks and paints frames times, logging the frame rate once a second.
func run(u *life.Universe, frames int) error {
	start := time.Now()
	lastReport := start
	var lastFrames uint64

	for range frames {
		u.Tick()
		if err := u.Paint(); err != nil {
			return err
		}

		stats := u.Stats()
		if now := time.Now(); now.Sub(lastReport) >= time.Second {
			fps := float64(stats.Frames-lastFrames) / now.Sub(lastReport).Seconds()
			log.Printf("generation %d: %.1f fps (last frame %v)", u.Grid().Generation(), fps, stats.FrameTime)
			lastReport, lastFrames = now, stats.Frames
		}
	}

	elapsed := time.Since(start)
	log.Printf("%d frames in %v on %q, population %d",
		frames, elapsed.Round(time.Millisecond), u.Device().Info().Name, u.Grid().Population())
	return nil
}

// snapshot reads the offscreen target back and writes it as a PNG,
// enlarged scale times with nearest-neighbour sampling.
func snapshot(u *life.Universe, path string, scale int) error {
	target, ok := u.Target().(*render.TextureTarget)
	if !ok {
		return fmt.Errorf("surface %T cannot be read back", u.Target())
	}
	img, err := target.ReadPixels()
	if err != nil {
		return err
	}

	var out image.Image = img
	if scale > 1 {
		b := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		out = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, out); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
