// Command storyreel composes a narrated slideshow video from an audio
// track, an ordered image set, and optional caption text. It runs a single
// composition per invocation; --check reports encoder availability and
// exits.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/storyreel/storyreel/internal/assets"
	"github.com/storyreel/storyreel/internal/compose"
	"github.com/storyreel/storyreel/internal/config"
	"github.com/storyreel/storyreel/internal/display"
	"github.com/storyreel/storyreel/internal/ffmpeg"
	"github.com/storyreel/storyreel/internal/logging"
	"github.com/storyreel/storyreel/internal/metrics"
	"github.com/storyreel/storyreel/internal/probe"
	"github.com/storyreel/storyreel/internal/storage"
)

// version is set at build time via -ldflags.
var version = "0.1.0-dev"

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	var (
		audioRef    = flag.String("audio", "", "locator of the narration audio (required)")
		imagesRef   = flag.String("images", "", "inline JSON image list or locator to one")
		captionRef  = flag.String("caption", "", "optional locator of caption text")
		duration    = flag.Float64("duration", 0, "explicit total duration in seconds (0 = derive from audio)")
		storePath   = flag.String("store", "", "base directory of the filesystem store (overrides env)")
		checkOnly   = flag.Bool("check", false, "report encoder availability and exit")
		verbose     = flag.Bool("verbose", false, "enable debug logging")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("storyreel v" + version)
		return 0
	}

	log := logging.NewConsole(*verbose)

	cfg := config.Default()
	if err := config.ApplyEnv(&cfg); err != nil {
		log.Error().Err(err).Msg("invalid environment")
		return 1
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	if *checkOnly {
		return runCheck(log)
	}

	if *audioRef == "" {
		fmt.Fprintln(os.Stderr, "storyreel: -audio is required")
		flag.Usage()
		return 1
	}

	fileStore, err := storage.NewFileStore(cfg.StorePath)
	if err != nil {
		log.Error().Err(err).Msg("cannot open store")
		return 1
	}
	resolver := &storage.Resolver{
		Store:   fileStore,
		Fetcher: storage.NewHTTPFetcher(),
	}

	m := metrics.New(prometheus.NewRegistry())
	composer := compose.New(&cfg, resolver, m, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := composer.Compose(ctx, assets.Request{
		AudioRef:   *audioRef,
		ImagesRef:  *imagesRef,
		CaptionRef: *captionRef,
		Duration:   *duration,
	})

	printResult(result)
	if result.Status != compose.StatusSuccess {
		return 1
	}
	return 0
}

// runCheck reports tool availability the way the composer will see it.
// Informational only; a missing encoder still exits 0 because the pipeline
// degrades to the placeholder tier rather than failing.
func runCheck(log zerolog.Logger) int {
	runner := ffmpeg.ExecRunner{}
	if runner.Available() {
		log.Info().Msg("ffmpeg: available")
	} else {
		log.Warn().Msg("ffmpeg: not found (compositions will emit placeholder output)")
	}

	prober := probe.FFProbe{}
	if prober.Available() {
		log.Info().Msg("ffprobe: available")
	} else {
		log.Warn().Msg("ffprobe: not found (audio duration falls back to default)")
	}
	return 0
}

func printResult(r compose.Result) {
	if r.Status != compose.StatusSuccess {
		fmt.Fprintf(os.Stderr, "composition failed: %s\n", r.Error)
		if data, err := json.MarshalIndent(r, "", "  "); err == nil {
			fmt.Fprintln(os.Stderr, string(data))
		}
		return
	}

	fmt.Printf("video:    %s\n", r.VideoLocation)
	if r.PublicLocation != "" {
		fmt.Printf("public:   %s\n", r.PublicLocation)
	}
	fmt.Printf("tier:     %s\n", r.Tier)
	fmt.Printf("duration: %s\n", display.FormatSeconds(r.Duration))
	fmt.Printf("size:     %s\n", display.FormatBytes(r.ByteSize))
	fmt.Printf("frame:    %dx%d, %d image(s)\n", r.Width, r.Height, r.ImageCountUsed)
	for _, w := range r.Warnings {
		fmt.Printf("warning:  %s\n", w)
	}
}
