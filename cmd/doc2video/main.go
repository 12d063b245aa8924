package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/doc2video/internal/config"
	"github.com/nguyentantai21042004/doc2video/internal/logger"
	"github.com/nguyentantai21042004/doc2video/internal/pipeline"
	"github.com/nguyentantai21042004/doc2video/internal/watcher"
	"github.com/nguyentantai21042004/doc2video/pkg/executor"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "document to convert (.pdf, .txt or .md)")
		outDir     = flag.String("outdir", "output", "directory for the deck, slide images and video")
		configPath = flag.String("config", "config.yaml", "YAML config file (optional)")
		envFile    = flag.String("env", ".env", "dotenv file with GEMINI_API_KEY (optional)")
		watch      = flag.Bool("watch", false, "watch paths.input and convert every new document")
	)
	flag.Parse()

	if *inputPath == "" && !*watch {
		fmt.Fprintln(os.Stderr, "doc2video: -input is required unless -watch is set")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.LoadEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load environment: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info(ctx, "Shutdown signal received")
		cancel()
	}()

	exec := executor.New()
	if err := preflight(cfg, exec); err != nil {
		log.Error(ctx, "Preflight failed: %v", err)
		os.Exit(1)
	}

	p, err := buildPipeline(cfg, exec, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		os.Exit(1)
	}

	if *watch {
		if err := runWatch(ctx, cfg, p, *outDir, log); err != nil {
			log.Error(ctx, "Watcher error: %v", err)
			os.Exit(1)
		}
		return
	}

	runCtx := logger.WithRunID(ctx, uuid.NewString())
	log.Info(runCtx, "doc2video on %s/%s, narration: %s, render: %s",
		runtime.GOOS, runtime.GOARCH, cfg.Narration.Provider, cfg.Render.Mode)

	if _, err := p.Run(runCtx, *inputPath, *outDir); err != nil {
		fmt.Fprintf(os.Stderr, "doc2video: %v\n", err)
		os.Exit(1)
	}
}

// runWatch converts each document dropped into paths.input into outDir/<document name>/
func runWatch(ctx context.Context, cfg *config.Config, p pipeline.Pipeline, outDir string, log logger.Logger) error {
	if err := ensureDirectories(cfg.Paths.Input, outDir); err != nil {
		return err
	}

	handler := func(ctx context.Context, documentPath string) error {
		runCtx := logger.WithRunID(ctx, uuid.NewString())
		name := strings.TrimSuffix(filepath.Base(documentPath), filepath.Ext(documentPath))
		_, err := p.Run(runCtx, documentPath, filepath.Join(outDir, name))
		return err
	}

	w, err := watcher.New(cfg.Paths.Input, handler, watcher.Options{
		MaxConcurrent: cfg.Performance.MaxConcurrent,
	}, log)
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "doc2video is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s/<document>", outDir)
	log.Info(ctx, "  - Narration: %s", cfg.Narration.Provider)
	log.Info(ctx, "  - Slide images: %s", cfg.Render.Mode)
	log.Info(ctx, "  - FFmpeg: %s encoder, %dx%d@%d", cfg.FFmpeg.Encoder, cfg.Timeline.Width, cfg.Timeline.Height, cfg.Timeline.FPS)
	log.Info(ctx, "  - Concurrent: %d documents at once", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info(ctx, "doc2video stopped")
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
