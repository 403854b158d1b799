package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/uploader"
)

func main() {
	var (
		serverURL   string
		token       string
		filePath    string
		mediaCtx    string
		entityID    string
		contentType string
		maxDuration int
	)

	flag.StringVar(&serverURL, "server", "http://localhost:8080", "Media API base URL")
	flag.StringVar(&token, "token", "", "Bearer token (optional)")
	flag.StringVar(&filePath, "file", "", "Path to the file to upload")
	flag.StringVar(&mediaCtx, "context", "", "Upload context (one of: recipe, step, profile)")
	flag.StringVar(&entityID, "entity", "", "Entity UUID the asset belongs to (optional)")
	flag.StringVar(&contentType, "content-type", "", "MIME type override; detected from the file extension when empty")
	flag.IntVar(&maxDuration, "max-duration", 0, "Maximum allowed video duration in seconds (optional)")
	flag.Parse()

	if filePath == "" {
		log.Fatal("-file flag is required")
	}
	if mediaCtx == "" {
		log.Fatal("-context flag is required")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	file, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("failed to open file: %v", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		log.Fatalf("failed to stat file: %v", err)
	}

	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filePath))
		if contentType == "" {
			log.Fatal("could not detect content type, pass -content-type")
		}
	}

	input := uploader.UploadInput{
		Context:     mediaCtx,
		FileName:    filepath.Base(filePath),
		ContentType: contentType,
		SizeBytes:   info.Size(),
	}
	if entityID != "" {
		id, err := uuid.Parse(entityID)
		if err != nil {
			log.Fatalf("invalid -entity value: %v", err)
		}
		input.EntityID = &id
	}
	if maxDuration > 0 {
		input.MaxDurationSeconds = &maxDuration
	}

	client := uploader.NewClient(serverURL, token, logger)
	session := uploader.NewSession(client, uploader.WithProgressSink(
		uploader.SinkFunc(func(percent int) {
			fmt.Fprintf(os.Stderr, "\rtransferring... %3d%%", percent)
			if percent >= 100 {
				fmt.Fprintln(os.Stderr)
			}
		}),
	))

	asset, err := session.Upload(ctx, input, file)
	if err != nil {
		log.Fatalf("upload failed (%s): %v", session.Status(), err)
	}

	fmt.Printf("asset:     %s\n", asset.ID)
	fmt.Printf("status:    %s\n", asset.Status)
	fmt.Printf("url:       %s\n", asset.URL)
	if asset.ThumbnailURL != "" {
		fmt.Printf("thumbnail: %s\n", asset.ThumbnailURL)
	}
	if asset.DurationSeconds != nil {
		fmt.Printf("duration:  %.1fs\n", *asset.DurationSeconds)
	}
	if asset.Width != nil && asset.Height != nil {
		fmt.Printf("size:      %dx%d\n", *asset.Width, *asset.Height)
	}
}
