package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	docrouter "github.com/analytiq-hub/docrouter-go"
	"github.com/analytiq-hub/docrouter-go/internal/export"
	"github.com/analytiq-hub/docrouter-go/internal/worker"
)

var version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, `docrouter %s - DocRouter client

Usage:
  docrouter list [skip] [limit]
  docrouter upload <file> [tagID,...]
  docrouter get <documentID> [original|pdf] <outfile>
  docrouter delete <documentID>
  docrouter tags
  docrouter extract <documentID> <promptID>
  docrouter export <schemaRevID> <promptRevID> <outfile.xlsx> <documentID>...

Environment:
  DOCROUTER_URL    API base URL (default http://localhost:8000)
  DOCROUTER_TOKEN  organization bearer token (required)
  DOCROUTER_ORG    organization ID (required)
  REDIS_URL        optional shared cache/lock backend
`, version)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	baseURL := getEnv("DOCROUTER_URL", "http://localhost:8000")
	token := getEnv("DOCROUTER_TOKEN", "")
	orgID := getEnv("DOCROUTER_ORG", "")
	redisURL := getEnv("REDIS_URL", "")

	if token == "" || orgID == "" {
		logger.Error("DOCROUTER_TOKEN and DOCROUTER_ORG are required")
		os.Exit(1)
	}

	tokens, err := docrouter.NewJWTTokenProvider(token, orgID)
	if err != nil {
		// Opaque API keys are not JWTs; fall back to serving them as-is.
		tokens = docrouter.NewStaticTokenProvider(token)
	}

	var opts []docrouter.Option
	if redisURL != "" {
		redisOpts, err := goredis.ParseURL(redisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		opts = append(opts, docrouter.WithRedis(goredis.NewClient(redisOpts)))
	}

	client, err := docrouter.NewClient(baseURL, orgID, tokens, opts...)
	if err != nil {
		logger.Error("create client", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx, client, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *docrouter.Client, logger *slog.Logger, command string, args []string) error {
	switch command {
	case "list":
		return runList(ctx, client, args)
	case "upload":
		return runUpload(ctx, client, args)
	case "get":
		return runGet(ctx, client, args)
	case "delete":
		return runDelete(ctx, client, logger, args)
	case "tags":
		return runTags(ctx, client)
	case "extract":
		return runExtract(ctx, client, logger, args)
	case "export":
		return runExport(ctx, client, logger, args)
	default:
		usage()
		return nil
	}
}

func runList(ctx context.Context, client *docrouter.Client, args []string) error {
	opts := docrouter.ListOptions{}
	if len(args) > 0 {
		opts.Skip, _ = strconv.Atoi(args[0])
	}
	if len(args) > 1 {
		opts.Limit, _ = strconv.Atoi(args[1])
	}

	list, err := client.Documents().List(ctx, opts)
	if err != nil {
		return err
	}

	for _, doc := range list.Documents {
		fmt.Printf("%s\t%s\t%s\n", doc.ID, doc.State, doc.Name)
	}
	fmt.Printf("%d documents total\n", list.TotalCount)
	return nil
}

func runUpload(ctx context.Context, client *docrouter.Client, args []string) error {
	if len(args) < 1 {
		usage()
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var tagIDs []string
	if len(args) > 1 {
		tagIDs = strings.Split(args[1], ",")
	}

	uploaded, err := client.Documents().Upload(ctx, []docrouter.DocumentUpload{{
		Name:    filepath.Base(args[0]),
		Content: content,
		TagIDs:  tagIDs,
	}})
	if err != nil {
		return err
	}
	if len(uploaded) == 0 {
		return fmt.Errorf("document was rejected by the server")
	}

	fmt.Println(uploaded[0].ID)
	return nil
}

func runGet(ctx context.Context, client *docrouter.Client, args []string) error {
	if len(args) < 3 {
		usage()
	}

	doc, err := client.Documents().Get(ctx, args[0], docrouter.FileType(args[1]))
	if err != nil {
		return err
	}

	if err := os.WriteFile(args[2], doc.Content, 0o644); err != nil {
		return err
	}
	fmt.Printf("%s\t%s\t%d bytes\n", doc.Metadata.ID, doc.Metadata.Name, len(doc.Content))
	return nil
}

func runDelete(ctx context.Context, client *docrouter.Client, logger *slog.Logger, args []string) error {
	if len(args) < 1 {
		usage()
	}

	err := client.Documents().Delete(ctx, args[0])
	if errors.Is(err, docrouter.ErrNotFound) {
		// Already gone; treat repeated deletes as success.
		logger.Warn("document not found", "document_id", args[0])
		return nil
	}
	return err
}

func runTags(ctx context.Context, client *docrouter.Client) error {
	tags, err := client.Tags().List(ctx)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		fmt.Printf("%s\t%s\n", tag.ID, tag.Name)
	}
	return nil
}

func runExtract(ctx context.Context, client *docrouter.Client, logger *slog.Logger, args []string) error {
	if len(args) < 2 {
		usage()
	}
	documentID := args[0]

	prompt, err := client.Prompts().ResolveLatest(ctx, args[1])
	if err != nil {
		return err
	}

	handle, err := client.Extractions().Run(ctx, documentID, prompt.PromptRevID)
	if err != nil {
		return err
	}
	logger.Info("extraction started",
		"document_id", handle.DocumentID,
		"prompt_revid", handle.PromptRevID,
		"status", handle.Status,
	)

	poller := worker.NewPoller(worker.PollerConfig{
		Extractions: client.Extractions(),
		Logger:      logger,
		Interval:    2 * time.Second,
	})
	results, err := poller.Await(ctx, []docrouter.ExtractionKey{
		{DocumentID: documentID, PromptRevID: prompt.PromptRevID},
	})
	if err != nil {
		return err
	}

	for _, job := range results {
		if job.Status == docrouter.JobStatusFailed {
			return fmt.Errorf("extraction failed: %s", job.Error)
		}
		for field, value := range job.Result {
			fmt.Printf("%s\t%s\n", field, value.String())
		}
	}
	return nil
}

func runExport(ctx context.Context, client *docrouter.Client, logger *slog.Logger, args []string) error {
	if len(args) < 4 {
		usage()
	}

	exporter := export.NewExporter(export.Config{
		Schemas:     client.Schemas(),
		Extractions: client.Extractions(),
		Logger:      logger,
	})

	data, err := exporter.ResultsXLSX(ctx, args[0], args[1], args[3:])
	if err != nil {
		return err
	}
	return os.WriteFile(args[2], data, 0o644)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
