// Package main is the sqlrag CLI entry point.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/sqlrag/internal/chat"
	"github.com/hyperjump/sqlrag/internal/cli"
	"github.com/hyperjump/sqlrag/internal/config"
	"github.com/hyperjump/sqlrag/internal/embedding"
	"github.com/hyperjump/sqlrag/internal/extract"
	"github.com/hyperjump/sqlrag/internal/indexer"
	"github.com/hyperjump/sqlrag/internal/llm"
	"github.com/hyperjump/sqlrag/internal/models"
	"github.com/hyperjump/sqlrag/internal/server"
	"github.com/hyperjump/sqlrag/internal/storage"
	"github.com/hyperjump/sqlrag/internal/vector"
	"github.com/hyperjump/sqlrag/internal/watcher"
	"github.com/hyperjump/sqlrag/pkg/utils"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/sqlrag/config.yaml"
	defaultServerURL  = "http://localhost:8080"
)

// loadConfig loads config from path. When path is the default, a config.yaml in the
// current directory takes precedence so that "sqlrag server" from a project dir uses
// the project's config. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	// API keys may live in a .env next to the binary's working dir.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ingest":
		runIngest()
	case "ask":
		runAsk()
	case "chat":
		runChat()
	case "status":
		runStatus()
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("sqlrag version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// setup loads config, creates the logger and initializes components, exiting on failure.
func setup(configPath string, debugFlag bool) (*config.Config, string, *zap.Logger, *Components) {
	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || debugFlag
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	return cfg, resolved, logger, components
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (ingestion, watch events, queries)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, logger, components := setup(*configPath, *debug)
	defer logger.Sync()
	defer components.Close()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("embedding_provider", cfg.Embedding.Provider),
		zap.String("generation_model", cfg.Generation.Model),
	)

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	watchSvc := newInboxWatcher(watchCtx, cfg, components.Ingestor, logger)
	if err := watchSvc.Start(watchCtx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	watchSvc.SyncExistingFiles()

	srv := server.NewServer(
		components.Engine,
		components.Ingestor,
		components.Sessions,
		components.Store,
		cfg,
		logger,
		server.WithWatch(watchSvc, resolvedConfigPath),
	)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	watchSvc.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// newInboxWatcher builds a watcher over the configured inbox directories that
// ingests each settled file.
func newInboxWatcher(ctx context.Context, cfg *config.Config, ingestor *indexer.Ingestor, logger *zap.Logger) *watcher.Watcher {
	return watcher.NewWatcher(
		watcher.Options{
			Roots:      cfg.Watch.Directories,
			Extensions: cfg.Watch.Extensions,
			Recursive:  cfg.Watch.RecursiveOrDefault(),
		},
		func(path string) {
			report, err := ingestor.IngestFile(ctx, path)
			if err != nil {
				logger.Warn("watch ingest failed", zap.String("path", path), zap.Error(err))
				return
			}
			logger.Info("watch ingested file", zap.String("path", path), zap.Int("chunks", report.Chunks))
		},
		watcher.WithLogger(logger),
	)
}

// argsReorder moves any flags (and their values) that appear after positional
// arguments to the front so that flag.Parse sees them. Go's flag package stops at
// the first non-flag argument, so "sqlrag ask \"query\" -output json" would
// otherwise leave -output unparsed.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// buildQuery joins positional args so multi-word questions work with or without quotes.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func parseFormat(s string) cli.OutputFormat {
	format, err := cli.ParseOutputFormat(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return format
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = ingest directly into the database)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	if fs.NArg() < 1 {
		fmt.Println("Usage: sqlrag ingest [flags] <file-or-directory>...")
		os.Exit(1)
	}
	format := parseFormat(*outputFormat)
	ctx := context.Background()

	var report *models.IngestReport
	if *serverURL != "" {
		files, err := collectFiles(fs.Args(), extract.NewExtractor())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ingest failed: %v\n", err)
			os.Exit(1)
		}
		report, err = newAPIClient(*serverURL).ingest(ctx, files)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ingest failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		_, _, logger, components := setup(*configPath, false)
		defer logger.Sync()
		defer components.Close()
		var err error
		report, err = components.Ingestor.IngestPaths(ctx, fs.Args())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ingest failed: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cli.WriteIngestReport(os.Stdout, report, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// collectFiles expands directories into the supported files beneath them.
// Files named explicitly are kept regardless of type so the server can apply its policy.
func collectFiles(paths []string, ex *extract.Extractor) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && ex.Supports(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = answer in-process)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	showMatches := fs.Bool("matches", false, "print the retrieved context chunks")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	query := buildQuery(fs.Args())
	if query == "" {
		fmt.Println("Usage: sqlrag ask [flags] <question>")
		os.Exit(1)
	}
	format := parseFormat(*outputFormat)
	ctx := context.Background()

	conv, closeConv := openConversation(ctx, *configPath, *serverURL)
	defer closeConv()
	resp, err := conv.Ask(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteAnswer(os.Stdout, resp, format, *showMatches); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runChat() {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = answer in-process)")
	showMatches := fs.Bool("matches", false, "print the retrieved context chunks")
	_ = fs.Parse(os.Args[2:])

	ctx := context.Background()
	conv, closeConv := openConversation(ctx, *configPath, *serverURL)
	defer closeConv()
	if err := chatLoop(ctx, conv, os.Stdin, os.Stdout, *showMatches); err != nil {
		fmt.Fprintf(os.Stderr, "Chat failed: %v\n", err)
		os.Exit(1)
	}
}

// openConversation starts a conversation on the server at serverURL, or in-process
// when serverURL is empty. The returned func releases it.
func openConversation(ctx context.Context, configPath, serverURL string) (conversation, func()) {
	if serverURL != "" {
		conv, _, err := newRemoteConversation(ctx, newAPIClient(serverURL))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
			os.Exit(1)
		}
		return conv, func() { _ = conv.Close(context.Background()) }
	}
	_, _, logger, components := setup(configPath, false)
	conv := &localConversation{engine: components.Engine, session: components.Sessions.Create()}
	return conv, func() {
		components.Close()
		_ = logger.Sync()
	}
}

const chatHelp = "Commands: /new starts a new chat, /history prints the conversation, /quit exits."

// chatLoop reads questions line by line from in and writes answers to out until
// input ends or /quit is entered. A failed turn is reported and the loop continues.
func chatLoop(ctx context.Context, conv conversation, in io.Reader, out io.Writer, showMatches bool) error {
	history, err := conv.History(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, chatHelp)
	cli.WriteHistory(out, history)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/help":
			fmt.Fprintln(out, chatHelp)
			continue
		case "/new":
			history, err := conv.Reset(ctx)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			cli.WriteHistory(out, history)
			continue
		case "/history":
			history, err := conv.History(ctx)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			cli.WriteHistory(out, history)
			continue
		}
		resp, err := conv.Ask(ctx, line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprint(out, "AI: ")
		if err := cli.WriteAnswer(out, resp, cli.OutputText, showMatches); err != nil {
			return err
		}
	}
}

// statusConfigResponse holds configuration info returned by status.
type statusConfigResponse struct {
	DatabasePath      string `json:"database_path,omitempty"`
	EmbeddingProvider string `json:"embedding_provider,omitempty"`
	GenerationModel   string `json:"generation_model,omitempty"`
	ChunkSize         int    `json:"chunk_size,omitempty"`
	ChunkOverlap      int    `json:"chunk_overlap,omitempty"`
	TopK              int    `json:"top_k,omitempty"`
	Retriever         string `json:"retriever,omitempty"`
	UnsupportedPolicy string `json:"unsupported_policy,omitempty"`
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Records        int64                 `json:"records"`
	Sessions       int                   `json:"sessions"`
	DiskUsageBytes *int64                `json:"disk_usage_bytes,omitempty"`
	Config         *statusConfigResponse `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = read the database directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])
	format := parseFormat(*outputFormat)

	var status *statusResponse
	if *serverURL != "" {
		res, err := newAPIClient(*serverURL).status(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = res
	} else {
		res, err := localStatus(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = res
	}
	if err := writeStatus(os.Stdout, status, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// localStatus reads the record count straight from the database without
// loading embedding or generation models.
func localStatus(configPath string) (*statusResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	records, err := store.Count(context.Background())
	if err != nil {
		return nil, err
	}
	status := &statusResponse{
		Records: records,
		Config: &statusConfigResponse{
			DatabasePath:      cfg.Storage.DatabasePath,
			EmbeddingProvider: cfg.Embedding.Provider,
			GenerationModel:   cfg.Generation.Model,
			ChunkSize:         cfg.Chunking.Size,
			ChunkOverlap:      cfg.Chunking.Overlap,
			TopK:              cfg.Retrieval.TopK,
			Retriever:         cfg.Retrieval.Retriever,
			UnsupportedPolicy: cfg.Ingest.UnsupportedPolicy,
		},
	}
	if diskBytes, err := storage.DiskUsageBytes(storage.DatabaseFiles(cfg.Storage.DatabasePath)...); err == nil {
		status.DiskUsageBytes = &diskBytes
	}
	return status, nil
}

func writeStatus(w io.Writer, status *statusResponse, format cli.OutputFormat) error {
	if format == cli.OutputJSON {
		return cli.WriteJSON(w, status)
	}
	fmt.Fprintf(w, "records:            %d   # stored chunk embeddings\n", status.Records)
	fmt.Fprintf(w, "sessions:           %d   # open conversations\n", status.Sessions)
	if status.DiskUsageBytes != nil {
		fmt.Fprintf(w, "disk_usage_bytes:   %d   # database on disk\n", *status.DiskUsageBytes)
	}
	if c := status.Config; c != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "# configuration")
		fmt.Fprintf(w, "database_path:      %s\n", c.DatabasePath)
		fmt.Fprintf(w, "embedding_provider: %s\n", c.EmbeddingProvider)
		fmt.Fprintf(w, "generation_model:   %s\n", c.GenerationModel)
		fmt.Fprintf(w, "chunk_size:         %d\n", c.ChunkSize)
		fmt.Fprintf(w, "chunk_overlap:      %d\n", c.ChunkOverlap)
		fmt.Fprintf(w, "top_k:              %d\n", c.TopK)
		fmt.Fprintf(w, "retriever:          %s\n", c.Retriever)
		fmt.Fprintf(w, "unsupported_policy: %s\n", c.UnsupportedPolicy)
	}
	return nil
}

func runWatch() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: sqlrag watch <add|remove|list> [path]")
		fmt.Println("  sqlrag watch add <path>     Add inbox directory and ingest its files")
		fmt.Println("  sqlrag watch remove <path>  Stop watching a directory")
		fmt.Println("  sqlrag watch list           List watched directories")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	_ = fs.Parse(os.Args[3:])
	client := newAPIClient(*serverURL)
	ctx := context.Background()

	switch sub {
	case "add":
		if fs.NArg() < 1 {
			fmt.Println("Usage: sqlrag watch add <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(fs.Arg(0))
		body := map[string]interface{}{"path": path, "sync": true}
		if err := client.doJSON(ctx, http.MethodPost, "/api/v1/watch/directories", body, nil); err != nil {
			fmt.Printf("Add failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added: %s\n", path)
	case "remove":
		if fs.NArg() < 1 {
			fmt.Println("Usage: sqlrag watch remove <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(fs.Arg(0))
		if err := client.doJSON(ctx, http.MethodDelete, "/api/v1/watch/directories?path="+url.QueryEscape(path), nil, nil); err != nil {
			fmt.Printf("Remove failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed: %s\n", path)
	case "list":
		var out struct {
			Directories []string `json:"directories"`
		}
		if err := client.doJSON(ctx, http.MethodGet, "/api/v1/watch/directories", nil, &out); err != nil {
			fmt.Printf("List failed: %v\n", err)
			os.Exit(1)
		}
		for _, d := range out.Directories {
			fmt.Println(d)
		}
	default:
		fmt.Printf("Unknown watch subcommand: %s\n", sub)
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Store     *storage.SQLiteStore
	Embedder  embedding.Embedder
	Generator llm.Generator
	Retriever vector.Retriever
	Engine    *chat.Engine
	Ingestor  *indexer.Ingestor
	Sessions  *chat.Sessions
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	c := &Components{Store: store}

	c.Embedder, err = newEmbedder(&cfg.Embedding, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	generator, err := llm.NewOpenAIGenerator(llm.Config{
		BaseURL:     cfg.Generation.BaseURL,
		APIKey:      config.APIKey(cfg.Generation.APIKeyEnv),
		Model:       cfg.Generation.Model,
		Temperature: cfg.Generation.Temperature,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}
	c.Generator = generator

	c.Retriever, err = vector.NewRetriever(cfg.Retrieval.Retriever)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize retriever: %w", err)
	}

	policy, err := indexer.ParsePolicy(cfg.Ingest.UnsupportedPolicy)
	if err != nil {
		c.Close()
		return nil, err
	}
	chunker := indexer.NewChunker(cfg.Chunking.Size, cfg.Chunking.Overlap, cfg.Chunking.Separator)
	c.Ingestor = indexer.NewIngestor(store, c.Embedder, chunker,
		indexer.WithPolicy(policy),
		indexer.WithLogger(logger),
	)

	c.Engine = chat.NewEngine(store, c.Embedder, c.Retriever, c.Generator,
		chat.WithTopK(cfg.Retrieval.TopK),
		chat.WithHistoryWindow(cfg.Chat.MaxHistoryMessages),
		chat.WithRejectConcurrent(cfg.Chat.RejectConcurrent),
		chat.WithLogger(logger),
	)
	c.Sessions = chat.NewSessions(cfg.Chat.Greeting)

	logger.Debug("components initialized",
		zap.String("embedding_provider", cfg.Embedding.Provider),
		zap.Int("embedding_dimensions", c.Embedder.Dimensions()),
		zap.String("generation_model", generator.Model()),
		zap.Int("chunk_size", chunker.Size()),
		zap.Int("chunk_overlap", chunker.Overlap()),
		zap.String("retriever", c.Retriever.Type()),
		zap.String("unsupported_policy", policy.String()),
	)
	return c, nil
}

// newEmbedder creates the configured embedding provider. An ONNX model that
// cannot be loaded falls back to the mock embedder so the pipeline still runs.
func newEmbedder(cfg *config.EmbeddingConfig, logger *zap.Logger) (embedding.Embedder, error) {
	switch cfg.Provider {
	case "mock":
		return embedding.NewMockEmbedder(cfg.Dimensions), nil
	case "openai":
		return embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  config.APIKey(cfg.APIKeyEnv),
			Model:   cfg.Model,
		})
	case "onnx":
		onnxEmbedder, err := embedding.NewONNXEmbedder(cfg.ModelPath, cfg.Dimensions, cfg.MaxTokens)
		if err != nil {
			logger.Warn("onnx embedder unavailable, falling back to mock embeddings",
				zap.String("model_path", cfg.ModelPath),
				zap.Error(err))
			return embedding.NewMockEmbedder(cfg.Dimensions), nil
		}
		return onnxEmbedder, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}

func printUsage() {
	fmt.Println(`sqlrag - Retrieval-augmented chat over your documents, backed by SQLite

Usage:
  sqlrag server [flags]               Start the HTTP server and inbox watcher
  sqlrag ingest [flags] <path>...     Ingest files or directories
  sqlrag ask [flags] <question>       Ask one question in a fresh conversation
  sqlrag chat [flags]                 Interactive conversation (/new, /history, /quit)
  sqlrag status [flags]               Show record count and configuration
  sqlrag watch <add|remove|list>      Manage watched inbox directories
  sqlrag version                      Show version
  sqlrag help                         Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/sqlrag/config.yaml)
  --debug            Enable debug logging

Ingest/Ask/Chat Flags:
  --config string    Config file path
  --server string    Server URL. Empty (default) runs the pipeline in-process.
  --output string    Output format: text or json (ingest, ask)
  --matches          Print retrieved context chunks (ask, chat)

Status Flags:
  --config string    Config file path (for direct database mode)
  --server string    Server URL (default: http://localhost:8080). Use --server "" to read the database directly.
  --output string    Output format: text or json (default: text)

Watch Flags:
  --server string    Server URL (default: http://localhost:8080)

Examples:
  sqlrag server
  sqlrag ingest ./docs report.pdf
  sqlrag ask "what did the cat do?"
  sqlrag ask --matches --output json "what did the cat do?"
  sqlrag chat --server http://localhost:8080
  sqlrag status --server ""
  sqlrag watch add /path/to/inbox`)
}
