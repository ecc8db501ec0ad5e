package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/settorestrade/ordinanze-xls/internal/batch"
	"github.com/settorestrade/ordinanze-xls/internal/config"
	"github.com/settorestrade/ordinanze-xls/internal/export"
	"github.com/settorestrade/ordinanze-xls/internal/mcp"
	"github.com/settorestrade/ordinanze-xls/internal/pdf"
	"github.com/settorestrade/ordinanze-xls/internal/web"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode.
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, log output must not interfere with the MCP protocol.
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// runBatchMode processes the configured directory once and writes the
// workbook.
func runBatchMode(ctx context.Context, cfg *config.Config, pdfService *pdf.Service) error {
	runner := batch.NewRunner(pdfService, cfg.Workers)

	results, err := runner.Run(ctx, cfg.PDFDirectory)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		log.Printf("Nothing to do: no ordinance PDF files found in %s", cfg.PDFDirectory)
		return nil
	}

	for _, res := range results {
		for _, warning := range res.Warnings() {
			log.Printf("Warning: %s", warning)
		}
	}

	if err := export.SaveWorkbook(cfg.OutputPath, batch.Documents(results)); err != nil {
		return err
	}

	log.Printf("Workbook written to %s (%d document columns)", cfg.OutputPath, len(results))
	return nil
}

// runServerMode runs the HTTP upload server with signal handling.
func runServerMode(ctx context.Context, cancel context.CancelFunc, server *web.Server) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Initiating graceful shutdown...")
		cancel()

		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Server stopped successfully")
}

// runStdioMode runs the MCP tool server; the parent process controls the
// lifecycle.
func runStdioMode(ctx context.Context, server *mcp.Server) {
	if err := server.Run(ctx); err != nil {
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && !cfg.IsStdioMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	pdfService := pdf.NewService(cfg.MaxFileSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch {
	case cfg.IsBatchMode():
		if err := runBatchMode(ctx, cfg, pdfService); err != nil {
			log.Fatalf("Batch run failed: %v", err)
		}
	case cfg.IsServerMode():
		server, err := web.NewServer(cfg, pdfService)
		if err != nil {
			log.Fatalf("Failed to create HTTP server: %v", err)
		}
		runServerMode(ctx, cancel, server)
	default:
		server, err := mcp.NewServer(cfg, pdfService)
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}
		runStdioMode(ctx, server)
	}
}

// printVersion prints version information.
func printVersion() {
	fmt.Printf("ordinanze-xls\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
