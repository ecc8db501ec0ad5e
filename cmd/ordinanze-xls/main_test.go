package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/settorestrade/ordinanze-xls/internal/config"
	"github.com/settorestrade/ordinanze-xls/internal/pdf"
)

func TestSetupLoggingBatchMode(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	defer log.SetFlags(log.LstdFlags)

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeBatch

	setupLogging(cfg)

	if log.Flags()&log.Lshortfile == 0 {
		t.Error("batch mode logging should include file locations")
	}
}

func TestRunBatchModeEmptyDirectory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PDFDirectory = t.TempDir()
	cfg.OutputPath = filepath.Join(t.TempDir(), "out.xlsx")

	err := runBatchMode(context.Background(), cfg, pdf.NewService(cfg.MaxFileSize))
	if err != nil {
		t.Fatalf("runBatchMode on empty directory = %v, want nil", err)
	}

	// Nothing to do means no workbook.
	if _, err := os.Stat(cfg.OutputPath); !os.IsNotExist(err) {
		t.Errorf("workbook was written for an empty directory")
	}
}

func TestRunBatchModeWritesWorkbook(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PDFDirectory = t.TempDir()
	cfg.OutputPath = filepath.Join(t.TempDir(), "out.xlsx")

	// An undecodable PDF still yields a workbook column.
	path := filepath.Join(cfg.PDFDirectory, "ORD_1.pdf")
	if err := os.WriteFile(path, []byte("not really a pdf"), 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if err := runBatchMode(context.Background(), cfg, pdf.NewService(cfg.MaxFileSize)); err != nil {
		t.Fatalf("runBatchMode failed: %v", err)
	}

	if _, err := os.Stat(cfg.OutputPath); err != nil {
		t.Errorf("workbook was not written: %v", err)
	}
}
