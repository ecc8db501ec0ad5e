// Package mcp exposes the ordinance extractor as MCP tools, so an assistant
// can drive extraction and workbook generation over standard I/O.
package mcp

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/settorestrade/ordinanze-xls/internal/batch"
	"github.com/settorestrade/ordinanze-xls/internal/config"
	"github.com/settorestrade/ordinanze-xls/internal/export"
	"github.com/settorestrade/ordinanze-xls/internal/ordinance"
	"github.com/settorestrade/ordinanze-xls/internal/pdf"
)

// Server represents the MCP server instance.
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	runner     *batch.Runner
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		runner:     batch.NewRunner(pdfService, cfg.Workers),
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	extractTool := mcp.NewTool(
		"ordinanza_extract_file",
		mcp.WithDescription("Extract the structured fields of one traffic-ordinance PDF, including the subject/body consistency checks"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the ordinance PDF"),
		),
	)
	s.mcpServer.AddTool(extractTool, s.handleExtractFile)

	scanTool := mcp.NewTool(
		"ordinanza_scan_directory",
		mcp.WithDescription("List the ordinance PDF files under a directory"),
		mcp.WithString("directory",
			mcp.Description("Directory to scan (uses the configured directory if empty)"),
		),
	)
	s.mcpServer.AddTool(scanTool, s.handleScanDirectory)

	workbookTool := mcp.NewTool(
		"ordinanza_generate_workbook",
		mcp.WithDescription("Extract every ordinance PDF under a directory and write the column-per-document workbook"),
		mcp.WithString("directory",
			mcp.Description("Directory to process (uses the configured directory if empty)"),
		),
		mcp.WithString("output",
			mcp.Description("Workbook output path (uses the configured output path if empty)"),
		),
	)
	s.mcpServer.AddTool(workbookTool, s.handleGenerateWorkbook)

	infoTool := mcp.NewTool(
		"ordinanza_server_info",
		mcp.WithDescription("Get server information and usage guidance"),
	)
	s.mcpServer.AddTool(infoTool, s.handleServerInfo)
}

// Handler functions

func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	read, err := s.pdfService.ReadFile(pdf.ReadFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec := ordinance.Extract(filepath.Base(path), read.Content)
	return mcp.NewToolResultText(formatRecord(filepath.Base(path), read.Pages, rec)), nil
}

func (s *Server) handleScanDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	directory := s.stringArg(request, "directory", s.config.PDFDirectory)

	result, err := s.pdfService.ScanDirectory(pdf.ScanDirectoryRequest{Directory: directory})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.TotalCount == 0 {
		return mcp.NewToolResultText(
			fmt.Sprintf("No ordinance PDF files found in directory: %s", result.Directory)), nil
	}

	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n\nFiles:\n", result.TotalCount, result.Directory)
	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s (%d bytes, modified %s)\n", i+1, file.Name, file.Size, file.ModifiedTime)
	}

	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleGenerateWorkbook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	directory := s.stringArg(request, "directory", s.config.PDFDirectory)
	output := s.stringArg(request, "output", s.config.OutputPath)

	results, err := s.runner.Run(ctx, directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText(
			fmt.Sprintf("Nothing to do: no ordinance PDF files found in %s", directory)), nil
	}

	if err := export.SaveWorkbook(output, batch.Documents(results)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("Workbook written to %s (%d document columns)\n", output, len(results))
	for _, res := range results {
		for _, warning := range res.Warnings() {
			text += fmt.Sprintf("Warning: %s\n", warning)
		}
	}

	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("%s v%s\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Configured directory: %s\n", s.config.PDFDirectory)
	text += fmt.Sprintf("Configured output: %s\n", s.config.OutputPath)
	text += fmt.Sprintf("Max file size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	text += `
Available tools:

• ordinanza_extract_file
  Extract all fields of one ordinance PDF: subject, address, start date,
  duration, Geo Works code, P.G. number, company, transport flags, the
  subject/body consistency verdicts and the revocation note.

• ordinanza_scan_directory
  List the ordinance PDFs under a directory.

• ordinanza_generate_workbook
  Process a whole directory and write the spreadsheet with one column per
  document, sorted by Elix number.

Notes:
- Always use absolute paths.
- Field extraction is heuristic, tuned to the Settore Strade ordinance
  template; a field with no match is reported with its documented empty or
  sentinel value, never as an error.`

	return mcp.NewToolResultText(text), nil
}

// stringArg reads an optional string argument with a default.
func (s *Server) stringArg(request mcp.CallToolRequest, name, fallback string) string {
	args := request.GetArguments()
	if v, ok := args[name].(string); ok && v != "" {
		return v
	}
	return fallback
}

// formatRecord renders a record in the export's row order.
func formatRecord(filename string, pages int, rec ordinance.Record) string {
	text := fmt.Sprintf("Extracted ordinance: %s (%d pages)\n\n", filename, pages)
	text += fmt.Sprintf("n. Elix: %s\n", rec.ElixID)
	text += fmt.Sprintf("OGGETTO: %s\n", rec.Subject)
	text += fmt.Sprintf("INDIRIZZO: %s\n", rec.Address)
	text += fmt.Sprintf("DATA INIZIO: %s\n", rec.StartDate)
	text += fmt.Sprintf("DURATA IN GIORNI: %s\n", rec.DurationDays)
	text += fmt.Sprintf("GEOWORKS: %s\n", rec.GeoworksCode)
	text += fmt.Sprintf("N. di protocollo della richiesta P.G.: %s\n", rec.ProtocolNumber)
	text += fmt.Sprintf("Nome della ditta: %s\n", rec.CompanyName)
	text += fmt.Sprintf("TRASPORTO PUBBLICO URBANO: %s\n", rec.Transport)
	text += fmt.Sprintf("ZTL: %s\n", rec.RestrictedZone)
	text += fmt.Sprintf("DEMANDA: %s\n", rec.TeamDelegation)
	text += fmt.Sprintf("PISTA CICLABILE: %s\n", rec.BikeLane)
	text += fmt.Sprintf("METRO: %s\n", rec.Metro)
	text += fmt.Sprintf("BRESCIA MOBILITA': %s\n", rec.MobilityAgency)
	text += fmt.Sprintf("TAXI: %s\n", rec.Taxi)
	text += fmt.Sprintf("Esito indirizzo: %s\n", rec.AddressVerdict)
	text += fmt.Sprintf("Esito inizio: %s\n", rec.StartVerdict)
	text += fmt.Sprintf("Esito durata: %s\n", rec.DurationVerdict)
	text += fmt.Sprintf("Revoca (se presente): %s\n", rec.Revocation)
	return text
}

// Run starts the MCP server on standard I/O.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting ordinance MCP server in stdio mode")
		log.Printf("PDF directory: %s", s.config.PDFDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
