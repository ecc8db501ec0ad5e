package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settorestrade/ordinanze-xls/internal/config"
	"github.com/settorestrade/ordinanze-xls/internal/ordinance"
	"github.com/settorestrade/ordinanze-xls/internal/pdf"
)

func TestNewServer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PDFDirectory = t.TempDir()

	srv, err := NewServer(cfg, pdf.NewService(cfg.MaxFileSize))
	require.NoError(t, err)
	require.NotNil(t, srv)

	assert.NotNil(t, srv.mcpServer, "MCP server should be set")
	assert.NotNil(t, srv.runner, "batch runner should be set")
}

func TestNewServerNilService(t *testing.T) {
	_, err := NewServer(config.DefaultConfig(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdfService cannot be nil")
}

func TestFormatRecord(t *testing.T) {
	rec := ordinance.Record{
		ElixID:          "2569",
		Subject:         "lavori di scavo in via Trieste 42",
		Address:         "Via Trieste 42",
		StartDate:       "12/05/2025",
		DurationDays:    "3",
		GeoworksCode:    "GW-2025-118",
		ProtocolNumber:  "48122",
		CompanyName:     "Rossi Scavi S.r.l.",
		Transport:       ordinance.TransportAbsent,
		TeamDelegation:  ordinance.TeamDelegationPresent,
		AddressVerdict:  ordinance.AddressOK,
		StartVerdict:    ordinance.StartDateOK,
		DurationVerdict: ordinance.DurationOK,
	}

	text := formatRecord("ORD_2569.pdf", 2, rec)

	for _, want := range []string{
		"ORD_2569.pdf (2 pages)",
		"n. Elix: 2569",
		"INDIRIZZO: Via Trieste 42",
		"DATA INIZIO: 12/05/2025",
		"GEOWORKS: GW-2025-118",
		"DEMANDA: SQ. MULTIDISC. SI",
		"Esito indirizzo: OK Indirizzo",
	} {
		assert.Contains(t, text, want)
	}
}

func TestStringArg(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PDFDirectory = t.TempDir()

	srv, err := NewServer(cfg, pdf.NewService(cfg.MaxFileSize))
	require.NoError(t, err)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"directory": "/data/pdfs",
				"empty":     "",
			},
		},
	}

	assert.Equal(t, "/data/pdfs", srv.stringArg(req, "directory", "fallback"))
	assert.Equal(t, "fallback", srv.stringArg(req, "empty", "fallback"))
	assert.Equal(t, "fallback", srv.stringArg(req, "missing", "fallback"))
}

func TestHandleScanDirectoryEmpty(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PDFDirectory = t.TempDir()

	srv, err := NewServer(cfg, pdf.NewService(cfg.MaxFileSize))
	require.NoError(t, err)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	result, err := srv.handleScanDirectory(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	assert.Contains(t, extractTextFromResult(result), "No ordinance PDF files found")
}

// extractTextFromResult pulls the text payload out of a tool result.
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}
	return ""
}

func TestHandleExtractFileMissingPath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PDFDirectory = t.TempDir()

	srv, err := NewServer(cfg, pdf.NewService(cfg.MaxFileSize))
	require.NoError(t, err)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	result, err := srv.handleExtractFile(context.Background(), request)
	require.NoError(t, err, "a bad argument is a tool error, not a transport error")
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
