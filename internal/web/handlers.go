package web

import (
	"bytes"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/settorestrade/ordinanze-xls/internal/batch"
	"github.com/settorestrade/ordinanze-xls/internal/export"
	"github.com/settorestrade/ordinanze-xls/internal/normalize"
	"github.com/settorestrade/ordinanze-xls/internal/ordinance"
	"github.com/settorestrade/ordinanze-xls/internal/pdf"
)

// advisoryUploadLimit is a soft limit only: uploads beyond it are accepted
// and merely logged.
const advisoryUploadLimit = 3

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleWorkbook handles POST /api/ordinanze/workbook: multipart PDFs in,
// sorted workbook out.
func (s *Server) handleWorkbook(c *gin.Context) {
	results, ok := s.processUploads(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, batch.Documents(results)); err != nil {
		errorResponse(c, http.StatusInternalServerError, "EXPORT_FAILED",
			fmt.Sprintf("Failed to build workbook: %v", err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ordinanze.xlsx"`)
	c.Data(http.StatusOK, workbookContentType, buf.Bytes())
}

// handleRecords handles POST /api/ordinanze/records: same intake as the
// workbook endpoint, but returns the records and per-file warnings as JSON.
func (s *Server) handleRecords(c *gin.Context) {
	results, ok := s.processUploads(c)
	if !ok {
		return
	}

	payload := make([]gin.H, 0, len(results))
	for _, res := range results {
		entry := gin.H{
			"filename": res.Filename,
			"record":   recordPayload(res.Record),
			"warnings": res.Warnings(),
		}
		if res.Err != nil {
			entry["error"] = res.Err.Error()
		}
		payload = append(payload, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payload,
	})
}

// processUploads reads the multipart form, extracts a record per uploaded
// PDF and returns the Elix-sorted results. A false return means an error
// response has already been written.
func (s *Server) processUploads(c *gin.Context) ([]batch.Result, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_FORM",
			fmt.Sprintf("Failed to parse multipart form: %v", err))
		return nil, false
	}

	files := form.File["files"]
	if len(files) == 0 {
		errorResponse(c, http.StatusBadRequest, "MISSING_FILES",
			"At least one PDF in the 'files' field is required")
		return nil, false
	}
	if len(files) > advisoryUploadLimit {
		log.Printf("upload of %d files exceeds the advisory limit of %d, processing anyway",
			len(files), advisoryUploadLimit)
	}

	results := make([]batch.Result, 0, len(files))
	for _, fh := range files {
		results = append(results, s.processUpload(c, fh))
	}
	batch.SortResults(results)

	return results, true
}

// processUpload extracts one uploaded document. Failures are isolated into
// the result; they never abort the request.
func (s *Server) processUpload(c *gin.Context, fh *multipart.FileHeader) batch.Result {
	filename := filepath.Base(fh.Filename)

	failed := func(err error) batch.Result {
		return batch.Result{
			Filename: filename,
			Record:   ordinance.Record{ElixID: normalize.ExtractTrailingNumber(filename)},
			Err:      err,
		}
	}

	if fh.Size > s.cfg.MaxFileSize {
		return failed(fmt.Errorf("file too large: %d bytes (max: %d bytes)", fh.Size, s.cfg.MaxFileSize))
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return failed(fmt.Errorf("file is not a PDF: %s", filename))
	}

	// The PDF layer works on paths, so the upload is staged in a temp file.
	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+".pdf")
	if err := c.SaveUploadedFile(fh, tmpPath); err != nil {
		return failed(fmt.Errorf("failed to stage upload: %w", err))
	}
	defer os.Remove(tmpPath)

	read, err := s.pdfService.ReadFile(pdf.ReadFileRequest{Path: tmpPath})
	if err != nil {
		return failed(err)
	}

	return batch.Result{
		Filename: filename,
		Record:   ordinance.Extract(filename, read.Content),
	}
}

// recordPayload flattens a record into the JSON field names of the export
// layout.
func recordPayload(rec ordinance.Record) gin.H {
	return gin.H{
		"n_elix":           rec.ElixID,
		"oggetto":          rec.Subject,
		"indirizzo":        rec.Address,
		"data_inizio":      rec.StartDate,
		"durata_in_giorni": rec.DurationDays,
		"geoworks":         rec.GeoworksCode,
		"protocollo_pg":    rec.ProtocolNumber,
		"ditta":            rec.CompanyName,
		"trasporto":        rec.Transport,
		"ztl":              rec.RestrictedZone,
		"demanda":          rec.TeamDelegation,
		"pista_ciclabile":  rec.BikeLane,
		"metro":            rec.Metro,
		"brescia_mobilita": rec.MobilityAgency,
		"taxi":             rec.Taxi,
		"esito_indirizzo":  rec.AddressVerdict,
		"esito_inizio":     rec.StartVerdict,
		"esito_durata":     rec.DurationVerdict,
		"revoca":           rec.Revocation,
	}
}

// errorResponse writes the standard error envelope.
func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
