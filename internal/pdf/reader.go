// Package pdf supplies the text of ordinance documents to the extraction
// core: reading page-ordered plain text, validating files and discovering
// them on disk.
package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader extracts plain text from PDF files.
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a reader bounded by the given file size.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024,
	}
}

// ReadFile extracts the text of every page in page order and joins the pages
// with a newline. A page that fails to decode is skipped; a document that
// yields no text at all is an error.
func (r *Reader) ReadFile(req ReadFileRequest) (*ReadFileResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validateFileInfo(req.Path, fileInfo); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	content, err := r.extractTextContent(pdfReader)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text content: %w", err)
	}

	return &ReadFileResult{
		Path:    req.Path,
		Content: content,
		Pages:   pdfReader.NumPage(),
		Size:    fileInfo.Size(),
	}, nil
}

// validateFileInfo performs the checks that don't require opening the file.
func (r *Reader) validateFileInfo(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}
	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}
	return nil
}

// extractTextContent walks the pages in order and concatenates their plain
// text, newline-joined.
func (r *Reader) extractTextContent(pdfReader *pdf.Reader) (string, error) {
	if pdfReader == nil {
		return "", fmt.Errorf("nil PDF reader")
	}

	var pages []string
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// A broken page must not sink the document.
			continue
		}

		if totalLength+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				pages = append(pages, content[:remaining])
			}
			break
		}

		pages = append(pages, content)
		totalLength += len(content)
	}

	text := strings.Join(pages, "\n")
	if text == "" {
		return "", fmt.Errorf("no text content could be extracted from PDF")
	}

	return text, nil
}
