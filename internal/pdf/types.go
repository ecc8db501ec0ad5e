package pdf

// FileInfo describes one PDF file found during directory discovery.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// ReadFileRequest asks for the text content of one PDF file.
type ReadFileRequest struct {
	Path string `json:"path"`
}

// ReadFileResult carries the page-ordered, newline-joined text of a PDF.
type ReadFileResult struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Pages   int    `json:"pages"`
	Size    int64  `json:"size"`
}

// ValidateFileRequest asks whether a file is a readable PDF.
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// ValidateFileResult reports the outcome of a validation check. An invalid
// file is a result, not an error.
type ValidateFileResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ScanDirectoryRequest asks for the PDF files under a directory.
type ScanDirectoryRequest struct {
	Directory string `json:"directory"`
}

// ScanDirectoryResult lists the PDF files found under a directory, sorted by
// file name.
type ScanDirectoryResult struct {
	Directory  string     `json:"directory"`
	Files      []FileInfo `json:"files"`
	TotalCount int        `json:"total_count"`
}
