package pdf

// Service is the facade the batch runner, the web server and the tool server
// go through for every PDF operation.
type Service struct {
	maxFileSize int64
	reader      *Reader
	validator   *Validator
	search      *Search
}

// NewService creates a service with all components sharing the same size
// bound.
func NewService(maxFileSize int64) *Service {
	return &Service{
		maxFileSize: maxFileSize,
		reader:      NewReader(maxFileSize),
		validator:   NewValidator(maxFileSize),
		search:      NewSearch(maxFileSize),
	}
}

// ReadFile extracts the page-ordered text of one PDF file.
func (s *Service) ReadFile(req ReadFileRequest) (*ReadFileResult, error) {
	return s.reader.ReadFile(req)
}

// ValidateFile checks whether a file is a readable PDF.
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	return s.validator.ValidateFile(req)
}

// ScanDirectory lists the PDF files under a directory.
func (s *Service) ScanDirectory(req ScanDirectoryRequest) (*ScanDirectoryResult, error) {
	return s.search.ScanDirectory(req)
}

// PageCount returns the number of pages of a PDF file.
func (s *Service) PageCount(filePath string) (int, error) {
	return s.validator.PageCount(filePath)
}

// MaxFileSize returns the configured file size bound.
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}
