package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Search discovers ordinance PDFs on disk.
type Search struct {
	maxFileSize int64
	validator   *Validator
}

// NewSearch creates a search handler bounded by the given file size.
func NewSearch(maxFileSize int64) *Search {
	return &Search{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// ScanDirectory walks a directory recursively and returns every PDF file
// that passes the basic checks, sorted by file name. Hidden directories and
// unreadable entries are skipped, never fatal.
func (s *Search) ScanDirectory(req ScanDirectoryRequest) (*ScanDirectoryResult, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(req.Directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", req.Directory)
	}

	absDirectory, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	var files []FileInfo

	err = filepath.WalkDir(absDirectory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // continue despite unreadable entries
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(strings.ToLower(d.Name()), ".pdf") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // continue despite stat races
		}

		if s.validator.ValidateFileInfo(path, info) != nil {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return &ScanDirectoryResult{
		Directory:  absDirectory,
		Files:      files,
		TotalCount: len(files),
	}, nil
}
