// Package batch runs the extraction over many documents, isolating failures
// per document and applying the presentation sort once all records are in.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/settorestrade/ordinanze-xls/internal/normalize"
	"github.com/settorestrade/ordinanze-xls/internal/ordinance"
	"github.com/settorestrade/ordinanze-xls/internal/pdf"
)

// Result is the outcome for one document. A decode failure fills Err and
// leaves a record that still carries the filename-derived Elix id, so the
// document keeps a deterministic place in the sorted output.
type Result struct {
	Filename string
	Path     string
	Record   ordinance.Record
	Err      error
}

// Warnings lists the operator-facing notices for this result: a decode
// failure, a missing Elix id, a missing P.G. number.
func (r Result) Warnings() []string {
	var warnings []string
	if r.Err != nil {
		warnings = append(warnings, fmt.Sprintf("PDF non leggibile: %s (%v)", r.Filename, r.Err))
		return warnings
	}
	if r.Record.ElixID == normalize.ElixSentinel {
		warnings = append(warnings, fmt.Sprintf("ELIX non ricavato dal nome file: %s", r.Filename))
	}
	if r.Record.ProtocolNumber == "" {
		warnings = append(warnings, fmt.Sprintf("Numero P.G. non trovato: %s", r.Filename))
	}
	return warnings
}

// Runner fans the per-document work out over a bounded pool of workers.
// Extraction itself is pure, so documents never share state.
type Runner struct {
	pdfService *pdf.Service
	workers    int
}

// NewRunner creates a runner. A non-positive worker count defaults to the
// number of CPUs.
func NewRunner(pdfService *pdf.Service, workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{
		pdfService: pdfService,
		workers:    workers,
	}
}

// Run discovers the PDF files under dir and processes each one. The returned
// results are sorted by numeric Elix id. An empty directory yields an empty
// slice and no error: nothing to do is not a failure.
func (r *Runner) Run(ctx context.Context, dir string) ([]Result, error) {
	scan, err := r.pdfService.ScanDirectory(pdf.ScanDirectoryRequest{Directory: dir})
	if err != nil {
		return nil, err
	}
	return r.ProcessFiles(ctx, scan.Files), nil
}

// ProcessFiles extracts a record from every file on the worker pool. One
// result per input, in Elix order; failures never abort the batch.
func (r *Runner) ProcessFiles(ctx context.Context, files []pdf.FileInfo) []Result {
	results := make([]Result, len(files))

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := r.workers
	if workers > len(files) {
		workers = len(files)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.processOne(ctx, files[i])
			}
		}()
	}

	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Mark everything not yet handed out as cancelled.
			close(jobs)
			wg.Wait()
			for i := range results {
				if results[i].Filename == "" {
					results[i] = cancelledResult(files[i], ctx.Err())
				}
			}
			SortResults(results)
			return results
		}
	}
	close(jobs)
	wg.Wait()

	SortResults(results)
	return results
}

// processOne reads and extracts a single document.
func (r *Runner) processOne(ctx context.Context, file pdf.FileInfo) Result {
	if err := ctx.Err(); err != nil {
		return cancelledResult(file, err)
	}

	read, err := r.pdfService.ReadFile(pdf.ReadFileRequest{Path: file.Path})
	if err != nil {
		return Result{
			Filename: file.Name,
			Path:     file.Path,
			Record:   ordinance.Record{ElixID: normalize.ExtractTrailingNumber(file.Name)},
			Err:      err,
		}
	}

	return Result{
		Filename: file.Name,
		Path:     file.Path,
		Record:   ordinance.Extract(file.Name, read.Content),
	}
}

func cancelledResult(file pdf.FileInfo, err error) Result {
	return Result{
		Filename: file.Name,
		Path:     file.Path,
		Record:   ordinance.Record{ElixID: normalize.ExtractTrailingNumber(file.Name)},
		Err:      err,
	}
}

// SortResults orders results by numeric Elix id ascending, unparseable ids
// last, stable for ties.
func SortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return ordinance.ElixRank(results[i].Record.ElixID) < ordinance.ElixRank(results[j].Record.ElixID)
	})
}

// Documents converts results to the (filename, record) pairs the export
// consumes. Failed documents keep their column with an empty record so the
// operator sees them.
func Documents(results []Result) []ordinance.Document {
	docs := make([]ordinance.Document, len(results))
	for i, res := range results {
		docs[i] = ordinance.Document{Filename: res.Filename, Record: res.Record}
	}
	return docs
}
