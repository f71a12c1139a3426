package export

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/fleacr/WebScraperYCombinator/models"
)

// Columns selects which optional column groups appear in the output.
type Columns struct {
	// Details adds the location and description columns from the listing.
	Details bool

	// Profiles adds the website/LinkedIn columns from profile enrichment.
	Profiles bool
}

func (c Columns) header() []string {
	h := []string{"name", "profileUrl"}
	if c.Details {
		h = append(h, "location", "description")
	}
	if c.Profiles {
		h = append(h, "companyWebsite", "companyLinkedin", "founderLinkedin")
	}
	return h
}

// CSVWriter is the append-only, single-writer output sink. Any write
// error is fatal to the run.
type CSVWriter struct {
	w    *csv.Writer
	cols Columns
	file *os.File // non-nil only when the writer owns the file
	rows int
}

// New wraps an io.Writer and immediately writes the header row.
func New(w io.Writer, cols Columns) (*CSVWriter, error) {
	cw := &CSVWriter{w: csv.NewWriter(w), cols: cols}
	if err := cw.w.Write(cols.header()); err != nil {
		return nil, sinkErr("failed to write CSV header", err)
	}
	return cw, nil
}

// Create opens (truncating) the file at path and writes the header row.
// The returned writer owns the file; Close releases it.
func Create(path string, cols Columns) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, sinkErr("failed to create output file", err)
	}
	cw, err := New(f, cols)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	cw.file = f
	return cw, nil
}

// Write appends one record row.
func (cw *CSVWriter) Write(c models.Company) error {
	row := []string{c.Name, c.ProfileURL}
	if cw.cols.Details {
		row = append(row, c.Location, c.Description)
	}
	if cw.cols.Profiles {
		row = append(row, c.Website, c.LinkedIn, c.FoundersJoined())
	}
	if err := cw.w.Write(row); err != nil {
		return sinkErr("failed to write CSV row", err)
	}
	cw.rows++
	return nil
}

// Rows reports the number of data rows written so far (header excluded).
func (cw *CSVWriter) Rows() int {
	return cw.rows
}

// Close flushes buffered rows and closes the file when owned. It must be
// called even on error exits so partial output reaches disk.
func (cw *CSVWriter) Close() error {
	cw.w.Flush()
	flushErr := cw.w.Error()

	var closeErr error
	if cw.file != nil {
		closeErr = cw.file.Close()
	}

	if flushErr != nil {
		return sinkErr("failed to flush CSV output", flushErr)
	}
	if closeErr != nil {
		return sinkErr("failed to close output file", closeErr)
	}
	return nil
}

func sinkErr(msg string, err error) *models.ScrapeError {
	return models.NewScrapeError(models.ErrCodeSink, msg, err)
}
