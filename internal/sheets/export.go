// Package sheets maintains flat exports of the submission log: a running
// CSV mirror appended on every intake and on-demand xlsx workbooks for the
// dashboard's export button.
package sheets

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var exportHeader = []string{"Nome", "Cidade", "Cargo", "Data", "Link Arquivo"}

// Row is one exported submission line.
type Row struct {
	Name      string
	City      string
	JobTitle  string
	FileURL   string
	CreatedAt time.Time
}

func (r Row) strings() []string {
	return []string{
		r.Name,
		r.City,
		r.JobTitle,
		r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		r.FileURL,
	}
}

type SinkAPI interface {
	Append(row Row) error
}

// CSVSink appends rows to a CSV file on disk, writing the header when it
// creates the file. Appends are serialized; concurrent submissions must not
// interleave partial lines.
type CSVSink struct {
	mu   sync.Mutex
	path string
}

func NewCSVSink(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &CSVSink{path: filepath.Join(dir, "submissions.csv")}, nil
}

func (s *CSVSink) Append(row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeHeader := false
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(exportHeader); err != nil {
			return fmt.Errorf("write export header: %w", err)
		}
	}
	if err := w.Write(row.strings()); err != nil {
		return fmt.Errorf("write export row: %w", err)
	}
	w.Flush()
	return w.Error()
}

// Path returns the location of the CSV mirror.
func (s *CSVSink) Path() string {
	return s.path
}
