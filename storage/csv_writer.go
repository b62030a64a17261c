package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"smartpick/models"
)

// CSVWriter writes raw (uncleaned) phone records to a CSV file so a scrape
// run can be inspected or re-imported later. Safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

var _ RawPhoneWriter = (*CSVWriter)(nil)

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"brand", "model", "price", "memory_and_storage", "display",
		"camera", "front_camera", "processor", "battery", "image", "url", "scraped_at",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteRaw appends the raw records to the CSV file.
func (c *CSVWriter) WriteRaw(phones []*models.RawPhone) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range phones {
		row := []string{
			p.Brand,
			p.Model,
			p.RawPrice,
			p.MemoryStorage,
			p.Display,
			p.Camera,
			p.FrontCamera,
			p.Processor,
			p.Battery,
			p.ImageURL,
			p.ProductURL,
			p.ScrapedAt.Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
