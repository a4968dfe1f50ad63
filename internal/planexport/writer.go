package planexport

import (
	"encoding/csv"
	"io"

	"travelfuse/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting plans as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 8-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WritePlan writes the timeline rows followed by each module summary.
func (w *Writer) WritePlan(plan *domain.TravelPlan) error {
	for _, sec := range sections(plan) {
		if err := w.csv.WriteAll(sec.rows); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, header and plan rows to out.
func WriteCSV(out io.Writer, plan *domain.TravelPlan) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WritePlan(plan); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
