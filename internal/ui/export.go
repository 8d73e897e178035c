package ui

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nibzard/tasklist-go/internal/todo"
)

// ExportFormats lists the formats Export accepts.
func ExportFormats() []string {
	return []string{"text", "json", "csv", "pdf"}
}

// Export renders view in the given format.
func Export(view todo.ViewModel, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "text", "":
		return []byte(RenderText(view)), nil
	case "json":
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal view: %w", err)
		}
		return append(data, '\n'), nil
	case "csv":
		return exportCSV(view)
	case "pdf":
		return exportPDF(view)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

func exportCSV(view todo.ViewModel) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "text", "completed", "created_at"})
	for _, t := range view.Tasks {
		_ = w.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Text,
			strconv.FormatBool(t.Completed),
			t.CreatedAt,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return b.Bytes(), nil
}

func exportPDF(view todo.ViewModel) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if view.IsEmpty {
		pdf.MultiCell(0, 6, emptyMessage, "0", "L", false)
	}
	for _, t := range view.Tasks {
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s %s", checkbox(t), t.Text)), "0", "L", false)
		pdf.SetFont("Arial", "I", 8)
		pdf.MultiCell(0, 5, tr("created "+t.CreatedAt), "0", "L", false)
	}
	if !view.IsEmpty {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 10)
		pdf.MultiCell(0, 6, StatsLine(view.Stats), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
