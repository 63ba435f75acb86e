// Package layout serializes report documents to PDF with go-pdf/fpdf. It
// knows nothing about weather events; it renders whatever block sequence
// the composer hands it.
package layout

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/couchcryptid/storm-report-service/internal/domain"
)

const (
	pageMargin = 54.0 // 0.75 inch
	imageWidth = 432.0
)

// Engine renders domain.Documents as US Letter portrait PDFs.
type Engine struct {
	compress bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithCompression toggles PDF stream compression. Tests disable it so text
// content stays byte-searchable in the output.
func WithCompression(on bool) Option {
	return func(e *Engine) { e.compress = on }
}

// NewEngine creates a PDF layout engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{compress: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render serializes the document to PDF bytes.
func (e *Engine) Render(doc domain.Document) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCompression(e.compress)
	pdf.SetTitle(doc.Title, true)
	if doc.Author != "" {
		pdf.SetAuthor(doc.Author, true)
	}
	pdf.AddPage()

	// Core fonts are cp1252; translate so degree signs and similar survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, block := range doc.Blocks {
		if err := e.renderBlock(pdf, tr, block, i); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serialize pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) renderBlock(pdf *fpdf.Fpdf, tr func(string) string, block domain.Block, idx int) error {
	switch b := block.(type) {
	case domain.TitleBlock:
		pdf.SetFont("Helvetica", "B", 24)
		pdf.SetTextColor(44, 62, 80)
		pdf.MultiCell(0, 30, tr(b.Text), "", "C", false)
		pdf.Ln(10)

	case domain.HeadingBlock:
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(44, 62, 80)
		pdf.MultiCell(0, 20, tr(b.Text), "", "L", false)
		pdf.Ln(6)

	case domain.SubheadingBlock:
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(52, 73, 94)
		pdf.MultiCell(0, 18, tr(b.Text), "", "L", false)
		pdf.Ln(4)

	case domain.ParagraphBlock:
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(51, 51, 51)
		pdf.MultiCell(0, 15, tr(b.Text), "", "L", false)
		pdf.Ln(6)

	case domain.TableBlock:
		e.renderTable(pdf, tr, b)

	case domain.ImageBlock:
		if err := e.renderImage(pdf, b, idx); err != nil {
			return err
		}

	case domain.SpacerBlock:
		pdf.Ln(b.Height)

	case domain.PageBreakBlock:
		pdf.AddPage()

	default:
		return fmt.Errorf("unknown block type %T", block)
	}
	return pdf.Error()
}

func (e *Engine) renderTable(pdf *fpdf.Fpdf, tr func(string) string, b domain.TableBlock) {
	cols := len(b.Header)
	if cols == 0 && len(b.Rows) > 0 {
		cols = len(b.Rows[0])
	}
	if cols == 0 {
		return
	}
	pageW, _ := pdf.GetPageSize()
	colW := (pageW - 2*pageMargin) / float64(cols)

	if len(b.Header) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(52, 152, 219)
		pdf.SetTextColor(255, 255, 255)
		for _, cell := range b.Header {
			pdf.CellFormat(colW, 22, tr(cell), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetTextColor(51, 51, 51)
	for _, row := range b.Rows {
		for i, cell := range row {
			// First column carries the metric name in bold, like a
			// key/value sheet.
			if i == 0 {
				pdf.SetFont("Helvetica", "B", 10)
			} else {
				pdf.SetFont("Helvetica", "", 10)
			}
			pdf.SetFillColor(245, 245, 220)
			pdf.CellFormat(colW, 20, tr(cell), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(10)
}

func (e *Engine) renderImage(pdf *fpdf.Fpdf, b domain.ImageBlock, idx int) error {
	if len(b.PNG) == 0 {
		return fmt.Errorf("image block %q has no data", b.Name)
	}
	// Names must be unique per document or fpdf reuses the first
	// registration.
	name := fmt.Sprintf("%s-%d", b.Name, idx)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(b.PNG))
	if pdf.Err() {
		return fmt.Errorf("register image %q: %w", b.Name, pdf.Error())
	}

	w := imageWidth
	h := 0.0
	if b.Width > 0 && b.Height > 0 {
		h = w * float64(b.Height) / float64(b.Width)
	}
	pageW, _ := pdf.GetPageSize()
	x := (pageW - w) / 2
	pdf.ImageOptions(name, x, -1, w, h, true, opts, 0, "")

	if b.Caption != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(120, 120, 120)
		pdf.MultiCell(0, 12, b.Caption, "", "C", false)
	}
	pdf.Ln(10)
	return pdf.Error()
}
