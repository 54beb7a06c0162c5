package export

import (
	"fmt"
	"io"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFont      = "Arial"
	pdfRowHeight = 6.0
)

// Relative widths of the display columns; product names need the most room.
var pdfColumnWeights = []float64{1.1, 3.4, 1.4, 1, 0.8, 1, 2, 1}

type PDFExporter struct {
	orientation string
	pageSize    string
}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{orientation: "L", pageSize: "A4"}
}

// Export renders a landscape report: title, applied filters, KPI summary and
// the transactions table, repeating the header on every page.
func (p *PDFExporter) Export(data *Data, w io.Writer) error {
	pdf := gofpdf.New(p.orientation, "mm", p.pageSize, "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	title := data.Title
	if title == "" {
		title = "Sales Report"
	}
	pdf.SetFont(pdfFont, "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	pdf.SetFont(pdfFont, "I", 8)
	if !data.CreatedAt.IsZero() {
		pdf.Cell(0, 5, fmt.Sprintf("Generated: %s", data.CreatedAt.Format("2006-01-02 15:04:05")))
		pdf.Ln(5)
	}
	pdf.Cell(0, 5, tr(DescribeFilters(data.Filters)))
	pdf.Ln(8)

	pdf.SetFont(pdfFont, "", 10)
	for _, line := range []string{
		fmt.Sprintf("Total Sales: $%.2f", data.KPI.TotalSales),
		fmt.Sprintf("Total Profit: $%.2f", data.KPI.TotalProfit),
		fmt.Sprintf("Total Orders: %d", data.KPI.TotalOrders),
		fmt.Sprintf("Profit Margin: %.2f%%", data.KPI.ProfitMargin),
	} {
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	widths := p.columnWidths(pdf)
	header := func() {
		pdf.SetFont(pdfFont, "B", 8)
		pdf.SetFillColor(31, 78, 120)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range domain.DisplayColumns {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(pdfFont, "", 7)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()
	for _, row := range data.rows() {
		if pdf.GetY()+pdfRowHeight > pageHeight-bottomMargin {
			pdf.AddPage()
			header()
		}
		for i, value := range cells(row) {
			align := "L"
			text := fmt.Sprintf("%v", value)
			switch v := value.(type) {
			case float64:
				align, text = "R", fmt.Sprintf("%.2f", v)
			case int:
				align = "R"
			}
			pdf.CellFormat(widths[i], pdfRowHeight, fit(pdf, tr(text), widths[i]), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (p *PDFExporter) columnWidths(pdf *gofpdf.Fpdf) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	total := 0.0
	for _, w := range pdfColumnWeights {
		total += w
	}
	widths := make([]float64, len(pdfColumnWeights))
	for i, w := range pdfColumnWeights {
		widths[i] = usable * w / total
	}
	return widths
}

// fit truncates text so it stays inside a cell of the given width. text is
// already translated to the single-byte font encoding.
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	const padding = 2
	if pdf.GetStringWidth(text) <= width-padding {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > width-padding {
		text = text[:len(text)-1]
	}
	return text + "..."
}

func (p *PDFExporter) GetContentType() string {
	return "application/pdf"
}

func (p *PDFExporter) GetFileExtension() string {
	return ".pdf"
}
