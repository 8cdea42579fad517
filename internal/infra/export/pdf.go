package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/xavierca1/leadpulse/internal/analytics"
	"github.com/xavierca1/leadpulse/internal/entity"
)

// PDFColumns is the column set of the PDF report.
var PDFColumns = []string{"Name", "Email", "Source", "Status", "Assigned To", "Value"}

var pdfWidths = []float64{36, 50, 24, 22, 28, 22}

// LeadsPDF renders the "Lead Report" table.
func LeadsPDF(w io.Writer, leads []entity.Lead, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(14, 22, "Lead Report")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(14, 30, "Generated on "+generatedAt.Format("Jan 2, 2006 15:04:05"))

	pdf.SetXY(14, 35)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(33, 93, 199)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range PDFColumns {
		pdf.CellFormat(pdfWidths[i], 7, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, l := range leads {
		assignee := l.AssignedTo
		if assignee == "" {
			assignee = entity.Unassigned
		}
		cells := []string{
			l.Name, l.Email, l.Source, string(l.Status), assignee, analytics.FormatMoney(l.Value),
		}
		for i, c := range cells {
			pdf.CellFormat(pdfWidths[i], 6, tr(truncate(pdf, c, pdfWidths[i]-2)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// truncate shortens s with an ellipsis until it fits width mm.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
