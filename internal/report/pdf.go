package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"eyecare-service/internal/models"
)

// WriteScanPDF renders a scan's AI analysis as a downloadable PDF, one
// wrapped line at a time with automatic page breaks.
func WriteScanPDF(w io.Writer, scan *models.EyeScan) error {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Eye Scan Report - %s", scan.Filename)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Patient: %s", scan.Username)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Uploaded: %s", scan.CreatedAt.Format("2006-01-02 15:04 MST"))))
	pdf.Ln(6)
	if scan.TechValidated {
		pdf.Cell(0, 6, tr("Technician validated: yes"))
		pdf.Ln(6)
		if scan.TechNotes != "" {
			pdf.MultiCell(0, 6, tr("Notes: "+scan.TechNotes), "", "L", false)
		}
	} else {
		pdf.Cell(0, 6, tr("Technician validated: pending"))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range strings.Split(scan.AIResult, "\n") {
		pdf.MultiCell(0, 6, tr(line), "", "L", false)
	}

	return pdf.Output(w)
}
