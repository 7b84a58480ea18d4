package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"robfu/internal/models"
)

// ExportStudyPDF lays out a study as a landscape A4 document: header, study
// info, the Gantt timeline and the per-stage estimate table.
// estimatorNames maps user ids to display names for the table.
func ExportStudyPDF(s *models.Study, estimatorNames map[string]string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 12, "PROJECT STUDY", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// info block
	pdf.SetFont("Helvetica", "", 10)
	info := [][2]string{
		{"Project", s.Name},
		{"Client", s.ClientName},
		{"Description", s.Description},
		{"Total duration", fmt.Sprintf("%d days", s.TotalEstimatedDays)},
		{"Estimated start", formatDate(s.EstimatedStartDate)},
		{"Estimated end", formatDate(s.EstimatedEndDate)},
	}
	for _, row := range info {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(241, 245, 249)
		pdf.CellFormat(55, 8, row[0], "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 8, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// gantt timeline
	if s.TotalEstimatedDays > 0 {
		png, err := RenderStudyGantt(s)
		if err != nil {
			return nil, err
		}
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, "GANTT TIMELINE", "", 1, "L", false, 0, "")
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("gantt", opts, bytes.NewReader(png))
		pdf.ImageOptions("gantt", 15, pdf.GetY(), 200, 0, true, opts, 0, "")
		pdf.Ln(4)
	}

	// per-stage table
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "ESTIMATED SCHEDULE BY STAGE", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(249, 115, 22)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(60, 8, "Stage", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Estimated days", "1", 0, "L", true, 0, "")
	pdf.CellFormat(110, 8, "Notes", "1", 0, "L", true, 0, "")
	pdf.CellFormat(0, 8, "Estimated by", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 41, 59)
	for _, info := range stageInfos {
		rec := s.Stage(info.stage)

		estimator := "Pending"
		if rec.EstimatedBy != "" {
			if name, ok := estimatorNames[rec.EstimatedBy]; ok {
				estimator = name
			} else {
				estimator = "User"
			}
		}
		notes := rec.Notes
		if notes == "" {
			notes = "-"
		}

		pdf.CellFormat(60, 8, info.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%d days", rec.EstimatedDays), "1", 0, "L", false, 0, "")
		pdf.CellFormat(110, 8, notes, "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, estimator, "1", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", time.Now().UTC().Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "Robfu - Industrial Production Management", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render study pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "To be defined"
	}
	return t.Format("2006-01-02")
}
