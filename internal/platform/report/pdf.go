package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/uniaccru/promotion-system/internal/domain/calibration"
)

// RankingPDF renders the calibration standings as a one-page report for HR.
// The ranking order is advisory; the document says so explicitly.
func RankingPDF(summary calibration.Summary, ranking calibration.Ranking, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Calibration Ranking", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Calibration Ranking")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Calibration: %s", summary.ID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Target grade: %s", summary.GradeName))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Created by: %s", summary.CreatedByName))
	pdf.Ln(6)
	evaluators := ""
	for i, name := range summary.EvaluatorNames {
		if i > 0 {
			evaluators += ", "
		}
		evaluators += name
	}
	pdf.Cell(0, 6, fmt.Sprintf("Evaluators: %s", evaluators))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.UTC().Format(time.RFC3339)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(12, 8, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(70, 8, "Candidate", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Wins", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Comparisons", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Win rate", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for i, score := range ranking.Rankings {
		pdf.CellFormat(12, 8, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 8, score.EmployeeName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", score.Wins), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%d", score.TotalComparisons), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", score.WinRate), "1", 1, "C", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "This ranking aggregates pairwise evaluator judgments and is advisory input to the HR decision, not the decision itself.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ranking pdf: %w", err)
	}
	return buf.Bytes(), nil
}
