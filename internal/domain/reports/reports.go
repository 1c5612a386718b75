package reports

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/platform/querier"
)

type Service struct {
	DB         querier.Querier
	Appraisals *appraisal.Service
}

func New(db querier.Querier, appraisals *appraisal.Service) *Service {
	return &Service{DB: db, Appraisals: appraisals}
}

// AppraisalPDF renders the appraisal summary. The report is only available
// once the evaluations are in, from the reviewer stage onwards.
func (s *Service) AppraisalPDF(ctx context.Context, appraisalID int64) ([]byte, error) {
	a, err := s.Appraisals.Get(ctx, appraisalID)
	if err != nil {
		return nil, err
	}
	if a.Status != appraisal.StatusReviewerEvaluation && a.Status != appraisal.StatusComplete {
		return nil, &appraisal.ConflictError{Reason: "report is available from the reviewer evaluation stage onwards"}
	}

	appraisee, err := s.employeeName(ctx, a.AppraiseeID)
	if err != nil {
		return nil, err
	}
	appraiser, err := s.employeeName(ctx, a.AppraiserID)
	if err != nil {
		return nil, err
	}
	reviewer, err := s.employeeName(ctx, a.ReviewerID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Appraisal")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Appraisee: %s", appraisee))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Appraiser: %s", appraiser))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Reviewer: %s", reviewer))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", a.StartDate.Format("2006-01-02"), a.EndDate.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", a.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Goals")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, link := range a.Goals {
		pdf.Cell(0, 7, fmt.Sprintf("%s (weightage %d, importance %s)", link.Goal.Title, link.Goal.Weightage, link.Goal.Importance))
		pdf.Ln(6)
		if link.SelfRating != nil {
			pdf.Cell(0, 6, fmt.Sprintf("  Self: %d/5 - %s", *link.SelfRating, deref(link.SelfComment)))
			pdf.Ln(6)
		}
		if link.AppraiserRating != nil {
			pdf.Cell(0, 6, fmt.Sprintf("  Appraiser: %d/5 - %s", *link.AppraiserRating, deref(link.AppraiserComment)))
			pdf.Ln(6)
		}
		pdf.Ln(2)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Overall")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	if a.AppraiserOverallRating != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Appraiser: %d/5 - %s", *a.AppraiserOverallRating, deref(a.AppraiserOverallComments)))
		pdf.Ln(6)
	}
	if a.ReviewerOverallRating != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Reviewer: %d/5 - %s", *a.ReviewerOverallRating, deref(a.ReviewerOverallComments)))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Service) employeeName(ctx context.Context, id int64) (string, error) {
	var first, last string
	if err := s.DB.QueryRow(ctx, "SELECT first_name, last_name FROM employees WHERE id = $1", id).Scan(&first, &last); err != nil {
		return "", err
	}
	return first + " " + last, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
