package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type ReportService interface {
	WriteFormReport(ctx context.Context, formID string, w io.Writer) error
}

type reportService struct {
	forms     FormService
	responses ResponseService
	now       func() time.Time
}

func NewReportService(forms FormService, responses ResponseService) ReportService {
	return &reportService{forms: forms, responses: responses, now: time.Now}
}

// WriteFormReport renders a PDF summary of a form's responses into w.
func (s *reportService) WriteFormReport(ctx context.Context, formID string, w io.Writer) error {
	form, err := s.forms.GetFormByID(ctx, formID)
	if err != nil {
		return err
	}
	summary, err := s.responses.Summarize(ctx, formID)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(form.Name, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 10, tr(form.Name), "", "L", false)
	pdf.SetFont("Arial", "", 10)
	if form.Event != nil {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Event: %s (%s) on %s", form.Event.Name, form.Event.Type, form.Event.Date.Format("2 Jan 2006"))))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s    Generated: %s", form.Status, s.now().Format("2 Jan 2006 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Overview")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	overview := [][2]string{
		{"Responses", fmt.Sprintf("%d", summary.TotalResponses)},
		{"Anonymous", fmt.Sprintf("%d", summary.AnonymousResponses)},
		{"Avg. completion time", fmt.Sprintf("%.0f s", summary.AvgCompletionTime)},
		{"Sections / questions", fmt.Sprintf("%d / %d", summary.SectionCount, summary.QuestionCount)},
	}
	for _, row := range overview {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	section := ""
	for _, q := range summary.Questions {
		if q.Section != section {
			section = q.Section
			pdf.SetFont("Arial", "B", 12)
			pdf.MultiCell(0, 8, tr(section), "", "L", false)
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", q.QuestionIndex+1, q.Text)), "", "L", false)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, tr(describeQuestion(q)), "", "L", false)
		pdf.Ln(2)
	}

	return pdf.Output(w)
}

func describeQuestion(q QuestionSummary) string {
	if q.Answered == 0 {
		return "No answers yet."
	}
	switch {
	case q.AvgRating != nil:
		return fmt.Sprintf("Average rating %.1f from %d answers.", *q.AvgRating, q.Answered)
	case q.Choices != nil:
		keys := make([]string, 0, len(q.Choices))
		for k := range q.Choices {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := fmt.Sprintf("%d answers:", q.Answered)
		for _, k := range keys {
			out += fmt.Sprintf(" %s (%d)", k, q.Choices[k])
		}
		return out
	default:
		out := fmt.Sprintf("%d written answers.", q.Answered)
		for i, t := range q.TextAnswers {
			if i == 5 {
				out += fmt.Sprintf("\n... and %d more", len(q.TextAnswers)-5)
				break
			}
			out += "\n- " + t
		}
		return out
	}
}
