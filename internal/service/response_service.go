package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"teamfeedback-backend/internal/model"
	"teamfeedback-backend/internal/repository"
	"teamfeedback-backend/utilities"
)

// EventResponseSubmitted is published on the event bus after a response and
// all of its answers are stored.
const EventResponseSubmitted = "response_submitted"

type AnswerInput struct {
	SectionIndex  int     `json:"section_index"`
	QuestionIndex int     `json:"question_index"`
	RatingValue   *int    `json:"rating_value"`
	TextValue     *string `json:"text_value"`
	ChoiceValue   *string `json:"choice_value"`
}

type SubmitResponseRequest struct {
	UserID         *string       `json:"user_id"`
	IsAnonymous    bool          `json:"is_anonymous"`
	CompletionTime int           `json:"completion_time"`
	Answers        []AnswerInput `json:"answers"`
}

// ResponseSummary aggregates the stored responses of one form.
type ResponseSummary struct {
	FormID             string            `json:"form_id"`
	TotalResponses     int               `json:"total_responses"`
	AnonymousResponses int               `json:"anonymous_responses"`
	AvgCompletionTime  float64           `json:"avg_completion_time"`
	SectionCount       int               `json:"section_count"`
	QuestionCount      int               `json:"question_count"`
	Questions          []QuestionSummary `json:"questions"`
}

type QuestionSummary struct {
	SectionIndex  int            `json:"section_index"`
	QuestionIndex int            `json:"question_index"`
	Section       string         `json:"section"`
	Text          string         `json:"text"`
	Type          string         `json:"type"`
	Answered      int            `json:"answered"`
	AvgRating     *float64       `json:"avg_rating,omitempty"`
	Choices       map[string]int `json:"choices,omitempty"`
	TextAnswers   []string       `json:"text_answers,omitempty"`
}

type ResponseService interface {
	SubmitResponse(ctx context.Context, formID string, req SubmitResponseRequest) (*model.Response, error)
	GetResponses(ctx context.Context, formID string) ([]model.Response, error)
	Summarize(ctx context.Context, formID string) (*ResponseSummary, error)
}

type responseService struct {
	responseRepo repository.ResponseRepository
	forms        FormService
	bus          *utilities.EventBus
	now          func() time.Time
}

func NewResponseService(responseRepo repository.ResponseRepository, forms FormService, bus *utilities.EventBus) ResponseService {
	return &responseService{
		responseRepo: responseRepo,
		forms:        forms,
		bus:          bus,
		now:          time.Now,
	}
}

// SubmitResponse stores a response and its answers. The two steps are not
// atomic: when an answer insert fails, already stored answers and the parent
// row are deleted again.
func (s *responseService) SubmitResponse(ctx context.Context, formID string, req SubmitResponseRequest) (*model.Response, error) {
	form, err := s.forms.GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.Status != model.FormStatusActive {
		return nil, ErrFormNotActive
	}
	if req.IsAnonymous && !form.AllowAnonymous {
		return nil, ErrAnonymousNotAllowed
	}
	answers, err := buildAnswers(form.Structure, req.Answers)
	if err != nil {
		return nil, err
	}
	if req.CompletionTime < 0 {
		return nil, &AnswerError{Problems: []string{"completion_time must not be negative"}}
	}

	response := &model.Response{
		FormID:         form.ID,
		IsAnonymous:    req.IsAnonymous,
		CompletionTime: req.CompletionTime,
		SubmittedAt:    s.now(),
	}
	if !req.IsAnonymous {
		response.UserID = req.UserID
	}

	if err := s.responseRepo.CreateResponse(ctx, response); err != nil {
		return nil, err
	}

	saved := make([]model.QuestionResponse, 0, len(answers))
	for _, answer := range answers {
		answer.ResponseID = response.ID
		if err := s.responseRepo.SaveAnswer(ctx, &answer); err != nil {
			s.compensate(ctx, response.ID, saved)
			return nil, err
		}
		saved = append(saved, answer)
	}
	response.Answers = saved

	if s.bus != nil {
		s.bus.Publish(EventResponseSubmitted, *response)
	}
	return response, nil
}

func (s *responseService) compensate(ctx context.Context, responseID string, saved []model.QuestionResponse) {
	for _, a := range saved {
		if err := s.responseRepo.DeleteAnswer(ctx, a.ID); err != nil {
			utilities.Error("Failed to delete answer %s of response %s: %v", a.ID, responseID, err)
		}
	}
	if err := s.responseRepo.DeleteResponse(ctx, responseID); err != nil {
		utilities.Error("Failed to delete orphaned response %s: %v", responseID, err)
		return
	}
	utilities.Warn("Rolled back response %s after answer insert failure", responseID)
}

func (s *responseService) GetResponses(ctx context.Context, formID string) ([]model.Response, error) {
	if _, err := s.forms.GetFormByID(ctx, formID); err != nil {
		return nil, err
	}
	return s.responseRepo.GetResponsesByForm(ctx, formID)
}

// Summarize computes per-question statistics over stored responses.
func (s *responseService) Summarize(ctx context.Context, formID string) (*ResponseSummary, error) {
	form, err := s.forms.GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.GetResponsesByForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	return summarize(form, responses), nil
}

func summarize(form *model.Form, responses []model.Response) *ResponseSummary {
	in := model.FromSections(form.Structure)
	summary := &ResponseSummary{
		FormID:         form.ID,
		TotalResponses: len(responses),
		SectionCount:   CountSections(in),
		QuestionCount:  CountTotalQuestions(in),
		Questions:      []QuestionSummary{},
	}

	index := map[[2]int]int{}
	for i, sec := range form.Structure {
		for j, q := range sec.Questions {
			index[[2]int{i, j}] = len(summary.Questions)
			qs := QuestionSummary{SectionIndex: i, QuestionIndex: j, Section: sec.Title, Text: q.Text, Type: q.Type}
			if q.Type == model.QuestionTypeMultipleChoice || q.Type == model.QuestionTypeYesNo {
				qs.Choices = map[string]int{}
			}
			summary.Questions = append(summary.Questions, qs)
		}
	}

	ratingSums := make([]int, len(summary.Questions))
	var totalTime int
	for _, r := range responses {
		if r.IsAnonymous {
			summary.AnonymousResponses++
		}
		totalTime += r.CompletionTime
		for _, a := range r.Answers {
			pos, ok := index[[2]int{a.SectionIndex, a.QuestionIndex}]
			if !ok {
				continue
			}
			qs := &summary.Questions[pos]
			qs.Answered++
			switch {
			case a.RatingValue != nil:
				ratingSums[pos] += *a.RatingValue
			case a.ChoiceValue != nil && qs.Choices != nil:
				qs.Choices[*a.ChoiceValue]++
			case a.TextValue != nil:
				qs.TextAnswers = append(qs.TextAnswers, *a.TextValue)
			}
		}
	}

	for i := range summary.Questions {
		qs := &summary.Questions[i]
		if qs.Type == model.QuestionTypeRating && qs.Answered > 0 {
			avg := float64(ratingSums[i]) / float64(qs.Answered)
			qs.AvgRating = &avg
		}
	}
	if len(responses) > 0 {
		summary.AvgCompletionTime = float64(totalTime) / float64(len(responses))
	}
	return summary
}

// buildAnswers checks every answer against the form structure and converts
// the valid set into rows.
func buildAnswers(structure model.Structure, inputs []AnswerInput) ([]model.QuestionResponse, error) {
	var problems []string
	if len(inputs) == 0 {
		problems = append(problems, "at least one answer is required")
	}

	seen := map[[2]int]bool{}
	out := make([]model.QuestionResponse, 0, len(inputs))
	for n, in := range inputs {
		label := fmt.Sprintf("Answer %d", n+1)
		q, ok := structure.Question(in.SectionIndex, in.QuestionIndex)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s references unknown question %d in section %d", label, in.QuestionIndex+1, in.SectionIndex+1))
			continue
		}
		key := [2]int{in.SectionIndex, in.QuestionIndex}
		if seen[key] {
			problems = append(problems, fmt.Sprintf("%s repeats question %d in section %d", label, in.QuestionIndex+1, in.SectionIndex+1))
			continue
		}
		seen[key] = true

		row := model.QuestionResponse{
			SectionIndex:  in.SectionIndex,
			QuestionIndex: in.QuestionIndex,
			QuestionType:  q.Type,
		}
		if problem := fillAnswer(&row, q, in); problem != "" {
			problems = append(problems, label+" "+problem)
			continue
		}
		out = append(out, row)
	}

	if len(problems) > 0 {
		return nil, &AnswerError{Problems: problems}
	}
	return out, nil
}

func fillAnswer(row *model.QuestionResponse, q model.Question, in AnswerInput) string {
	switch q.Type {
	case model.QuestionTypeRating:
		if in.RatingValue == nil {
			return "needs a rating_value"
		}
		top := q.RatingScale()
		if *in.RatingValue < 1 || *in.RatingValue > top {
			return fmt.Sprintf("rating must be between 1 and %d", top)
		}
		v := *in.RatingValue
		row.RatingValue = &v
	case model.QuestionTypeText:
		if in.TextValue == nil || strings.TrimSpace(*in.TextValue) == "" {
			return "needs a non-empty text_value"
		}
		v := strings.TrimSpace(*in.TextValue)
		row.TextValue = &v
	case model.QuestionTypeMultipleChoice:
		if in.ChoiceValue == nil || *in.ChoiceValue == "" {
			return "needs a choice_value"
		}
		if len(q.Options) > 0 && !contains(q.Options, *in.ChoiceValue) {
			return fmt.Sprintf("has unknown option: %s", *in.ChoiceValue)
		}
		v := *in.ChoiceValue
		row.ChoiceValue = &v
	case model.QuestionTypeYesNo:
		if in.ChoiceValue == nil || (*in.ChoiceValue != "yes" && *in.ChoiceValue != "no") {
			return "must be yes or no"
		}
		v := *in.ChoiceValue
		row.ChoiceValue = &v
	default:
		return fmt.Sprintf("targets a question with invalid type: %s", q.Type)
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
