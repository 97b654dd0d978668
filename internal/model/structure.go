package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Question types accepted in a form structure.
const (
	QuestionTypeRating         = "rating"
	QuestionTypeText           = "text"
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeYesNo          = "yes_no"
)

// DefaultRatingScale is used when a rating question carries no scale.
const DefaultRatingScale = 10

// IsValidQuestionType reports whether t is one of the four known types.
func IsValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeRating, QuestionTypeText, QuestionTypeMultipleChoice, QuestionTypeYesNo:
		return true
	}
	return false
}

type Question struct {
	Type    string   `json:"type"`
	Text    string   `json:"text"`
	Scale   *int     `json:"scale,omitempty"`
	Options []string `json:"options,omitempty"`
}

// RatingScale returns the question's scale, falling back to DefaultRatingScale.
func (q Question) RatingScale() int {
	if q.Scale != nil && *q.Scale > 0 {
		return *q.Scale
	}
	return DefaultRatingScale
}

type Section struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Structure is the ordered section list owned by a template or a form.
// It is stored as a JSON column.
type Structure []Section

// Clone returns a deep copy so a form never shares slices with its template.
func (s Structure) Clone() Structure {
	if s == nil {
		return nil
	}
	out := make(Structure, len(s))
	for i, sec := range s {
		out[i].Title = sec.Title
		if sec.Questions == nil {
			continue
		}
		out[i].Questions = make([]Question, len(sec.Questions))
		for j, q := range sec.Questions {
			cp := q
			if q.Scale != nil {
				scale := *q.Scale
				cp.Scale = &scale
			}
			if q.Options != nil {
				cp.Options = append([]string(nil), q.Options...)
			}
			out[i].Questions[j] = cp
		}
	}
	return out
}

// Question looks up a question by 0-based section and question position.
func (s Structure) Question(sectionIndex, questionIndex int) (Question, bool) {
	if sectionIndex < 0 || sectionIndex >= len(s) {
		return Question{}, false
	}
	qs := s[sectionIndex].Questions
	if questionIndex < 0 || questionIndex >= len(qs) {
		return Question{}, false
	}
	return qs[questionIndex], true
}

// Value implements driver.Valuer.
func (s Structure) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *Structure) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported structure column type %T", value)
	}
	if len(data) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(data, s)
}

// StructureInput accepts a section list under either "sections" or
// "structure". Sections takes precedence whenever it is present.
type StructureInput struct {
	Sections  *Structure `json:"sections,omitempty"`
	Structure *Structure `json:"structure,omitempty"`
}

// Normalize returns the canonical section list, or nil when neither field is set.
func (in StructureInput) Normalize() Structure {
	if in.Sections != nil {
		return *in.Sections
	}
	if in.Structure != nil {
		return *in.Structure
	}
	return nil
}

// Present reports whether either field was supplied.
func (in StructureInput) Present() bool {
	return in.Sections != nil || in.Structure != nil
}

// FromSections wraps a section list as an input.
func FromSections(s Structure) StructureInput {
	return StructureInput{Sections: &s}
}
