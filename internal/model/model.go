package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Table names used by the persistence gateway.
const (
	TableEvents            = "events"
	TableTemplates         = "templates"
	TableTemplateSections  = "template_sections"
	TableTemplateQuestions = "template_questions"
	TableForms             = "forms"
	TableUsers             = "users"
	TableResponses         = "responses"
	TableQuestionResponses = "question_responses"
)

// Form lifecycle states.
const (
	FormStatusDraft  = "draft"
	FormStatusActive = "active"
	FormStatusClosed = "closed"
)

// User roles, also the user_type of an embed link.
const (
	RoleCoach  = "coach"
	RolePlayer = "player"
)

type User struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Role      string    `json:"role" gorm:"default:'player'"` // coach, player
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Event struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Type      string    `json:"type" gorm:"not null"` // match, training
	Date      time.Time `json:"date"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Template struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	Structure     Structure `json:"sections" gorm:"type:jsonb"`
	SectionCount  int       `json:"section_count"`
	QuestionCount int       `json:"question_count"`
	IsDefault     bool      `json:"is_default" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TemplateSection and TemplateQuestion are the normalized rows of a template.
type TemplateSection struct {
	ID         string             `json:"id" gorm:"type:uuid;primaryKey"`
	TemplateID string             `json:"template_id" gorm:"type:uuid;index;not null"`
	Title      string             `json:"title"`
	Position   int                `json:"position"`
	Questions  []TemplateQuestion `json:"questions,omitempty" gorm:"foreignKey:SectionID"`
	CreatedAt  time.Time          `json:"created_at"`
}

type TemplateQuestion struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	SectionID string    `json:"section_id" gorm:"type:uuid;index;not null"`
	Type      string    `json:"type" gorm:"not null"`
	Text      string    `json:"text" gorm:"not null"`
	Scale     *int      `json:"scale,omitempty"`
	Options   string    `json:"options,omitempty"` // JSON array of options
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type Form struct {
	ID             string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Description    string    `json:"description"`
	TemplateID     string    `json:"template_id" gorm:"type:uuid;index"`
	EventID        string    `json:"event_id" gorm:"type:uuid;index"`
	Structure      Structure `json:"structure" gorm:"type:jsonb"`
	Status         string    `json:"status" gorm:"default:'active'"` // draft, active, closed
	AllowAnonymous bool      `json:"allow_anonymous"`
	Event          *Event    `json:"event,omitempty" gorm:"foreignKey:EventID"`
	Template       *Template `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EventSummary and TemplateSummary are the joined columns a form listing
// carries.
type EventSummary struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
	Date time.Time `json:"date"`
}

type TemplateSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// FormListItem is a form as served by the list endpoint. Its event and
// template fields shadow the full ones embedded from Form.
type FormListItem struct {
	Form
	Event    *EventSummary    `json:"event,omitempty"`
	Template *TemplateSummary `json:"template,omitempty"`
}

func NewFormListItem(f Form) FormListItem {
	item := FormListItem{Form: f}
	item.Form.Event, item.Form.Template = nil, nil
	if f.Event != nil {
		item.Event = &EventSummary{ID: f.Event.ID, Name: f.Event.Name, Type: f.Event.Type, Date: f.Event.Date}
	}
	if f.Template != nil {
		item.Template = &TemplateSummary{ID: f.Template.ID, Name: f.Template.Name, Type: f.Template.Type}
	}
	return item
}

type Response struct {
	ID             string             `json:"id" gorm:"type:uuid;primaryKey"`
	FormID         string             `json:"form_id" gorm:"type:uuid;index;not null"`
	UserID         *string            `json:"user_id" gorm:"type:uuid"`
	IsAnonymous    bool               `json:"is_anonymous"`
	CompletionTime int                `json:"completion_time"` // seconds
	SubmittedAt    time.Time          `json:"submitted_at"`
	Answers        []QuestionResponse `json:"answers,omitempty" gorm:"foreignKey:ResponseID"`
	CreatedAt      time.Time          `json:"created_at"`
}

type QuestionResponse struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	ResponseID    string    `json:"response_id" gorm:"type:uuid;index;not null"`
	SectionIndex  int       `json:"section_index"`
	QuestionIndex int       `json:"question_index"`
	QuestionType  string    `json:"question_type"`
	RatingValue   *int      `json:"rating_value,omitempty"`
	TextValue     *string   `json:"text_value,omitempty"`
	ChoiceValue   *string   `json:"choice_value,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error             { ensureID(&u.ID); return nil }
func (e *Event) BeforeCreate(*gorm.DB) error            { ensureID(&e.ID); return nil }
func (t *Template) BeforeCreate(*gorm.DB) error         { ensureID(&t.ID); return nil }
func (s *TemplateSection) BeforeCreate(*gorm.DB) error  { ensureID(&s.ID); return nil }
func (q *TemplateQuestion) BeforeCreate(*gorm.DB) error { ensureID(&q.ID); return nil }
func (f *Form) BeforeCreate(*gorm.DB) error             { ensureID(&f.ID); return nil }
func (r *QuestionResponse) BeforeCreate(*gorm.DB) error { ensureID(&r.ID); return nil }

func (r *Response) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	if r.IsAnonymous {
		r.UserID = nil
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now()
	}
	return nil
}

// AllModels lists every model for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&User{}, &Event{}, &Template{}, &TemplateSection{}, &TemplateQuestion{},
		&Form{}, &Response{}, &QuestionResponse{},
	}
}
