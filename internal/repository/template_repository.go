package repository

import (
	"context"
	"encoding/json"
	"sort"

	"teamfeedback-backend/internal/db"
	"teamfeedback-backend/internal/db/query"
	"teamfeedback-backend/internal/model"
)

type TemplateRepository interface {
	GetTemplates(ctx context.Context) ([]model.Template, error)
	GetTemplateByID(ctx context.Context, id string) (*model.Template, error)
	CreateTemplate(ctx context.Context, template *model.Template) error
	HasDefaultTemplates(ctx context.Context) (bool, error)
	GetNormalizedStructure(ctx context.Context, templateID string) (model.Structure, error)
}

type templateRepository struct {
	gw db.Gateway
}

func NewTemplateRepository(gw db.Gateway) TemplateRepository {
	return &templateRepository{gw: gw}
}

func (r *templateRepository) GetTemplates(ctx context.Context) ([]model.Template, error) {
	var templates []model.Template
	err := r.gw.ListBy(ctx, model.TableTemplates, query.NewFilter().NewestFirst(), &templates)
	return templates, err
}

func (r *templateRepository) GetTemplateByID(ctx context.Context, id string) (*model.Template, error) {
	var template model.Template
	if err := r.gw.GetByID(ctx, model.TableTemplates, id, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// CreateTemplate writes the template row, then one row per section and per
// question. A failure after the parent row leaves it in place.
func (r *templateRepository) CreateTemplate(ctx context.Context, template *model.Template) error {
	if err := r.gw.Insert(ctx, model.TableTemplates, template); err != nil {
		return err
	}
	for i, sec := range template.Structure {
		section := &model.TemplateSection{TemplateID: template.ID, Title: sec.Title, Position: i}
		if err := r.gw.Insert(ctx, model.TableTemplateSections, section); err != nil {
			return err
		}
		for j, q := range sec.Questions {
			question := &model.TemplateQuestion{
				SectionID: section.ID,
				Type:      q.Type,
				Text:      q.Text,
				Scale:     q.Scale,
				Position:  j,
			}
			if len(q.Options) > 0 {
				opts, err := json.Marshal(q.Options)
				if err != nil {
					return err
				}
				question.Options = string(opts)
			}
			if err := r.gw.Insert(ctx, model.TableTemplateQuestions, question); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *templateRepository) HasDefaultTemplates(ctx context.Context) (bool, error) {
	var templates []model.Template
	err := r.gw.ListBy(ctx, model.TableTemplates, query.NewFilter().Eq("is_default", true).Limit(1), &templates)
	return len(templates) > 0, err
}

// GetNormalizedStructure rebuilds a section tree from template_sections and
// template_questions.
func (r *templateRepository) GetNormalizedStructure(ctx context.Context, templateID string) (model.Structure, error) {
	var sections []model.TemplateSection
	filter := query.NewFilter().Eq("template_id", templateID).OrderBy("position", false).Preload("Questions")
	if err := r.gw.ListBy(ctx, model.TableTemplateSections, filter, &sections); err != nil {
		return nil, err
	}

	structure := make(model.Structure, 0, len(sections))
	for _, sec := range sections {
		qs := sec.Questions
		sort.Slice(qs, func(a, b int) bool { return qs[a].Position < qs[b].Position })
		out := model.Section{Title: sec.Title, Questions: make([]model.Question, 0, len(qs))}
		for _, q := range qs {
			question := model.Question{Type: q.Type, Text: q.Text, Scale: q.Scale}
			if q.Options != "" {
				if err := json.Unmarshal([]byte(q.Options), &question.Options); err != nil {
					return nil, err
				}
			}
			out.Questions = append(out.Questions, question)
		}
		structure = append(structure, out)
	}
	return structure, nil
}
