package service

import (
	"context"
	"errors"

	"teamfeedback-backend/internal/db"
	"teamfeedback-backend/internal/model"
	"teamfeedback-backend/internal/repository"
	"teamfeedback-backend/utilities"
)

type CreateTemplateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type"`
	model.StructureInput
}

type TemplateService interface {
	GetTemplates(ctx context.Context) ([]model.Template, error)
	GetTemplateByID(ctx context.Context, id string) (*model.Template, error)
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*model.Template, error)
	SeedDefaultTemplates(ctx context.Context) (int, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
}

func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

func (s *templateService) GetTemplates(ctx context.Context) ([]model.Template, error) {
	return s.templateRepo.GetTemplates(ctx)
}

// GetTemplateByID falls back to the normalized section rows when the
// template row carries no inline structure.
func (s *templateService) GetTemplateByID(ctx context.Context, id string) (*model.Template, error) {
	template, err := s.templateRepo.GetTemplateByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if len(template.Structure) == 0 {
		structure, err := s.templateRepo.GetNormalizedStructure(ctx, id)
		if err != nil {
			return nil, err
		}
		template.Structure = structure
	}
	return template, nil
}

// CreateTemplate validates and stores a coach-authored template. Its counts
// are always derived from the structure.
func (s *templateService) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*model.Template, error) {
	if result := ValidateFormStructure(req.StructureInput); !result.IsValid {
		return nil, &StructureError{Result: result}
	}
	structure := req.StructureInput.Normalize().Clone()
	template := &model.Template{
		Name:          req.Name,
		Description:   req.Description,
		Type:          req.Type,
		Structure:     structure,
		SectionCount:  len(structure),
		QuestionCount: CountTotalQuestions(model.FromSections(structure)),
	}
	if err := s.templateRepo.CreateTemplate(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// SeedDefaultTemplates stores the built-in catalog once. It returns the
// number of templates written.
func (s *templateService) SeedDefaultTemplates(ctx context.Context) (int, error) {
	seeded, err := s.templateRepo.HasDefaultTemplates(ctx)
	if err != nil {
		return 0, err
	}
	if seeded {
		utilities.Info("Default templates already present, skipping seed")
		return 0, nil
	}

	count := 0
	for _, tpl := range ListDefaultTemplates() {
		tpl := tpl
		if err := s.templateRepo.CreateTemplate(ctx, &tpl); err != nil {
			return count, err
		}
		utilities.Info("Seeded template %q", tpl.Name)
		count++
	}
	return count, nil
}
