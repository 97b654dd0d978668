package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teamfeedback-backend/internal/db"
	"teamfeedback-backend/internal/model"
	"teamfeedback-backend/internal/repository"
	"teamfeedback-backend/utilities"
)

// FormDateLayout renders the creation date in form names.
const FormDateLayout = "1/2/2006"

type CreateFormRequest struct {
	TemplateID     string              `json:"template_id" binding:"required"`
	EventID        string              `json:"event_id" binding:"required"`
	Customizations *FormCustomizations `json:"customizations"`
}

// FormCustomizations overrides the defaults copied from the template.
type FormCustomizations struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Status         *string `json:"status"`
	AllowAnonymous *bool   `json:"allow_anonymous"`
	model.StructureInput
}

type FormService interface {
	CreateForm(ctx context.Context, req CreateFormRequest) (*model.Form, error)
	GetForms(ctx context.Context, eventID string) ([]model.FormListItem, error)
	GetFormByID(ctx context.Context, id string) (*model.Form, error)
	GetActiveFormsByEvent(ctx context.Context, eventID string) ([]model.Form, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Form, error)
}

type formService struct {
	formRepo     repository.FormRepository
	templateRepo repository.TemplateRepository
	eventRepo    repository.EventRepository
	now          func() time.Time
}

func NewFormService(formRepo repository.FormRepository, templateRepo repository.TemplateRepository, eventRepo repository.EventRepository) FormService {
	return &formService{
		formRepo:     formRepo,
		templateRepo: templateRepo,
		eventRepo:    eventRepo,
		now:          time.Now,
	}
}

// CreateForm copies a template's structure into a new form bound to an event.
func (s *formService) CreateForm(ctx context.Context, req CreateFormRequest) (*model.Form, error) {
	template, err := s.templateRepo.GetTemplateByID(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	event, err := s.eventRepo.GetEventByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	structure := template.Structure
	if len(structure) == 0 {
		structure, err = s.templateRepo.GetNormalizedStructure(ctx, template.ID)
		if err != nil {
			return nil, err
		}
	}

	form := model.Form{
		Name:           fmt.Sprintf("%s - %s", template.Name, s.now().Format(FormDateLayout)),
		Description:    template.Description,
		TemplateID:     template.ID,
		EventID:        event.ID,
		Structure:      structure.Clone(),
		Status:         model.FormStatusActive,
		AllowAnonymous: true,
	}

	if c := req.Customizations; c != nil {
		if c.Name != nil {
			form.Name = *c.Name
		}
		if c.Description != nil {
			form.Description = *c.Description
		}
		if c.Status != nil {
			if !isFormStatus(*c.Status) {
				return nil, ErrInvalidStatus
			}
			form.Status = *c.Status
		}
		if c.AllowAnonymous != nil {
			form.AllowAnonymous = *c.AllowAnonymous
		}
		if c.StructureInput.Present() {
			custom := c.StructureInput.Normalize()
			if result := ValidateSections(custom); !result.IsValid {
				return nil, &StructureError{Result: result}
			}
			form.Structure = custom.Clone()
		}
	}

	if err := s.formRepo.CreateForm(ctx, &form); err != nil {
		return nil, err
	}
	utilities.Info("Created form %s (%q) for event %s", form.ID, form.Name, event.ID)
	return &form, nil
}

func (s *formService) GetForms(ctx context.Context, eventID string) ([]model.FormListItem, error) {
	forms, err := s.formRepo.GetForms(ctx, eventID)
	if err != nil {
		return nil, err
	}
	items := make([]model.FormListItem, 0, len(forms))
	for _, f := range forms {
		items = append(items, model.NewFormListItem(f))
	}
	return items, nil
}

func (s *formService) GetFormByID(ctx context.Context, id string) (*model.Form, error) {
	form, err := s.formRepo.GetFormByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrFormNotFound
	}
	return form, err
}

func (s *formService) GetActiveFormsByEvent(ctx context.Context, eventID string) ([]model.Form, error) {
	return s.formRepo.GetActiveFormsByEvent(ctx, eventID)
}

// UpdateStatus moves a form forward through draft, active and closed.
func (s *formService) UpdateStatus(ctx context.Context, id, status string) (*model.Form, error) {
	if !isFormStatus(status) {
		return nil, ErrInvalidStatus
	}
	form, err := s.GetFormByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.Status == status {
		return form, nil
	}
	if !canTransition(form.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, form.Status, status)
	}
	updated, err := s.formRepo.UpdateStatus(ctx, id, form.Status, status)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return nil, ErrFormNotFound
	case errors.Is(err, db.ErrStale):
		return nil, fmt.Errorf("%w: status changed while updating", ErrInvalidTransition)
	}
	return updated, err
}

func isFormStatus(status string) bool {
	switch status {
	case model.FormStatusDraft, model.FormStatusActive, model.FormStatusClosed:
		return true
	}
	return false
}

func canTransition(from, to string) bool {
	switch from {
	case model.FormStatusDraft:
		return to == model.FormStatusActive || to == model.FormStatusClosed
	case model.FormStatusActive:
		return to == model.FormStatusClosed
	}
	return false
}
