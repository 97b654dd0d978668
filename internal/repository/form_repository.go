package repository

import (
	"context"
	"time"

	"teamfeedback-backend/internal/db"
	"teamfeedback-backend/internal/db/query"
	"teamfeedback-backend/internal/model"
)

type FormRepository interface {
	CreateForm(ctx context.Context, form *model.Form) error
	GetForms(ctx context.Context, eventID string) ([]model.Form, error)
	GetFormByID(ctx context.Context, id string) (*model.Form, error)
	GetActiveFormsByEvent(ctx context.Context, eventID string) ([]model.Form, error)
	UpdateStatus(ctx context.Context, id, from, to string) (*model.Form, error)
}

type formRepository struct {
	gw db.Gateway
}

func NewFormRepository(gw db.Gateway) FormRepository {
	return &formRepository{gw: gw}
}

func (r *formRepository) CreateForm(ctx context.Context, form *model.Form) error {
	return r.gw.Insert(ctx, model.TableForms, form)
}

// GetForms lists forms newest first with a summary of their event and template.
func (r *formRepository) GetForms(ctx context.Context, eventID string) ([]model.Form, error) {
	forms := []model.Form{}
	if eventID != "" && !db.ValidID(eventID) {
		return forms, nil
	}
	filter := query.NewFilter().
		Eq("event_id", eventID).
		NewestFirst().
		Preload("Event", "id", "name", "type", "date").
		Preload("Template", "id", "name", "type")
	err := r.gw.ListBy(ctx, model.TableForms, filter, &forms)
	return forms, err
}

// GetFormByID loads a form with its full event and template.
func (r *formRepository) GetFormByID(ctx context.Context, id string) (*model.Form, error) {
	var form model.Form
	err := r.gw.GetByID(ctx, model.TableForms, id, &form,
		query.Preload{Relation: "Event"}, query.Preload{Relation: "Template"})
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) GetActiveFormsByEvent(ctx context.Context, eventID string) ([]model.Form, error) {
	forms := []model.Form{}
	if !db.ValidID(eventID) {
		return forms, nil
	}
	filter := query.NewFilter().
		Eq("event_id", eventID).
		Eq("status", model.FormStatusActive).
		NewestFirst()
	err := r.gw.ListBy(ctx, model.TableForms, filter, &forms)
	return forms, err
}

// UpdateStatus moves the form from one status to another. It returns
// db.ErrStale when the stored status is no longer from.
func (r *formRepository) UpdateStatus(ctx context.Context, id, from, to string) (*model.Form, error) {
	var form model.Form
	expect := map[string]interface{}{"status": from}
	patch := map[string]interface{}{"status": to, "updated_at": time.Now()}
	if err := r.gw.UpdateIf(ctx, model.TableForms, id, expect, patch, &form); err != nil {
		return nil, err
	}
	return &form, nil
}
