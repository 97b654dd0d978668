package repository

import (
	"context"

	"teamfeedback-backend/internal/db"
	"teamfeedback-backend/internal/db/query"
	"teamfeedback-backend/internal/model"
)

type ResponseRepository interface {
	CreateResponse(ctx context.Context, response *model.Response) error
	DeleteResponse(ctx context.Context, id string) error
	SaveAnswer(ctx context.Context, answer *model.QuestionResponse) error
	DeleteAnswer(ctx context.Context, id string) error
	GetResponsesByForm(ctx context.Context, formID string) ([]model.Response, error)
}

type responseRepository struct {
	gw db.Gateway
}

func NewResponseRepository(gw db.Gateway) ResponseRepository {
	return &responseRepository{gw: gw}
}

func (r *responseRepository) CreateResponse(ctx context.Context, response *model.Response) error {
	return r.gw.Insert(ctx, model.TableResponses, response)
}

func (r *responseRepository) DeleteResponse(ctx context.Context, id string) error {
	return r.gw.Delete(ctx, model.TableResponses, id)
}

func (r *responseRepository) SaveAnswer(ctx context.Context, answer *model.QuestionResponse) error {
	return r.gw.Insert(ctx, model.TableQuestionResponses, answer)
}

func (r *responseRepository) DeleteAnswer(ctx context.Context, id string) error {
	return r.gw.Delete(ctx, model.TableQuestionResponses, id)
}

func (r *responseRepository) GetResponsesByForm(ctx context.Context, formID string) ([]model.Response, error) {
	responses := []model.Response{}
	if !db.ValidID(formID) {
		return responses, nil
	}
	filter := query.NewFilter().Eq("form_id", formID).OrderBy("submitted_at", true).Preload("Answers")
	err := r.gw.ListBy(ctx, model.TableResponses, filter, &responses)
	return responses, err
}
