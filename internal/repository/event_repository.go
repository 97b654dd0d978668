package repository

import (
	"context"

	"teamfeedback-backend/internal/db"
	"teamfeedback-backend/internal/db/query"
	"teamfeedback-backend/internal/model"
)

type EventRepository interface {
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	GetEvents(ctx context.Context, eventType string) ([]model.Event, error)
	CreateEvent(ctx context.Context, event *model.Event) error
}

type eventRepository struct {
	gw db.Gateway
}

func NewEventRepository(gw db.Gateway) EventRepository {
	return &eventRepository{gw: gw}
}

func (r *eventRepository) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	if err := r.gw.GetByID(ctx, model.TableEvents, id, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) GetEvents(ctx context.Context, eventType string) ([]model.Event, error) {
	var events []model.Event
	err := r.gw.ListBy(ctx, model.TableEvents, query.NewFilter().Eq("type", eventType).OrderBy("date", true), &events)
	return events, err
}

func (r *eventRepository) CreateEvent(ctx context.Context, event *model.Event) error {
	return r.gw.Insert(ctx, model.TableEvents, event)
}
