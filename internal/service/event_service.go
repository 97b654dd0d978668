package service

import (
	"context"
	"errors"
	"time"

	"teamfeedback-backend/internal/model"
	"teamfeedback-backend/internal/repository"
)

var ErrInvalidEventType = errors.New("event type must be match or training")

type CreateEventRequest struct {
	Name     string    `json:"name" binding:"required"`
	Type     string    `json:"type" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	Location string    `json:"location"`
}

type EventService interface {
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	GetEvents(ctx context.Context, eventType string) ([]model.Event, error)
	CreateEvent(ctx context.Context, req CreateEventRequest) (*model.Event, error)
}

type eventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	return s.eventRepo.GetEventByID(ctx, id)
}

func (s *eventService) GetEvents(ctx context.Context, eventType string) ([]model.Event, error) {
	return s.eventRepo.GetEvents(ctx, eventType)
}

func (s *eventService) CreateEvent(ctx context.Context, req CreateEventRequest) (*model.Event, error) {
	if req.Type != "match" && req.Type != "training" {
		return nil, ErrInvalidEventType
	}
	event := &model.Event{Name: req.Name, Type: req.Type, Date: req.Date, Location: req.Location}
	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
