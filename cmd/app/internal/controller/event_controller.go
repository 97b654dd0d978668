package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamfeedback-backend/internal/service"
)

type EventController struct {
	EventService service.EventService
}

func NewEventController(eventService service.EventService) *EventController {
	return &EventController{EventService: eventService}
}

// GetEvent answers 400 for any lookup failure, missing rows included.
func (ec *EventController) GetEvent(c *gin.Context) {
	event, err := ec.EventService.GetEventByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (ec *EventController) GetEvents(c *gin.Context) {
	events, err := ec.EventService.GetEvents(c.Request.Context(), c.Query("type"))
	if err != nil {
		respondError(c, err, "fetch events")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	event, err := ec.EventService.CreateEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "create event")
		return
	}
	c.JSON(http.StatusCreated, event)
}
