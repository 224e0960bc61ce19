package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/support-portal/internal/broadcast"
	"github.com/psds-microservice/support-portal/internal/errs"
	"github.com/psds-microservice/support-portal/internal/model"
	"github.com/psds-microservice/support-portal/internal/service"
)

type TicketHandler struct {
	svc *service.TicketService
	bus broadcast.Broadcaster
}

func NewTicketHandler(svc *service.TicketService, bus broadcast.Broadcaster) *TicketHandler {
	return &TicketHandler{svc: svc, bus: bus}
}

type createTicketRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
	Priority string `json:"priority" binding:"required"`
	Note     string `json:"note"`
}

// statusChange — payload события ticketUpdated.
type statusChange struct {
	ID     uint64 `json:"id"`
	Status string `json:"status"`
}

func (h *TicketHandler) Create(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	ticket := &model.Ticket{
		Name:     req.Name,
		Email:    req.Email,
		Reason:   req.Reason,
		Priority: req.Priority,
		Note:     req.Note,
	}
	if err := h.svc.Create(c.Request.Context(), ticket); err != nil {
		log.Printf("handler: create ticket: %v", err)
		if errors.Is(err, errs.ErrConstraint) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create ticket"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ticket"})
		return
	}
	h.bus.Publish(broadcast.EventNewTicket, ticket)
	c.JSON(http.StatusOK, gin.H{"success": true, "ticket": ticket})
}

func (h *TicketHandler) List(c *gin.Context) {
	f := service.Filter{
		Priority: c.Query("priority"),
		Status:   c.Query("status"),
		Reason:   c.Query("reason"),
		Search:   c.Query("search"),
	}
	items, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		log.Printf("handler: list tickets: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tickets"})
		return
	}
	c.JSON(http.StatusOK, items)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, errs.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
			return
		}
		log.Printf("handler: update ticket %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ticket"})
		return
	}
	h.bus.Publish(broadcast.EventTicketUpdated, statusChange{ID: id, Status: req.Status})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *TicketHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		log.Printf("handler: stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
