package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/subscription/model"
	"book-catalog/internal/domains/subscription/service"
	"book-catalog/internal/shared/response"
)

type SubscriptionHandler struct {
	service service.ServiceInterface
}

func NewSubscriptionHandler(service service.ServiceInterface) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// Subscribe registers an email and/or phone for new-book notifications
// from a single author. Repeated requests with the same contact are
// accepted and return the existing subscription.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sub, err := h.service.Subscribe(c.Request.Context(), &req)
	if err != nil {
		h.handleSubscribeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sub)
}

func (h *SubscriptionHandler) handleSubscribeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidContact):
		response.BadRequest(c, "Either email or phone is required")
	case errors.Is(err, model.ErrInvalidEmail):
		response.BadRequest(c, "Invalid email address")
	case errors.Is(err, model.ErrAuthorNotFound):
		response.NotFound(c, "Author not found")
	default:
		log.Error().Err(err).Msg("failed to create subscription")
		response.InternalServerError(c, "Failed to create subscription")
	}
}
