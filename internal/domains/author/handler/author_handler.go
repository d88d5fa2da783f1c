package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/author/service"
	"book-catalog/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(service service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// Create handles POST /authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	a, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", verrs)
			return
		}
		response.InternalServerError(c, "Failed to create author")
		return
	}

	response.Success(c, http.StatusCreated, a)
}

// Get handles GET /authors/:id
func (h *AuthorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid author id")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			response.NotFound(c, "Author not found")
			return
		}
		response.InternalServerError(c, "Failed to get author")
		return
	}

	response.Success(c, http.StatusOK, a)
}

// List handles GET /authors
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list authors")
		return
	}

	response.Success(c, http.StatusOK, authors)
}
