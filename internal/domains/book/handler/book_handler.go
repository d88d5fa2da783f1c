package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/service"
	"book-catalog/internal/shared/response"
)

const maxCoverSize = 2 << 20 // 2MB, same limit the form enforces

var allowedCoverExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(service service.ServiceInterface) *BookHandler {
	return &BookHandler{service: service}
}

// Create handles POST /books (multipart form with an optional cover file).
func (h *BookHandler) Create(c *gin.Context) {
	b, image, authorIDs, ok := h.bindPublishForm(c)
	if !ok {
		return
	}

	saved, err := h.service.Publish(c.Request.Context(), b, image, authorIDs)
	if err != nil {
		h.handlePublishError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, saved)
}

// Update handles PUT /books/:id with the same form as Create.
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book id")
		return
	}

	b, image, authorIDs, ok := h.bindPublishForm(c)
	if !ok {
		return
	}
	b.ID = id

	// Carry the current cover reference so a replacement can clean it up.
	current, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, "Failed to load book")
		return
	}
	b.CoverImage = current.CoverImage

	saved, err := h.service.Publish(c.Request.Context(), b, image, authorIDs)
	if err != nil {
		h.handlePublishError(c, err)
		return
	}

	response.Success(c, http.StatusOK, saved)
}

// Get handles GET /books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book id")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, "Failed to get book")
		return
	}

	response.Success(c, http.StatusOK, b)
}

// List handles GET /books?year=
func (h *BookHandler) List(c *gin.Context) {
	var year *int
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "Invalid year filter")
			return
		}
		year = &y
	}

	books, err := h.service.List(c.Request.Context(), year)
	if err != nil {
		response.InternalServerError(c, "Failed to list books")
		return
	}

	response.Success(c, http.StatusOK, books)
}

// Delete handles DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, "Failed to delete book")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *BookHandler) bindPublishForm(c *gin.Context) (*model.Book, *model.ImageUpload, []uuid.UUID, bool) {
	year, err := strconv.Atoi(c.PostForm("year"))
	if err != nil {
		response.BadRequest(c, "Invalid year")
		return nil, nil, nil, false
	}

	b := &model.Book{
		Title: c.PostForm("title"),
		Year:  year,
	}
	if desc := c.PostForm("description"); desc != "" {
		b.Description = &desc
	}
	if isbn := c.PostForm("isbn"); isbn != "" {
		b.ISBN = &isbn
	}

	var authorIDs []uuid.UUID
	for _, raw := range c.PostFormArray("author_ids") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				response.BadRequest(c, "Invalid author id: "+part)
				return nil, nil, nil, false
			}
			authorIDs = append(authorIDs, id)
		}
	}

	image, err := h.readCoverFile(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return nil, nil, nil, false
	}

	return b, image, authorIDs, true
}

func (h *BookHandler) readCoverFile(c *gin.Context) (*model.ImageUpload, error) {
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errors.New("invalid cover upload")
	}

	if fileHeader.Size > maxCoverSize {
		return nil, errors.New("cover image exceeds maximum size (2MB)")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedCoverExtensions[ext] {
		return nil, errors.New("cover image must be PNG, JPG, JPEG or GIF")
	}

	data, err := readAll(fileHeader)
	if err != nil {
		return nil, errors.New("failed to read cover upload")
	}

	return &model.ImageUpload{
		Data:        data,
		Extension:   strings.TrimPrefix(ext, "."),
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *BookHandler) handlePublishError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.Is(err, model.ErrNoAuthorsSelected),
		errors.Is(err, model.ErrAuthorNotFound),
		errors.Is(err, model.ErrIsbnCharacters),
		errors.Is(err, model.ErrIsbnLength),
		errors.Is(err, model.ErrIsbn10Checksum),
		errors.Is(err, model.ErrIsbn13Checksum):
		response.BadRequest(c, err.Error())
	case errors.As(err, &verrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", verrs)
	case errors.Is(err, model.ErrISBNAlreadyExists):
		response.Conflict(c, "This ISBN is already registered in the catalog")
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, "Book not found")
	case errors.Is(err, model.ErrImageUploadFailed):
		response.ErrorResponse(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Cover image could not be stored")
	default:
		response.InternalServerError(c, "Failed to save book")
	}
}
