package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/report/service"
	"book-catalog/internal/shared/response"
)

type ReportHandler struct {
	service service.ServiceInterface
}

func NewReportHandler(service service.ServiceInterface) *ReportHandler {
	return &ReportHandler{service: service}
}

// TopAuthors returns the top authors by books published in a year.
// An absent or unparseable year falls back to the current year.
func (h *ReportHandler) TopAuthors(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	report, err := h.service.TopAuthors(c.Request.Context(), year)
	if err != nil {
		log.Error().Err(err).Msg("failed to build top authors report")
		response.InternalServerError(c, "Failed to build report")
		return
	}

	response.Success(c, http.StatusOK, report)
}
