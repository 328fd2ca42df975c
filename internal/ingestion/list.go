package ingestion

import (
	"log/slog"
	"net/http"
	"time"

	httperr "github.com/aevon-lab/aevon-duration/internal/core/errors"
	"github.com/gin-gonic/gin"
)

type listSamplesQuery struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit int       `form:"limit"`
}

// ListSamplesHandler returns the raw samples of one series observed in [start, end).
func (s *Service) ListSamplesHandler(c *gin.Context) {
	var uri struct {
		Series string `uri:"series" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		writeError(c, badQuery(err.Error()))
		return
	}
	var req listSamplesQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, badQuery(err.Error()))
		return
	}
	if !req.End.After(req.Start) {
		writeError(c, badQuery("end must be after start"))
		return
	}
	if req.Limit <= 0 || req.Limit > defaultListLimit {
		req.Limit = defaultListLimit
	}

	samples, err := s.store.RetrieveSeriesRange(c.Request.Context(), uri.Series, req.Start.UTC(), req.End.UTC(), req.Limit)
	if err != nil {
		slog.Error("Failed to list samples", "error", err, "series", uri.Series)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    "Failed to list samples",
		})
		return
	}

	c.JSON(http.StatusOK, samples)
}

func badQuery(msg string) *ingestionError {
	return &ingestionError{
		statusCode: http.StatusBadRequest,
		errorType:  httperr.HttpInvalidQueryError,
		message:    msg,
	}
}
