package projection

import (
	"errors"
	"net/http"

	httperr "github.com/aevon-lab/aevon-duration/internal/core/errors"
	"github.com/aevon-lab/aevon-duration/internal/core/duration"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/series/:series/aggregate", s.HandleQueryAggregates)
	r.GET("/v1/series/:series/moving", s.HandleQueryMoving)
}

// HandleQueryAggregates handles GET /v1/series/:series/aggregate
// Query parameters: rule, start, end, granularity
func (s *Service) HandleQueryAggregates(c *gin.Context) {
	var req AggregateQueryRequest
	if !bindRequest(c, &req.Series, &req) {
		return
	}

	resp, err := s.QueryAggregates(c.Request.Context(), req)
	if err != nil {
		writeQueryError(c, "Failed to query aggregates", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleQueryMoving handles GET /v1/series/:series/moving
// Query parameters: rule, start, end
func (s *Service) HandleQueryMoving(c *gin.Context) {
	var req MovingQueryRequest
	if !bindRequest(c, &req.Series, &req) {
		return
	}

	resp, err := s.QueryMoving(c.Request.Context(), req)
	if err != nil {
		writeQueryError(c, "Failed to query moving aggregate", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// bindRequest binds the series path parameter and the query parameters,
// writing a 400 on failure.
func bindRequest(c *gin.Context, series *string, query interface{}) bool {
	var uri struct {
		Series string `uri:"series" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return false
	}

	if err := c.ShouldBindQuery(query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return false
	}
	*series = uri.Series
	return true
}

func writeQueryError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid aggregate query",
			Details:   err.Error(),
		})
	case errors.Is(err, duration.ErrOutOfRange):
		c.JSON(http.StatusUnprocessableEntity, httperr.ErrorResponse{
			ErrorType: httperr.HttpDurationOutOfRangeError,
			Message:   "Aggregate is out of range for type duration",
			Details:   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   msg,
			Details:   err.Error(),
		})
	}
}
