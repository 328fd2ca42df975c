package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	v1 "github.com/aevon-lab/aevon-duration/internal/api/v1"
	httperr "github.com/aevon-lab/aevon-duration/internal/core/errors"
	"github.com/aevon-lab/aevon-duration/internal/core/duration"
	"github.com/aevon-lab/aevon-duration/internal/core/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgReadBodyFailed  = "Failed to read request body"
	msgInvalidJSON     = "Invalid JSON body"
	msgPersistFailed   = "Failed to persist sample"
	msgDuplicateSample = "Sample already exists"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestHandler handles HTTP POST requests for sample ingestion.
func (s *Service) IngestHandler(c *gin.Context) {
	sample, payloadSize, err := s.parseSample(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := validateSample(sample); err != nil {
		writeError(c, err)
		return
	}

	slog.Info("Received Sample",
		"sample_id", sample.ID,
		"series", sample.Series,
		"value", sample.Value.String(),
		"payload_size", payloadSize)

	if err := s.persistSample(c.Request.Context(), sample); err != nil {
		writeError(c, err)
		return
	}

	// Sample persisted. The batch job folds it into pre-aggregates on its next cycle.
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "id": sample.ID})
}

// parseSample reads the raw request body and binds it into a Sample.
// Returns the parsed sample and the raw payload size for logging.
func (s *Service) parseSample(c *gin.Context) (*v1.Sample, int, *ingestionError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var sample v1.Sample
	if err := c.ShouldBindJSON(&sample); err != nil {
		if derr := durationError(err); derr != nil {
			slog.Warn("Invalid duration value received", "error", err)
			return nil, len(bodyBytes), derr
		}
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	if sample.ID == "" {
		sample.ID = uuid.NewString()
	}
	sample.IngestedAt = time.Now().UTC()
	return &sample, len(bodyBytes), nil
}

// durationError maps a failed duration decode to its HTTP error, or returns nil
// when err is not a duration problem.
func durationError(err error) *ingestionError {
	switch {
	case errors.Is(err, duration.ErrOutOfRange):
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpDurationOutOfRangeError,
			message:    err.Error(),
		}
	case errors.Is(err, duration.ErrInvalidSyntax),
		errors.Is(err, duration.ErrInvalidUnits),
		errors.Is(err, duration.ErrUnrecognizedUnit),
		errors.Is(err, duration.ErrUnsupportedUnit):
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidDurationError,
			message:    err.Error(),
		}
	}
	return nil
}

func validateSample(sample *v1.Sample) *ingestionError {
	if err := sample.Validate(); err != nil {
		slog.Warn("Sample validation failed", "error", err, "sample_id", sample.ID)
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidSampleError,
			message:    err.Error(),
		}
	}
	return nil
}

// persistSample saves the sample to the backing store.
func (s *Service) persistSample(ctx context.Context, sample *v1.Sample) *ingestionError {
	if err := s.store.SaveSample(ctx, sample); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			slog.Info("Duplicate sample rejected", "sample_id", sample.ID, "series", sample.Series)
			return &ingestionError{
				statusCode: http.StatusConflict,
				errorType:  httperr.HttpDuplicateSampleError,
				message:    msgDuplicateSample,
			}
		}

		slog.Error("Failed to persist sample", "error", err, "sample_id", sample.ID)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}

	return nil
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
