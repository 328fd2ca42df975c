package ingestion

import (
	"github.com/aevon-lab/aevon-duration/internal/core/storage"
	"github.com/gin-gonic/gin"
)

const defaultListLimit = 1000

type Service struct {
	store            storage.SampleStore
	maxBodySizeBytes int
}

func NewService(repo storage.SampleStore, maxBodySizeMB int) *Service {
	if repo == nil {
		panic("ingestion: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            repo,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/samples", s.IngestHandler)
	r.GET("/v1/series/:series/samples", s.ListSamplesHandler)

	// Short alias used by collectors.
	r.POST("/v1/ingest", s.IngestHandler)
}
