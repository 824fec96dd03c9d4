package handler

import (
	"github.com/trenddash/image-pipeline/internal/config"
	"github.com/trenddash/image-pipeline/internal/database"
	"github.com/trenddash/image-pipeline/internal/pipeline"
	"github.com/trenddash/image-pipeline/internal/storage"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	Pipeline *pipeline.Service
	DB       database.Database
	Bucket   storage.ObjectStore
	Config   *config.Config
}
