package api

import (
	"log/slog"
	"net/http"

	"github.com/karthiknish/aroosi-swift-sub004/internal/api/shared"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
)

// CatalogSource is the read-only questionnaire served by CatalogHandler.
type CatalogSource interface {
	Version() string
	Categories() []domain.Category
	TotalQuestions() int
}

// CatalogHandler serves the questionnaire.
type CatalogHandler struct {
	catalog CatalogSource
	logger  *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog CatalogSource, logger *slog.Logger) *CatalogHandler {
	if catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalog cannot be nil for CatalogHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "catalog_handler")),
	}
}

// GetCatalog handles GET /api/catalog requests
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, CatalogResponse{
		Version:        h.catalog.Version(),
		TotalQuestions: h.catalog.TotalQuestions(),
		Categories:     h.catalog.Categories(),
	})
}
