package http

import (
	"log/slog"
	"net/http"

	"github.com/contracthq/contracts-backend-go/internal/domain/analytics"
	"github.com/contracthq/contracts-backend-go/internal/handler/http/response"
	analyticssvc "github.com/contracthq/contracts-backend-go/internal/service/analytics"
)

type AnalyticsHandler interface {
	GetOverview(w http.ResponseWriter, r *http.Request)
	GetRecentActivity(w http.ResponseWriter, r *http.Request)
}

type AnalyticsHandlerImpl struct {
	analyticsService *analyticssvc.Service
}

func NewAnalyticsHandler(analyticsService *analyticssvc.Service) AnalyticsHandler {
	return &AnalyticsHandlerImpl{analyticsService: analyticsService}
}

// GetOverview implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.analyticsService.GetOverview(r.Context())
	if err != nil {
		slog.Error("Analytics overview service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, overview)
}

// GetRecentActivity implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) GetRecentActivity(w http.ResponseWriter, r *http.Request) {
	activities, err := h.analyticsService.GetRecentActivity(r.Context())
	if err != nil {
		slog.Error("Analytics activity service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if activities == nil {
		activities = []analytics.Activity{}
	}
	response.Success(w, map[string]interface{}{"activities": activities})
}
