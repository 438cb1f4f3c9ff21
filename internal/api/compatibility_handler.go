package api

import (
	"log/slog"
	"net/http"

	"github.com/karthiknish/aroosi-swift-sub004/internal/api/shared"
	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/logger"
	"github.com/karthiknish/aroosi-swift-sub004/internal/service"
)

// CompatibilityHandler handles questionnaire and report HTTP requests.
type CompatibilityHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewCompatibilityHandler creates a new CompatibilityHandler
func NewCompatibilityHandler(reportService service.ReportService, logger *slog.Logger) *CompatibilityHandler {
	if reportService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reportService cannot be nil for CompatibilityHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CompatibilityHandler{
		reportService: reportService,
		logger:        logger.With(slog.String("component", "compatibility_handler")),
	}
}

// SubmitResponses handles PUT /api/users/{userID}/responses requests.
// The stored response is replaced by the submitted one.
func (h *CompatibilityHandler) SubmitResponses(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, err := getPathString(r, "userID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SubmitResponsesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	resp, err := h.reportService.SubmitQuestionnaire(r.Context(), userID, req.Responses)
	if err != nil {
		log.Debug("submit questionnaire failed", slog.String("user_id", userID))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responseToDTO(resp))
}

// GetResponses handles GET /api/users/{userID}/responses requests
func (h *CompatibilityHandler) GetResponses(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathString(r, "userID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp, err := h.reportService.GetResponse(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responseToDTO(resp))
}

// ListReports handles GET /api/users/{userID}/reports requests
func (h *CompatibilityHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathString(r, "userID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	reports, err := h.reportService.FetchReports(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := ReportListResponse{Reports: make([]ReportResponse, 0, len(reports))}
	for _, report := range reports {
		out.Reports = append(out.Reports, reportToDTO(report))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GenerateReport handles POST /api/reports requests
func (h *CompatibilityHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateReportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	report, err := h.reportService.GenerateReport(r.Context(), req.UserID1, req.UserID2)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("report created", slog.String("report_id", report.ID.String()))
	w.Header().Set("Location", "/api/reports/"+report.ID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, reportToDTO(report))
}

// GetReport handles GET /api/reports/{reportID} requests
func (h *CompatibilityHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID, err := getPathUUID(r, "reportID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	report, err := h.reportService.GetReport(r.Context(), reportID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reportToDTO(report))
}

// ShareReport handles POST /api/reports/{reportID}/share requests
func (h *CompatibilityHandler) ShareReport(w http.ResponseWriter, r *http.Request) {
	reportID, err := getPathUUID(r, "reportID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ShareReportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	if err := h.reportService.ShareReport(r.Context(), reportID, req.TargetUserID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AttachFeedback handles POST /api/reports/{reportID}/feedback requests
func (h *CompatibilityHandler) AttachFeedback(w http.ResponseWriter, r *http.Request) {
	reportID, err := getPathUUID(r, "reportID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req FeedbackRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	if err := h.reportService.AttachFeedback(r.Context(), reportID, req.Feedback); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
