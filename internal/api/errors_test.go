package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
	"github.com/karthiknish/aroosi-swift-sub004/internal/service"
	"github.com/karthiknish/aroosi-swift-sub004/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	storeErr := store.NewStoreError("report", "share", "no rows", store.ErrReportNotFound)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"responses not found", fmt.Errorf("%w: user a", service.ErrResponsesNotFound), http.StatusNotFound},
		{"report not found", service.ErrReportNotFound, http.StatusNotFound},
		{"store not found", storeErr, http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"invalid input", service.ErrInvalidInput, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"domain validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"invalid format", domain.ErrInvalidFormat, http.StatusBadRequest},
		{"save failed", &service.SaveFailedError{Report: &domain.CompatibilityReport{}, Err: errors.New("timeout")}, http.StatusServiceUnavailable},
		{"service error", service.NewReportServiceError("get_report", "failed", errors.New("boom")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessageHidesDetails(t *testing.T) {
	t.Parallel()

	err := service.NewReportServiceError("save_report", "failed",
		errors.New("pq: relation compatibility_reports at 10.0.0.5:5432"))

	msg := GetSafeErrorMessage(err)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "10.0.0.5")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Report not found", GetSafeErrorMessage(service.ErrReportNotFound))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	v := validator.New()

	tests := []struct {
		name string
		req  any
		want string
	}{
		{"required", &GenerateReportRequest{UserID2: "b"}, "Invalid user_id_1: required field"},
		{"nefield", &GenerateReportRequest{UserID1: "a", UserID2: "a"}, "Invalid user_id_2: must differ from the other user"},
		{"required target", &ShareReportRequest{}, "Invalid target_user_id: required field"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := v.Struct(tc.req)
			assert.Equal(t, tc.want, SanitizeValidationError(err))
		})
	}

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}

func TestToSnake(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"UserID1":      "user_id_1",
		"UserID2":      "user_id_2",
		"TargetUserID": "target_user_id",
		"Feedback":     "feedback",
		"Responses":    "responses",
	}
	for in, want := range tests {
		assert.Equal(t, want, toSnake(in), in)
	}
}
