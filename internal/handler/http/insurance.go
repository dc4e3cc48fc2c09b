package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/twhr/payroll-backend-go/internal/domain/insurance"
	"github.com/twhr/payroll-backend-go/internal/handler/http/response"
	"github.com/twhr/payroll-backend-go/internal/pkg/validator"
	insuranceService "github.com/twhr/payroll-backend-go/internal/service/insurance"
)

type InsuranceHandler interface {
	ListGrades(w http.ResponseWriter, r *http.Request)
	ReplaceSchedule(w http.ResponseWriter, r *http.Request)
	UpdateGrade(w http.ResponseWriter, r *http.Request)
	DeleteGrade(w http.ResponseWriter, r *http.Request)
	Lookup(w http.ResponseWriter, r *http.Request)
}

type insuranceHandlerImpl struct {
	gradeService *insuranceService.GradeLookupService
}

func NewInsuranceHandler(gradeService *insuranceService.GradeLookupService) InsuranceHandler {
	return &insuranceHandlerImpl{gradeService: gradeService}
}

type replaceScheduleRequest struct {
	Type          string                         `json:"type"`
	ScheduleStart string                         `json:"schedule_start"`
	Grades        []insuranceService.ParsedGrade `json:"grades"`
}

func (h *insuranceHandlerImpl) ListGrades(w http.ResponseWriter, r *http.Request) {
	result, err := h.gradeService.ListGrades(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *insuranceHandlerImpl) ReplaceSchedule(w http.ResponseWriter, r *http.Request) {
	var req replaceScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	gradeType := insurance.GradeType(req.Type)
	if gradeType != insurance.GradeTypeLabor && gradeType != insurance.GradeTypeHealth {
		response.BadRequest(w, "type must be labor or health", nil)
		return
	}
	start, ok := validator.IsValidDate(req.ScheduleStart)
	if !ok {
		response.BadRequest(w, "schedule_start must be YYYY-MM-DD", nil)
		return
	}

	count, err := h.gradeService.ReplaceSchedule(r.Context(), gradeType, start, req.Grades)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Insurance schedule replaced", map[string]int{"inserted": count})
}

func (h *insuranceHandlerImpl) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Grade ID is required", nil)
		return
	}

	var grade insurance.Grade
	if err := json.NewDecoder(r.Body).Decode(&grade); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	grade.ID = id

	if err := h.gradeService.UpdateGrade(r.Context(), grade); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Insurance grade updated", nil)
}

func (h *insuranceHandlerImpl) DeleteGrade(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Grade ID is required", nil)
		return
	}

	if err := h.gradeService.DeleteGrade(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Insurance grade deleted", nil)
}

// Lookup resolves the premium split for one amount, mostly for
// operator sanity checks from the UI.
func (h *insuranceHandlerImpl) Lookup(w http.ResponseWriter, r *http.Request) {
	gradeType := insurance.GradeType(r.URL.Query().Get("type"))
	if gradeType != insurance.GradeTypeLabor && gradeType != insurance.GradeTypeHealth {
		response.BadRequest(w, "type must be labor or health", nil)
		return
	}
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		response.BadRequest(w, "amount must be a number", nil)
		return
	}
	asOf, ok := validator.IsValidDate(r.URL.Query().Get("as_of"))
	if !ok {
		response.BadRequest(w, "as_of must be YYYY-MM-DD", nil)
		return
	}

	fees, err := h.gradeService.Lookup(r.Context(), gradeType, amount, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, fees)
}
