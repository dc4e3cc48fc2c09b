package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/twhr/payroll-backend-go/internal/domain/payroll"
	"github.com/twhr/payroll-backend-go/internal/handler/http/response"
	"github.com/twhr/payroll-backend-go/internal/pkg/validator"
)

type PayrollHandler interface {
	// Roster
	ListActiveEmployees(w http.ResponseWriter, r *http.Request)

	// Engine
	GenerateDraft(w http.ResponseWriter, r *http.Request)
	SaveDraft(w http.ResponseWriter, r *http.Request)
	GetReport(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	RevertToDraft(w http.ResponseWriter, r *http.Request)
	ApplyManualEdit(w http.ResponseWriter, r *http.Request)
	BatchImport(w http.ResponseWriter, r *http.Request)
	DeleteMonth(w http.ResponseWriter, r *http.Request)
	PreviousSelfInsured(w http.ResponseWriter, r *http.Request)

	// Item catalog
	ListItems(w http.ResponseWriter, r *http.Request)
	CreateItem(w http.ResponseWriter, r *http.Request)
	UpdateItem(w http.ResponseWriter, r *http.Request)
	DeleteItem(w http.ResponseWriter, r *http.Request)

	// Base salary administration
	ListBaseHistory(w http.ResponseWriter, r *http.Request)
	AddBaseRecord(w http.ResponseWriter, r *http.Request)
	ListBelowMinimumWage(w http.ResponseWriter, r *http.Request)
	RaiseBaseSalaries(w http.ResponseWriter, r *http.Request)

	// Recurring assignments
	ListRecurring(w http.ResponseWriter, r *http.Request)
	AssignRecurring(w http.ResponseWriter, r *http.Request)
	RemoveRecurring(w http.ResponseWriter, r *http.Request)

	// Reporting
	EmployerSupplementSummary(w http.ResponseWriter, r *http.Request)
	AnnualItemSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// parsePeriod reads year/month query parameters.
func parsePeriod(r *http.Request) (int, int, error) {
	var errs validator.ValidationErrors

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a number"})
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a number"})
	}
	if len(errs) == 0 && !validator.IsValidPeriod(year, month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "invalid payroll period"})
	}
	if len(errs) > 0 {
		return 0, 0, errs
	}

	return year, month, nil
}

// ========== ROSTER ==========

func (h *payrollHandlerImpl) ListActiveEmployees(w http.ResponseWriter, r *http.Request) {
	year, month, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ListActiveEmployees(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== ENGINE ==========

func (h *payrollHandlerImpl) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GenerateDraft(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var req payroll.SaveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.SaveDraft(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Draft saved", result)
}

func (h *payrollHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	year, month, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetReport(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	year, month, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	count, err := h.payrollService.Finalize(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll finalized", map[string]int{"finalized": count})
}

func (h *payrollHandlerImpl) RevertToDraft(w http.ResponseWriter, r *http.Request) {
	var req payroll.RevertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	count, err := h.payrollService.RevertToDraft(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Records reverted to draft", map[string]int64{"reverted": count})
}

func (h *payrollHandlerImpl) ApplyManualEdit(w http.ResponseWriter, r *http.Request) {
	var req payroll.ManualEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.payrollService.ApplyManualEdit(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary detail updated", nil)
}

func (h *payrollHandlerImpl) BatchImport(w http.ResponseWriter, r *http.Request) {
	year, month, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Import file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.payrollService.BatchImport(r.Context(), year, month, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import applied", result)
}

func (h *payrollHandlerImpl) DeleteMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	count, err := h.payrollService.DeleteMonth(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll month deleted", map[string]int64{"deleted": count})
}

func (h *payrollHandlerImpl) PreviousSelfInsured(w http.ResponseWriter, r *http.Request) {
	year, month, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	names, err := h.payrollService.PreviousSelfInsured(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, names)
}

// ========== ITEM CATALOG ==========

func (h *payrollHandlerImpl) ListItems(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.payrollService.ListItems(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateSalaryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary item created", result)
}

func (h *payrollHandlerImpl) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Salary item ID is required", nil)
		return
	}

	var item payroll.SalaryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	item.ID = id

	if err := h.payrollService.UpdateItem(r.Context(), item); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary item updated", nil)
}

func (h *payrollHandlerImpl) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Salary item ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteItem(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary item deleted", nil)
}

// ========== BASE SALARY ==========

func (h *payrollHandlerImpl) ListBaseHistory(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListBaseHistory(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) AddBaseRecord(w http.ResponseWriter, r *http.Request) {
	var record payroll.SalaryBaseRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.AddBaseRecord(r.Context(), record)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Base salary record added", result)
}

func (h *payrollHandlerImpl) ListBelowMinimumWage(w http.ResponseWriter, r *http.Request) {
	wage, err := decimal.NewFromString(r.URL.Query().Get("wage"))
	if err != nil {
		response.BadRequest(w, "wage must be a number", nil)
		return
	}

	result, err := h.payrollService.ListBelowMinimumWage(r.Context(), wage)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) RaiseBaseSalaries(w http.ResponseWriter, r *http.Request) {
	var req payroll.RaiseBaseSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	count, err := h.payrollService.RaiseBaseSalaries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Base salaries raised", map[string]int{"updated": count})
}

// ========== RECURRING ==========

func (h *payrollHandlerImpl) ListRecurring(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListRecurring(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) AssignRecurring(w http.ResponseWriter, r *http.Request) {
	var req payroll.AssignRecurringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	count, err := h.payrollService.AssignRecurring(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recurring item assigned", map[string]int{"assigned": count})
}

func (h *payrollHandlerImpl) RemoveRecurring(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Recurring item ID is required", nil)
		return
	}

	if err := h.payrollService.RemoveRecurring(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recurring item removed", nil)
}

// ========== REPORTING ==========

func (h *payrollHandlerImpl) EmployerSupplementSummary(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year must be a number", nil)
		return
	}

	result, err := h.payrollService.EmployerSupplementSummary(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) AnnualItemSummary(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year must be a number", nil)
		return
	}

	var itemIDs []int64
	for _, raw := range strings.Split(r.URL.Query().Get("item_ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(w, "item_ids must be a comma-separated list of IDs", nil)
			return
		}
		itemIDs = append(itemIDs, id)
	}

	result, err := h.payrollService.AnnualItemSummary(r.Context(), year, itemIDs)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
