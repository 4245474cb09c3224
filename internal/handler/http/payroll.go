package http

import (
	"encoding/json"
	"net/http"

	"github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/campus-hr/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Generation
	Generate(w http.ResponseWriter, r *http.Request)

	// Records
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	UpdateRecordStatus(w http.ResponseWriter, r *http.Request)
	DeleteRecord(w http.ResponseWriter, r *http.Request)

	// Periods
	CreatePeriod(w http.ResponseWriter, r *http.Request)
	GetPeriod(w http.ResponseWriter, r *http.Request)
	ListPeriods(w http.ResponseWriter, r *http.Request)
	UpdatePeriodStatus(w http.ResponseWriter, r *http.Request)
	DeletePeriod(w http.ResponseWriter, r *http.Request)

	// Rate tables
	ListDeductionRates(w http.ResponseWriter, r *http.Request)
	ListTaxBrackets(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== GENERATION ==========

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated", result)
}

// ========== RECORDS ==========

func (h *payrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.payrollService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	periodID := r.URL.Query().Get("period_id")
	employeeID := r.URL.Query().Get("employee_id")

	switch {
	case periodID != "":
		result, err := h.payrollService.ListRecordsByPeriod(r.Context(), periodID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
	case employeeID != "":
		result, err := h.payrollService.ListRecordsByEmployee(r.Context(), employeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
	default:
		response.BadRequest(w, "period_id or employee_id query parameter is required", nil)
	}
}

func (h *payrollHandlerImpl) UpdateRecordStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	var req payroll.UpdateRecordStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	if err := h.payrollService.UpdateRecordStatus(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}

func (h *payrollHandlerImpl) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteRecord(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record deleted successfully", nil)
}

// ========== PERIODS ==========

func (h *payrollHandlerImpl) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreatePeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll period created", result)
}

func (h *payrollHandlerImpl) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Period ID is required", nil)
		return
	}

	result, err := h.payrollService.GetPeriod(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListPeriods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdatePeriodStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Period ID is required", nil)
		return
	}

	var req payroll.UpdatePeriodStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	if err := h.payrollService.UpdatePeriodStatus(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}

func (h *payrollHandlerImpl) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Period ID is required", nil)
		return
	}

	if err := h.payrollService.DeletePeriod(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll period deleted successfully", nil)
}

// ========== RATE TABLES ==========

func (h *payrollHandlerImpl) ListDeductionRates(w http.ResponseWriter, r *http.Request) {
	deductionType := r.URL.Query().Get("type")

	result, err := h.payrollService.ListDeductionRates(r.Context(), deductionType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListTaxBrackets(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListTaxBrackets(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
