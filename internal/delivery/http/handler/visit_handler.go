package handler

import (
	"encoding/json"
	"net/http"

	"patient-records-api/internal/delivery/dto"
	"patient-records-api/internal/usecase"
	"patient-records-api/pkg/response"
	"patient-records-api/pkg/validator"
)

type VisitHandler struct {
	visitUsecase usecase.VisitUsecase
	validator    *validator.CustomValidator
}

func NewVisitHandler(visitUsecase usecase.VisitUsecase, validator *validator.CustomValidator) *VisitHandler {
	return &VisitHandler{
		visitUsecase: visitUsecase,
		validator:    validator,
	}
}

func (h *VisitHandler) GetPatientVisits(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	visits, err := h.visitUsecase.GetPatientVisits(r.Context(), patientID)
	if err != nil {
		writePatientError(w, err, "Failed to get visits")
		return
	}

	response.Success(w, http.StatusOK, "Visits retrieved successfully", visits)
}

func (h *VisitHandler) AddPatientVisit(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	var req dto.CreateVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	visit, err := h.visitUsecase.AddPatientVisit(r.Context(), patientID, &req)
	if err != nil {
		writePatientError(w, err, "Failed to add visit")
		return
	}

	response.Success(w, http.StatusCreated, "Visit added successfully", visit)
}
