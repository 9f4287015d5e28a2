package converter

import (
	"patient-records-api/internal/delivery/dto"
	"patient-records-api/internal/domain/entity"
)

// CreateVisitRequestToEntity converts a CreateVisitRequest DTO to a Visit owned by patientID
func CreateVisitRequestToEntity(patientID int64, req *dto.CreateVisitRequest) (*entity.Visit, error) {
	visitDate, err := parseDate(req.VisitDate)
	if err != nil {
		return nil, err
	}

	return &entity.Visit{
		PatientID:    patientID,
		VisitDate:    visitDate,
		Notes:        req.Notes,
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
	}, nil
}

// VisitToResponse converts a Visit entity to VisitResponse DTO
func VisitToResponse(visit *entity.Visit) *dto.VisitResponse {
	if visit == nil {
		return nil
	}

	return &dto.VisitResponse{
		ID:           visit.ID,
		PatientID:    visit.PatientID,
		VisitDate:    formatDate(visit.VisitDate),
		Notes:        visit.Notes,
		Diagnosis:    visit.Diagnosis,
		Prescription: visit.Prescription,
	}
}

// VisitsToResponses converts a slice of Visit entities to slice of VisitResponse DTOs.
// A nil slice yields an empty, non-nil slice.
func VisitsToResponses(visits []entity.Visit) []dto.VisitResponse {
	responses := make([]dto.VisitResponse, len(visits))
	for i := range visits {
		responses[i] = *VisitToResponse(&visits[i])
	}
	return responses
}

// GroupVisitsByPatient buckets visits by owner, keeping their relative order
func GroupVisitsByPatient(visits []entity.Visit) map[int64][]entity.Visit {
	grouped := make(map[int64][]entity.Visit)
	for _, visit := range visits {
		grouped[visit.PatientID] = append(grouped[visit.PatientID], visit)
	}
	return grouped
}
