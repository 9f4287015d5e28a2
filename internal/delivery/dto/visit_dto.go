package dto

// Request DTOs

type CreateVisitRequest struct {
	VisitDate    string `json:"visitDate" validate:"required,datetime=2006-01-02"` // Format: YYYY-MM-DD
	Notes        string `json:"notes"`
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
}

// Response DTOs

type VisitResponse struct {
	ID           int64  `json:"id"`
	PatientID    int64  `json:"patientId"`
	VisitDate    string `json:"visitDate"`
	Notes        string `json:"notes,omitempty"`
	Diagnosis    string `json:"diagnosis,omitempty"`
	Prescription string `json:"prescription,omitempty"`
}

type VisitListResponse struct {
	Visits []VisitResponse `json:"visits"`
	Total  int             `json:"total"`
}
