package dto

// Request DTOs

// CreatePatientRequest is the creation variant of the patient transfer shape.
// It cannot carry an id or visits.
type CreatePatientRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	NIC       string `json:"nic" validate:"required,max=20"`
	DOB       string `json:"dob" validate:"omitempty,datetime=2006-01-02"` // Format: YYYY-MM-DD
	Gender    string `json:"gender"`                                        // MALE | FEMALE | OTHER
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Address   string `json:"address"`
}

// UpdatePatientRequest replaces every mutable field of an existing patient.
type UpdatePatientRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	NIC       string `json:"nic" validate:"required,max=20"`
	DOB       string `json:"dob" validate:"omitempty,datetime=2006-01-02"` // Format: YYYY-MM-DD
	Gender    string `json:"gender"`                                        // MALE | FEMALE | OTHER
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Address   string `json:"address"`
}

// Response DTOs

// PatientResponse is the full variant of the patient transfer shape.
type PatientResponse struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	NIC       string          `json:"nic"`
	DOB       string          `json:"dob,omitempty"`
	Gender    string          `json:"gender,omitempty"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Visits    []VisitResponse `json:"visits"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
