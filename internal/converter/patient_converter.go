package converter

import (
	"patient-records-api/internal/delivery/dto"
	"patient-records-api/internal/domain/entity"
)

// CreatePatientRequestToEntity converts a creation request to a pending Patient.
// The result has no identity and no visits; it still has to pass Validate.
func CreatePatientRequestToEntity(req *dto.CreatePatientRequest) (*entity.Patient, error) {
	return newPatient(req.FirstName, req.LastName, req.NIC, req.DOB, req.Gender, req.Phone, req.Address)
}

// UpdatePatientRequestToEntity converts an update request to the replacement field set
// of the patient identified by id.
func UpdatePatientRequestToEntity(id int64, req *dto.UpdatePatientRequest) (*entity.Patient, error) {
	patient, err := newPatient(req.FirstName, req.LastName, req.NIC, req.DOB, req.Gender, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	patient.ID = id
	return patient, nil
}

func newPatient(firstName, lastName, nic, dob, gender, phone, address string) (*entity.Patient, error) {
	g, err := entity.ParseGender(gender)
	if err != nil {
		return nil, err
	}

	d, err := parseOptionalDate(dob)
	if err != nil {
		return nil, err
	}

	return &entity.Patient{
		FirstName: firstName,
		LastName:  lastName,
		NIC:       nic,
		DOB:       d,
		Gender:    g,
		Phone:     phone,
		Address:   address,
		Visits:    []entity.Visit{},
	}, nil
}

// PatientToResponse converts a Patient entity to PatientResponse DTO.
// Visits keep the order in which they were loaded.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:        patient.ID,
		FirstName: patient.FirstName,
		LastName:  patient.LastName,
		NIC:       patient.NIC,
		DOB:       formatOptionalDate(patient.DOB),
		Gender:    patient.Gender.String(),
		Phone:     patient.Phone,
		Address:   patient.Address,
		Visits:    VisitsToResponses(patient.Visits),
	}
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
