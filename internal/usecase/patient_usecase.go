package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"patient-records-api/internal/converter"
	"patient-records-api/internal/delivery/dto"
	"patient-records-api/internal/domain/entity"
	"patient-records-api/internal/domain/repository"
	"patient-records-api/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrDuplicateNic      = errors.New("NIC already exists")
	ErrInvalidDateFormat = converter.ErrInvalidDateFormat
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id int64) error
}

type patientUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	visitRepo    repository.VisitRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	visitRepo repository.VisitRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		patientRepo:  patientRepo,
		visitRepo:    visitRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := converter.CreatePatientRequestToEntity(req)
	if err != nil {
		return nil, err
	}

	if err := patient.Validate(); err != nil {
		return nil, err
	}

	if err := u.ensureUniqueNic(ctx, patient.NIC, nil); err != nil {
		return nil, err
	}

	id, err := u.patientRepo.Insert(ctx, patient)
	if err != nil {
		if isDuplicateNicError(err) {
			return nil, ErrDuplicateNic
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := patient.AssignIdentity(id); err != nil {
		u.log.Errorf("Failed to assign patient identity: %+v", err)
		return nil, err
	}

	resp := converter.PatientToResponse(patient)

	if err := u.auditService.LogCreate(ctx, entity.AuditActionPatientCreate, "patient", formatID(patient.ID), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		// Don't fail the request for audit log errors
	}

	return resp, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error) {
	patient, err := u.findPatientWithVisits(ctx, id)
	if err != nil {
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	ids := make([]int64, len(patients))
	for i, patient := range patients {
		ids[i] = patient.ID
	}

	visits, err := u.visitRepo.FindByPatientIDs(ctx, ids)
	if err != nil {
		u.log.Warnf("Failed to find visits: %+v", err)
		return nil, err
	}

	grouped := converter.GroupVisitsByPatient(visits)
	for i := range patients {
		patients[i].Visits = grouped[patients[i].ID]
	}

	responses := converter.PatientsToResponses(patients)

	return &dto.PatientListResponse{
		Patients: responses,
		Total:    len(responses),
	}, nil
}

// UpdatePatient replaces the mutable fields of a patient. The identity never changes.
func (u *patientUsecase) UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	updated, err := converter.UpdatePatientRequestToEntity(id, req)
	if err != nil {
		return nil, err
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	current, err := u.findPatientWithVisits(ctx, id)
	if err != nil {
		return nil, err
	}

	// Capture old value for audit
	oldValue := converter.PatientToResponse(current)

	if updated.NIC != current.NIC {
		if err := u.ensureUniqueNic(ctx, updated.NIC, &id); err != nil {
			return nil, err
		}
	}

	affectedRows, err := u.patientRepo.Update(ctx, updated)
	if err != nil {
		if isDuplicateNicError(err) {
			return nil, ErrDuplicateNic
		}
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}
	if affectedRows == 0 {
		return nil, ErrPatientNotFound
	}

	updated.Visits = current.Visits
	newValue := converter.PatientToResponse(updated)

	if err := u.auditService.LogUpdate(ctx, entity.AuditActionPatientUpdate, "patient", formatID(id), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

// DeletePatient removes the patient and every visit it owns.
func (u *patientUsecase) DeletePatient(ctx context.Context, id int64) error {
	// Get patient for audit log before delete
	patient, err := u.findPatientWithVisits(ctx, id)
	if err != nil {
		return err
	}
	oldValue := converter.PatientToResponse(patient)

	affectedRows, err := u.patientRepo.DeleteByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed delete patient: %+v", err)
		return err
	}

	if affectedRows == 0 {
		u.log.Warnf("Failed delete patient: %+v", "patient not found")
		return ErrPatientNotFound
	}

	if err := u.auditService.LogDelete(ctx, entity.AuditActionPatientDelete, "patient", formatID(id), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

// ensureUniqueNic is the advisory uniqueness check. The unique index still decides
// when two writers race past it.
func (u *patientUsecase) ensureUniqueNic(ctx context.Context, nic string, excludingID *int64) error {
	exists, err := u.patientRepo.ExistsByNic(ctx, nic, excludingID)
	if err != nil {
		u.log.Warnf("Failed to check NIC uniqueness: %+v", err)
		return err
	}
	if exists {
		return ErrDuplicateNic
	}
	return nil
}

// findPatientWithVisits loads a patient and then, explicitly, the visits it owns
func (u *patientUsecase) findPatientWithVisits(ctx context.Context, id int64) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	visits, err := u.visitRepo.FindByPatientID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find visits: %+v", err)
		return nil, err
	}
	patient.Visits = visits

	return patient, nil
}

// isDuplicateNicError reports whether a storage error is a unique violation on nic
func isDuplicateNicError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return isDuplicateKeyError(err, "nic")
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyViolation reports whether a storage error is a PostgreSQL
// foreign_key_violation, i.e. the referenced row is gone
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	// PostgreSQL error code 23503 = foreign_key_violation
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
