package usecase

import (
	"context"
	"io"
	"sync"

	"patient-records-api/internal/domain/entity"
	"patient-records-api/internal/domain/repository"
	"patient-records-api/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type mockPatientRepository struct {
	InsertFn      func(ctx context.Context, patient *entity.Patient) (int64, error)
	FindByIDFn    func(ctx context.Context, id int64) (*entity.Patient, error)
	FindAllFn     func(ctx context.Context) ([]entity.Patient, error)
	UpdateFn      func(ctx context.Context, patient *entity.Patient) (int64, error)
	DeleteByIDFn  func(ctx context.Context, id int64) (int64, error)
	ExistsByNicFn func(ctx context.Context, nic string, excludingID *int64) (bool, error)

	insertCalls int
	updateCalls int
	deleteCalls int
}

var _ repository.PatientRepository = (*mockPatientRepository)(nil)

func (m *mockPatientRepository) Insert(ctx context.Context, patient *entity.Patient) (int64, error) {
	m.insertCalls++
	return m.InsertFn(ctx, patient)
}

func (m *mockPatientRepository) FindByID(ctx context.Context, id int64) (*entity.Patient, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockPatientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	return m.FindAllFn(ctx)
}

func (m *mockPatientRepository) Update(ctx context.Context, patient *entity.Patient) (int64, error) {
	m.updateCalls++
	return m.UpdateFn(ctx, patient)
}

func (m *mockPatientRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	m.deleteCalls++
	return m.DeleteByIDFn(ctx, id)
}

func (m *mockPatientRepository) ExistsByNic(ctx context.Context, nic string, excludingID *int64) (bool, error) {
	if m.ExistsByNicFn == nil {
		return false, nil
	}
	return m.ExistsByNicFn(ctx, nic, excludingID)
}

type mockVisitRepository struct {
	CreateFn           func(ctx context.Context, visit *entity.Visit) error
	FindByPatientIDFn  func(ctx context.Context, patientID int64) ([]entity.Visit, error)
	FindByPatientIDsFn func(ctx context.Context, patientIDs []int64) ([]entity.Visit, error)

	createCalls int
}

var _ repository.VisitRepository = (*mockVisitRepository)(nil)

func (m *mockVisitRepository) Create(ctx context.Context, visit *entity.Visit) error {
	m.createCalls++
	return m.CreateFn(ctx, visit)
}

func (m *mockVisitRepository) FindByPatientID(ctx context.Context, patientID int64) ([]entity.Visit, error) {
	if m.FindByPatientIDFn == nil {
		return nil, nil
	}
	return m.FindByPatientIDFn(ctx, patientID)
}

func (m *mockVisitRepository) FindByPatientIDs(ctx context.Context, patientIDs []int64) ([]entity.Visit, error) {
	if m.FindByPatientIDsFn == nil {
		return nil, nil
	}
	return m.FindByPatientIDsFn(ctx, patientIDs)
}

type mockAuditLogRepository struct {
	CreateFn   func(ctx context.Context, log *entity.AuditLog) error
	FindAllFn  func(ctx context.Context) ([]entity.AuditLog, error)
	FindByIDFn func(ctx context.Context, id int64) (*entity.AuditLog, error)
}

var _ repository.AuditLogRepository = (*mockAuditLogRepository)(nil)

func (m *mockAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return m.CreateFn(ctx, log)
}

func (m *mockAuditLogRepository) FindAll(ctx context.Context) ([]entity.AuditLog, error) {
	return m.FindAllFn(ctx)
}

func (m *mockAuditLogRepository) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	return m.FindByIDFn(ctx, id)
}

// recordingAuditService keeps every action it was asked to log
type recordingAuditService struct {
	mu      sync.Mutex
	actions []string
	err     error
}

var _ service.AuditService = (*recordingAuditService)(nil)

func (s *recordingAuditService) record(action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
	return s.err
}

func (s *recordingAuditService) LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{}) error {
	return s.record(action)
}

func (s *recordingAuditService) LogUpdate(ctx context.Context, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.record(action)
}

func (s *recordingAuditService) LogDelete(ctx context.Context, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.record(action)
}

// memoryPatientRepository enforces nic uniqueness the way the database index does
type memoryPatientRepository struct {
	mu       sync.Mutex
	nextID   int64
	patients map[int64]entity.Patient
}

var _ repository.PatientRepository = (*memoryPatientRepository)(nil)

func newMemoryPatientRepository() *memoryPatientRepository {
	return &memoryPatientRepository{patients: make(map[int64]entity.Patient)}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "idx_patients_nic"}
}

func (r *memoryPatientRepository) Insert(ctx context.Context, patient *entity.Patient) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.patients {
		if p.NIC == patient.NIC {
			return 0, uniqueViolation()
		}
	}
	r.nextID++
	row := *patient
	row.ID = r.nextID
	row.Visits = nil
	r.patients[row.ID] = row
	return row.ID, nil
}

func (r *memoryPatientRepository) FindByID(ctx context.Context, id int64) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memoryPatientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	patients := make([]entity.Patient, 0, len(r.patients))
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.patients[id]; ok {
			patients = append(patients, p)
		}
	}
	return patients, nil
}

func (r *memoryPatientRepository) Update(ctx context.Context, patient *entity.Patient) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[patient.ID]; !ok {
		return 0, nil
	}
	for id, p := range r.patients {
		if id != patient.ID && p.NIC == patient.NIC {
			return 0, uniqueViolation()
		}
	}
	r.patients[patient.ID] = *patient
	return 1, nil
}

func (r *memoryPatientRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[id]; !ok {
		return 0, nil
	}
	delete(r.patients, id)
	return 1, nil
}

func (r *memoryPatientRepository) ExistsByNic(ctx context.Context, nic string, excludingID *int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.patients {
		if excludingID != nil && id == *excludingID {
			continue
		}
		if p.NIC == nic {
			return true, nil
		}
	}
	return false, nil
}
