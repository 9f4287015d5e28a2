package repository

import (
	"context"
	"errors"

	"patient-records-api/internal/domain/entity"
	domainRepo "patient-records-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

// Insert writes a new patient and returns the identifier chosen by the database.
// The argument is left untouched; callers assign the identity themselves.
func (r *patientRepository) Insert(ctx context.Context, patient *entity.Patient) (int64, error) {
	if patient.IsPersisted() {
		return 0, entity.ErrIdentityAlreadyAssigned
	}

	row := *patient
	row.Visits = nil
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (r *patientRepository) FindByID(ctx context.Context, id int64) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).Order("id ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// Update overwrites the mutable columns of an existing patient.
// Returns affected rows: 0 means the patient does not exist.
func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Patient{}).
		Where("id = ?", patient.ID).
		Updates(map[string]interface{}{
			"first_name":    patient.FirstName,
			"last_name":     patient.LastName,
			"nic":           patient.NIC,
			"date_of_birth": patient.DOB,
			"gender":        patient.Gender,
			"phone":         patient.Phone,
			"address":       patient.Address,
		})
	return result.RowsAffected, result.Error
}

// DeleteByID removes a patient together with every visit it owns in one transaction.
// Returns affected patient rows: 0 means the patient does not exist.
func (r *patientRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", id).Delete(&entity.Visit{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entity.Patient{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}

func (r *patientRepository) ExistsByNic(ctx context.Context, nic string, excludingID *int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Patient{}).Where("nic = ?", nic)
	if excludingID != nil {
		query = query.Where("id <> ?", *excludingID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
