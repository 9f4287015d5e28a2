package repository

import (
	"context"

	"patient-records-api/internal/domain/entity"
)

// PatientRepository is the storage boundary for patient records.
// The unique index on nic is the authority for uniqueness; ExistsByNic is advisory.
type PatientRepository interface {
	Insert(ctx context.Context, patient *entity.Patient) (int64, error)
	FindByID(ctx context.Context, id int64) (*entity.Patient, error)
	FindAll(ctx context.Context) ([]entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	ExistsByNic(ctx context.Context, nic string, excludingID *int64) (bool, error)
}
