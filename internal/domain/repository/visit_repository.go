package repository

import (
	"context"

	"patient-records-api/internal/domain/entity"
)

type VisitRepository interface {
	Create(ctx context.Context, visit *entity.Visit) error
	FindByPatientID(ctx context.Context, patientID int64) ([]entity.Visit, error)
	FindByPatientIDs(ctx context.Context, patientIDs []int64) ([]entity.Visit, error)
}
