package repository

import (
	"context"

	"patient-records-api/internal/domain/entity"
	domainRepo "patient-records-api/internal/domain/repository"

	"gorm.io/gorm"
)

// visitLookupBatchSize keeps IN lists far below the PostgreSQL bind parameter limit
const visitLookupBatchSize = 1000

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) domainRepo.VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(ctx context.Context, visit *entity.Visit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *visitRepository) FindByPatientID(ctx context.Context, patientID int64) ([]entity.Visit, error) {
	var visits []entity.Visit
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("visit_date DESC, id DESC").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

// FindByPatientIDs loads the visits of many patients, visitLookupBatchSize ids
// per query. A patient's visits always come from one batch, so their order holds.
func (r *visitRepository) FindByPatientIDs(ctx context.Context, patientIDs []int64) ([]entity.Visit, error) {
	if len(patientIDs) == 0 {
		return nil, nil
	}

	var visits []entity.Visit
	for start := 0; start < len(patientIDs); start += visitLookupBatchSize {
		end := min(start+visitLookupBatchSize, len(patientIDs))

		var batch []entity.Visit
		err := r.db.WithContext(ctx).
			Where("patient_id IN ?", patientIDs[start:end]).
			Order("visit_date DESC, id DESC").
			Find(&batch).Error
		if err != nil {
			return nil, err
		}
		visits = append(visits, batch...)
	}
	return visits, nil
}
