package usecase

import (
	"context"

	"patient-records-api/internal/converter"
	"patient-records-api/internal/delivery/dto"
	"patient-records-api/internal/domain/entity"
	"patient-records-api/internal/domain/repository"
	"patient-records-api/internal/service"

	"github.com/sirupsen/logrus"
)

type VisitUsecase interface {
	GetPatientVisits(ctx context.Context, patientID int64) (*dto.VisitListResponse, error)
	AddPatientVisit(ctx context.Context, patientID int64, req *dto.CreateVisitRequest) (*dto.VisitResponse, error)
}

type visitUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	visitRepo    repository.VisitRepository
	auditService service.AuditService
}

func NewVisitUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	visitRepo repository.VisitRepository,
	auditService service.AuditService,
) VisitUsecase {
	return &visitUsecase{
		log:          log,
		patientRepo:  patientRepo,
		visitRepo:    visitRepo,
		auditService: auditService,
	}
}

func (u *visitUsecase) GetPatientVisits(ctx context.Context, patientID int64) (*dto.VisitListResponse, error) {
	if err := u.ensurePatientExists(ctx, patientID); err != nil {
		return nil, err
	}

	visits, err := u.visitRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find visits: %+v", err)
		return nil, err
	}

	responses := converter.VisitsToResponses(visits)

	return &dto.VisitListResponse{
		Visits: responses,
		Total:  len(responses),
	}, nil
}

func (u *visitUsecase) AddPatientVisit(ctx context.Context, patientID int64, req *dto.CreateVisitRequest) (*dto.VisitResponse, error) {
	visit, err := converter.CreateVisitRequestToEntity(patientID, req)
	if err != nil {
		return nil, err
	}

	if err := u.ensurePatientExists(ctx, patientID); err != nil {
		return nil, err
	}

	if err := u.visitRepo.Create(ctx, visit); err != nil {
		// The patient was deleted after the existence check
		if isForeignKeyViolation(err) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create visit: %+v", err)
		return nil, err
	}

	resp := converter.VisitToResponse(visit)

	if err := u.auditService.LogCreate(ctx, entity.AuditActionVisitCreate, "visit", formatID(visit.ID), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return resp, nil
}

func (u *visitUsecase) ensurePatientExists(ctx context.Context, patientID int64) error {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	return nil
}
