package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"patient-records-api/internal/delivery/dto"
	"patient-records-api/internal/usecase"
	"patient-records-api/pkg/response"
	"patient-records-api/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type mockPatientUsecase struct {
	CreatePatientFn  func(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatientFn     func(ctx context.Context, id int64) (*dto.PatientResponse, error)
	GetAllPatientsFn func(ctx context.Context) (*dto.PatientListResponse, error)
	UpdatePatientFn  func(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatientFn  func(ctx context.Context, id int64) error
}

var _ usecase.PatientUsecase = (*mockPatientUsecase)(nil)

func (m *mockPatientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	return m.CreatePatientFn(ctx, req)
}

func (m *mockPatientUsecase) GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error) {
	return m.GetPatientFn(ctx, id)
}

func (m *mockPatientUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	return m.GetAllPatientsFn(ctx)
}

func (m *mockPatientUsecase) UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	return m.UpdatePatientFn(ctx, id, req)
}

func (m *mockPatientUsecase) DeletePatient(ctx context.Context, id int64) error {
	return m.DeletePatientFn(ctx, id)
}

type mockVisitUsecase struct {
	GetPatientVisitsFn func(ctx context.Context, patientID int64) (*dto.VisitListResponse, error)
	AddPatientVisitFn  func(ctx context.Context, patientID int64, req *dto.CreateVisitRequest) (*dto.VisitResponse, error)
}

var _ usecase.VisitUsecase = (*mockVisitUsecase)(nil)

func (m *mockVisitUsecase) GetPatientVisits(ctx context.Context, patientID int64) (*dto.VisitListResponse, error) {
	return m.GetPatientVisitsFn(ctx, patientID)
}

func (m *mockVisitUsecase) AddPatientVisit(ctx context.Context, patientID int64, req *dto.CreateVisitRequest) (*dto.VisitResponse, error) {
	return m.AddPatientVisitFn(ctx, patientID, req)
}

type mockAuditLogUsecase struct {
	GetAllAuditLogsFn func(ctx context.Context) (*dto.AuditLogListResponse, error)
	GetAuditLogFn     func(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

var _ usecase.AuditLogUsecase = (*mockAuditLogUsecase)(nil)

func (m *mockAuditLogUsecase) GetAllAuditLogs(ctx context.Context) (*dto.AuditLogListResponse, error) {
	return m.GetAllAuditLogsFn(ctx)
}

func (m *mockAuditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	return m.GetAuditLogFn(ctx, id)
}

// newTestRouter mounts the handlers on the same paths the API router uses
func newTestRouter(patients usecase.PatientUsecase, visits usecase.VisitUsecase, auditLogs usecase.AuditLogUsecase) *mux.Router {
	v := validator.NewValidator()
	r := mux.NewRouter()

	if patients != nil {
		h := NewPatientHandler(patients, v)
		r.HandleFunc("/patients", h.CreatePatient).Methods(http.MethodPost)
		r.HandleFunc("/patients", h.GetAllPatients).Methods(http.MethodGet)
		r.HandleFunc("/patients/{id}", h.GetPatient).Methods(http.MethodGet)
		r.HandleFunc("/patients/{id}", h.UpdatePatient).Methods(http.MethodPut)
		r.HandleFunc("/patients/{id}", h.DeletePatient).Methods(http.MethodDelete)
	}
	if visits != nil {
		h := NewVisitHandler(visits, v)
		r.HandleFunc("/patients/{id}/visits", h.GetPatientVisits).Methods(http.MethodGet)
		r.HandleFunc("/patients/{id}/visits", h.AddPatientVisit).Methods(http.MethodPost)
	}
	if auditLogs != nil {
		h := NewAuditLogHandler(auditLogs)
		r.HandleFunc("/audit-logs", h.GetAllAuditLogs).Methods(http.MethodGet)
		r.HandleFunc("/audit-logs/{id}", h.GetAuditLog).Methods(http.MethodGet)
	}

	return r
}

func doRequest(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}
