package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/adamstrass/payroll-dashboard/internal/activity"
	"github.com/adamstrass/payroll-dashboard/internal/attachment"
	"github.com/adamstrass/payroll-dashboard/internal/payroll"
	payrollerrors "github.com/adamstrass/payroll-dashboard/internal/payroll/errors"
	"github.com/adamstrass/payroll-dashboard/internal/statestore"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetDashboard(ctx context.Context, identity string) (StateResponse, error)
	AddEmployee(ctx context.Context, identity string, req AddEmployeeRequest) (StateResponse, error)
	SetSelectedMonth(ctx context.Context, identity string, req SetMonthRequest) (StateResponse, error)
	SetPaid(ctx context.Context, identity, employeeID string, req SetPaidRequest) (StateResponse, error)
	SetPaymentDate(ctx context.Context, identity, employeeID string, req SetPaymentDateRequest) (StateResponse, error)
	MarkAllPaid(ctx context.Context, identity string) (StateResponse, error)
	AttachProof(ctx context.Context, identity, employeeID string, upload ProofUpload) (StateResponse, error)
	RemoveProof(ctx context.Context, identity, employeeID, proofID string) (StateResponse, error)
	DownloadProof(ctx context.Context, identity, proofID string) (ProofDownload, error)
	ExportCSV(ctx context.Context, identity string) ([]byte, string, error)
}

type service struct {
	states statestore.Store
	blobs  attachment.Store
	events activity.Publisher
	logger *zap.Logger
}

func NewService(
	states statestore.Store,
	blobs attachment.Store,
	events activity.Publisher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		states: states,
		blobs:  blobs,
		events: events,
		logger: l,
	}
}

// persist writes the state back to the store. Persistence is
// fire-and-forget: a write failure is logged and the caller carries on
// with the in-memory state.
func (s *service) persist(ctx context.Context, identity string, state payroll.State) {
	if err := s.states.Save(ctx, identity, state); err != nil {
		s.logger.Error("persist state failed",
			zap.String("identity", identity),
			zap.Error(err),
		)
	}
}

func (s *service) publish(ctx context.Context, eventType, identity, employeeID, month string) {
	s.events.Publish(ctx, activity.Event{
		EventType:  eventType,
		Identity:   identity,
		EmployeeID: employeeID,
		Month:      month,
		OccurredAt: time.Now().UTC(),
	})
}

func (s *service) GetDashboard(ctx context.Context, identity string) (StateResponse, error) {
	state, err := s.states.Load(ctx, identity)
	if err != nil {
		return StateResponse{}, err
	}

	// Loading always reconciles the selected month, so every roster
	// employee shows up with a record.
	state = payroll.EnsureMonthRecords(state, state.SelectedMonth)
	s.persist(ctx, identity, state)

	return mapStateResponse(state), nil
}

func (s *service) AddEmployee(ctx context.Context, identity string, req AddEmployeeRequest) (StateResponse, error) {
	state, err := s.states.Load(ctx, identity)
	if err != nil {
		return StateResponse{}, err
	}

	state, emp, err := payroll.AddEmployee(state, req.Name, req.Department, req.Salary)
	if err != nil {
		return StateResponse{}, err
	}

	s.persist(ctx, identity, state)
	s.publish(ctx, "employee.added", identity, emp.ID, state.SelectedMonth)

	return mapStateResponse(state), nil
}

func (s *service) SetSelectedMonth(ctx context.Context, identity string, req SetMonthRequest) (StateResponse, error) {
	state, err := s.states.Load(ctx, identity)
	if err != nil {
		return StateResponse{}, err
	}

	state = payroll.SetSelectedMonth(state, req.Month, time.Now())

	s.persist(ctx, identity, state)
	s.publish(ctx, "month.selected", identity, "", state.SelectedMonth)

	return mapStateResponse(state), nil
}

func (s *service) SetPaid(ctx context.Context, identity, employeeID string, req SetPaidRequest) (StateResponse, error) {
	state, err := s.states.Load(ctx, identity)
	if err != nil {
		return StateResponse{}, err
	}

	state, err = payroll.SetPaid(state, employeeID, *req.Paid, time.Now())
	if err != nil {
		return StateResponse{}, err
	}

	s.persist(ctx, identity, state)
	s.publish(ctx, "payment.toggled", identity, employeeID, state.SelectedMonth)

	return mapStateResponse(state), nil
}

func (s *service) SetPaymentDate(ctx context.Context, identity, employeeID string, req SetPaymentDateRequest) (StateResponse, error) {
	state, err := s.states.Load(ctx, identity)
	if err != nil {
		return StateResponse{}, err
	}

	state, err = payroll.SetPaymentDate(state, employeeID, req.PaymentDate)
	if err != nil {
		return StateResponse{}, err
	}

	s.persist(ctx, identity, state)
	s.publish(ctx, "payment.dated", identity, employeeID, state.SelectedMonth)

	return mapStateResponse(state), nil
}

func (s *service) MarkAllPaid(ctx context.Context, identity string) (StateResponse, error) {
	state, err := s.states.Load(ctx, identity)
	if err != nil {
		return StateResponse{}, err
	}

	state = payroll.MarkAllPaid(state, time.Now())

	s.persist(ctx, identity, state)
	s.publish(ctx, "payment.marked_all", identity, "", state.SelectedMonth)

	return mapStateResponse(state), nil
}

func (s *service) AttachProof(ctx context.Context, identity, employeeID string, upload ProofUpload) (StateResponse, error) {
	if !payroll.IsPDFUpload(upload.FileName, upload.ContentType) {
		return StateResponse{}, payrollerrors.ErrInvalidProofType
	}

	state, err := s.states.Load(ctx, identity)
	if err != nil {
		return StateResponse{}, err
	}

	// Reject unknown employees before touching the blob store so a bad
	// id cannot leave an orphan blob behind.
	if _, ok := state.EmployeeByID(employeeID); !ok {
		return StateResponse{}, payrollerrors.ErrEmployeeNotFound
	}

	ref := payroll.ProofRef{
		ID:         uuid.NewString(),
		FileName:   upload.FileName,
		FileSize:   int64(len(upload.Content)),
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.blobs.Put(ctx, &attachment.Attachment{
		ID:       ref.ID,
		FileName: ref.FileName,
		FileSize: ref.FileSize,
		Content:  upload.Content,
	}); err != nil {
		// Blob write failed: no record mutation happened, nothing to
		// roll back.
		return StateResponse{}, err
	}

	state, err = payroll.AttachProofRef(state, employeeID, ref)
	if err != nil {
		return StateResponse{}, err
	}

	s.persist(ctx, identity, state)
	s.publish(ctx, "proof.attached", identity, employeeID, state.SelectedMonth)

	return mapStateResponse(state), nil
}

func (s *service) RemoveProof(ctx context.Context, identity, employeeID, proofID string) (StateResponse, error) {
	state, err := s.states.Load(ctx, identity)
	if err != nil {
		return StateResponse{}, err
	}

	state, removed, err := payroll.RemoveProofRef(state, employeeID, proofID)
	if err != nil {
		return StateResponse{}, err
	}

	// The record mutation is persisted first; blob deletion runs after
	// and is not transactional with it. If the delete fails the blob
	// outlives its metadata, which the next download surfaces as a
	// not-found condition.
	s.persist(ctx, identity, state)

	if err := s.blobs.Delete(ctx, removed.ID); err != nil {
		s.logger.Warn("proof blob delete failed, blob may outlive its record",
			zap.String("proof_id", removed.ID),
			zap.Error(err),
		)
	}

	s.publish(ctx, "proof.removed", identity, employeeID, state.SelectedMonth)

	return mapStateResponse(state), nil
}

func (s *service) DownloadProof(ctx context.Context, identity, proofID string) (ProofDownload, error) {
	state, err := s.states.Load(ctx, identity)
	if err != nil {
		return ProofDownload{}, err
	}

	if _, ok := state.FindProof(proofID); !ok {
		return ProofDownload{}, payrollerrors.ErrProofNotFound
	}

	att, err := s.blobs.Get(ctx, proofID)
	if err != nil {
		// A referenced but missing blob means the two stores fell out
		// of sync; reported, not fatal.
		return ProofDownload{}, err
	}

	return ProofDownload{
		FileName: att.FileName,
		Content:  att.Content,
	}, nil
}

func (s *service) ExportCSV(ctx context.Context, identity string) ([]byte, string, error) {
	state, err := s.states.Load(ctx, identity)
	if err != nil {
		return nil, "", err
	}

	state = payroll.EnsureMonthRecords(state, state.SelectedMonth)

	out, err := payroll.ExportCSV(state)
	if err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("payroll-%s.csv", state.SelectedMonth)
	return out, fileName, nil
}
