package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/adamstrass/payroll-dashboard/internal/activity"
	activityMock "github.com/adamstrass/payroll-dashboard/internal/activity/mock"
	"github.com/adamstrass/payroll-dashboard/internal/attachment"
	attachmenterrors "github.com/adamstrass/payroll-dashboard/internal/attachment/errors"
	attachmentMock "github.com/adamstrass/payroll-dashboard/internal/attachment/mock"
	"github.com/adamstrass/payroll-dashboard/internal/dashboard"
	"github.com/adamstrass/payroll-dashboard/internal/payroll"
	payrollerrors "github.com/adamstrass/payroll-dashboard/internal/payroll/errors"
	statestoreMock "github.com/adamstrass/payroll-dashboard/internal/statestore/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const identity = "avery@example.com"

type serviceDeps struct {
	service dashboard.Service
	states  *statestoreMock.MockStore
	blobs   *attachmentMock.MockStore
	events  *activityMock.MockPublisher
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	states := statestoreMock.NewMockStore(ctrl)
	blobs := attachmentMock.NewMockStore(ctrl)
	events := activityMock.NewMockPublisher(ctrl)

	svc := dashboard.NewService(states, blobs, events)

	return &serviceDeps{
		service: svc,
		states:  states,
		blobs:   blobs,
		events:  events,
	}
}

func boolPtr(v bool) *bool { return &v }

func averyState() payroll.State {
	state := payroll.State{
		SelectedMonth: "2024-01",
		Employees: []payroll.Employee{
			{ID: "avery-id", Name: "Avery", Department: "Engineering", Salary: 6800},
		},
		Records: make(map[string]map[string]payroll.PaymentRecord),
	}
	return payroll.EnsureMonthRecords(state, "2024-01")
}

func TestDashboardService_PayAndProveScenario(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	var afterPaid payroll.State

	// Step 1: mark Avery paid.
	deps.states.EXPECT().Load(ctx, identity).Return(averyState(), nil)
	deps.states.EXPECT().
		Save(ctx, identity, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, s payroll.State) error {
			afterPaid = s
			return nil
		})
	deps.events.EXPECT().Publish(ctx, gomock.Any())

	resp, err := deps.service.SetPaid(ctx, identity, "avery-id", dashboard.SetPaidRequest{Paid: boolPtr(true)})

	assert.NoError(t, err)
	assert.True(t, resp.Records[0].Paid)
	assert.Equal(t, time.Now().Format(payroll.DateLayout), resp.Records[0].PaymentDate)
	assert.Empty(t, resp.Records[0].Proofs)
	assert.Equal(t, 1, resp.Summary.MissingProofs, "paid with no proof is flagged")

	// Step 2: attach a valid PDF proof.
	var stored *attachment.Attachment
	deps.states.EXPECT().Load(ctx, identity).Return(afterPaid, nil)
	deps.blobs.EXPECT().
		Put(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, att *attachment.Attachment) error {
			stored = att
			return nil
		})
	deps.states.EXPECT().Save(ctx, identity, gomock.Any()).Return(nil)
	deps.events.EXPECT().Publish(ctx, gomock.Any())

	resp, err = deps.service.AttachProof(ctx, identity, "avery-id", dashboard.ProofUpload{
		FileName:    "january-transfer.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4 fake"),
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Records[0].Proofs, 1)
	assert.Equal(t, 0, resp.Summary.MissingProofs)
	assert.NotNil(t, stored)
	assert.Equal(t, resp.Records[0].Proofs[0].ID, stored.ID, "blob keyed by the proof ref id")
	assert.Equal(t, int64(len("%PDF-1.4 fake")), stored.FileSize)
}

func TestDashboardService_AttachProof_RejectsNonPDF(t *testing.T) {
	deps := setupServiceTest(t)

	// No Load, no Put, no Save: the gate rejects before any store is
	// touched.
	_, err := deps.service.AttachProof(context.Background(), identity, "avery-id", dashboard.ProofUpload{
		FileName:    "report.txt",
		ContentType: "text/plain",
		Content:     []byte("not a pdf"),
	})

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidProofType)
}

func TestDashboardService_AttachProof_UnknownEmployee(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	deps.states.EXPECT().Load(ctx, identity).Return(averyState(), nil)

	_, err := deps.service.AttachProof(ctx, identity, "missing-id", dashboard.ProofUpload{
		FileName:    "proof.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF"),
	})

	assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
}

func TestDashboardService_AttachProof_BlobWriteFailure(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	deps.states.EXPECT().Load(ctx, identity).Return(averyState(), nil)
	deps.blobs.EXPECT().Put(ctx, gomock.Any()).Return(attachmenterrors.ErrBlobStoreFailure)

	// No Save expected: a failed blob write must not mutate the record.
	_, err := deps.service.AttachProof(ctx, identity, "avery-id", dashboard.ProofUpload{
		FileName:    "proof.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF"),
	})

	assert.ErrorIs(t, err, attachmenterrors.ErrBlobStoreFailure)
}

func TestDashboardService_RemoveProof_PersistsBeforeBlobDelete(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	state := averyState()
	rec := state.Records["2024-01"]["avery-id"]
	rec.Proofs = []payroll.ProofRef{{ID: "proof-1", FileName: "january.pdf"}}
	state.Records["2024-01"]["avery-id"] = rec

	deps.states.EXPECT().Load(ctx, identity).Return(state, nil)
	gomock.InOrder(
		deps.states.EXPECT().Save(ctx, identity, gomock.Any()).Return(nil),
		deps.blobs.EXPECT().Delete(ctx, "proof-1").Return(nil),
	)
	deps.events.EXPECT().Publish(ctx, gomock.Any())

	resp, err := deps.service.RemoveProof(ctx, identity, "avery-id", "proof-1")

	assert.NoError(t, err)
	assert.Empty(t, resp.Records[0].Proofs)
}

func TestDashboardService_RemoveProof_BlobDeleteFailureIsSwallowed(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	state := averyState()
	rec := state.Records["2024-01"]["avery-id"]
	rec.Proofs = []payroll.ProofRef{{ID: "proof-1", FileName: "january.pdf"}}
	state.Records["2024-01"]["avery-id"] = rec

	deps.states.EXPECT().Load(ctx, identity).Return(state, nil)
	deps.states.EXPECT().Save(ctx, identity, gomock.Any()).Return(nil)
	deps.blobs.EXPECT().Delete(ctx, "proof-1").Return(attachmenterrors.ErrBlobStoreFailure)
	deps.events.EXPECT().Publish(ctx, gomock.Any())

	// The record removal stands even when the orphaned blob survives.
	resp, err := deps.service.RemoveProof(ctx, identity, "avery-id", "proof-1")

	assert.NoError(t, err)
	assert.Empty(t, resp.Records[0].Proofs)
}

func TestDashboardService_DownloadProof(t *testing.T) {
	ctx := context.Background()

	state := averyState()
	rec := state.Records["2024-01"]["avery-id"]
	rec.Proofs = []payroll.ProofRef{{ID: "proof-1", FileName: "january.pdf"}}
	state.Records["2024-01"]["avery-id"] = rec

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.states.EXPECT().Load(ctx, identity).Return(state, nil)
		deps.blobs.EXPECT().Get(ctx, "proof-1").Return(&attachment.Attachment{
			ID:       "proof-1",
			FileName: "january.pdf",
			Content:  []byte("%PDF"),
		}, nil)

		dl, err := deps.service.DownloadProof(ctx, identity, "proof-1")

		assert.NoError(t, err)
		assert.Equal(t, "january.pdf", dl.FileName)
		assert.Equal(t, []byte("%PDF"), dl.Content)
	})

	t.Run("unreferenced proof id", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.states.EXPECT().Load(ctx, identity).Return(averyState(), nil)

		_, err := deps.service.DownloadProof(ctx, identity, "proof-1")

		assert.ErrorIs(t, err, payrollerrors.ErrProofNotFound)
	})

	t.Run("referenced but blob missing", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.states.EXPECT().Load(ctx, identity).Return(state, nil)
		deps.blobs.EXPECT().Get(ctx, "proof-1").Return(nil, attachmenterrors.ErrProofBlobNotFound)

		// Stores out of sync: distinguishable not-found, not a crash.
		_, err := deps.service.DownloadProof(ctx, identity, "proof-1")

		assert.ErrorIs(t, err, attachmenterrors.ErrProofBlobNotFound)
	})
}

func TestDashboardService_AddEmployee(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	deps.states.EXPECT().Load(ctx, identity).Return(averyState(), nil)
	deps.states.EXPECT().Save(ctx, identity, gomock.Any()).Return(nil)
	deps.events.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(_ context.Context, e activity.Event) {
			assert.Equal(t, "employee.added", e.EventType)
			assert.Equal(t, identity, e.Identity)
		})

	resp, err := deps.service.AddEmployee(ctx, identity, dashboard.AddEmployeeRequest{
		Name:       "Blake",
		Department: "Design",
		Salary:     5200,
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Employees, 2)
	assert.Equal(t, 2, resp.Summary.TotalEmployees)
}

func TestDashboardService_AddEmployee_ValidationFailure(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	deps.states.EXPECT().Load(ctx, identity).Return(averyState(), nil)

	// No Save, no event: the state is untouched.
	_, err := deps.service.AddEmployee(ctx, identity, dashboard.AddEmployeeRequest{
		Name:       "",
		Department: "Design",
		Salary:     -5,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidEmployeeInput)
}

func TestDashboardService_PersistFailureDoesNotFailMutation(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	deps.states.EXPECT().Load(ctx, identity).Return(averyState(), nil)
	deps.states.EXPECT().
		Save(ctx, identity, gomock.Any()).
		Return(assert.AnError)
	deps.events.EXPECT().Publish(ctx, gomock.Any())

	// Persistence is fire-and-forget: the caller still gets the new state.
	resp, err := deps.service.MarkAllPaid(ctx, identity)

	assert.NoError(t, err)
	assert.True(t, resp.Records[0].Paid)
}

func TestDashboardService_ExportCSV(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	deps.states.EXPECT().Load(ctx, identity).Return(averyState(), nil)

	out, fileName, err := deps.service.ExportCSV(ctx, identity)

	assert.NoError(t, err)
	assert.Equal(t, "payroll-2024-01.csv", fileName)
	assert.Contains(t, string(out), "Avery")
}

func TestDashboardService_GetDashboard(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	// Loading reconciles the selected month and persists the result.
	state := averyState()
	delete(state.Records["2024-01"], "avery-id")

	deps.states.EXPECT().Load(ctx, identity).Return(state, nil)
	deps.states.EXPECT().Save(ctx, identity, gomock.Any()).Return(nil)

	resp, err := deps.service.GetDashboard(ctx, identity)

	assert.NoError(t, err)
	assert.Len(t, resp.Records, 1, "missing record recreated by reconciliation")
	assert.Equal(t, 1, resp.Summary.PendingCount)
}

func TestDashboardService_SetSelectedMonth_EmptyFallsBack(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	deps.states.EXPECT().Load(ctx, identity).Return(averyState(), nil)
	deps.states.EXPECT().Save(ctx, identity, gomock.Any()).Return(nil)
	deps.events.EXPECT().Publish(ctx, gomock.Any())

	resp, err := deps.service.SetSelectedMonth(ctx, identity, dashboard.SetMonthRequest{Month: ""})

	assert.NoError(t, err)
	assert.Equal(t, payroll.CurrentMonthKey(time.Now()), resp.SelectedMonth)
}
