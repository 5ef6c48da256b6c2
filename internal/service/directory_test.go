package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/brandreach/ambassador-ui-api/internal/adapters/backend"
	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
	"github.com/brandreach/ambassador-ui-api/internal/mocks"
)

// stubAdminDirectory is a test helper recording directory calls.
type stubAdminDirectory struct {
	created []model.CreateAdminInput
	deleted []string
}

func (d *stubAdminDirectory) ListAdmins(context.Context, string) ([]model.Admin, error) {
	return []model.Admin{{UID: "a-1", FirstName: "Ada", LastName: "Lovelace"}}, nil
}

func (d *stubAdminDirectory) CreateAdmin(_ context.Context, _ string, in model.CreateAdminInput) (model.Admin, error) {
	d.created = append(d.created, in)
	return model.Admin{UID: "a-new", FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}, nil
}

func (d *stubAdminDirectory) UpdateAdmin(_ context.Context, _ string, uid string, in model.UpdateAdminInput) (model.Admin, error) {
	return model.Admin{UID: uid, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}, nil
}

func (d *stubAdminDirectory) DeleteAdmin(_ context.Context, _ string, uid string) error {
	d.deleted = append(d.deleted, uid)
	return nil
}

type stubAmbassadorDirectory struct {
	deleted []string
}

func (d *stubAmbassadorDirectory) ListAmbassadors(context.Context, string) ([]model.Ambassador, error) {
	return nil, nil
}

func (d *stubAmbassadorDirectory) CreateAmbassador(_ context.Context, _ string, in model.CreateAmbassadorInput) (model.Ambassador, error) {
	return model.Ambassador{UID: "amb-new", Email: in.Email, TgUsername: in.TgUsername}, nil
}

func (d *stubAmbassadorDirectory) DeleteAmbassador(_ context.Context, _ string, uid string) error {
	d.deleted = append(d.deleted, uid)
	return nil
}

type stubReceiptReviewer struct {
	approved []model.ApproveReceiptInput
	rejected []string
}

func (r *stubReceiptReviewer) ListReceipts(context.Context, string, string) ([]model.Receipt, error) {
	return nil, nil
}

func (r *stubReceiptReviewer) ApproveReceipt(_ context.Context, _ string, in model.ApproveReceiptInput) (model.Receipt, error) {
	r.approved = append(r.approved, in)
	return model.Receipt{ID: in.ReceiptID, Status: model.ReceiptStatusApproved}, nil
}

func (r *stubReceiptReviewer) RejectReceipt(_ context.Context, _ string, id string) (model.Receipt, error) {
	r.rejected = append(r.rejected, id)
	return model.Receipt{ID: id, Status: model.ReceiptStatusRejected}, nil
}

func TestAdminService_CreateValidatesBeforeForwarding(t *testing.T) {
	dir := &stubAdminDirectory{}
	svc := NewAdminService(AdminServiceOptions{Directory: dir})
	ctx := context.Background()

	_, err := svc.Create(ctx, "tok", model.CreateAdminInput{FirstName: "A"})
	require.Error(t, err)
	assert.Empty(t, dir.created, "invalid input must not reach the backend")

	admin, err := svc.Create(ctx, "tok", model.CreateAdminInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, "a-new", admin.UID)
	assert.Len(t, dir.created, 1)
}

func TestAdminService_UpdateRequiresUID(t *testing.T) {
	svc := NewAdminService(AdminServiceOptions{Directory: &stubAdminDirectory{}})

	_, err := svc.Update(context.Background(), "tok", "", model.UpdateAdminInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
	})
	assert.Error(t, err)
}

func TestAmbassadorService_DeleteGuardsLegacyRecords(t *testing.T) {
	dir := &stubAmbassadorDirectory{}
	svc := NewAmbassadorService(AmbassadorServiceOptions{Directory: dir})
	ctx := context.Background()

	err := svc.Delete(ctx, "tok", model.Ambassador{UID: "someone@example.com"})
	assert.ErrorIs(t, err, ErrNotDeletable)
	assert.Empty(t, dir.deleted)

	err = svc.Delete(ctx, "tok", model.Ambassador{UID: "amb-1234567890abcdefghij"})
	require.NoError(t, err)
	assert.Equal(t, []string{"amb-1234567890abcdefghij"}, dir.deleted)
}

func TestReceiptService_ApproveRequiresReviewableReceipt(t *testing.T) {
	rev := &stubReceiptReviewer{}
	svc := NewReceiptService(ReceiptServiceOptions{Reviewer: rev})
	ctx := context.Background()

	_, err := svc.Approve(ctx, "tok", model.Receipt{
		ID: "r-1", SenderTgID: "tg-9", Amount: 12.5, Status: model.ReceiptStatusApproved,
	})
	assert.ErrorIs(t, err, ErrNotReviewable)

	_, err = svc.Approve(ctx, "tok", model.Receipt{
		ID: "r-1", SenderTgID: "tg-9", Status: model.ReceiptStatusPending,
	})
	assert.ErrorIs(t, err, ErrNotReviewable, "zero amount cannot be settled")

	settled, err := svc.Approve(ctx, "tok", model.Receipt{
		ID: "r-1", SenderTgID: "tg-9", Amount: 12.5, Status: model.ReceiptStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReceiptStatusApproved, settled.Status)
	require.Len(t, rev.approved, 1)
	assert.Equal(t, "tg-9", rev.approved[0].SenderTgID)
}

func TestReceiptService_Reject(t *testing.T) {
	rev := &stubReceiptReviewer{}
	svc := NewReceiptService(ReceiptServiceOptions{Reviewer: rev})
	ctx := context.Background()

	_, err := svc.Reject(ctx, "tok", model.Receipt{ID: "r-1", Status: model.ReceiptStatusRejected})
	assert.ErrorIs(t, err, ErrNotReviewable)

	rejected, err := svc.Reject(ctx, "tok", model.Receipt{
		ID: "r-1", SenderTgID: "tg-9", Amount: 3, Status: model.ReceiptStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReceiptStatusRejected, rejected.Status)
	assert.Equal(t, []string{"r-1"}, rev.rejected)
}

func TestAdminService_ForwardsBackendErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := mocks.NewMockAdminDirectory(ctrl)
	svc := NewAdminService(AdminServiceOptions{Directory: dir})
	ctx := context.Background()

	dir.EXPECT().ListAdmins(gomock.Any(), "tok").Return(nil, backend.ErrServer)
	_, err := svc.List(ctx, "tok")
	assert.ErrorIs(t, err, backend.ErrServer)

	dir.EXPECT().
		CreateAdmin(gomock.Any(), "tok", gomock.Any()).
		Return(model.Admin{}, &backend.ValidationError{Message: "email is already in use"})
	_, err = svc.Create(ctx, "tok", model.CreateAdminInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "longenough",
	})
	ve, ok := backend.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "email is already in use", ve.Message)
}

func TestReceiptService_ForwardsSettlementFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	rev := mocks.NewMockReceiptReviewer(ctrl)
	svc := NewReceiptService(ReceiptServiceOptions{Reviewer: rev})

	rev.EXPECT().
		ApproveReceipt(gomock.Any(), "tok", model.ApproveReceiptInput{
			ReceiptID: "r-1", SenderTgID: "tg-9", Amount: 12.5,
		}).
		Return(model.Receipt{ID: "r-1", Status: model.ReceiptStatusApproved}, nil)

	settled, err := svc.Approve(context.Background(), "tok", model.Receipt{
		ID: "r-1", SenderTgID: "tg-9", Amount: 12.5, Status: model.ReceiptStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReceiptStatusApproved, settled.Status)
}

func TestAmbassadorService_ForwardsUnauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := mocks.NewMockAmbassadorDirectory(ctrl)
	svc := NewAmbassadorService(AmbassadorServiceOptions{Directory: dir})

	dir.EXPECT().ListAmbassadors(gomock.Any(), "stale-token").Return(nil, backend.ErrUnauthorized)
	_, err := svc.List(context.Background(), "stale-token")
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
}
