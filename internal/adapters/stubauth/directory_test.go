package stubauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandreach/ambassador-ui-api/internal/adapters/backend"
	"github.com/brandreach/ambassador-ui-api/internal/adapters/idp"
	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
)

func TestDirectoryRequiresToken(t *testing.T) {
	d := NewDirectory()

	_, err := d.ListAdmins(context.Background(), "")
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
}

func TestDirectoryAdminLifecycle(t *testing.T) {
	d := NewDirectory()
	ctx := context.Background()

	admin, err := d.CreateAdmin(ctx, "tok", model.CreateAdminInput{
		FirstName: "Grace", LastName: "Hopper", Email: "Grace@Example.com", Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", admin.Email)
	assert.True(t, len(admin.UID) >= 20)

	_, err = d.CreateAdmin(ctx, "tok", model.CreateAdminInput{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "longenough",
	})
	_, isValidation := backend.AsValidation(err)
	assert.True(t, isValidation, "duplicate email should fail validation")

	require.NoError(t, d.DeleteAdmin(ctx, "tok", admin.UID))
	err = d.DeleteAdmin(ctx, "tok", admin.UID)
	assert.Error(t, err)
}

func TestDirectorySeedsReceiptsPerAmbassador(t *testing.T) {
	d := NewDirectory()
	ctx := context.Background()

	receipts, err := d.ListReceipts(ctx, "tok", "amb-1234567890abcdefghij")
	require.NoError(t, err)
	require.NotEmpty(t, receipts)
	for _, r := range receipts {
		assert.Equal(t, model.ReceiptStatusPending, r.Status)
	}

	// Another ambassador gets their own tray.
	other, err := d.ListReceipts(ctx, "tok", "amb-0987654321jihgfedcba")
	require.NoError(t, err)
	assert.NotEmpty(t, other)
	assert.NotEqual(t, receipts[0].ID, other[0].ID)
}

func TestDirectorySettleIsOneShot(t *testing.T) {
	d := NewDirectory()
	ctx := context.Background()

	receipts, err := d.ListReceipts(ctx, "tok", "amb-1234567890abcdefghij")
	require.NoError(t, err)
	require.NotEmpty(t, receipts)

	settled, err := d.ApproveReceipt(ctx, "tok", model.ApproveReceiptInput{
		ReceiptID: receipts[0].ID, SenderTgID: receipts[0].SenderTgID, Amount: receipts[0].Amount,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReceiptStatusApproved, settled.Status)

	_, err = d.RejectReceipt(ctx, "tok", receipts[0].ID)
	_, isValidation := backend.AsValidation(err)
	assert.True(t, isValidation, "settled receipt cannot be reviewed again")
}

func TestResetSenderReportsUnknownEmail(t *testing.T) {
	users := []User{{Email: "known@example.com", Password: "devpass", Role: domainauth.RoleAdmin}}
	sender := NewResetSender(users, nil)

	assert.NoError(t, sender.SendPasswordReset(context.Background(), "Known@Example.com"))

	err := sender.SendPasswordReset(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, idp.ErrEmailNotFound)
}
