package ports

import (
	"context"

	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
)

// The directory ports below proxy the backend's CRUD resources. The
// dashboard holds no data of its own: every call forwards the caller's
// bearer token and mirrors whatever the backend returns.

// AdminDirectory manages administrator accounts (superadmin views).
type AdminDirectory interface {
	ListAdmins(ctx context.Context, token string) ([]model.Admin, error)
	CreateAdmin(ctx context.Context, token string, in model.CreateAdminInput) (model.Admin, error)
	UpdateAdmin(ctx context.Context, token, uid string, in model.UpdateAdminInput) (model.Admin, error)
	DeleteAdmin(ctx context.Context, token, uid string) error
}

// AmbassadorDirectory manages ambassador accounts (admin views).
type AmbassadorDirectory interface {
	ListAmbassadors(ctx context.Context, token string) ([]model.Ambassador, error)
	CreateAmbassador(ctx context.Context, token string, in model.CreateAmbassadorInput) (model.Ambassador, error)
	DeleteAmbassador(ctx context.Context, token, uid string) error
}

// ReceiptReviewer lists and settles receipts (ambassador views).
type ReceiptReviewer interface {
	ListReceipts(ctx context.Context, token, ambassadorUID string) ([]model.Receipt, error)
	ApproveReceipt(ctx context.Context, token string, in model.ApproveReceiptInput) (model.Receipt, error)
	RejectReceipt(ctx context.Context, token, receiptID string) (model.Receipt, error)
}
