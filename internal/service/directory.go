package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
	"github.com/brandreach/ambassador-ui-api/internal/ports"
)

// ErrNotDeletable is returned when an ambassador record does not carry a
// UID that is safe to use as a deletion key.
var ErrNotDeletable = errors.New("ambassador record has no deletable uid")

// ErrNotReviewable is returned when a receipt is not in a state that can
// be approved or rejected.
var ErrNotReviewable = errors.New("receipt is not reviewable")

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	Directory ports.AdminDirectory
	Logger    *slog.Logger
}

// AdminService fronts the backend's admin resource with form-level
// validation. The backend stays authoritative; validation here only
// catches what the forms themselves promise.
type AdminService struct {
	directory ports.AdminDirectory
	logger    *slog.Logger
}

// NewAdminService constructs a new AdminService.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{directory: opts.Directory, logger: logger}
}

func (s *AdminService) List(ctx context.Context, token string) ([]model.Admin, error) {
	return s.directory.ListAdmins(ctx, token)
}

func (s *AdminService) Create(ctx context.Context, token string, in model.CreateAdminInput) (model.Admin, error) {
	if err := in.Validate(); err != nil {
		return model.Admin{}, err
	}
	admin, err := s.directory.CreateAdmin(ctx, token, in)
	if err != nil {
		return model.Admin{}, err
	}
	s.logger.InfoContext(ctx, "admin created", "uid", admin.UID)
	return admin, nil
}

func (s *AdminService) Update(ctx context.Context, token, uid string, in model.UpdateAdminInput) (model.Admin, error) {
	if uid == "" {
		return model.Admin{}, errors.New("admin uid is required")
	}
	if err := in.Validate(); err != nil {
		return model.Admin{}, err
	}
	return s.directory.UpdateAdmin(ctx, token, uid, in)
}

func (s *AdminService) Delete(ctx context.Context, token, uid string) error {
	if uid == "" {
		return errors.New("admin uid is required")
	}
	if err := s.directory.DeleteAdmin(ctx, token, uid); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "admin deleted", "uid", uid)
	return nil
}

// AmbassadorServiceOptions groups dependencies for AmbassadorService.
type AmbassadorServiceOptions struct {
	Directory ports.AmbassadorDirectory
	Logger    *slog.Logger
}

// AmbassadorService fronts the backend's ambassador resource.
type AmbassadorService struct {
	directory ports.AmbassadorDirectory
	logger    *slog.Logger
}

// NewAmbassadorService constructs a new AmbassadorService.
func NewAmbassadorService(opts AmbassadorServiceOptions) *AmbassadorService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AmbassadorService{directory: opts.Directory, logger: logger}
}

func (s *AmbassadorService) List(ctx context.Context, token string) ([]model.Ambassador, error) {
	return s.directory.ListAmbassadors(ctx, token)
}

func (s *AmbassadorService) Create(ctx context.Context, token string, in model.CreateAmbassadorInput) (model.Ambassador, error) {
	if err := in.Validate(); err != nil {
		return model.Ambassador{}, err
	}
	ambassador, err := s.directory.CreateAmbassador(ctx, token, in)
	if err != nil {
		return model.Ambassador{}, err
	}
	s.logger.InfoContext(ctx, "ambassador created", "uid", ambassador.UID)
	return ambassador, nil
}

// Delete removes an ambassador, refusing records whose UID column holds
// something other than an authority identifier. Those rows predate the
// backend's UID backfill and deleting by that key would hit the wrong
// account.
func (s *AmbassadorService) Delete(ctx context.Context, token string, ambassador model.Ambassador) error {
	if !ambassador.DeletableUID() {
		return fmt.Errorf("%w: %q", ErrNotDeletable, ambassador.UID)
	}
	if err := s.directory.DeleteAmbassador(ctx, token, ambassador.UID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "ambassador deleted", "uid", ambassador.UID)
	return nil
}

// ReceiptServiceOptions groups dependencies for ReceiptService.
type ReceiptServiceOptions struct {
	Reviewer ports.ReceiptReviewer
	Logger   *slog.Logger
}

// ReceiptService fronts the backend's receipt resource for ambassador
// review flows.
type ReceiptService struct {
	reviewer ports.ReceiptReviewer
	logger   *slog.Logger
}

// NewReceiptService constructs a new ReceiptService.
func NewReceiptService(opts ReceiptServiceOptions) *ReceiptService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptService{reviewer: opts.Reviewer, logger: logger}
}

func (s *ReceiptService) List(ctx context.Context, token, ambassadorUID string) ([]model.Receipt, error) {
	return s.reviewer.ListReceipts(ctx, token, ambassadorUID)
}

// Approve settles a receipt. The settlement fields must be present and
// positive before the backend is asked to move money.
func (s *ReceiptService) Approve(ctx context.Context, token string, receipt model.Receipt) (model.Receipt, error) {
	if !receipt.Reviewable() {
		return model.Receipt{}, fmt.Errorf("%w: %s", ErrNotReviewable, receipt.ID)
	}
	in := model.ApproveReceiptInput{
		ReceiptID:  receipt.ID,
		SenderTgID: receipt.SenderTgID,
		Amount:     receipt.Amount,
	}
	if err := in.Validate(); err != nil {
		return model.Receipt{}, err
	}
	settled, err := s.reviewer.ApproveReceipt(ctx, token, in)
	if err != nil {
		return model.Receipt{}, err
	}
	s.logger.InfoContext(ctx, "receipt approved", "receipt_id", receipt.ID, "amount", receipt.Amount)
	return settled, nil
}

func (s *ReceiptService) Reject(ctx context.Context, token string, receipt model.Receipt) (model.Receipt, error) {
	if !receipt.Reviewable() {
		return model.Receipt{}, fmt.Errorf("%w: %s", ErrNotReviewable, receipt.ID)
	}
	rejected, err := s.reviewer.RejectReceipt(ctx, token, receipt.ID)
	if err != nil {
		return model.Receipt{}, err
	}
	s.logger.InfoContext(ctx, "receipt rejected", "receipt_id", receipt.ID)
	return rejected, nil
}
