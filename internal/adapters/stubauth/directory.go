package stubauth

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/brandreach/ambassador-ui-api/internal/adapters/backend"
	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
	"github.com/brandreach/ambassador-ui-api/internal/ports"
)

// Directory is an in-memory stand-in for the backend's CRUD resources.
// It lets the dashboard run end to end without a backend: records live
// for the lifetime of the process, and each ambassador gets a seeded
// tray of pending receipts on first listing.
type Directory struct {
	mu          sync.Mutex
	admins      map[string]model.Admin
	ambassadors map[string]model.Ambassador
	receipts    map[string]ownedReceipt
	seeded      map[string]bool
}

type ownedReceipt struct {
	owner   string
	receipt model.Receipt
}

// NewDirectory constructs the directory with a couple of sample accounts
// so the admin tables are not empty on first load.
func NewDirectory() *Directory {
	d := &Directory{
		admins:      make(map[string]model.Admin),
		ambassadors: make(map[string]model.Ambassador),
		receipts:    make(map[string]ownedReceipt),
		seeded:      make(map[string]bool),
	}

	for _, a := range []model.Admin{
		{UID: stubUID(), FirstName: "Sam", LastName: "Ops", Email: "sam.ops@example.com"},
	} {
		d.admins[a.UID] = a
	}
	for _, a := range []model.Ambassador{
		{UID: stubUID(), Email: "field.one@example.com", TgUsername: "field_one"},
	} {
		d.ambassadors[a.UID] = a
	}

	return d
}

func stubUID() string {
	return "stub-" + uuid.NewString()
}

// requireToken mirrors the real backend's 401 on a missing bearer token.
func requireToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return backend.ErrUnauthorized
	}
	return nil
}

func (d *Directory) ListAdmins(_ context.Context, token string) ([]model.Admin, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]model.Admin, 0, len(d.admins))
	for _, a := range d.admins {
		out = append(out, a)
	}
	return out, nil
}

func (d *Directory) CreateAdmin(_ context.Context, token string, in model.CreateAdminInput) (model.Admin, error) {
	var zero model.Admin
	if err := requireToken(token); err != nil {
		return zero, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(in.Email))
	for _, a := range d.admins {
		if strings.EqualFold(a.Email, email) {
			return zero, &backend.ValidationError{Message: "email is already in use"}
		}
	}

	admin := model.Admin{
		UID:       stubUID(),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
	}
	d.admins[admin.UID] = admin
	return admin, nil
}

func (d *Directory) UpdateAdmin(_ context.Context, token, uid string, in model.UpdateAdminInput) (model.Admin, error) {
	var zero model.Admin
	if err := requireToken(token); err != nil {
		return zero, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	admin, ok := d.admins[uid]
	if !ok {
		return zero, &backend.ValidationError{Message: "admin not found"}
	}

	admin.FirstName = strings.TrimSpace(in.FirstName)
	admin.LastName = strings.TrimSpace(in.LastName)
	admin.Email = strings.ToLower(strings.TrimSpace(in.Email))
	d.admins[uid] = admin
	return admin, nil
}

func (d *Directory) DeleteAdmin(_ context.Context, token, uid string) error {
	if err := requireToken(token); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.admins[uid]; !ok {
		return &backend.ValidationError{Message: "admin not found"}
	}
	delete(d.admins, uid)
	return nil
}

func (d *Directory) ListAmbassadors(_ context.Context, token string) ([]model.Ambassador, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]model.Ambassador, 0, len(d.ambassadors))
	for _, a := range d.ambassadors {
		out = append(out, a)
	}
	return out, nil
}

func (d *Directory) CreateAmbassador(_ context.Context, token string, in model.CreateAmbassadorInput) (model.Ambassador, error) {
	var zero model.Ambassador
	if err := requireToken(token); err != nil {
		return zero, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(in.Email))
	for _, a := range d.ambassadors {
		if strings.EqualFold(a.Email, email) {
			return zero, &backend.ValidationError{Message: "email is already in use"}
		}
	}

	amb := model.Ambassador{
		UID:        stubUID(),
		Email:      email,
		TgUsername: strings.TrimPrefix(strings.TrimSpace(in.TgUsername), "@"),
	}
	d.ambassadors[amb.UID] = amb
	return amb, nil
}

func (d *Directory) DeleteAmbassador(_ context.Context, token, uid string) error {
	if err := requireToken(token); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.ambassadors[uid]; !ok {
		return &backend.ValidationError{Message: "ambassador not found"}
	}
	delete(d.ambassadors, uid)
	return nil
}

// ListReceipts returns one ambassador's tray, seeding a few pending
// receipts the first time that ambassador asks.
func (d *Directory) ListReceipts(_ context.Context, token, ambassadorUID string) ([]model.Receipt, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if ambassadorUID != "" && !d.seeded[ambassadorUID] {
		d.seedReceipts(ambassadorUID)
	}

	out := make([]model.Receipt, 0)
	for _, r := range d.receipts {
		if ambassadorUID == "" || r.owner == ambassadorUID {
			out = append(out, r.receipt)
		}
	}
	return out, nil
}

func (d *Directory) seedReceipts(owner string) {
	d.seeded[owner] = true
	for _, r := range []model.Receipt{
		{ID: stubUID(), SenderTgID: "100200300", Amount: 24.90, Status: model.ReceiptStatusPending},
		{ID: stubUID(), SenderTgID: "100200301", Amount: 112.50, Status: model.ReceiptStatusPending},
	} {
		d.receipts[r.ID] = ownedReceipt{owner: owner, receipt: r}
	}
}

func (d *Directory) ApproveReceipt(_ context.Context, token string, in model.ApproveReceiptInput) (model.Receipt, error) {
	return d.settle(token, in.ReceiptID, model.ReceiptStatusApproved)
}

func (d *Directory) RejectReceipt(_ context.Context, token, receiptID string) (model.Receipt, error) {
	return d.settle(token, receiptID, model.ReceiptStatusRejected)
}

func (d *Directory) settle(token, receiptID string, status model.ReceiptStatus) (model.Receipt, error) {
	var zero model.Receipt
	if err := requireToken(token); err != nil {
		return zero, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	owned, ok := d.receipts[receiptID]
	if !ok {
		return zero, &backend.ValidationError{Message: "receipt not found"}
	}
	if owned.receipt.Status != model.ReceiptStatusPending {
		return zero, &backend.ValidationError{Message: "receipt has already been reviewed"}
	}

	owned.receipt.Status = status
	d.receipts[receiptID] = owned
	return owned.receipt, nil
}

var (
	_ ports.AdminDirectory      = (*Directory)(nil)
	_ ports.AmbassadorDirectory = (*Directory)(nil)
	_ ports.ReceiptReviewer     = (*Directory)(nil)
)
