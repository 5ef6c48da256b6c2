package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
)

// ReceiptReviewer implements ports.ReceiptReviewer over the backend's
// /receipts resource.
type ReceiptReviewer struct {
	client *Client
}

func NewReceiptReviewer(client *Client) *ReceiptReviewer {
	return &ReceiptReviewer{client: client}
}

// ListReceipts returns the receipts submitted through one ambassador's
// audience. ambassadorUID filters server-side.
func (r *ReceiptReviewer) ListReceipts(ctx context.Context, token, ambassadorUID string) ([]model.Receipt, error) {
	path := "/receipts"
	if ambassadorUID != "" {
		path += "?ambassador=" + url.QueryEscape(ambassadorUID)
	}

	var receipts []model.Receipt
	err := r.client.call(ctx, request{
		method: http.MethodGet,
		path:   path,
		token:  token,
	}, &receipts)
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

// ApproveReceipt settles a pending receipt. The backend requires the
// settlement fields alongside the id, so they travel in the body.
func (r *ReceiptReviewer) ApproveReceipt(ctx context.Context, token string, in model.ApproveReceiptInput) (model.Receipt, error) {
	var receipt model.Receipt
	err := r.client.call(ctx, request{
		method: http.MethodPost,
		path:   "/receipts/" + url.PathEscape(in.ReceiptID) + "/approve",
		token:  token,
		body:   in,
	}, &receipt)
	return receipt, err
}

func (r *ReceiptReviewer) RejectReceipt(ctx context.Context, token, receiptID string) (model.Receipt, error) {
	var receipt model.Receipt
	err := r.client.call(ctx, request{
		method: http.MethodPost,
		path:   "/receipts/" + url.PathEscape(receiptID) + "/reject",
		token:  token,
	}, &receipt)
	return receipt, err
}
