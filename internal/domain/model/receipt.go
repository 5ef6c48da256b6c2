//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
)

// ReceiptStatus is the review state of a submitted receipt.
type ReceiptStatus string

const (
	ReceiptStatusPending  ReceiptStatus = "pending"
	ReceiptStatusApproved ReceiptStatus = "approved"
	ReceiptStatusRejected ReceiptStatus = "rejected"
)

// Valid reports whether the status is one of the supported states.
func (s ReceiptStatus) Valid() bool {
	switch s {
	case ReceiptStatusPending, ReceiptStatusApproved, ReceiptStatusRejected:
		return true
	default:
		return false
	}
}

// Receipt is a purchase receipt submitted through an ambassador's
// audience, awaiting the ambassador's approval or rejection.
type Receipt struct {
	ID         string        `json:"id"`
	SenderTgID string        `json:"senderTgId"`
	Amount     float64       `json:"amount"`
	Status     ReceiptStatus `json:"status"`
	ImageURL   string        `json:"imageUrl,omitempty"`
}

// Reviewable reports whether the receipt can still be approved or
// rejected: only pending receipts with the fields the backend requires
// for settlement.
func (r Receipt) Reviewable() bool {
	return r.Status == ReceiptStatusPending &&
		r.ID != "" &&
		strings.TrimSpace(r.SenderTgID) != "" &&
		r.Amount > 0
}

// ApproveReceiptInput carries the settlement fields the backend requires
// when approving a receipt.
type ApproveReceiptInput struct {
	ReceiptID  string  `json:"receiptId"`
	SenderTgID string  `json:"senderTgId"`
	Amount     float64 `json:"amount"`
}

// Validate checks the required settlement fields.
func (in ApproveReceiptInput) Validate() error {
	if in.ReceiptID == "" || strings.TrimSpace(in.SenderTgID) == "" || in.Amount <= 0 {
		return errors.New("missing required fields: receiptId, senderTgId, or amount")
	}
	return nil
}
