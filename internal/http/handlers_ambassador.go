package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
)

func ambassadorMeta() PageMeta {
	return PageMeta{
		Title:       "Receipts",
		PageTitle:   "Receipt Review",
		CurrentPage: PageAmbassador,
	}
}

// Ambassador renders the receipt review page for the signed-in
// ambassador's own submissions.
// GET /ambassador.
func (h *UIHandlers) Ambassador(w http.ResponseWriter, r *http.Request) {
	h.renderAmbassador(w, r, "")
}

func (h *UIHandlers) renderAmbassador(w http.ResponseWriter, r *http.Request, banner string) {
	data := basePageData(r, ambassadorMeta())

	identity := sessionIdentity(r)
	token, err := h.token(r)
	if err == nil && identity != nil {
		var receipts []model.Receipt
		receipts, err = h.Receipts.List(r.Context(), token, identity.SubjectID)
		data["Receipts"] = receipts
		data["PendingCount"] = countPending(receipts)
	}
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list receipts failed", "error", err)
		markPageError(data, formErrorMessage(err))
	} else if banner != "" {
		markPageError(data, banner)
	}

	h.renderPage(w, r, data)
}

func countPending(receipts []model.Receipt) int {
	n := 0
	for _, rec := range receipts {
		if rec.Status == model.ReceiptStatusPending {
			n++
		}
	}
	return n
}

// ReceiptApprove settles a receipt. The settlement fields ride along as
// hidden form fields from the listed row.
// POST /ambassador/receipts/{id}/approve.
func (h *UIHandlers) ReceiptApprove(w http.ResponseWriter, r *http.Request) {
	receipt, ok := h.receiptFromForm(w, r)
	if !ok {
		return
	}

	token, err := h.token(r)
	if err == nil {
		_, err = h.Receipts.Approve(r.Context(), token, receipt)
	}
	if err != nil {
		h.renderAmbassador(w, r, formErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/ambassador", http.StatusSeeOther)
}

// ReceiptReject declines a receipt.
// POST /ambassador/receipts/{id}/reject.
func (h *UIHandlers) ReceiptReject(w http.ResponseWriter, r *http.Request) {
	receipt, ok := h.receiptFromForm(w, r)
	if !ok {
		return
	}

	token, err := h.token(r)
	if err == nil {
		_, err = h.Receipts.Reject(r.Context(), token, receipt)
	}
	if err != nil {
		h.renderAmbassador(w, r, formErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/ambassador", http.StatusSeeOther)
}

// receiptFromForm rebuilds the receipt under review from the path ID and
// the row's hidden form fields. Returns ok=false after writing a response.
func (h *UIHandlers) receiptFromForm(w http.ResponseWriter, r *http.Request) (model.Receipt, bool) {
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return model.Receipt{}, false
	}
	if err := r.ParseForm(); err != nil {
		h.renderAmbassador(w, r, errMsgFixBelow)
		return model.Receipt{}, false
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("amount")), 64)
	if err != nil {
		h.renderAmbassador(w, r, "Receipt amount is missing or malformed.")
		return model.Receipt{}, false
	}

	return model.Receipt{
		ID:         id,
		SenderTgID: strings.TrimSpace(r.PostFormValue("sender_tg_id")),
		Amount:     amount,
		Status:     model.ReceiptStatusPending,
	}, true
}
