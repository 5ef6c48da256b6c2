package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/brandreach/ambassador-ui-api/internal/adapters/backend"
	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
	"github.com/brandreach/ambassador-ui-api/internal/service"
)

// APIHandlers serves the JSON mirror of the dashboard operations under
// /api. The same services back both surfaces; only the encoding differs.
type APIHandlers struct {
	Sessions    *service.SessionService
	Admins      AdminsService
	Ambassadors AmbassadorsService
	Receipts    ReceiptsService
}

// token loads the bearer token for the request's session.
func (h *APIHandlers) token(w http.ResponseWriter, r *http.Request) (string, bool) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return "", false
	}
	token, err := h.Sessions.Token(r.Context(), sess.ID)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "session_expired",
			Err:     errors.New("session expired"),
		})
		return "", false
	}
	return token, true
}

// writeServiceError maps service/backend failures to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *backend.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: verr})
	case errors.Is(err, service.ErrNotDeletable):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "not_deletable", Err: err})
	case errors.Is(err, service.ErrNotReviewable):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "not_reviewable", Err: err})
	case errors.Is(err, backend.ErrUnauthorized):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "session_expired", Err: err})
	case errors.Is(err, backend.ErrNetwork), errors.Is(err, backend.ErrServer):
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "backend_unavailable", Err: err})
	default:
		// Field-rule failures from the input validators.
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_input", Err: err})
	}
}

// ListAdmins handles GET /api/admins.
func (h *APIHandlers) ListAdmins(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	admins, err := h.Admins.List(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"admins": admins})
}

// CreateAdmin handles POST /api/admins.
func (h *APIHandlers) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	var in model.CreateAdminInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	admin, err := h.Admins.Create(r.Context(), token, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, admin)
}

// UpdateAdmin handles PUT /api/admins/{uid}.
func (h *APIHandlers) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	var in model.UpdateAdminInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	admin, err := h.Admins.Update(r.Context(), token, r.PathValue("uid"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, admin)
}

// DeleteAdmin handles DELETE /api/admins/{uid}.
func (h *APIHandlers) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	if err := h.Admins.Delete(r.Context(), token, r.PathValue("uid")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAmbassadors handles GET /api/ambassadors.
func (h *APIHandlers) ListAmbassadors(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	ambassadors, err := h.Ambassadors.List(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ambassadors": ambassadors})
}

// CreateAmbassador handles POST /api/ambassadors.
func (h *APIHandlers) CreateAmbassador(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	var in model.CreateAmbassadorInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	ambassador, err := h.Ambassadors.Create(r.Context(), token, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, ambassador)
}

// DeleteAmbassador handles DELETE /api/ambassadors/{uid}.
func (h *APIHandlers) DeleteAmbassador(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	err := h.Ambassadors.Delete(r.Context(), token, model.Ambassador{UID: r.PathValue("uid")})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListReceipts handles GET /api/receipts. Ambassadors see their own
// submissions; the ambassador query parameter is reserved for future
// admin views and currently ignored for non-matching identities.
func (h *APIHandlers) ListReceipts(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	identity := sessionIdentity(r)
	if identity == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}
	receipts, err := h.Receipts.List(r.Context(), token, identity.SubjectID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"receipts": receipts})
}

// receiptActionInput carries the settlement fields for approve/reject.
type receiptActionInput struct {
	SenderTgID string  `json:"senderTgId"`
	Amount     float64 `json:"amount"`
}

// ApproveReceipt handles POST /api/receipts/{id}/approve.
func (h *APIHandlers) ApproveReceipt(w http.ResponseWriter, r *http.Request) {
	h.settleReceipt(w, r, h.Receipts.Approve)
}

// RejectReceipt handles POST /api/receipts/{id}/reject.
func (h *APIHandlers) RejectReceipt(w http.ResponseWriter, r *http.Request) {
	h.settleReceipt(w, r, h.Receipts.Reject)
}

func (h *APIHandlers) settleReceipt(
	w http.ResponseWriter,
	r *http.Request,
	settle func(ctx context.Context, token string, receipt model.Receipt) (model.Receipt, error),
) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_id",
			Err:     errors.New("receipt id is required"),
		})
		return
	}
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	var in receiptActionInput
	if !DecodeJSON(w, r, &in) {
		return
	}

	receipt := model.Receipt{
		ID:         id,
		SenderTgID: in.SenderTgID,
		Amount:     in.Amount,
		Status:     model.ReceiptStatusPending,
	}
	settled, err := settle(r.Context(), token, receipt)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settled)
}
