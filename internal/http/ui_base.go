package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/brandreach/ambassador-ui-api/internal/adapters/backend"
	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
	"github.com/brandreach/ambassador-ui-api/internal/service"
)

const errMsgFixBelow = "Please fix the errors below."
const errMsgUnavailable = "The service is temporarily unavailable. Please try again."

// AdminsService is a minimal interface for the superadmin UI needs.
type AdminsService interface {
	List(ctx context.Context, token string) ([]model.Admin, error)
	Create(ctx context.Context, token string, in model.CreateAdminInput) (model.Admin, error)
	Update(ctx context.Context, token, uid string, in model.UpdateAdminInput) (model.Admin, error)
	Delete(ctx context.Context, token, uid string) error
}

// AmbassadorsService is a minimal interface for the admin UI needs.
type AmbassadorsService interface {
	List(ctx context.Context, token string) ([]model.Ambassador, error)
	Create(ctx context.Context, token string, in model.CreateAmbassadorInput) (model.Ambassador, error)
	Delete(ctx context.Context, token string, ambassador model.Ambassador) error
}

// ReceiptsService is a minimal interface for the ambassador UI needs.
type ReceiptsService interface {
	List(ctx context.Context, token, ambassadorUID string) ([]model.Receipt, error)
	Approve(ctx context.Context, token string, receipt model.Receipt) (model.Receipt, error)
	Reject(ctx context.Context, token string, receipt model.Receipt) (model.Receipt, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AdminsService      = (*service.AdminService)(nil)
	_ AmbassadorsService = (*service.AmbassadorService)(nil)
	_ ReceiptsService    = (*service.ReceiptService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T           *TemplateRenderer
	Sessions    *service.SessionService
	Admins      AdminsService
	Ambassadors AmbassadorsService
	Receipts    ReceiptsService
	IsDev       bool // Development mode flag for enhanced error reporting
	Logger      *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// token loads the session's bearer token for backend calls. The route
// guard runs before any handler that calls this, so a missing token means
// the session vanished mid-request.
func (h *UIHandlers) token(r *http.Request) (string, error) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		return "", errors.New("no session in context")
	}
	return h.Sessions.Token(r.Context(), sess.ID)
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	data := map[string]any{
		"Title":       meta.Title,
		"PageTitle":   meta.PageTitle,
		"CurrentPage": meta.CurrentPage,
	}

	if token := GetCSRFToken(r); token != "" {
		data["CSRFToken"] = token
	}

	if sess, ok := GetSessionFromContext(r.Context()); ok && sess.Authenticated() {
		data["IsAuthenticated"] = true
		data["User"] = sess.Identity
		data["Role"] = string(sess.Identity.Role)
	}

	return data
}

// markPageError flags the page data with a general error banner.
func markPageError(data map[string]any, msg string) {
	data["Error"] = true
	if msg == "" {
		msg = "An unexpected error occurred. Please try again."
	}
	data["ErrorMessage"] = msg
}

// renderPage renders a full dashboard page.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if err := h.T.RenderFull(w, r, data); err != nil {
		h.renderFailure(w, r, err)
	}
}

// renderFailure reports a template error. Dev mode shows the error inline;
// production returns a generic 500.
func (h *UIHandlers) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().Error("template rendering failed",
		"error", err,
		"path", r.URL.Path,
		"method", r.Method,
	)
	if h.IsDev {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// Index redirects the visitor to their role's dashboard, or to login when
// no trusted identity is present.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}

	sess, ok := GetSessionFromContext(r.Context())
	if !ok || !sess.Authenticated() {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, sess.Identity.Role.DashboardPath(), http.StatusSeeOther)
}

// NotFound renders the 404 page for browser requests, JSON for API requests.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("resource not found"),
		})
		return
	}

	data := basePageData(r, PageMeta{
		Title:       "Page Not Found",
		PageTitle:   "Page Not Found",
		CurrentPage: PageError,
	})
	data["StatusCode"] = http.StatusNotFound
	data["Message"] = "The page you are looking for does not exist."

	w.WriteHeader(http.StatusNotFound)
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().Error("error page render failed", "error", err)
	}
}

// formErrorMessage maps a service/backend error to the banner message shown
// above the form. Validation messages surface as-is; infrastructure
// failures collapse to a generic retry message.
func formErrorMessage(err error) string {
	var verr *backend.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, service.ErrNotDeletable):
		return "This record cannot be deleted from the dashboard."
	case errors.Is(err, service.ErrNotReviewable):
		return "This receipt has already been reviewed."
	case errors.Is(err, backend.ErrUnauthorized):
		return "Your session has expired. Please sign in again."
	case errors.Is(err, backend.ErrNetwork), errors.Is(err, backend.ErrServer):
		return errMsgUnavailable
	default:
		return err.Error()
	}
}

// sessionIdentity returns the request's identity; the guard guarantees it
// exists on protected routes.
func sessionIdentity(r *http.Request) *domainauth.Identity {
	if sess, ok := GetSessionFromContext(r.Context()); ok && sess.Authenticated() {
		return sess.Identity
	}
	return nil
}
