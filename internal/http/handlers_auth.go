package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brandreach/ambassador-ui-api/internal/adapters/backend"
	"github.com/brandreach/ambassador-ui-api/internal/adapters/idp"
	"github.com/brandreach/ambassador-ui-api/internal/ports"
	"github.com/brandreach/ambassador-ui-api/internal/service"
)

// sessionCookieMaxAge matches the credential store's TTL so the cookie and
// the stored pair expire together.
const sessionCookieMaxAge = 24 * time.Hour

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Sessions     *service.SessionService
	Reset        ports.PasswordResetSender
	T            *TemplateRenderer
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage renders the login form.
// GET /auth/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Visitors who are already signed in land on their dashboard.
	if sess, ok := GetSessionFromContext(r.Context()); ok && sess.Authenticated() {
		http.Redirect(w, r, sess.Identity.Role.DashboardPath(), http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, loginPageData{
		RedirectURI: cleanRedirectURI(r.URL.Query().Get("redirect_uri")),
	})
}

// loginPageData carries the state re-rendered into the login form.
type loginPageData struct {
	Email        string
	RedirectURI  string
	ErrorMessage string
}

// LoginSubmit handles the credential form.
// POST /auth/login.
func (h *AuthHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, loginPageData{ErrorMessage: errMsgFixBelow})
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	redirectURI := cleanRedirectURI(r.PostFormValue("redirect_uri"))

	if email == "" || password == "" {
		h.renderLogin(w, r, loginPageData{
			Email:        email,
			RedirectURI:  redirectURI,
			ErrorMessage: "Email and password are required.",
		})
		return
	}

	sess, err := h.Sessions.Establish(r.Context(), email, password)
	if err != nil {
		h.renderLogin(w, r, loginPageData{
			Email:        email,
			RedirectURI:  redirectURI,
			ErrorMessage: loginErrorMessage(err),
		})
		return
	}

	h.setSessionCookie(w, r, sess.ID)

	// A safe redirect_uri wins; otherwise the role picks the landing page.
	dest := redirectURI
	if dest == "" {
		dest = sess.Identity.Role.DashboardPath()
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// loginErrorMessage maps an Establish failure to the message shown above
// the form. Credential rejections and validation messages are surfaced;
// everything else collapses to a generic outage message.
func loginErrorMessage(err error) string {
	if verr, ok := backend.AsValidation(err); ok {
		return verr.Message
	}
	if errors.Is(err, backend.ErrInvalidCredentials) {
		return "Invalid email or password."
	}
	return errMsgUnavailable
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request, page loginPageData) {
	data := basePageData(r, PageMeta{
		Title:       "Sign In",
		PageTitle:   "Sign In",
		CurrentPage: PageLogin,
	})
	data["Email"] = page.Email
	data["RedirectURI"] = page.RedirectURI
	if page.ErrorMessage != "" {
		markPageError(data, page.ErrorMessage)
	}

	if err := h.T.RenderFull(w, r, data); err != nil {
		h.logger().Error("login page render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Logout tears down the session and sends the visitor back to login.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.Sessions.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearCookie(w, r, SessionCookieName)

	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
		return
	}
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok || !sess.Authenticated() {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"uid":        sess.Identity.SubjectID,
			"email":      sess.Identity.Email,
			"role":       string(sess.Identity.Role),
			"first_name": sess.Identity.FirstName,
			"last_name":  sess.Identity.LastName,
		},
	})
}

// ForgotPasswordPage renders the password-reset request form.
// GET /auth/forgot-password.
func (h *AuthHandlers) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.renderForgotPassword(w, r, forgotPasswordData{})
}

type forgotPasswordData struct {
	Email        string
	Sent         bool
	ErrorMessage string
}

// ForgotPasswordSubmit asks the identity provider to email a reset link.
// POST /auth/forgot-password.
//
// An unknown address renders the same confirmation as a known one so the
// form cannot be used to probe which emails have accounts.
func (h *AuthHandlers) ForgotPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderForgotPassword(w, r, forgotPasswordData{ErrorMessage: errMsgFixBelow})
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	if email == "" {
		h.renderForgotPassword(w, r, forgotPasswordData{ErrorMessage: "Email is required."})
		return
	}

	err := h.Reset.SendPasswordReset(r.Context(), email)
	if err != nil && !errors.Is(err, idp.ErrEmailNotFound) {
		h.logger().ErrorContext(r.Context(), "password reset send failed", "error", err)
		h.renderForgotPassword(w, r, forgotPasswordData{
			Email:        email,
			ErrorMessage: errMsgUnavailable,
		})
		return
	}

	h.renderForgotPassword(w, r, forgotPasswordData{Email: email, Sent: true})
}

func (h *AuthHandlers) renderForgotPassword(w http.ResponseWriter, r *http.Request, page forgotPasswordData) {
	data := basePageData(r, PageMeta{
		Title:       "Reset Password",
		PageTitle:   "Reset Password",
		CurrentPage: PageForgotPassword,
	})
	data["Email"] = page.Email
	data["Sent"] = page.Sent
	if page.ErrorMessage != "" {
		markPageError(data, page.ErrorMessage)
	}

	if err := h.T.RenderFull(w, r, data); err != nil {
		h.logger().Error("forgot-password page render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// setSessionCookie writes the session cookie.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
	})
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when
// setting cookies to maximize compatibility across browsers.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// cleanRedirectURI validates a post-login redirect target: only same-origin
// relative paths are honored, and the login/logout pages themselves are
// dropped to avoid redirect loops.
func cleanRedirectURI(candidate string) string {
	if candidate == "" {
		return ""
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return ""
	}
	if strings.HasPrefix(u.Path, "/auth/") {
		return ""
	}
	return candidate
}
