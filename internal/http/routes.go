package httpx

import (
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"

	ambassadorui "github.com/brandreach/ambassador-ui-api"
	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
	"github.com/brandreach/ambassador-ui-api/internal/ports"
	"github.com/brandreach/ambassador-ui-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions    *service.SessionService
	Guard       *service.GuardService
	Admins      *service.AdminService
	Ambassadors *service.AmbassadorService
	Receipts    *service.ReceiptService
	Reset       ports.PasswordResetSender

	CookieDomain string
	IsDev        bool         // Development mode flag for hot reloading, etc.
	Logger       *slog.Logger // Logger for template and HTTP errors (optional)

	// TemplateFS overrides the template source. Tests point this at the
	// repo's template directory; when nil the IsDev flag picks between
	// disk and the embedded filesystem.
	TemplateFS fs.FS
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	uiHandlers := setupUIHandlers(services)
	authHandlers := &AuthHandlers{
		Sessions:     services.Sessions,
		Reset:        services.Reset,
		T:            uiHandlers.T,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	apiHandlers := &APIHandlers{
		Sessions:    services.Sessions,
		Admins:      services.Admins,
		Ambassadors: services.Ambassadors,
		Receipts:    services.Receipts,
	}

	cfg := routeConfig{Guard: services.Guard, CookieDomain: services.CookieDomain}
	registerAuthRoutes(mux, authHandlers, cfg)
	registerDashboardRoutes(mux, uiHandlers, cfg)
	registerAPIRoutes(mux, apiHandlers, cfg)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Static assets at /static
	// Dev mode: serve from disk for hot reloading
	// Prod mode: serve from embedded FS
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	// Root and 404 handling share the index handler
	mux.Handle("GET /", http.HandlerFunc(uiHandlers.Index))

	handler := Session(services.Sessions)(mux)
	handler = BrowserDetection()(handler)
	handler = Compression()(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

// routeConfig holds configuration for protected route registration.
type routeConfig struct {
	Guard        *service.GuardService
	CookieDomain string
}

// protect chains CSRF protection and the route guard for one allowed-role set.
func (cfg routeConfig) protect(roles ...domainauth.Role) func(http.Handler) http.Handler {
	csrf := CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain})
	guard := RequireRoles(cfg.Guard, roles...)
	return func(h http.Handler) http.Handler {
		return guard(csrf(h))
	}
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, cfg routeConfig) {
	// Login forms carry CSRF tokens even before a session exists.
	csrf := CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain})

	mux.Handle("GET /auth/login", csrf(http.HandlerFunc(h.LoginPage)))
	mux.Handle("POST /auth/login", csrf(http.HandlerFunc(h.LoginSubmit)))
	mux.Handle("POST /auth/logout", csrf(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /auth/status", http.HandlerFunc(h.Status))
	mux.Handle("GET /auth/forgot-password", csrf(http.HandlerFunc(h.ForgotPasswordPage)))
	mux.Handle("POST /auth/forgot-password", csrf(http.HandlerFunc(h.ForgotPasswordSubmit)))
}

func registerDashboardRoutes(mux *http.ServeMux, h *UIHandlers, cfg routeConfig) {
	superadmin := cfg.protect(domainauth.RoleSuperadmin)
	mux.Handle("GET /superadmin", superadmin(http.HandlerFunc(h.Superadmin)))
	mux.Handle("POST /superadmin/admins", superadmin(http.HandlerFunc(h.AdminCreate)))
	mux.Handle("POST /superadmin/admins/{uid}", superadmin(http.HandlerFunc(h.AdminUpdate)))
	mux.Handle("POST /superadmin/admins/{uid}/delete", superadmin(http.HandlerFunc(h.AdminDelete)))

	// Superadmins can manage ambassadors too.
	admin := cfg.protect(domainauth.RoleAdmin, domainauth.RoleSuperadmin)
	mux.Handle("GET /admin", admin(http.HandlerFunc(h.Admin)))
	mux.Handle("POST /admin/ambassadors", admin(http.HandlerFunc(h.AmbassadorCreate)))
	mux.Handle("POST /admin/ambassadors/{uid}/delete", admin(http.HandlerFunc(h.AmbassadorDelete)))

	ambassador := cfg.protect(domainauth.RoleAmbassador)
	mux.Handle("GET /ambassador", ambassador(http.HandlerFunc(h.Ambassador)))
	mux.Handle("POST /ambassador/receipts/{id}/approve", ambassador(http.HandlerFunc(h.ReceiptApprove)))
	mux.Handle("POST /ambassador/receipts/{id}/reject", ambassador(http.HandlerFunc(h.ReceiptReject)))
}

func registerAPIRoutes(mux *http.ServeMux, h *APIHandlers, cfg routeConfig) {
	superadmin := cfg.protect(domainauth.RoleSuperadmin)
	mux.Handle("GET /api/admins", superadmin(http.HandlerFunc(h.ListAdmins)))
	mux.Handle("POST /api/admins", superadmin(http.HandlerFunc(h.CreateAdmin)))
	mux.Handle("PUT /api/admins/{uid}", superadmin(http.HandlerFunc(h.UpdateAdmin)))
	mux.Handle("DELETE /api/admins/{uid}", superadmin(http.HandlerFunc(h.DeleteAdmin)))

	admin := cfg.protect(domainauth.RoleAdmin, domainauth.RoleSuperadmin)
	mux.Handle("GET /api/ambassadors", admin(http.HandlerFunc(h.ListAmbassadors)))
	mux.Handle("POST /api/ambassadors", admin(http.HandlerFunc(h.CreateAmbassador)))
	mux.Handle("DELETE /api/ambassadors/{uid}", admin(http.HandlerFunc(h.DeleteAmbassador)))

	ambassador := cfg.protect(domainauth.RoleAmbassador)
	mux.Handle("GET /api/receipts", ambassador(http.HandlerFunc(h.ListReceipts)))
	mux.Handle("POST /api/receipts/{id}/approve", ambassador(http.HandlerFunc(h.ApproveReceipt)))
	mux.Handle("POST /api/receipts/{id}/reject", ambassador(http.HandlerFunc(h.RejectReceipt)))
}

// setupUIHandlers creates UI handlers with a template renderer.
// In dev mode (services.IsDev=true), templates are loaded from disk for hot reloading.
// In production mode (services.IsDev=false), templates are loaded from embedded FS.
func setupUIHandlers(services RouterServices) *UIHandlers {
	templateFS := services.TemplateFS
	if templateFS == nil {
		if services.IsDev {
			templateFS = os.DirFS(TemplatePathFromRoot)
		} else {
			sub, err := fs.Sub(ambassadorui.TemplateFS, "frontend/templates")
			if err != nil {
				log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
				sub = os.DirFS(TemplatePathFromRoot)
			}
			templateFS = sub
		}
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		// The binary is useless without its templates.
		log.Fatalf("failed to create template renderer: %v", err)
	}

	return &UIHandlers{
		T:           tr,
		Sessions:    services.Sessions,
		Admins:      services.Admins,
		Ambassadors: services.Ambassadors,
		Receipts:    services.Receipts,
		IsDev:       services.IsDev,
		Logger:      services.Logger,
	}
}

// staticHandler serves /static/* assets.
// In dev mode (isDev=true), serves from disk for hot reloading.
// In production mode (isDev=false), serves from embedded FS.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}

	staticSub, err := fs.Sub(ambassadorui.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(staticSub)))
}
