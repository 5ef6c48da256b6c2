package httpx

// Cookie names shared by handlers and middleware.
const (
	SessionCookieName = "session_id"
)

// CurrentPage constants define the page identifiers used in templates and
// navigation.
const (
	PageLogin          = "login"
	PageForgotPassword = "forgot-password"
	PageSuperadmin     = "superadmin"
	PageAdmin          = "admin"
	PageAmbassador     = "ambassador"
	PageError          = "error"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// contentTemplates maps CurrentPage to the content template rendered
// inside the layout.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageLogin:          "login-content",
	PageForgotPassword: "forgot-password-content",
	PageSuperadmin:     "superadmin-content",
	PageAdmin:          "admin-content",
	PageAmbassador:     "ambassador-content",
	PageError:          "error-content",
}

// ContentTemplateFor returns the content template for the given
// CurrentPage. Falls back to the login page for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "login-content"
}
