package httpx

import (
	"net/http"
	"strings"

	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
)

func adminMeta() PageMeta {
	return PageMeta{
		Title:       "Ambassadors",
		PageTitle:   "Ambassador Accounts",
		CurrentPage: PageAdmin,
	}
}

// Admin renders the ambassador management page.
// GET /admin.
func (h *UIHandlers) Admin(w http.ResponseWriter, r *http.Request) {
	h.renderAdmin(w, r, "")
}

func (h *UIHandlers) renderAdmin(w http.ResponseWriter, r *http.Request, banner string) {
	data := basePageData(r, adminMeta())

	token, err := h.token(r)
	if err == nil {
		var ambassadors []model.Ambassador
		ambassadors, err = h.Ambassadors.List(r.Context(), token)
		data["Ambassadors"] = ambassadors
	}
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list ambassadors failed", "error", err)
		markPageError(data, formErrorMessage(err))
	} else if banner != "" {
		markPageError(data, banner)
	}

	h.renderPage(w, r, data)
}

// AmbassadorCreate handles the enrollment form.
// POST /admin/ambassadors.
func (h *UIHandlers) AmbassadorCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderAdmin(w, r, errMsgFixBelow)
		return
	}

	in := model.CreateAmbassadorInput{
		Email:      strings.TrimSpace(r.PostFormValue("email")),
		TgUsername: strings.TrimSpace(r.PostFormValue("tg_username")),
		Password:   r.PostFormValue("password"),
	}

	token, err := h.token(r)
	if err == nil {
		_, err = h.Ambassadors.Create(r.Context(), token, in)
	}
	if err != nil {
		h.renderAdmin(w, r, formErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// AmbassadorDelete removes an ambassador account. The service refuses
// legacy rows whose UID column does not hold an authority identifier.
// POST /admin/ambassadors/{uid}/delete.
func (h *UIHandlers) AmbassadorDelete(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if uid == "" {
		h.NotFound(w, r)
		return
	}

	token, err := h.token(r)
	if err == nil {
		err = h.Ambassadors.Delete(r.Context(), token, model.Ambassador{UID: uid})
	}
	if err != nil {
		h.renderAdmin(w, r, formErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
