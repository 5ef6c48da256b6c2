package httpx

import (
	"net/http"
	"strings"

	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
)

// superadminMeta is the page frame for all superadmin views.
func superadminMeta() PageMeta {
	return PageMeta{
		Title:       "Admins",
		PageTitle:   "Admin Accounts",
		CurrentPage: PageSuperadmin,
	}
}

// Superadmin renders the admin-account management page.
// GET /superadmin.
func (h *UIHandlers) Superadmin(w http.ResponseWriter, r *http.Request) {
	h.renderSuperadmin(w, r, "")
}

// renderSuperadmin renders the superadmin page, fetching the admin list
// and stacking an optional banner message on top.
func (h *UIHandlers) renderSuperadmin(w http.ResponseWriter, r *http.Request, banner string) {
	data := basePageData(r, superadminMeta())

	token, err := h.token(r)
	if err == nil {
		var admins []model.Admin
		admins, err = h.Admins.List(r.Context(), token)
		data["Admins"] = admins
	}
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list admins failed", "error", err)
		markPageError(data, formErrorMessage(err))
	} else if banner != "" {
		markPageError(data, banner)
	}

	h.renderPage(w, r, data)
}

// AdminCreate handles the new-admin form.
// POST /superadmin/admins.
func (h *UIHandlers) AdminCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderSuperadmin(w, r, errMsgFixBelow)
		return
	}

	in := model.CreateAdminInput{
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Password:  r.PostFormValue("password"),
	}

	token, err := h.token(r)
	if err == nil {
		_, err = h.Admins.Create(r.Context(), token, in)
	}
	if err != nil {
		h.renderSuperadmin(w, r, formErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/superadmin", http.StatusSeeOther)
}

// AdminUpdate handles the edit-admin form.
// POST /superadmin/admins/{uid}.
func (h *UIHandlers) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if uid == "" {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderSuperadmin(w, r, errMsgFixBelow)
		return
	}

	in := model.UpdateAdminInput{
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
	}

	token, err := h.token(r)
	if err == nil {
		_, err = h.Admins.Update(r.Context(), token, uid, in)
	}
	if err != nil {
		h.renderSuperadmin(w, r, formErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/superadmin", http.StatusSeeOther)
}

// AdminDelete removes an admin account.
// POST /superadmin/admins/{uid}/delete.
func (h *UIHandlers) AdminDelete(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if uid == "" {
		h.NotFound(w, r)
		return
	}

	token, err := h.token(r)
	if err == nil {
		err = h.Admins.Delete(r.Context(), token, uid)
	}
	if err != nil {
		h.renderSuperadmin(w, r, formErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/superadmin", http.StatusSeeOther)
}
