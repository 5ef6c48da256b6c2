package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
)

// AdminDirectory implements ports.AdminDirectory over the backend's
// /admins resource. Every call forwards the caller's bearer token; the
// dashboard stores nothing.
type AdminDirectory struct {
	client *Client
}

func NewAdminDirectory(client *Client) *AdminDirectory {
	return &AdminDirectory{client: client}
}

func (d *AdminDirectory) ListAdmins(ctx context.Context, token string) ([]model.Admin, error) {
	var admins []model.Admin
	err := d.client.call(ctx, request{
		method: http.MethodGet,
		path:   "/admins",
		token:  token,
	}, &admins)
	if err != nil {
		return nil, err
	}
	return admins, nil
}

func (d *AdminDirectory) CreateAdmin(ctx context.Context, token string, in model.CreateAdminInput) (model.Admin, error) {
	var admin model.Admin
	err := d.client.call(ctx, request{
		method: http.MethodPost,
		path:   "/admins",
		token:  token,
		body:   in,
	}, &admin)
	return admin, err
}

func (d *AdminDirectory) UpdateAdmin(ctx context.Context, token, uid string, in model.UpdateAdminInput) (model.Admin, error) {
	var admin model.Admin
	err := d.client.call(ctx, request{
		method: http.MethodPut,
		path:   "/admins/" + url.PathEscape(uid),
		token:  token,
		body:   in,
	}, &admin)
	return admin, err
}

func (d *AdminDirectory) DeleteAdmin(ctx context.Context, token, uid string) error {
	return d.client.call(ctx, request{
		method: http.MethodDelete,
		path:   "/admins/" + url.PathEscape(uid),
		token:  token,
	}, nil)
}
