package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/brandreach/ambassador-ui-api/internal/domain/model"
)

// AmbassadorDirectory implements ports.AmbassadorDirectory over the
// backend's /ambassadors resource.
type AmbassadorDirectory struct {
	client *Client
}

func NewAmbassadorDirectory(client *Client) *AmbassadorDirectory {
	return &AmbassadorDirectory{client: client}
}

func (d *AmbassadorDirectory) ListAmbassadors(ctx context.Context, token string) ([]model.Ambassador, error) {
	var ambassadors []model.Ambassador
	err := d.client.call(ctx, request{
		method: http.MethodGet,
		path:   "/ambassadors",
		token:  token,
	}, &ambassadors)
	if err != nil {
		return nil, err
	}
	return ambassadors, nil
}

func (d *AmbassadorDirectory) CreateAmbassador(ctx context.Context, token string, in model.CreateAmbassadorInput) (model.Ambassador, error) {
	var ambassador model.Ambassador
	err := d.client.call(ctx, request{
		method: http.MethodPost,
		path:   "/ambassadors",
		token:  token,
		body:   in,
	}, &ambassador)
	return ambassador, err
}

func (d *AmbassadorDirectory) DeleteAmbassador(ctx context.Context, token, uid string) error {
	return d.client.call(ctx, request{
		method: http.MethodDelete,
		path:   "/ambassadors/" + url.PathEscape(uid),
		token:  token,
	}, nil)
}
