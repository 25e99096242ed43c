package client

import (
	"context"
	"net/http"

	dto "taskdesk.com/taskdesk/internal/data_models"
	model "taskdesk.com/taskdesk/pkg/models"
)

func (c *Client) Profile(ctx context.Context) (model.Profile, error) {
	var profile model.Profile
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "profile",
		schema: profileSchema,
		out:    &profile,
	})
	return profile, err
}

func (c *Client) UpdateProfile(ctx context.Context, req dto.ProfileUpdateRequest) (model.Profile, error) {
	var profile model.Profile
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "profile",
		body:   req,
		schema: profileSchema,
		out:    &profile,
	})
	return profile, err
}
