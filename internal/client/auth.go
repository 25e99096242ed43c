package client

import (
	"context"
	"net/http"

	dto "taskdesk.com/taskdesk/internal/data_models"
)

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (string, error) {
	var resp dto.TokenResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "auth/register",
		body:   req,
		schema: tokenSchema,
		out:    &resp,
	})
	return resp.Token, err
}

func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (string, error) {
	var resp dto.TokenResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "auth/login",
		body:   req,
		schema: tokenSchema,
		out:    &resp,
	})
	return resp.Token, err
}
