package client

import (
	"context"
	"errors"
	"net/http"

	"tool-directory/pkg/models"
	"tool-directory/pkg/submit"
)

// ListTools retrieves every tool in the directory
func (c *Client) ListTools(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	if err := c.doGetRequest(ctx, "/api/v1/tools", &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

// CreateTool posts a draft to the directory
func (c *Client) CreateTool(ctx context.Context, draft models.Draft) (*models.Tool, error) {
	var created models.Tool
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/v1/tools", draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Submit implements submit.Submitter against the API. HTTP rejections become
// outcomes; transport failures are returned as errors.
func (c *Client) Submit(ctx context.Context, draft models.Draft) (submit.Outcome, error) {
	tool, err := c.CreateTool(ctx, draft)
	if err == nil {
		o := submit.Accepted()
		o.Tool = tool
		return o, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return submit.Outcome{}, err
	}

	switch {
	case apiErr.Status == http.StatusConflict:
		return submit.Rejected(submit.ReasonDuplicate, submit.MsgDuplicate), nil
	case apiErr.Status == http.StatusUnprocessableEntity:
		o := submit.Rejected(submit.ReasonValidation, apiErr.Message)
		o.Fields = apiErr.Fields
		return o, nil
	default:
		return submit.Rejected(submit.ReasonTransient, apiErr.Error()), nil
	}
}

var _ submit.Submitter = (*Client)(nil)
