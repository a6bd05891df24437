// ABOUTME: Health probe calls against the Record Store.
// ABOUTME: Liveness check and descriptive backend info.
package api

import (
	"context"
	"net/http"

	"github.com/harperreed/gymbot/internal/models"
)

// Check calls the liveness endpoint.
func (c *Client) Check(ctx context.Context) (*models.HealthStatus, error) {
	var out models.HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health/check", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Info returns descriptive backend information.
func (c *Client) Info(ctx context.Context) (*models.HealthInfo, error) {
	var out models.HealthInfo
	if err := c.do(ctx, http.MethodGet, "/health/info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
