// ABOUTME: Backend health probe used by the status widget.
// ABOUTME: Runs the liveness check, then fetches descriptive info.
package tracker

import (
	"context"

	"github.com/harperreed/gymbot/internal/api"
	"github.com/harperreed/gymbot/internal/models"
)

// Prober is the health surface of the Record Store.
type Prober interface {
	Check(ctx context.Context) (*models.HealthStatus, error)
	Info(ctx context.Context) (*models.HealthInfo, error)
}

var _ Prober = (*api.Client)(nil)

// HealthStatus is the widget state after a probe.
type HealthStatus string

const (
	StatusLoading   HealthStatus = "loading"
	StatusConnected HealthStatus = "connected"
	StatusError     HealthStatus = "error"
)

// HealthState is the outcome of one probe. Retrying means probing again.
type HealthState struct {
	Status  HealthStatus
	Check   *models.HealthStatus
	Info    *models.HealthInfo
	Message string
}

// Probe checks liveness and, if that succeeds, fetches backend info.
func Probe(ctx context.Context, p Prober) HealthState {
	check, err := p.Check(ctx)
	if err != nil {
		return HealthState{Status: StatusError, Message: api.Describe(err)}
	}
	info, err := p.Info(ctx)
	if err != nil {
		return HealthState{Status: StatusError, Check: check, Message: api.Describe(err)}
	}
	return HealthState{Status: StatusConnected, Check: check, Info: info}
}
