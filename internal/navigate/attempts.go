package navigate

import (
	"context"

	"go.uber.org/zap"

	"journey-engine/internal/gateway"
)

// GatewayAttempts adapts the gateway's attempt-summary call into an
// AttemptSource. Lookup failures just mean "no resumable attempt".
type GatewayAttempts struct {
	GW  gateway.Gateway
	Log *zap.Logger
}

func (g GatewayAttempts) InProgressAttempt(ctx context.Context, lessonID string) (string, bool) {
	sum, err := g.GW.FetchAttemptSummary(ctx, lessonID)
	if err != nil {
		if g.Log != nil {
			g.Log.Debug("attempt summary lookup failed", zap.String("lessonId", lessonID), zap.Error(err))
		}
		return "", false
	}
	if !sum.InProgress() {
		return "", false
	}
	return sum.AttemptID, true
}
