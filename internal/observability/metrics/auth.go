package metrics

import (
	"time"

	"github.com/brandreach/ambassador-ui-api/internal/observability/statsd"
)

// GuardDecisionMetric captures one admission decision for metric emission.
type GuardDecisionMetric struct {
	Decision string
	Reason   string
}

// EmitGuardDecision emits standardised admission-decision metrics.
func EmitGuardDecision(sink statsd.Sink, in GuardDecisionMetric) {
	if sink == nil {
		return
	}
	sink.Count("guard.decision", 1, map[string]string{
		"decision": in.Decision,
		"reason":   in.Reason,
	})
}

// EmitRoleVerification counts remote role-verification outcomes:
// confirmed, refreshed, role_mismatch, unauthorized, network_error,
// failed.
func EmitRoleVerification(sink statsd.Sink, outcome string) {
	if sink == nil {
		return
	}
	sink.Count("guard.verification", 1, map[string]string{"outcome": outcome})
}

// LoginMetric captures one login attempt.
type LoginMetric struct {
	Result   string
	Duration time.Duration
}

// EmitLogin emits login attempt metrics.
func EmitLogin(sink statsd.Sink, in LoginMetric) {
	if sink == nil {
		return
	}
	tags := map[string]string{"result": in.Result}
	sink.Count("auth.login", 1, tags)
	if in.Duration > 0 {
		sink.Timing("auth.login.duration", in.Duration, CloneTags(tags))
	}
}

// EmitLogout counts logouts.
func EmitLogout(sink statsd.Sink) {
	if sink == nil {
		return
	}
	sink.Count("auth.logout", 1, nil)
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
