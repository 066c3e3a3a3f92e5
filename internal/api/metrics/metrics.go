// Package metrics defines and registers all custom Prometheus metrics for the
// FoodCort API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodcort"

// ── Authentication metrics ────────────────────────────────────────────────────

// SignupsTotal counts account-creation attempts.
// Labels:
//   - method: "password" or "google"
//   - result: "ok" or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of sign-up attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// SigninsTotal counts session-establishment attempts.
// Labels:
//   - method: "password" or "google"
//   - result: "ok" or "error"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// ── Credential-recovery metrics ───────────────────────────────────────────────

// OTPRequestsTotal counts recovery-code issue attempts.
// Label:
//   - result: "ok", "rate_limited" or "error"
var OTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_requests_total",
		Help:      "Total number of recovery OTP requests, by result.",
	},
	[]string{"result"},
)

// OTPVerificationsTotal counts recovery-code verification attempts. A wrong
// and an expired code both count as "invalid"; the split is intentionally
// not observable.
// Label:
//   - result: "ok" or "invalid"
var OTPVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of recovery OTP verification attempts, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts completed stage-3 reset attempts.
// Label:
//   - result: "ok" or "error"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset attempts, by result.",
	},
	[]string{"result"},
)
