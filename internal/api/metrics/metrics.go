// Package metrics defines and registers the custom Prometheus metrics for the
// blog list API. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics register with the default Prometheus registry at package init.
// HTTP request metrics (latency, size, status) come from echoprometheus and
// are wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bloglist"

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts blog posts created.
// Label:
//   - replayed: "true" when an Idempotency-Key returned an existing post
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of create-post requests that succeeded, by replay outcome.",
	},
	[]string{"replayed"},
)

// PostsDeletedTotal counts blog posts deleted by their owner.
var PostsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_deleted_total",
		Help:      "Total number of blog posts deleted.",
	},
)

// LikesUpdatedTotal counts like-count updates.
var LikesUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_updated_total",
		Help:      "Total number of like-count updates applied to posts.",
	},
)

// ── User / auth metrics ───────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by the bearer-token gate.
// Label:
//   - reason: "missing_token", "invalid_token", or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or ownership checks.",
	},
	[]string{"reason"},
)
