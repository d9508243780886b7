package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "game_api",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "game_api",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	scoresSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "game_api",
		Name:      "scores_submitted_total",
		Help:      "Scores recorded, split by whether they became the player's high score",
	}, []string{"high_score"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "game_api",
		Name:      "auth_attempts_total",
		Help:      "Register and login attempts by outcome",
	}, []string{"action", "outcome"})
)

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		httpLatency.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// ScoreSubmitted counts a recorded score.
func ScoreSubmitted(highScore bool) {
	scoresSubmitted.WithLabelValues(strconv.FormatBool(highScore)).Inc()
}

// AuthAttempt counts a register or login attempt; outcome is "success" or a failure reason.
func AuthAttempt(action, outcome string) {
	authAttempts.WithLabelValues(action, outcome).Inc()
}
