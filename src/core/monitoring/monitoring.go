package monitoring

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	Toggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gemconnect_toggles_total",
		Help: "Like and follow toggles by relation and outcome",
	}, []string{"relation", "outcome"})

	NotificationsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gemconnect_notifications_created_total",
		Help: "Notifications recorded by type",
	}, []string{"type"})

	PostsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gemconnect_posts_created_total",
		Help: "Total posts created",
	})

	AttachmentFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gemconnect_attachment_failures_total",
		Help: "Post images dropped, by stage",
	}, []string{"stage"})

	MessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gemconnect_messages_sent_total",
		Help: "Total direct messages sent",
	})

	RegisterSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "register_success_total",
		Help: "Total successful register attempts",
	})

	LoginFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_failure_total",
		Help: "Total failed login attempts",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(
		RequestDuration,
		Toggles,
		NotificationsCreated,
		PostsCreated,
		AttachmentFailures,
		MessagesSent,
		RegisterSuccess,
		LoginFailure,
	)
}

// Instrument records the duration and status of every request.
func Instrument() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		RequestDuration.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
		return err
	}
}
