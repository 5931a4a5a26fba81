package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Request volume, by method and route pattern
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of API requests received.",
	}, []string{"method", "route", "status"})

	// Concurrency (in flight)
	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_active_requests",
		Help: "Current number of in-flight requests.",
	})

	// Request latency (handler duration)
	RequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "End-to-end handler duration for API requests.",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route"})

	// Learning activity
	ExercisesSubmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exercises_submitted_total",
		Help: "Total exercise submissions graded.",
	})

	ExamsSubmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exams_submitted_total",
		Help: "Total exam submissions graded, by submit kind.",
	}, []string{"kind"}) // manual | auto

	AchievementsUnlockedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "achievements_unlocked_total",
		Help: "Total achievement unlocks awarded.",
	})

	// Realtime fan-out
	NotifyEventsPublishedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notify_events_published_total",
		Help: "Realtime events published to the hub.",
	})
)

func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		RequestsTotal,
		ActiveRequests,
		RequestDurationSeconds,
		ExercisesSubmittedTotal,
		ExamsSubmittedTotal,
		AchievementsUnlockedTotal,
		NotifyEventsPublishedTotal,
	)
}
