package personalize

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the service's Prometheus collectors.
type Metrics struct {
	MasteryScores    prometheus.Histogram
	EngagementScores prometheus.Histogram
	ProfileUpdates   *prometheus.CounterVec
	SessionsStarted  *prometheus.CounterVec
	SessionsFinished prometheus.Counter
	SessionScores    prometheus.Histogram
	Answers          *prometheus.CounterVec
}

var scoreBuckets = prometheus.LinearBuckets(10, 10, 10)

// NewMetrics registers the collectors with reg. A nil reg yields working
// collectors that are not exported anywhere.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		MasteryScores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "learnpath_mastery_score",
			Help:    "Distribution of computed mastery scores",
			Buckets: scoreBuckets,
		}),
		EngagementScores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "learnpath_engagement_score",
			Help:    "Distribution of computed engagement scores",
			Buckets: scoreBuckets,
		}),
		ProfileUpdates: f.NewCounterVec(prometheus.CounterOpts{
			Name: "learnpath_profile_updates_total",
			Help: "VARK profile updates by source",
		}, []string{"source"}),
		SessionsStarted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "learnpath_practice_sessions_started_total",
			Help: "Practice sessions started, by whether the review fallback was used",
		}, []string{"review"}),
		SessionsFinished: f.NewCounter(prometheus.CounterOpts{
			Name: "learnpath_practice_sessions_finished_total",
			Help: "Practice sessions finished",
		}),
		SessionScores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "learnpath_practice_session_score",
			Help:    "Distribution of practice session scores",
			Buckets: scoreBuckets,
		}),
		Answers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "learnpath_practice_answers_total",
			Help: "Submitted practice answers by correctness",
		}, []string{"correct"}),
	}
}
