package waitlist

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeJoined    = "joined"
	outcomeInvalid   = "invalid"
	outcomeDuplicate = "duplicate"
	outcomeError     = "error"
)

// SubmissionMetrics counts submissions by outcome. A nil *SubmissionMetrics is a no-op.
type SubmissionMetrics struct {
	submissions *prometheus.CounterVec
}

func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_submissions_total",
			Help: "Waitlist submissions by outcome.",
		},
		[]string{"outcome"},
	)

	if reg != nil {
		if err := reg.Register(counter); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
					counter = existing
				}
			}
		}
	}

	return &SubmissionMetrics{submissions: counter}
}

func (m *SubmissionMetrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}
