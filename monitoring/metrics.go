package monitoring

import (
	"context"
	"time"

	"activities-system/internal/services"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signupOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_operations_total",
			Help: "Total signup and unregister operations",
		},
		[]string{"operation", "activity", "status"},
	)

	activityEnrollment = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "activity_enrollment_total",
			Help: "Current number of participants per activity",
		},
		[]string{"activity"},
	)

	activityCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "activity_capacity_total",
			Help: "Configured capacity per activity",
		},
		[]string{"activity"},
	)
)

type Monitor struct {
	app      core.App
	interval time.Duration
}

func NewMonitor(app core.App, interval time.Duration) *Monitor {
	return &Monitor{app: app, interval: interval}
}

// Run refreshes the enrollment gauges until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CollectEnrollment()
		}
	}
}

// CollectEnrollment reads the current per-activity participant counts and
// capacities from the store into the gauges.
func (m *Monitor) CollectEnrollment() {
	records, err := m.app.FindAllRecords(services.CollectionActivities)
	if err != nil {
		return
	}

	for _, record := range records {
		name := record.GetString("name")
		activityCapacity.WithLabelValues(name).Set(float64(record.GetInt("max_capacity")))

		count, err := m.app.CountRecords(services.CollectionParticipants, dbx.HashExp{"activity": record.Id})
		if err != nil {
			continue
		}
		activityEnrollment.WithLabelValues(name).Set(float64(count))
	}
}

// TrackOperation records a signup/unregister outcome.
func (m *Monitor) TrackOperation(operation, activity, status string) {
	if m == nil {
		return
	}
	signupOperations.WithLabelValues(operation, activity, status).Inc()
}
