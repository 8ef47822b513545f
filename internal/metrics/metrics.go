package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ApplicationsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_applications_submitted_total",
			Help: "Total number of applications submitted",
		},
	)

	DocumentsUploaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_documents_uploaded_total",
			Help: "Total number of application documents uploaded",
		},
	)

	Reviews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_reviews_total",
			Help: "Total number of review decisions",
		},
		[]string{"outcome"},
	)

	QuotaUsagePercent = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portal_quota_usage_percent",
			Help: "Current quota usage percentage per scholarship",
		},
		[]string{"scholarship"},
	)
)
