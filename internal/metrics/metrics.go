package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes a histogram for HTTP request duration, a counter for service
// operations split by outcome, and a histogram for database query duration.
type Metrics struct {
	HTTPRequestDuration *prometheus.HistogramVec
	EmployeeOperations  *prometheus.CounterVec
	DuplicateEmails     prometheus.Counter
	DBQueryDuration     *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		HTTPRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employees_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the employee API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method", "status"}),
		EmployeeOperations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employees_operations_total",
			Help: "Total number of employee service operations by outcome.",
		}, []string{"operation", "status"}),
		DuplicateEmails: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "employees_duplicate_email_rejections_total",
			Help: "Total number of create or update requests rejected because the email is taken.",
		}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employees_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'save_employee', 'find_by_email'
	}

	for _, operation := range []string{"create", "list", "get", "update", "delete", "search"} {
		metrics.EmployeeOperations.WithLabelValues(operation, "success")
		metrics.EmployeeOperations.WithLabelValues(operation, "failure")
	}

	return metrics
}
