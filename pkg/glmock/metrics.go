package glmock

import (
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK       = "ok"
	resultNoop     = "noop"
	resultNotFound = "not_found"
)

type metrics struct {
	operations *prometheus.CounterVec
}

// newMetrics registers the registry counters on reg. It returns nil when reg
// is nil or registration fails, and a nil *metrics records nothing.
func newMetrics(reg prometheus.Registerer, logger *slog.Logger) *metrics {
	if reg == nil {
		return nil
	}

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "glmock",
		Subsystem: "registry",
		Name:      "operations_total",
		Help:      "Number of registry operations by registry kind, operation and result.",
	}, []string{"registry", "operation", "result"})

	if err := reg.Register(operations); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			logger.Warn("Metrics disabled.", slog.Any("error", err))
			return nil
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			logger.Warn("Metrics disabled.", slog.String("reason", "conflicting collector"))
			return nil
		}
		operations = existing
	}

	return &metrics{operations: operations}
}

func (m *metrics) observe(registry, operation, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(registry, operation, result).Inc()
}
