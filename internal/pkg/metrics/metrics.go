package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome label values.
const (
	OutcomeDeployed = "deployed"
	OutcomeReused   = "reused"
	OutcomeFailed   = "failed"
	OutcomeSkipped  = "skipped"
	OutcomeOK       = "ok"
)

// Metrics groups the deployer's collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	Deployments        *prometheus.CounterVec
	DeploymentDuration *prometheus.HistogramVec
	DeploymentGasUsed  *prometheus.CounterVec
	ScriptRuns         *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Deployments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raffle_deployer",
			Name:      "deployments_total",
			Help:      "Contract deployments by network, contract and outcome.",
		}, []string{"network", "contract", "outcome"}),
		DeploymentDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "raffle_deployer",
			Name:      "deployment_duration_seconds",
			Help:      "Time from sending a deployment transaction to its receipt.",
			Buckets:   []float64{0.05, 0.25, 1, 5, 15, 30, 60, 120},
		}, []string{"network", "contract"}),
		DeploymentGasUsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raffle_deployer",
			Name:      "deployment_gas_used_total",
			Help:      "Gas consumed by deployment transactions.",
		}, []string{"network", "contract"}),
		ScriptRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raffle_deployer",
			Name:      "script_runs_total",
			Help:      "Deploy script executions by script and outcome.",
		}, []string{"script", "outcome"}),
	}
	m.Registry.MustRegister(
		m.Deployments,
		m.DeploymentDuration,
		m.DeploymentGasUsed,
		m.ScriptRuns,
		collectors.NewGoCollector(),
	)
	return m
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
