package tlserver

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	InstanceGenerateOps  prometheus.Counter
	SolveOps             *prometheus.CounterVec
	SolveDurationSeconds *prometheus.HistogramVec
	TimetableBuildOps    prometheus.Counter
	ReportBuildOps       *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{}

	m.InstanceGenerateOps = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "instance_generate_ops",
		Help: "Number of instance generate operations",
	})
	prometheus.MustRegister(m.InstanceGenerateOps)

	m.SolveOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solve_ops",
		Help: "Number of Solve() operations per engine",
	}, []string{"solver"})
	prometheus.MustRegister(m.SolveOps)

	m.SolveDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "solve_duration_seconds",
		Help: "Solve() wall clock time per engine",
	}, []string{"solver"})
	prometheus.MustRegister(m.SolveDurationSeconds)

	m.TimetableBuildOps = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_build_ops",
		Help: "Number of timetable build operations",
	})
	prometheus.MustRegister(m.TimetableBuildOps)

	m.ReportBuildOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_build_ops",
		Help: "Number of report downloads per report kind",
	}, []string{"kind"})
	prometheus.MustRegister(m.ReportBuildOps)

	return m
}
