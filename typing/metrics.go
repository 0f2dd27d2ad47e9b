package typing

import "github.com/prometheus/client_golang/prometheus"

// Metrics 打字效果相关的 Prometheus 指标，nil 值可安全调用
type Metrics struct {
	ticks      *prometheus.CounterVec
	cycles     prometheus.Counter
	sinkErrors prometheus.Counter
	active     prometheus.Gauge
}

// MustNewMetrics 在 reg 上注册指标，重复注册时复用已有的收集器
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "typing",
			Name:      "ticks_total",
			Help:      "Number of typing ticks written to a display, by mode.",
		}, []string{"mode"}),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "typing",
			Name:      "captions_completed_total",
			Help:      "Number of captions fully revealed and deleted.",
		}),
		sinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "typing",
			Name:      "sink_errors_total",
			Help:      "Number of runs terminated by a display write failure.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "portfolio",
			Subsystem: "typing",
			Name:      "animators_active",
			Help:      "Number of typing animators currently scheduled.",
		}),
	}

	if err := reg.Register(m.ticks); err != nil {
		m.ticks = existing(err).(*prometheus.CounterVec)
	}
	if err := reg.Register(m.cycles); err != nil {
		m.cycles = existing(err).(prometheus.Counter)
	}
	if err := reg.Register(m.sinkErrors); err != nil {
		m.sinkErrors = existing(err).(prometheus.Counter)
	}
	if err := reg.Register(m.active); err != nil {
		m.active = existing(err).(prometheus.Gauge)
	}
	return m
}

func existing(err error) prometheus.Collector {
	if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
		return already.ExistingCollector
	}
	panic(err)
}

func (m *Metrics) ticked(mode Mode) {
	if m == nil {
		return
	}
	m.ticks.WithLabelValues(mode.String()).Inc()
}

func (m *Metrics) cycled() {
	if m == nil {
		return
	}
	m.cycles.Inc()
}

func (m *Metrics) sinkFailed() {
	if m == nil {
		return
	}
	m.sinkErrors.Inc()
}

func (m *Metrics) started() {
	if m == nil {
		return
	}
	m.active.Inc()
}

func (m *Metrics) stopped() {
	if m == nil {
		return
	}
	m.active.Dec()
}
