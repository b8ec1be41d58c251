package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PaymentMetrics records counters for the payment intake pipeline.
type PaymentMetrics struct {
	ordersCreated      prometheus.Counter
	callbacksVerified  prometheus.Counter
	signatureMismatch  prometheus.Counter
	directSubmissions  prometheus.Counter
	reconcileDecisions *prometheus.CounterVec
}

// NewPaymentMetrics registers the payment metrics on the provided registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_orders_created_total",
		Help: "Gateway orders successfully created.",
	})
	callbacksVerified := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_callbacks_verified_total",
		Help: "Gateway callbacks that passed signature verification.",
	})
	signatureMismatch := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_signature_mismatch_total",
		Help: "Gateway callbacks rejected for a bad signature.",
	})
	directSubmissions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_direct_submissions_total",
		Help: "Direct payment claims recorded as pending.",
	})
	reconcileDecisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_reconcile_decisions_total",
		Help: "Creator decisions on pending direct payments.",
	}, []string{"decision"})
	reg.MustRegister(ordersCreated, callbacksVerified, signatureMismatch, directSubmissions, reconcileDecisions)
	return &PaymentMetrics{
		ordersCreated:      ordersCreated,
		callbacksVerified:  callbacksVerified,
		signatureMismatch:  signatureMismatch,
		directSubmissions:  directSubmissions,
		reconcileDecisions: reconcileDecisions,
	}
}

// IncOrderCreated counts a successful gateway order creation.
func (m *PaymentMetrics) IncOrderCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

// IncCallbackVerified counts a signature-verified callback.
func (m *PaymentMetrics) IncCallbackVerified() {
	if m == nil || m.callbacksVerified == nil {
		return
	}
	m.callbacksVerified.Inc()
}

// IncSignatureMismatch counts a rejected callback signature.
func (m *PaymentMetrics) IncSignatureMismatch() {
	if m == nil || m.signatureMismatch == nil {
		return
	}
	m.signatureMismatch.Inc()
}

// IncDirectSubmission counts a recorded direct payment claim.
func (m *PaymentMetrics) IncDirectSubmission() {
	if m == nil || m.directSubmissions == nil {
		return
	}
	m.directSubmissions.Inc()
}

// IncDecision counts a reconciliation decision by outcome.
func (m *PaymentMetrics) IncDecision(decision string) {
	if m == nil || m.reconcileDecisions == nil {
		return
	}
	if decision == "" {
		decision = "unknown"
	}
	m.reconcileDecisions.WithLabelValues(decision).Inc()
}
