package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPaymentMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPaymentMetrics(reg)

	metrics.IncOrderCreated()
	metrics.IncOrderCreated()
	metrics.IncCallbackVerified()
	metrics.IncSignatureMismatch()
	metrics.IncDirectSubmission()
	metrics.IncDecision("verify")
	metrics.IncDecision("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got := counterValue(mfs, "payment_orders_created_total", "", ""); got != 2 {
		t.Fatalf("expected orders created=2, got %f", got)
	}
	if got := counterValue(mfs, "payment_callbacks_verified_total", "", ""); got != 1 {
		t.Fatalf("expected callbacks verified=1, got %f", got)
	}
	if got := counterValue(mfs, "payment_signature_mismatch_total", "", ""); got != 1 {
		t.Fatalf("expected mismatches=1, got %f", got)
	}
	if got := counterValue(mfs, "payment_reconcile_decisions_total", "decision", "verify"); got != 1 {
		t.Fatalf("expected verify decisions=1, got %f", got)
	}
	if got := counterValue(mfs, "payment_reconcile_decisions_total", "decision", "unknown"); got != 1 {
		t.Fatalf("expected unknown decisions=1, got %f", got)
	}
}

func TestPaymentMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewPaymentMetrics(nil)
	metrics.IncOrderCreated()
	metrics.IncDecision("reject")
	var zero *PaymentMetrics
	zero.IncCallbackVerified()
}

func counterValue(mfs []*dto.MetricFamily, name, label, value string) float64 {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if label == "" {
				return metric.GetCounter().GetValue()
			}
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == value {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return -1
}
