package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/gamekit-dev/gamekit/pkg/bindable"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func histogram(t *testing.T, o prometheus.Observer) *dto.Histogram {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram()
}

func TestObserverRecordsPropagation(t *testing.T) {
	obs := New(WithRegistry(prometheus.NewRegistry()))

	a := bindable.New(0).WithObserver(obs)
	b := bindable.New(0)
	c := bindable.New(0)
	b.BindTo(a)
	c.BindTo(b)
	a.AddValueChangedListener(func(int) {})
	c.AddValueChangedListener(func(int) {})

	if err := a.SetValue(5); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	if got := counterValue(t, obs.propagations.WithLabelValues("value")); got != 1 {
		t.Errorf("value propagations = %v, want 1", got)
	}
	if got := counterValue(t, obs.listenerInvocations.WithLabelValues("value")); got != 2 {
		t.Errorf("listener invocations = %v, want 2", got)
	}
	h := histogram(t, obs.closureSize.WithLabelValues("value"))
	if h.GetSampleCount() != 1 || h.GetSampleSum() != 3 {
		t.Errorf("closure histogram count=%d sum=%v, want 1 and 3", h.GetSampleCount(), h.GetSampleSum())
	}
}

func TestObserverRecordsDisabledAndRejected(t *testing.T) {
	obs := New(WithRegistry(prometheus.NewRegistry()))
	a := bindable.New("x").WithObserver(obs)

	a.SetDisabled(true)
	if err := a.SetValue("y"); err == nil {
		t.Fatal("expected disabled error")
	}

	if got := counterValue(t, obs.propagations.WithLabelValues("disabled")); got != 1 {
		t.Errorf("disabled propagations = %v, want 1", got)
	}
	if got := counterValue(t, obs.rejected); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}
}

func TestObserverOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := New(
		WithRegistry(reg),
		WithNamespace("game"),
		WithSubsystem("cells"),
		WithConstLabels(prometheus.Labels{"env": "test"}),
		WithBuckets([]float64{1, 10}),
	)
	obs.Rejected()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() != "game_cells_rejected_total" {
			continue
		}
		found = true
		labels := mf.GetMetric()[0].GetLabel()
		if len(labels) != 1 || labels[0].GetName() != "env" || labels[0].GetValue() != "test" {
			t.Errorf("labels = %v", labels)
		}
	}
	if !found {
		t.Error("expected game_cells_rejected_total to be registered")
	}
}

func TestDoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(WithRegistry(reg))

	defer func() {
		if recover() == nil {
			t.Error("second registration should panic")
		}
	}()
	New(WithRegistry(reg))
}
