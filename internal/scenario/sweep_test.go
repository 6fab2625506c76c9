package scenario

import (
	"context"
	"testing"

	"github.com/san-kum/wavesim/internal/config"
)

func TestSweepAcrossOrders(t *testing.T) {
	cfg := config.GetPreset("rod")
	cfg.Steps = 100
	cfg.SnapshotStride = 25

	orders := []int{2, 3, 4}
	results := Sweep(context.Background(), cfg, orders)
	if len(results) != len(orders) {
		t.Fatalf("got %d results, want %d", len(results), len(orders))
	}

	prevDOFs := 0
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("order %d: %v", orders[i], r.Err)
		}
		if r.Order != orders[i] {
			t.Errorf("result %d: order %d, want %d", i, r.Order, orders[i])
		}
		if r.DOFs != cfg.Elements*orders[i]+1 {
			t.Errorf("order %d: %d dofs, want %d", r.Order, r.DOFs, cfg.Elements*orders[i]+1)
		}
		if r.DOFs <= prevDOFs {
			t.Errorf("dofs not increasing with order: %d after %d", r.DOFs, prevDOFs)
		}
		prevDOFs = r.DOFs
		if r.Steps != cfg.Steps {
			t.Errorf("order %d: %d steps, want %d", r.Order, r.Steps, cfg.Steps)
		}
		if r.Dt <= 0 {
			t.Errorf("order %d: nonpositive dt %g", r.Order, r.Dt)
		}
		if r.PeakField <= 0 {
			t.Errorf("order %d: field never moved", r.Order)
		}
	}

	// finer grids need smaller stable steps
	if results[2].Dt >= results[0].Dt {
		t.Errorf("dt did not shrink with order: %g vs %g", results[2].Dt, results[0].Dt)
	}
}

func TestSweepReportsMemberErrors(t *testing.T) {
	cfg := config.GetPreset("rod")
	cfg.Steps = 10
	results := Sweep(context.Background(), cfg, []int{0, 3})
	if results[0].Err == nil {
		t.Error("expected an error for order 0")
	}
	if results[1].Err != nil {
		t.Errorf("order 3: %v", results[1].Err)
	}
}
