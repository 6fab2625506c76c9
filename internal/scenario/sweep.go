package scenario

import (
	"context"
	"sync"

	"github.com/san-kum/wavesim/internal/config"
)

// SweepResult is the outcome of one member of an order sweep.
type SweepResult struct {
	Order       int
	DOFs        int
	Dt          float64
	Steps       int
	FinalEnergy float64
	PeakField   float64
	Err         error
}

// Sweep runs the same scenario once per polynomial order, concurrently,
// and reports each outcome in order. A failed member carries its error
// instead of aborting the others.
func Sweep(ctx context.Context, base *config.Config, orders []int) []SweepResult {
	results := make([]SweepResult, len(orders))

	var wg sync.WaitGroup
	for i, order := range orders {
		wg.Add(1)
		go func(idx, order int) {
			defer wg.Done()

			cfg := *base
			cfg.Layers = append([]config.Layer(nil), base.Layers...)
			cfg.Receivers = append([]int(nil), base.Receivers...)
			cfg.Order = order
			cfg.SourceDOF = -1 // recenter on the refined grid
			cfg.Dt = 0        // rederive the stable step per order

			r := SweepResult{Order: order}
			sc, err := Build(&cfg)
			if err != nil {
				r.Err = err
				results[idx] = r
				return
			}
			r.DOFs = len(sc.Coords)
			r.Dt = sc.Dt

			res, err := sc.Run(ctx)
			if err != nil {
				r.Err = err
				results[idx] = r
				return
			}
			r.Steps = res.StepsTaken
			r.FinalEnergy = res.FinalEnergy
			for _, snap := range res.Snapshots {
				if a := snap.Field.MaxAbs(); a > r.PeakField {
					r.PeakField = a
				}
			}
			results[idx] = r
		}(i, order)
	}
	wg.Wait()
	return results
}
