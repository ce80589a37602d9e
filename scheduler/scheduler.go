// Package scheduler implements spec.md 4.H: the merit-weighted
// per-update cycle allocation, stable iteration order, and the
// birth/death timing rules that keep the whole core reproducible from a
// fixed seed.
package scheduler

import (
	"math"

	"github.com/maccam912/avida-rs/logging"
	"github.com/maccam912/avida-rs/mutate"
	"github.com/maccam912/avida-rs/organism"
	"github.com/maccam912/avida-rs/world"
)

// Logger is the package-level logger, Null() by default; swap it for
// Real() to trace per-update cycle allocation and births, the same
// hot-path decision points cpu1.Cpu.Run traces in the teacher.
var Logger logging.Logger = logging.Null()

// DefaultCyclesPerOrganism is C_avg's default value (spec.md 4.H).
const DefaultCyclesPerOrganism = 30

// Scheduler drives updates against a world: it owns the tunable
// parameters (cycles per organism, mutation rates) that the control
// surface's set_mutation_rates/set_cycles_per_organism calls adjust.
type Scheduler struct {
	CyclesPerOrganism int
	Rates             mutate.Rates
}

// New returns a Scheduler configured with spec.md's defaults.
func New() *Scheduler {
	return &Scheduler{
		CyclesPerOrganism: DefaultCyclesPerOrganism,
		Rates:             mutate.DefaultRates(),
	}
}

// Update runs exactly one update against w: snapshotting the live
// population, allocating merit-weighted cycle budgets, executing each
// organism's ticks in snapshot order, placing any offspring produced,
// and aging every organism that survived the update.
func (s *Scheduler) Update(w *world.World) {
	snapshot := w.Snapshot()
	n := len(snapshot)
	if n == 0 {
		Logger.Printf("Update: empty world, skipping")
		return
	}

	merits := make([]float64, n)
	var totalMerit float64
	for i, c := range snapshot {
		merits[i] = c.Org.Merit
		totalMerit += c.Org.Merit
	}

	totalCycles := n * s.CyclesPerOrganism
	budgets := allocate(totalCycles, merits, totalMerit)
	Logger.Printf("Update: %d organisms, %d total cycles", n, totalCycles)

	ctx := &organism.Context{Rng: w.Rng(), Rates: s.Rates}
	for i, c := range snapshot {
		x, y, org := c.X, c.Y, c.Org
		for tick := 0; tick < budgets[i]; tick++ {
			if w.At(x, y) != org {
				// Displaced by another organism's divide earlier this
				// update; it receives no further cycles (spec.md 4.H).
				Logger.Printf("Update: organism at (%d,%d) displaced, cycles forfeited", x, y)
				break
			}
			_ = org.Tick(ctx)
			if child, ok := org.TakePendingChild(); ok {
				seed := w.Rng().Int63()
				childOrg := organism.New(child, org.Generation+1, seed, org.Driver)
				cx, cy := w.PlaceChild(x, y, childOrg)
				Logger.Printf("Update: organism at (%d,%d) divided, child placed at (%d,%d)", x, y, cx, cy)
				org.FinishDivide()
			}
		}
	}

	for _, c := range snapshot {
		if w.At(c.X, c.Y) == c.Org {
			c.Org.Age++
		}
	}
}

// Run executes n successive updates.
func (s *Scheduler) Run(w *world.World, n int) {
	for i := 0; i < n; i++ {
		s.Update(w)
	}
}

// allocate computes cᵢ = round(totalCycles · meritᵢ / Σmerit) for each
// organism (spec.md 4.H, step 3). Independently rounding each share can
// leave Σcᵢ off by a small residue; that residue is corrected onto the
// first organisms in iteration order, exactly as the spec names the
// tie-breaking rule, so the allocation is reproducible from the same
// merits in the same order every time.
func allocate(totalCycles int, merits []float64, totalMerit float64) []int {
	n := len(merits)
	budgets := make([]int, n)
	if totalMerit <= 0 {
		return budgets
	}

	assigned := 0
	for i, m := range merits {
		exact := float64(totalCycles) * m / totalMerit
		budgets[i] = int(math.Round(exact))
		assigned += budgets[i]
	}

	residue := totalCycles - assigned
	for i := 0; i < n && residue != 0; i++ {
		if residue > 0 {
			budgets[i]++
			residue--
		} else if budgets[i] > 0 {
			budgets[i]--
			residue++
		}
	}

	return budgets
}
