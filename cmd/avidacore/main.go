// avidacore runs the digital-evolution engine and serves its state over
// a websocket, the way the teacher's goalife/bin/goalife wires a grid2d
// world up to a terminal renderer: a flag-configured main that builds
// the simulation, starts a background update loop, and exposes a live
// view to whatever is watching — here a browser over websocket instead
// of a terminal.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/maccam912/avida-rs/engine"
	"github.com/maccam912/avida-rs/interp"
	"github.com/maccam912/avida-rs/logging"
	"github.com/maccam912/avida-rs/mutate"
	"github.com/maccam912/avida-rs/scheduler"
	"github.com/maccam912/avida-rs/world"
	"github.com/maccam912/avida-rs/wshub"
)

var Logger = logging.Null()

var (
	debug       bool
	addr        string
	ancestor    string
	seed        uint64
	cAvg        int
	pCopy       float64
	pIns        float64
	pDel        float64
	updateHz    float64
	broadcastHz float64
)

func init() {
	flag.BoolVar(&debug, "debug", false, "enable verbose logging")
	flag.StringVar(&addr, "addr", ":8080", "http/websocket listen address")
	flag.StringVar(&ancestor, "ancestor", engine.DefaultAncestor, "ancestor genome (a..z)")
	flag.Uint64Var(&seed, "seed", 1, "world PRNG seed")
	flag.IntVar(&cAvg, "c_avg", 30, "average cycles per organism per update")
	flag.Float64Var(&pCopy, "p_copy", 0.0025, "per-symbol copy mutation probability")
	flag.Float64Var(&pIns, "p_ins", 0.05, "per-division insertion mutation probability")
	flag.Float64Var(&pDel, "p_del", 0.05, "per-division deletion mutation probability")
	flag.Float64Var(&updateHz, "update_hz", 20.0, "scheduler updates per second")
	flag.Float64Var(&broadcastHz, "broadcast_hz", 5.0, "snapshot broadcasts per second")
}

// view is what's pushed to websocket clients each broadcast: the
// current stats plus the full cell snapshot, matching get_stats() and
// get_snapshot() from the control surface.
type view struct {
	Updates  uint64                  `json:"updates"`
	Stats    interface{}             `json:"stats"`
	Snapshot []*engine.SnapshotEntry `json:"snapshot"`
}

func main() {
	flag.Parse()
	if debug {
		Logger = logging.Real()
		wshub.Logger = Logger
		interp.Logger = Logger
		mutate.Logger = Logger
		scheduler.Logger = Logger
		world.Logger = Logger
	}

	e := engine.New()
	if err := e.Reset(ancestor, seed); err != nil {
		fmt.Fprintf(os.Stderr, "avidacore: reset: %v\n", err)
		os.Exit(1)
	}
	if err := e.SetCyclesPerOrganism(cAvg); err != nil {
		fmt.Fprintf(os.Stderr, "avidacore: set_cycles_per_organism: %v\n", err)
		os.Exit(1)
	}
	if err := e.SetMutationRates(pCopy, pIns, pDel); err != nil {
		fmt.Fprintf(os.Stderr, "avidacore: set_mutation_rates: %v\n", err)
		os.Exit(1)
	}

	hub := wshub.New()
	http.Handle("/ws", hub)
	http.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(e.GetStats())
	})

	go runUpdates(e)
	go runBroadcasts(e, hub)

	Logger.Printf("avidacore: listening on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Fprintf(os.Stderr, "avidacore: %v\n", err)
		os.Exit(1)
	}
}

func runUpdates(e *engine.Engine) {
	tick := time.NewTicker(time.Duration(float64(time.Second) / updateHz))
	defer tick.Stop()
	for range tick.C {
		e.Step(1)
	}
}

func runBroadcasts(e *engine.Engine, hub *wshub.Hub) {
	tick := time.NewTicker(time.Duration(float64(time.Second) / broadcastHz))
	defer tick.Stop()
	for range tick.C {
		if hub.Count() == 0 {
			continue
		}
		payload, err := json.Marshal(view{
			Updates:  e.Updates(),
			Stats:    e.GetStats(),
			Snapshot: e.GetSnapshot(),
		})
		if err != nil {
			Logger.Printf("avidacore: marshal snapshot: %v", err)
			continue
		}
		hub.Broadcast(payload)
	}
}
