// ═══════════════════════════════════════════════════════════════════════════════════════════════
// FIFO Buffer Controller - Cycle Bench
// ═══════════════════════════════════════════════════════════════════════════════════════════════
//
// The bench plays the role of the Verilog testbench: it owns the clock, drives
// the input bus one cycle at a time, and records a per-edge trace. The
// verification suite and the device-level tests both drive the controller
// through it, so every stimulus pattern exists in exactly one place and the
// recorded trace doubles as the vector file for the RTL run.
//
// ═══════════════════════════════════════════════════════════════════════════════════════════════

package fifo

// Sample is one recorded edge: the input bus applied and the output bus the
// consumer latched on that edge.
type Sample struct {
	Cycle int
	In    Inputs
	Out   Outputs
}

// Bench drives a Controller cycle by cycle.
type Bench struct {
	ctrl      *Controller
	cycle     int
	threshold int
	trace     []Sample
}

// NewBench elaborates a controller with the given parameters and wraps it.
func NewBench(cfg Config) (*Bench, error) {
	ctrl, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &Bench{ctrl: ctrl}, nil
}

// DefaultBench wraps a stock 16x8 controller.
func DefaultBench() *Bench {
	return &Bench{ctrl: Default()}
}

// Controller exposes the device under test for register inspection.
func (b *Bench) Controller() *Controller { return b.ctrl }

// CycleCount returns the number of edges driven since construction.
func (b *Bench) CycleCount() int { return b.cycle }

// SetThreshold fixes the watermark value the convenience drivers present on
// every cycle. The raw Cycle driver ignores it.
func (b *Bench) SetThreshold(threshold int) { b.threshold = threshold }

// Trace returns the recorded edges.
func (b *Bench) Trace() []Sample { return b.trace }

// ClearTrace drops the recording without touching the device.
func (b *Bench) ClearTrace() { b.trace = nil }

// Cycle drives one edge with the input bus exactly as given.
func (b *Bench) Cycle(in Inputs) Outputs {
	out := b.ctrl.ClockEdge(in)
	b.trace = append(b.trace, Sample{Cycle: b.cycle, In: in, Out: out})
	b.cycle++
	return out
}

// Run drives one edge per input vector and returns the recorded samples for
// that stretch.
func (b *Bench) Run(vectors []Inputs) []Sample {
	start := len(b.trace)
	for _, in := range vectors {
		b.Cycle(in)
	}
	return b.trace[start:]
}

// ResetCycles holds reset asserted for n edges.
func (b *Bench) ResetCycles(n int) {
	for i := 0; i < n; i++ {
		b.Cycle(Inputs{Reset: true, Threshold: b.threshold})
	}
}

// Idle drives one enabled edge with no requests.
func (b *Bench) Idle() Outputs {
	return b.Cycle(Inputs{Enable: true, Threshold: b.threshold})
}

// Push drives one enabled write-request edge.
func (b *Bench) Push(word uint64) Outputs {
	return b.Cycle(Inputs{Enable: true, WriteRequest: true, DataIn: word, Threshold: b.threshold})
}

// Pop drives one enabled read-request edge.
func (b *Bench) Pop() Outputs {
	return b.Cycle(Inputs{Enable: true, ReadRequest: true, Threshold: b.threshold})
}

// PushPop drives one enabled edge with both requests raised.
func (b *Bench) PushPop(word uint64) Outputs {
	return b.Cycle(Inputs{
		Enable:       true,
		WriteRequest: true,
		ReadRequest:  true,
		DataIn:       word,
		Threshold:    b.threshold,
	})
}

// Drain pops until the empty latch sets or max edges elapse, returning the
// words latched off the output bus in pop order.
func (b *Bench) Drain(max int) []uint64 {
	var words []uint64
	for i := 0; i < max && !b.ctrl.Empty(); i++ {
		out := b.Pop()
		words = append(words, out.DataOut)
	}
	return words
}
