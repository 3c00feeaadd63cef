// ═══════════════════════════════════════════════════════════════════════════════════════════════
// UART 16550 FIFO Buffer Controller - Go Reference Model
// ═══════════════════════════════════════════════════════════════════════════════════════════════
//
// OVERVIEW:
// ─────────
// This file implements the storage stage of a 16550-style UART: the 16-entry
// transmit/receive FIFO with flow-control status signaling. The surrounding
// serial logic (shift registers, parity/framing, baud generation, interrupt
// and modem control, host register map) lives outside this unit; it only
// presents the request lines and consumes the output word and flags.
//
// The controller's job, every clock edge:
//   1. Gate the raw write/read requests against the full/empty latches
//   2. Apply exactly one of four admitted-operation cases to storage + occupancy
//   3. Step the empty/full latch state machine
//   4. Derive the overrun/underrun pulses and the threshold trigger
//
// HARDWARE MODEL:
// ───────────────
// This Go code is a cycle-accurate reference model for SystemVerilog RTL.
// When you write the Verilog, run these same test vectors against RTL.
// If Go and RTL produce identical outputs, the hardware is correct.
//
// SYSTEMVERILOG MAPPING:
// ──────────────────────
//   Go package function  → SV always_comb block (pure combinational)
//   Go method w/ commit  → SV always_ff @(posedge clk) (sequential)
//   Go struct fields     → SV registers / wire bundles
//   Go loop              → SV generate for (parallel hardware replication)
//   Go constants         → SV parameters (synthesizable)
//
// KEY CONCEPTS FOR UART NEWCOMERS:
// ────────────────────────────────
//
// SINGLE WRITE POINTER:
//   There is no head/tail pair. Every read physically shifts the remaining
//   words one slot toward index 0, so the head is ALWAYS slot 0 and the
//   occupancy count doubles as the next free write index. Costs an
//   O(depth) data movement per read, buys trivially simple flag logic.
//
// ADMITTED vs RAW REQUESTS:
//   A raw request is what the caller asserts. An admitted operation is a
//   raw request that passed the admission gate (write blocked by full,
//   read blocked by empty). Storage, occupancy, latches and the threshold
//   trigger move only on ADMITTED operations. The overrun/underrun pulses
//   deliberately watch the RAW requests - they report the attempt.
//
// LATCHED vs PULSE FLAGS:
//   empty/full are two-state latches stepped only on admitted single
//   operations; they HOLD when nothing is admitted. overrun/underrun are
//   recomputed combinationally every cycle and self-clear the moment the
//   offending condition stops. Recomputing empty/full from occupancy each
//   cycle would look equivalent but desynchronizes the pulse semantics,
//   which read the PREVIOUS latch values.
//
// DISABLED CONTROLLER:
//   While the enable input is low, any admitted single operation latches
//   both empty AND full true - an intentional "unusable" marker, not an
//   error. With both latches set the admission gate blocks all further
//   traffic, so the device stays unusable until reset. Enable never feeds
//   the admission gate itself; an operation admitted on the same edge the
//   enable drops still commits.
//
// ═══════════════════════════════════════════════════════════════════════════════════════════════

package fifo

import (
	"fmt"
	"math/bits"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// PARAMETERS
// ═══════════════════════════════════════════════════════════════════════════════════════════════
//
// The 16550 geometry: 16 words of 8 bits, addressed by 4 bits. All three are
// elaboration-time parameters; the controller is one parameterized module
// instantiated per direction (TX and RX), never two divergent copies.
//
// ═══════════════════════════════════════════════════════════════════════════════════════════════

const (
	// DefaultWidth is the word width in bits (SV parameter WIDTH = 8).
	DefaultWidth = 8

	// DefaultDepth is the FIFO capacity in words (SV parameter DEPTH = 16).
	DefaultDepth = 16

	// DefaultAddrWidth is the occupancy/threshold bus width in bits
	// (SV parameter ADDR_WIDTH = 4). Must satisfy 2^ADDR_WIDTH >= DEPTH.
	DefaultAddrWidth = 4

	// MaxWidth bounds the word width to what one Go uint64 register models.
	MaxWidth = 64
)

// Config carries the elaboration-time parameters. Fixed at instantiation;
// there is no runtime reconfiguration, exactly as in the RTL.
type Config struct {
	Width     int // word width in bits, 1..64
	Depth     int // capacity in words, >= 1
	AddrWidth int // occupancy/threshold bus width, 2^AddrWidth >= Depth
}

// DefaultConfig returns the stock 16550 geometry (8-bit words, 16 deep,
// 4-bit address bus).
func DefaultConfig() Config {
	return Config{Width: DefaultWidth, Depth: DefaultDepth, AddrWidth: DefaultAddrWidth}
}

// validate rejects parameter sets no RTL elaboration would accept.
func (cfg Config) validate() error {
	if cfg.Width < 1 || cfg.Width > MaxWidth {
		return fmt.Errorf("fifo: width %d outside [1, %d]", cfg.Width, MaxWidth)
	}
	if cfg.Depth < 1 {
		return fmt.Errorf("fifo: depth %d must be at least 1", cfg.Depth)
	}
	if cfg.AddrWidth < 1 || cfg.AddrWidth >= 63 {
		return fmt.Errorf("fifo: address width %d outside [1, 62]", cfg.AddrWidth)
	}
	// 2^AddrWidth >= Depth, i.e. the occupancy bus can express every index.
	if need := bits.Len(uint(cfg.Depth - 1)); cfg.AddrWidth < need {
		return fmt.Errorf("fifo: address width %d cannot index depth %d (need >= %d)",
			cfg.AddrWidth, cfg.Depth, need)
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// INPUT / OUTPUT BUSES
// ═══════════════════════════════════════════════════════════════════════════════════════════════
//
// One Inputs value is the state of the input pins for one clock cycle; one
// Outputs value is the state of the output pins during that cycle. Values
// wider than their bus (DataIn beyond WIDTH bits, Threshold beyond
// ADDR_WIDTH bits) are truncated exactly as a physical bus would truncate
// them.
//
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Inputs is the per-cycle input bus.
type Inputs struct {
	Reset        bool   // synchronous reset, priority over every other update
	Enable       bool   // gates emptiness/fullness REPORTING only, never admission
	WriteRequest bool   // raw push request
	ReadRequest  bool   // raw pop request
	DataIn       uint64 // incoming word, low WIDTH bits
	Threshold    int    // occupancy watermark, low ADDR_WIDTH bits
}

// Outputs is the per-cycle output bus.
type Outputs struct {
	DataOut          uint64 // contents of slot 0; valid only while !Empty
	Empty            bool   // latched
	Full             bool   // latched
	Overrun          bool   // pulse: write attempted while full
	Underrun         bool   // pulse: read attempted while empty
	ThresholdTrigger bool   // latched: occupancy reached the watermark
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// REGISTER STATE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Controller is the complete register state of the buffer stage.
//
// Hardware inventory:
//   - slots:      DEPTH x WIDTH register file (the word store)
//   - occupancy:  the single write pointer "waddr", range [0, DEPTH];
//     live-entry count AND next free index at once
//   - empty/full: two independent one-bit latches
//   - thrTrigger: one-bit latch
//
// Invariant: the first occupancy slots hold live words in FIFO order; every
// slot at or above occupancy is zero after the most recent pop or reset.
type Controller struct {
	cfg      Config
	wordMask uint64 // low WIDTH bits
	thrMask  int    // low ADDR_WIDTH bits

	slots     []uint64
	occupancy int
	empty     bool
	full      bool
	thrTrig   bool
}

// New elaborates a controller with the given parameters. The power-on state
// equals the post-reset state: storage zeroed, occupancy 0, empty set,
// everything else clear.
func New(cfg Config) (*Controller, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		cfg:      cfg,
		wordMask: maskBits(cfg.Width),
		thrMask:  int(maskBits(cfg.AddrWidth)),
		slots:    make([]uint64, cfg.Depth),
		empty:    true,
	}
	return c, nil
}

// Default elaborates the stock 16x8 geometry.
func Default() *Controller {
	c, err := New(DefaultConfig())
	if err != nil {
		panic(err) // DefaultConfig always validates
	}
	return c
}

// maskBits returns a mask of the low n bits, n in [1, 64].
func maskBits(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

// ─────────────────────────────────────────────────────────────────────────────
// Post-edge register accessors. These read the flip-flops as they stand AFTER
// the most recent ClockEdge - the testbench-side view "just after the edge".
// The Outputs value returned by ClockEdge is the complementary view: the bus
// DURING the cycle, which is what a consumer latched at that edge.
// ─────────────────────────────────────────────────────────────────────────────

// Config returns the elaboration parameters.
func (c *Controller) Config() Config { return c.cfg }

// Occupancy returns the live-entry count (equals the next free index).
func (c *Controller) Occupancy() int { return c.occupancy }

// Empty reports the empty latch.
func (c *Controller) Empty() bool { return c.empty }

// Full reports the full latch.
func (c *Controller) Full() bool { return c.full }

// ThresholdTrigger reports the threshold latch.
func (c *Controller) ThresholdTrigger() bool { return c.thrTrig }

// Peek returns the word at slot 0 (the output bus value); stale while empty.
func (c *Controller) Peek() uint64 { return c.slots[0] }

// Snapshot copies the full register file, live and vacated slots alike.
// Verification hook: lets tests check the zeroing of vacated slots.
func (c *Controller) Snapshot() []uint64 {
	out := make([]uint64, len(c.slots))
	copy(out, c.slots)
	return out
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// COMBINATIONAL STAGE 1: ADMISSION GATE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// AdmissionGate conditions the two raw request lines into the two admitted
// operation signals every other piece of logic consumes. Pure function of
// the current cycle, no side effects, re-evaluated every cycle.
//
// Note the gate reads the LATCHES, not the occupancy count. The two agree in
// every state reachable from reset while enabled; the disabled-controller
// quirk can drive the latches conservative (both set), in which case the
// gate suppresses traffic - which is exactly what "unusable" means.
//
// Verilog equivalent:
//
//	assign admit_write = write_request & ~full;
//	assign admit_read  = read_request  & ~empty;
func AdmissionGate(writeRequest, readRequest, full, empty bool) (admitWrite, admitRead bool) {
	admitWrite = writeRequest && !full
	admitRead = readRequest && !empty
	return admitWrite, admitRead
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// COMBINATIONAL STAGE 2: OVERRUN / UNDERRUN PULSES
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// PulseFlags derives the overrun/underrun pulses from the RAW request lines
// against the CURRENT latches. They bypass the admission gate on purpose:
// they flag the attempt the gate is about to suppress, and they self-clear
// next cycle unless the offense repeats. Nothing to acknowledge, nothing
// sticky.
//
// Verilog equivalent:
//
//	assign overrun  = write_request & full;
//	assign underrun = read_request  & empty;
func PulseFlags(writeRequest, readRequest, full, empty bool) (overrun, underrun bool) {
	overrun = writeRequest && full
	underrun = readRequest && empty
	return overrun, underrun
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// OUTPUT BUS (combinational read)
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Eval returns the output bus as driven DURING the current cycle: the
// pre-edge registers plus the pulses derived from the current inputs.
// Pure combinational - calling it does not move the clock.
//
// A reset assertion overrides the pulses the same cycle: with reset high the
// device reports no overrun/underrun regardless of concurrent requests.
func (c *Controller) Eval(in Inputs) Outputs {
	out := Outputs{
		DataOut:          c.slots[0],
		Empty:            c.empty,
		Full:             c.full,
		ThresholdTrigger: c.thrTrig,
	}
	if !in.Reset {
		out.Overrun, out.Underrun = PulseFlags(in.WriteRequest, in.ReadRequest, c.full, c.empty)
	}
	return out
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// SEQUENTIAL UPDATE (the clocked state machine)
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// ClockEdge advances the controller by one rising edge.
//
// It first samples the output bus (Eval), then commits the synchronous
// update, and returns the sampled bus - the values a downstream consumer
// latched at this same edge. The post-edge registers are readable through
// the accessors immediately after the call.
//
// UPDATE ORDER (all from one pre-edge snapshot, per the single-clock model):
//  1. Synchronous reset: priority over everything, forces the power-on state.
//  2. Admission gate classifies the cycle into one of four cases.
//  3. Exactly one storage+occupancy rule applies (see the case comments).
//  4. empty/full latches step on single admitted operations, hold otherwise.
//  5. thrTrigger recomputes on admitted-write XOR admitted-read, comparing
//     the PRE-edge occupancy against the cycle's threshold value.
//
// Verilog equivalent (shape):
//
//	always_ff @(posedge clk) begin
//	  if (rst) begin ... end
//	  else unique case ({admit_write, admit_read})
//	    2'b00: ;                      // hold
//	    2'b01: begin ... end          // read only
//	    2'b10: begin ... end          // write only
//	    2'b11: begin ... end          // simultaneous
//	  endcase
//	end
func (c *Controller) ClockEdge(in Inputs) Outputs {
	sampled := c.Eval(in)

	if in.Reset {
		c.resetRegisters()
		return sampled
	}

	admitWrite, admitRead := AdmissionGate(in.WriteRequest, in.ReadRequest, c.full, c.empty)

	// Every right-hand side below reads this pre-edge snapshot, never a
	// recomputed value - the RTL updates all registers from the same edge.
	occ := c.occupancy
	word := in.DataIn & c.wordMask
	threshold := in.Threshold & c.thrMask

	switch {
	case admitWrite && admitRead:
		// Simultaneous: the read's left-shift frees one slot, the write
		// lands at (pre-edge occupancy - 1), occupancy nets to unchanged.
		// Latches and thrTrigger all hold. Unreachable at occupancy 0
		// through the gate; guarded anyway per the boundary policy.
		if occ > 0 {
			c.shiftLeft()
			c.slots[occ-1] = word
		}

	case admitRead:
		// Read only: shift every entry one slot toward the head, clear the
		// vacated tail, decrement (clamped at 0).
		c.shiftLeft()
		if occ > 0 {
			c.occupancy = occ - 1
		}
		c.empty = c.occupancy == 0 || !in.Enable
		c.full = !in.Enable
		c.thrTrig = occ >= threshold

	case admitWrite:
		// Write only: the incoming word lands at the pre-edge occupancy
		// index, increment (clamped at DEPTH).
		if occ < c.cfg.Depth {
			c.slots[occ] = word
			c.occupancy = occ + 1
		}
		c.full = c.occupancy == c.cfg.Depth || !in.Enable
		c.empty = !in.Enable
		c.thrTrig = occ >= threshold

	default:
		// Neither admitted: every register holds.
	}

	return sampled
}

// shiftLeft moves every slot one position toward the head and zeroes the
// tail slot. In hardware this is DEPTH-1 parallel register moves, not a
// sequential walk.
//
// Verilog equivalent:
//
//	for (i = 0; i < DEPTH-1; i++) mem[i] <= mem[i+1];
//	mem[DEPTH-1] <= '0;
func (c *Controller) shiftLeft() {
	copy(c.slots, c.slots[1:])
	c.slots[c.cfg.Depth-1] = 0
}

// resetRegisters forces the power-on state: storage zeroed, occupancy 0,
// empty set, full and thrTrigger clear.
func (c *Controller) resetRegisters() {
	for i := range c.slots {
		c.slots[i] = 0
	}
	c.occupancy = 0
	c.empty = true
	c.full = false
	c.thrTrig = false
}
