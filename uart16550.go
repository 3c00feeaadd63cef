// ═══════════════════════════════════════════════════════════════════════════
// UART 16550 - Buffer Stage Reference Model
// ═══════════════════════════════════════════════════════════════════════════
//
// WHAT THIS IS:
// The Go reference model for the FIFO buffer stage of a 16550-style UART:
// the two 16-byte queues that decouple the host bus from the serial line.
// The transmit FIFO absorbs host writes faster than the line can shift them
// out; the receive FIFO absorbs line bytes faster than the host polls them.
//
// WHAT THIS IS NOT:
// The serial plumbing around the buffers - shift registers, start/stop and
// parity framing, baud generation, interrupt/DMA/modem control, the host
// register map - is intentionally absent. Those units present request lines
// to the FIFOs and latch their output words and flags; the tests here stand
// in for them with plain Go code.
//
// STRUCTURE:
// ──────────
//   proto/fifo   the parameterized buffer controller (the actual hardware
//                model: storage, occupancy, flag state machine, pulses,
//                threshold trigger) plus its cycle bench
//   this file    the device-level view: the stock TX/RX instances and a
//                Pair stepping both on the shared clock
//
// The hardware carries ONE parameterized FIFO module instantiated twice,
// not two diverging copies - TransmitFIFO and ReceiveFIFO below are the
// two elaborations.
//
// ═══════════════════════════════════════════════════════════════════════════

package uart16550

import (
	"github.com/garrido-mendoza/uart16550/proto/fifo"
)

// TransmitFIFO elaborates the stock 16x8 transmit buffer. The host side
// writes it; the shift-register stage reads it.
func TransmitFIFO() *fifo.Controller {
	return fifo.Default()
}

// ReceiveFIFO elaborates the stock 16x8 receive buffer. The shift-register
// stage writes it; the host side reads it.
func ReceiveFIFO() *fifo.Controller {
	return fifo.Default()
}

// Pair is the device-level buffer stage: both FIFOs on the one clock the
// whole UART runs from. Each direction gets its own input bus per cycle;
// Step commits one rising edge for both and returns both sampled buses.
type Pair struct {
	tx *fifo.Controller
	rx *fifo.Controller
}

// NewPair elaborates the stock geometry for both directions.
func NewPair() *Pair {
	return &Pair{tx: TransmitFIFO(), rx: ReceiveFIFO()}
}

// NewPairWithConfig elaborates both directions with a shared geometry.
func NewPairWithConfig(cfg fifo.Config) (*Pair, error) {
	tx, err := fifo.New(cfg)
	if err != nil {
		return nil, err
	}
	rx, err := fifo.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Pair{tx: tx, rx: rx}, nil
}

// Tx exposes the transmit-direction controller.
func (p *Pair) Tx() *fifo.Controller { return p.tx }

// Rx exposes the receive-direction controller.
func (p *Pair) Rx() *fifo.Controller { return p.rx }

// Step drives one shared clock edge into both directions.
func (p *Pair) Step(txIn, rxIn fifo.Inputs) (txOut, rxOut fifo.Outputs) {
	txOut = p.tx.ClockEdge(txIn)
	rxOut = p.rx.ClockEdge(rxIn)
	return txOut, rxOut
}

// Reset drives one edge with reset asserted on both directions.
func (p *Pair) Reset() {
	p.Step(fifo.Inputs{Reset: true}, fifo.Inputs{Reset: true})
}
