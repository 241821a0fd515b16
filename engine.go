// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package hashacc

import (
	"encoding/binary"
	"errors"
	"sync"
)

// Digest bank selectors (see Regs).
const (
	// Current addresses the engine's working digest bank.
	Current = iota
	// Swap addresses the engine's context swap bank, which holds the
	// result of the last completed computation.
	Swap
)

// Regs is the register-level contract of a block hash engine.
//
// The engine double-buffers its digest state: a computation started on one
// bank leaves the other untouched, which is why ProcessData loads both banks
// before feeding data and reads the result back from the swap bank.
type Regs interface {
	// Start programs the algorithm selector and arms the engine for a
	// new digest computation.
	Start(algo Algo)
	// WriteDigest loads word i of the intermediate digest into the
	// given bank.
	WriteDigest(bank int, i int, val uint32)
	// ReadDigest returns word i of the intermediate digest from the
	// given bank.
	ReadDigest(bank int, i int) uint32
	// WriteData feeds one input word to the engine.
	WriteData(val uint32)
	// Busy returns whether the engine is sampling previously fed input.
	Busy() bool
}

// Power controls the clock gate and reset line of the peripheral bus domain
// hosting the engine.
type Power interface {
	// Enable opens the peripheral clock gate.
	Enable()
	// Reset pulses the peripheral reset line.
	Reset()
	// Ready returns whether the peripheral is out of reset and
	// accepting register accesses.
	Ready() bool
}

// ErrNoPeripheral is returned by Init when the engine has no register bank
// bound to it.
var ErrNoPeripheral = errors.New("no peripheral register bank")

// Engine represents a hash accelerator peripheral. A single hardware engine
// is shared by all hash contexts bound to it, the embedded Mutex serializes
// their block transfers.
type Engine struct {
	sync.Mutex

	// Regs is the engine register bank.
	Regs Regs
	// Power, when set, is the lifecycle controller used by Init.
	Power Power
}

// Init brings the peripheral out of reset: it opens the clock gate, pulses
// the reset line and spins until the peripheral reports ready. It must be
// called once, before any other operation on the engine.
//
// The ready poll has no timeout, a peripheral that never comes up hangs the
// calling goroutine.
func (e *Engine) Init() (err error) {
	if e.Regs == nil {
		return ErrNoPeripheral
	}

	if e.Power != nil {
		e.Power.Enable()
		e.Power.Reset()

		for !e.Power.Ready() {
		}
	}

	return
}

// ProcessData feeds data through the engine, starting from the intermediate
// digest h, and updates h in place with the resulting digest words. The
// data length must be a multiple of BlockSize, trailing bytes beyond the
// last full block are ignored.
//
// The engine is held under exclusive lock for the full duration of the
// transfer, concurrent callers block until it completes. Busy polls spin
// without timeout (see Init).
func (e *Engine) ProcessData(algo Algo, data []byte, h []uint32) {
	e.Lock()
	defer e.Unlock()

	e.Regs.Start(algo)

	// Load the initial digest into both banks, so that a computation
	// initiated for a different context cannot be contaminated by this
	// transfer (the hardware double-buffers, see Regs).
	for i, val := range h {
		e.Regs.WriteDigest(Current, i, val)
		e.Regs.WriteDigest(Swap, i, val)
	}

	for len(data) >= BlockSize {
		// The engine starts sampling as soon as the first word of a
		// block lands, the remaining words must not be written until
		// the busy flag clears.
		e.Regs.WriteData(binary.LittleEndian.Uint32(data))

		for e.Regs.Busy() {
		}

		for i := 4; i < BlockSize; i += 4 {
			e.Regs.WriteData(binary.LittleEndian.Uint32(data[i:]))
		}

		data = data[BlockSize:]
	}

	// Digest computation of a block is triggered by the write of the
	// first word of the next one, a zero word materializes the last
	// block's digest.
	e.Regs.WriteData(0)

	for e.Regs.Busy() {
	}

	for i := range h {
		h[i] = e.Regs.ReadDigest(Swap, i)
	}
}
