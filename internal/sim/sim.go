// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package sim implements a simulated hash accelerator register bank, for
// exercising package hashacc without target hardware.
//
// The simulation reproduces the engine's register contract rather than a
// convenient software one: input words accumulate in a 16-word block
// latch, digest computation of a block is triggered by the first word of
// the next one (or by the trailing zero word), and the two digest banks
// are kept independent, so a transfer that fails to load both banks reads
// back a stale or corrupted swap digest exactly as target silicon would.
package sim

import (
	"encoding/binary"

	"github.com/usbarmory/hashacc"
)

// An Op records one register access, in order of occurrence.
type Op struct {
	Name  string // "start", "wdig", "rdig", "wdata", "busy"
	Bank  int
	Index int
	Val   uint32
}

// Regs is a simulated hash engine register bank, it implements the
// hashacc.Regs and hashacc.Power interfaces.
//
// As on target hardware, concurrent register access is undefined: the
// engine lock in package hashacc is what keeps it single-writer.
type Regs struct {
	algo  hashacc.Algo
	banks [2][5]uint32

	block [hashacc.BlockSize]byte
	words int

	compressions int
	ops          []Op
	enabled      bool
}

func blockFunc(algo hashacc.Algo) func(h []uint32, p []byte) {
	switch algo {
	case hashacc.MD5:
		return md5Block
	case hashacc.SHA1:
		return sha1Block
	}

	return nil
}

// Compress runs the software block function of the given algorithm over all
// full blocks of p, updating the digest words h in place. It is the
// reference outcome a transfer through the simulated engine must match.
func Compress(algo hashacc.Algo, h []uint32, p []byte) {
	blockFunc(algo)(h, p)
}

func (s *Regs) compress() {
	fn := blockFunc(s.algo)

	for bank := range s.banks {
		fn(s.banks[bank][:s.algo.Words()], s.block[:])
	}

	s.words = 0
	s.compressions++
}

func (s *Regs) Start(algo hashacc.Algo) {
	s.algo = algo
	s.words = 0
	s.ops = append(s.ops, Op{Name: "start", Val: uint32(algo)})
}

func (s *Regs) WriteDigest(bank int, i int, val uint32) {
	s.banks[bank][i] = val
	s.ops = append(s.ops, Op{Name: "wdig", Bank: bank, Index: i, Val: val})
}

func (s *Regs) ReadDigest(bank int, i int) uint32 {
	s.ops = append(s.ops, Op{Name: "rdig", Bank: bank, Index: i})
	return s.banks[bank][i]
}

func (s *Regs) WriteData(val uint32) {
	s.ops = append(s.ops, Op{Name: "wdata", Val: val})

	if s.words == 16 {
		s.compress()
	}

	binary.LittleEndian.PutUint32(s.block[s.words*4:], val)
	s.words++
}

func (s *Regs) Busy() bool {
	s.ops = append(s.ops, Op{Name: "busy"})
	return false
}

// Enable implements hashacc.Power.
func (s *Regs) Enable() { s.enabled = true }

// Reset implements hashacc.Power.
func (s *Regs) Reset() {}

// Ready implements hashacc.Power.
func (s *Regs) Ready() bool { return s.enabled }

// Compressions returns the number of block compressions run so far.
func (s *Regs) Compressions() int {
	return s.compressions
}

// Ops returns the register access trace.
func (s *Regs) Ops() []Op {
	return s.ops
}
