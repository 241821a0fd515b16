// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package apm32 provides register bindings for the HASH accelerator found
// on APM32F4xx microcontrollers, for use with package hashacc on such
// targets.
package apm32

import (
	"github.com/usbarmory/hashacc"
	"github.com/usbarmory/hashacc/internal/reg"
)

// HASH register map
const (
	HASH_BASE = 0x50060000

	HASH_CTRL        = HASH_BASE
	CTRL_ALGSEL_MD5  = 1 << 7
	CTRL_ALGSEL_SHA1 = 0
	CTRL_DTYPE_8B    = 2 << 4
	CTRL_INITCAL     = 1 << 2

	HASH_INDATA = HASH_BASE + 0x04

	HASH_STS = HASH_BASE + 0x24
	STS_BUSY = 3

	// Context swap register file. The current digest occupies words
	// 6..13, the swap digest words 14..21.
	HASH_CTSWAP   = HASH_BASE + 0xf8
	ctswapCurrent = 6
	ctswapSwap    = 14
)

// HASH implements the hashacc.Regs interface on the APM32F4xx HASH
// peripheral.
type HASH struct{}

func bank(sel int, i int) uint32 {
	n := ctswapCurrent

	if sel == hashacc.Swap {
		n = ctswapSwap
	}

	return HASH_CTSWAP + uint32(n+i)*4
}

func (h *HASH) Start(algo hashacc.Algo) {
	ctrl := uint32(CTRL_DTYPE_8B)

	switch algo {
	case hashacc.MD5:
		ctrl |= CTRL_ALGSEL_MD5
	case hashacc.SHA1:
		ctrl |= CTRL_ALGSEL_SHA1
	}

	reg.Write(HASH_CTRL, ctrl)
	reg.Write(HASH_CTRL, ctrl|CTRL_INITCAL)
}

func (h *HASH) WriteDigest(sel int, i int, val uint32) {
	reg.Write(bank(sel, i), val)
}

func (h *HASH) ReadDigest(sel int, i int) uint32 {
	return reg.Read(bank(sel, i))
}

func (h *HASH) WriteData(val uint32) {
	reg.Write(HASH_INDATA, val)
}

func (h *HASH) Busy() bool {
	return reg.Get(HASH_STS, STS_BUSY, 1) != 0
}
