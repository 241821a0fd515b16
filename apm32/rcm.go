// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package apm32

import (
	"github.com/usbarmory/hashacc/internal/reg"
)

// RCM register map
const (
	RCM_BASE = 0x40023800

	RCM_AHB2RST   = RCM_BASE + 0x14
	RCM_AHB2CLKEN = RCM_BASE + 0x34
	AHB2_HASH     = 5
)

// RCM implements the hashacc.Power interface through the APM32F4xx reset
// and clock management unit.
type RCM struct{}

// Enable opens the HASH peripheral clock gate on the AHB2 bus.
func (r *RCM) Enable() {
	reg.Set(RCM_AHB2CLKEN, AHB2_HASH)
}

// Reset pulses the HASH peripheral reset line.
func (r *RCM) Reset() {
	reg.Set(RCM_AHB2RST, AHB2_HASH)
	reg.Clear(RCM_AHB2RST, AHB2_HASH)
}

// Ready returns true, the peripheral exposes no readiness flag and accepts
// register accesses as soon as its clock gate opens.
func (r *RCM) Ready() bool {
	return true
}
