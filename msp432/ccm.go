// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package msp432 provides lifecycle control for the CCM cryptographic
// accelerator module found on MSP432E4 microcontrollers, for use with
// package hashacc on such targets.
package msp432

import (
	"github.com/usbarmory/hashacc/internal/reg"
)

// System control register map
const (
	SYSCTL_BASE = 0x400fe000

	SYSCTL_SRCCM   = SYSCTL_BASE + 0x574
	SYSCTL_RCGCCCM = SYSCTL_BASE + 0x674
	SYSCTL_PRCCM   = SYSCTL_BASE + 0xa74

	CCM0 = 0
)

// CCM implements the hashacc.Power interface through the MSP432E4 system
// control unit.
type CCM struct{}

// Enable gates the CCM peripheral run-mode clock on.
func (c *CCM) Enable() {
	reg.Set(SYSCTL_RCGCCCM, CCM0)
}

// Reset pulses the CCM peripheral reset.
func (c *CCM) Reset() {
	reg.Set(SYSCTL_SRCCM, CCM0)
	reg.Clear(SYSCTL_SRCCM, CCM0)
}

// Ready returns whether the CCM peripheral completed its reset sequence.
func (c *CCM) Ready() bool {
	return reg.Get(SYSCTL_PRCCM, CCM0, 1) != 0
}
