// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package hashacc streams data through block-oriented hash accelerators
// embedded in microcontrollers such as the APM32F4xx or MSP432E4 families.
//
// The package mediates between a byte-stream API (arbitrary-length Update
// calls) and a hardware engine that only accepts fixed 64-byte blocks and
// exposes the running digest as raw register words. The hash algorithms
// themselves, including length padding and finalization, remain with the
// caller; this package only keeps the engine fed.
//
// Register banks are injected through the Regs and Power interfaces so that
// target peripherals (see packages apm32 and msp432) and simulated ones can
// be driven through the same code paths.
package hashacc

// BlockSize is the input block length, in bytes, consumed by the engine per
// compression step (MD5/SHA-1 family).
const BlockSize = 64

// An Algo selects the hash algorithm computed by the engine.
type Algo int

const (
	MD5 Algo = iota
	SHA1
)

// Words returns the length of the algorithm's intermediate digest, in
// 32-bit words.
func (a Algo) Words() int {
	switch a {
	case MD5:
		return 4
	case SHA1:
		return 5
	}

	return 0
}

func (a Algo) String() string {
	switch a {
	case MD5:
		return "MD5"
	case SHA1:
		return "SHA-1"
	}

	return "unknown"
}
