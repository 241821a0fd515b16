// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package hashacc

// Standard initial digest words (RFC 1321, FIPS 180-4). Finalization and
// padding remain with the caller.
var (
	md5Init  = [4]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476}
	sha1Init = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}
)

// A Context holds the streaming state of one hash computation. Its fields
// mirror the portable hash context layout: callers performing their own
// buffering or finalization may manipulate them directly.
//
// A Context is not safe for concurrent use, but distinct contexts may share
// one Engine from separate goroutines, their block transfers are serialized
// by the engine lock.
type Context struct {
	// Algo is the algorithm selector passed to the engine.
	Algo Algo
	// H is the running intermediate digest.
	H []uint32
	// Buffer holds input bytes short of a full block.
	Buffer [BlockSize]byte
	// Size is the count of valid bytes in Buffer, always less than
	// BlockSize between calls.
	Size int
	// TotalSize is the cumulative input length, in bytes, for the
	// caller's length padding.
	TotalSize uint64

	eng *Engine
}

// NewMD5 returns a Context computing an MD5 digest on the engine.
func (e *Engine) NewMD5() *Context {
	return &Context{
		Algo: MD5,
		H:    append([]uint32{}, md5Init[:]...),
		eng:  e,
	}
}

// NewSHA1 returns a Context computing a SHA-1 digest on the engine.
func (e *Engine) NewSHA1() *Context {
	return &Context{
		Algo: SHA1,
		H:    append([]uint32{}, sha1Init[:]...),
		eng:  e,
	}
}

// Update digests an arbitrary-length portion of the message. Full blocks
// are fed to the engine straight from data when nothing is buffered,
// avoiding a copy, leftover bytes are accumulated in Buffer. The buffer
// never holds a full block when Update returns.
func (c *Context) Update(data []byte) {
	for len(data) > 0 {
		if c.Size == 0 && len(data) >= BlockSize {
			// round down to a multiple of the block size
			n := len(data) - (len(data) % BlockSize)

			c.eng.ProcessData(c.Algo, data[:n], c.H)

			c.TotalSize += uint64(n)
			data = data[n:]
		} else {
			n := BlockSize - c.Size

			if len(data) < n {
				n = len(data)
			}

			copy(c.Buffer[c.Size:], data[:n])

			c.Size += n
			c.TotalSize += uint64(n)
			data = data[n:]

			if c.Size == BlockSize {
				c.eng.ProcessData(c.Algo, c.Buffer[:], c.H)
				c.Size = 0
			}
		}
	}
}

// ProcessBlock feeds the buffered block to the engine. The buffer must hold
// a full block, no length check is performed: callers that maintain their
// own buffering use this to compress one block on demand.
func (c *Context) ProcessBlock() {
	c.eng.ProcessData(c.Algo, c.Buffer[:], c.H)
}
