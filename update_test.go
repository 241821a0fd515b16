// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package hashacc_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/usbarmory/hashacc"
	"github.com/usbarmory/hashacc/internal/sim"
)

func newEngine(t *testing.T) (*hashacc.Engine, *sim.Regs) {
	t.Helper()

	regs := &sim.Regs{}
	eng := &hashacc.Engine{Regs: regs, Power: regs}

	if err := eng.Init(); err != nil {
		t.Fatal(err)
	}

	return eng, regs
}

func newContext(t *testing.T, eng *hashacc.Engine, algo hashacc.Algo) *hashacc.Context {
	t.Helper()

	switch algo {
	case hashacc.MD5:
		return eng.NewMD5()
	case hashacc.SHA1:
		return eng.NewSHA1()
	}

	t.Fatalf("unsupported algorithm %v", algo)
	return nil
}

func algos() []hashacc.Algo {
	return []hashacc.Algo{hashacc.MD5, hashacc.SHA1}
}

// Chunking must be transparent: any sequence of Update calls carrying the
// same message must leave the same digest words as a single call, and the
// digest words must match the software reference over the full blocks.
func TestUpdateChunking(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	msg := make([]byte, 1777)
	rng.Read(msg)

	chunks := []int{1, 64, 7, 191, 63, 65, 128, 3, 0, 256}

	for _, algo := range algos() {
		t.Run(algo.String(), func(t *testing.T) {
			eng, _ := newEngine(t)

			chunked := newContext(t, eng, algo)
			oneshot := newContext(t, eng, algo)

			data := msg
			for i := 0; len(data) > 0; i++ {
				n := chunks[i%len(chunks)]

				if n > len(data) {
					n = len(data)
				}

				chunked.Update(data[:n])
				data = data[n:]

				if chunked.Size < 0 || chunked.Size >= hashacc.BlockSize {
					t.Fatalf("buffered size %d out of range", chunked.Size)
				}
			}

			oneshot.Update(msg)

			if diff := cmp.Diff(oneshot.H, chunked.H); diff != "" {
				t.Errorf("digest words differ from one-shot (-want +got):\n%s", diff)
			}

			if chunked.Size != oneshot.Size || chunked.TotalSize != oneshot.TotalSize {
				t.Errorf("residual state differs: %d/%d vs %d/%d",
					chunked.Size, chunked.TotalSize, oneshot.Size, oneshot.TotalSize)
			}

			// reference over the full-block prefix
			blocks := len(msg) - len(msg)%hashacc.BlockSize

			ref := newContext(t, eng, algo)
			sim.Compress(algo, ref.H, msg[:blocks])

			if diff := cmp.Diff(ref.H, oneshot.H); diff != "" {
				t.Errorf("digest words differ from reference (-want +got):\n%s", diff)
			}

			if !bytes.Equal(oneshot.Buffer[:oneshot.Size], msg[blocks:]) {
				t.Error("buffered tail differs from message tail")
			}
		})
	}
}

func TestUpdateTotalSize(t *testing.T) {
	eng, _ := newEngine(t)
	ctx := eng.NewMD5()

	var total uint64

	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 50; i++ {
		n := rng.Intn(200)
		buf := make([]byte, n)
		rng.Read(buf)

		ctx.Update(buf)
		total += uint64(n)

		if ctx.TotalSize != total {
			t.Fatalf("expected total size %d, got %d", total, ctx.TotalSize)
		}
	}
}

func TestUpdateEmpty(t *testing.T) {
	eng, regs := newEngine(t)
	ctx := eng.NewSHA1()

	h := append([]uint32{}, ctx.H...)

	ctx.Update(nil)
	ctx.Update([]byte{})

	if ctx.Size != 0 || ctx.TotalSize != 0 {
		t.Errorf("state changed on empty update: %d/%d", ctx.Size, ctx.TotalSize)
	}

	if diff := cmp.Diff(h, ctx.H); diff != "" {
		t.Errorf("digest words changed on empty update (-want +got):\n%s", diff)
	}

	if n := len(regs.Ops()); n != 0 {
		t.Errorf("expected no register access, got %d operations", n)
	}
}

func TestUpdateSingleBlock(t *testing.T) {
	eng, regs := newEngine(t)
	ctx := eng.NewMD5()

	ctx.Update(bytes.Repeat([]byte{0x42}, hashacc.BlockSize))

	if regs.Compressions() != 1 {
		t.Errorf("expected 1 block compression, got %d", regs.Compressions())
	}

	if ctx.Size != 0 {
		t.Errorf("expected empty buffer, got %d bytes", ctx.Size)
	}
}

func TestUpdatePartialTail(t *testing.T) {
	eng, regs := newEngine(t)
	ctx := eng.NewMD5()

	msg := make([]byte, hashacc.BlockSize+10)
	rand.New(rand.NewSource(3)).Read(msg)

	ctx.Update(msg)

	if regs.Compressions() != 1 {
		t.Errorf("expected 1 block compression, got %d", regs.Compressions())
	}

	if starts := countOps(regs.Ops(), "start"); starts != 1 {
		t.Errorf("expected 1 transfer, got %d", starts)
	}

	if ctx.Size != 10 {
		t.Errorf("expected 10 buffered bytes, got %d", ctx.Size)
	}

	if !bytes.Equal(ctx.Buffer[:10], msg[hashacc.BlockSize:]) {
		t.Error("buffered bytes differ from message tail")
	}
}

// Buffered bytes must be fed the moment the buffer fills, filling it
// exactly must behave like any other flush.
func TestUpdateExactFill(t *testing.T) {
	eng, regs := newEngine(t)
	ctx := eng.NewSHA1()

	msg := make([]byte, 2*hashacc.BlockSize)
	rand.New(rand.NewSource(4)).Read(msg)

	ctx.Update(msg[:10])
	ctx.Update(msg[10:hashacc.BlockSize]) // fills the buffer exactly

	if regs.Compressions() != 1 || ctx.Size != 0 {
		t.Errorf("expected flush on exact fill, got %d compressions, %d buffered",
			regs.Compressions(), ctx.Size)
	}

	ctx.Update(msg[hashacc.BlockSize:])

	want := append([]uint32{}, eng.NewSHA1().H...)
	sim.Compress(hashacc.SHA1, want, msg)

	if diff := cmp.Diff(want, ctx.H); diff != "" {
		t.Errorf("digest words differ from reference (-want +got):\n%s", diff)
	}
}

func TestProcessBlock(t *testing.T) {
	eng, _ := newEngine(t)

	block := bytes.Repeat([]byte{0x17}, hashacc.BlockSize)

	ctx := eng.NewMD5()
	copy(ctx.Buffer[:], block)
	ctx.ProcessBlock()

	want := append([]uint32{}, eng.NewMD5().H...)
	sim.Compress(hashacc.MD5, want, block)

	if diff := cmp.Diff(want, ctx.H); diff != "" {
		t.Errorf("digest words differ from reference (-want +got):\n%s", diff)
	}
}

func countOps(ops []sim.Op, name string) (n int) {
	for _, op := range ops {
		if op.Name == name {
			n++
		}
	}

	return
}
