// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Command hashacc exercises the streaming adapter against the simulated
// register bank: it checks chunked transfers against one-shot ones and the
// software reference, and runs concurrent contexts through one shared
// engine. Useful as a smoke test of the engine contract on hosts without
// target hardware.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/usbarmory/hashacc"
	"github.com/usbarmory/hashacc/internal/sim"
)

var (
	size    int
	workers int
)

func init() {
	log.SetFlags(0)

	flag.IntVar(&size, "s", 1<<16, "message size in bytes")
	flag.IntVar(&workers, "w", 4, "concurrent contexts per algorithm")
}

func newContext(eng *hashacc.Engine, algo hashacc.Algo) *hashacc.Context {
	if algo == hashacc.MD5 {
		return eng.NewMD5()
	}

	return eng.NewSHA1()
}

func selftest(eng *hashacc.Engine, algo hashacc.Algo, msg []byte) (err error) {
	oneshot := newContext(eng, algo)
	oneshot.Update(msg)

	chunked := newContext(eng, algo)

	rng := rand.New(rand.NewSource(int64(len(msg))))

	for data := msg; len(data) > 0; {
		n := 1 + rng.Intn(2*hashacc.BlockSize)

		if n > len(data) {
			n = len(data)
		}

		chunked.Update(data[:n])
		data = data[n:]
	}

	ref := newContext(eng, algo)
	sim.Compress(algo, ref.H, msg[:len(msg)-len(msg)%hashacc.BlockSize])

	for i := range oneshot.H {
		if oneshot.H[i] != chunked.H[i] || oneshot.H[i] != ref.H[i] {
			return fmt.Errorf("%s: digest word %d mismatch", algo, i)
		}
	}

	return
}

func concurrent(eng *hashacc.Engine, algo hashacc.Algo, msg []byte) (err error) {
	var eg errgroup.Group

	for w := 0; w < workers; w++ {
		ctx := newContext(eng, algo)

		eg.Go(func() error {
			for data := msg; len(data) > 0; {
				n := hashacc.BlockSize

				if n > len(data) {
					n = len(data)
				}

				ctx.Update(data[:n])
				data = data[n:]
			}

			want := newContext(eng, algo)
			sim.Compress(algo, want.H, msg[:len(msg)-len(msg)%hashacc.BlockSize])

			for i := range want.H {
				if ctx.H[i] != want.H[i] {
					return fmt.Errorf("%s: concurrent digest word %d mismatch", algo, i)
				}
			}

			return nil
		})
	}

	return eg.Wait()
}

func main() {
	flag.Parse()

	regs := &sim.Regs{}
	eng := &hashacc.Engine{Regs: regs, Power: regs}

	if err := eng.Init(); err != nil {
		log.Fatal(err)
	}

	msg := make([]byte, size)
	rand.New(rand.NewSource(0)).Read(msg)

	for _, algo := range []hashacc.Algo{hashacc.MD5, hashacc.SHA1} {
		if err := selftest(eng, algo, msg); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%-5s %d bytes, %d block compressions: OK\n",
			algo, size, regs.Compressions())

		if err := concurrent(eng, algo, msg); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%-5s %d concurrent contexts: OK\n", algo, workers)
	}
}
