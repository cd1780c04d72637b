// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bytes"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/ezrec/ledseq/cpu"
	"github.com/ezrec/ledseq/emulator"
	"github.com/ezrec/ledseq/harness"
	"github.com/ezrec/ledseq/internal"
	ledio "github.com/ezrec/ledseq/io"
	"github.com/ezrec/ledseq/trace"
)

// demo is the built-in program for simulation, with delays short enough to
// see in a waveform.
//
//go:embed demo.led
var demo []byte

// hardware is the built-in program written by -w, with delays long enough
// to see on the board.
//
//go:embed hardware.led
var hardware []byte

// assemble compiles source using the equates of an empty store built from
// config.
func assemble(config *emulator.Config, name string, source io.Reader, verbose bool) (prog *cpu.Program, err error) {
	store, err := config.NewStore(nil)
	if err != nil {
		return
	}

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range internal.IterSeq2Concat(store.Defines(), (&cpu.Cpu{}).Defines()) {
		asm.Predefine(key, value)
	}

	prog, err = asm.Parse(source)
	if err != nil {
		err = fmt.Errorf("%v: %w", name, err)
	}

	return
}

// run executes one ledseq command line. name prefixes errors that have no
// file of their own.
func run(name string, args []string, stdout io.Writer) (err error) {
	var compile string
	var load string
	var write string
	var ticks int
	var vcdPath string
	var configPath string
	var flash bool
	var dump bool
	var listing bool
	var verbose bool

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.StringVar(&compile, "c", "", "program source to assemble (default: built-in demo)")
	flags.StringVar(&load, "r", "", "program image to run")
	flags.StringVar(&write, "w", "", "write the program image to this file and exit (default program: built-in hardware demo)")
	flags.IntVar(&ticks, "n", -1, "ticks to simulate (default: from config)")
	flags.StringVar(&vcdPath, "vcd", "", "waveform output file")
	flags.StringVar(&configPath, "config", "", "JSON configuration file")
	flags.BoolVar(&flash, "flash", false, "run from a serial flash window instead of a ROM")
	flags.BoolVar(&dump, "dump", false, "print the final state and an output summary")
	flags.BoolVar(&listing, "l", false, "print a program listing")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")

	err = flags.Parse(args)
	if err != nil {
		return
	}

	if flags.NArg() != 0 {
		err = fmt.Errorf("%v: Unknown arguments: %v", name, flags.Args())
		return
	}

	if len(compile) != 0 && len(load) != 0 {
		err = fmt.Errorf("%v: -c and -r are exclusive", name)
		return
	}

	if verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: harness.LevelTrace,
		})
		slog.SetDefault(slog.New(handler))
	}

	config := emulator.DefaultConfig()
	origin := name
	if len(configPath) != 0 {
		config, err = emulator.LoadConfig(configPath)
		if err != nil {
			err = fmt.Errorf("%v: %w", configPath, err)
			return
		}
		origin = configPath
	}
	if flash {
		config.Store = emulator.STORE_FLASH
	}
	if ticks >= 0 {
		config.Ticks = ticks
	}
	err = config.Validate()
	if err != nil {
		err = fmt.Errorf("%v: %w", origin, err)
		return
	}

	var prog *cpu.Program
	switch {
	case len(load) != 0:
		var words []uint32
		words, err = ledio.LoadImage(load)
		if err != nil {
			err = fmt.Errorf("%v: %w", load, err)
			return
		}
		prog = cpu.Disassemble(words)
	case len(compile) != 0:
		var inf *os.File
		inf, err = os.Open(compile)
		if err != nil {
			return
		}
		prog, err = assemble(config, compile, inf, verbose)
		inf.Close()
	case len(write) != 0:
		prog, err = assemble(config, "hardware", bytes.NewReader(hardware), verbose)
	default:
		prog, err = assemble(config, "demo", bytes.NewReader(demo), verbose)
	}
	if err != nil {
		return
	}

	store, err := config.NewStore(prog.Binary())
	if err != nil {
		err = fmt.Errorf("%v: %w", origin, err)
		return
	}

	if listing {
		err = prog.Listing(stdout, store.Stride())
		if err != nil {
			return
		}
	}

	if len(write) != 0 {
		err = ledio.SaveImage(write, prog.Binary())
		if err != nil {
			err = fmt.Errorf("%v: %w", write, err)
		}
		return
	}

	emu := emulator.NewEmulator(store)
	emu.Program = prog
	emu.Verbose = verbose
	emu.Reset()

	engine := sim.NewSerialEngine()
	builder := harness.NewBuilder().
		WithEngine(engine).
		WithFreq(sim.Freq(config.FreqMHz) * sim.MHz).
		WithTicks(config.Ticks).
		WithEmulator(emu)

	if len(vcdPath) != 0 {
		var period uint64
		period, err = trace.PeriodOf(config.FreqMHz, config.Timescale)
		if err != nil {
			err = fmt.Errorf("%v: %w", origin, err)
			return
		}
		var ouf *os.File
		ouf, err = os.Create(vcdPath)
		if err != nil {
			return
		}
		vcd := trace.NewVcd(ouf, config.Timescale, period)
		defer func() {
			flushErr := vcd.Flush()
			if flushErr != nil {
				flushErr = fmt.Errorf("%v: %w", vcdPath, flushErr)
			}
			err = errors.Join(err, flushErr, ouf.Close())
		}()
		err = vcd.Start(emu.Snapshot())
		if err != nil {
			return
		}
		builder = builder.WithProbe(vcd)
	}

	rec := &trace.Recorder{}
	if dump {
		builder = builder.WithProbe(rec)
	}

	clock := builder.Build("Clock")
	err = clock.Run()
	if err != nil {
		return
	}

	if dump {
		fmt.Fprintln(stdout, emu.Table())
		fmt.Fprintln(stdout, rec.Summary())
	}

	return
}

func main() {
	err := run(filepath.Base(os.Args[0]), os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		atexit.Exit(0)
	}
	if err != nil {
		atexit.Fatal(err)
	}

	atexit.Exit(0)
}
