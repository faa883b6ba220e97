/*
Copyright 2024 Tim St. Pierre
lcd1602 drives a 1602 display on an I2C backpack from the command line
*/

// lcd1602 initializes a character display behind a PCF8574 backpack and runs
// a script of display commands on it, or a demonstration when no script is
// given.
//
//	lcd1602 -e clear -e 'print "Hello, Scope!"' -e 'cursor 0 1' -e 'print again'
//	lcd1602 -sim -png out.png -script commands.txt
//
// With -v every bus transmission is logged with the bytes that went out, to
// line up with an oscilloscope or logic analyzer capture.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	lcd1602 "github.com/tstpierre-tc/i2clcd"
	"github.com/tstpierre-tc/i2clcd/lcdsim"
	"github.com/tstpierre-tc/i2clcd/scope"
)

// exprs collects repeated -e flags.
type exprs []string

func (e *exprs) String() string {
	return strings.Join(*e, "; ")
}

func (e *exprs) Set(s string) error {
	*e = append(*e, s)
	return nil
}

func mainImpl() error {
	busName := flag.String("bus", "", "I²C bus to use")
	addr := flag.Uint("addr", 0x27, "I²C address of the backpack")
	doProbe := flag.Bool("probe", false, "scan the bus for the backpack instead of using -addr")
	cols := flag.Uint("cols", 16, "characters per line")
	lines := flag.Uint("lines", 2, "display lines, 1 or 2")
	var speed physic.Frequency
	flag.Var(&speed, "speed", "I²C clock, e.g. 50kHz")
	useSim := flag.Bool("sim", false, "drive a simulated display instead of hardware")
	pngPath := flag.String("png", "", "with -sim, write the final display to this PNG file")
	scriptPath := flag.String("script", "", "file of display commands, one per line")
	var commands exprs
	flag.Var(&commands, "e", "display command; may be repeated")
	fast := flag.Bool("fast", false, "ignore sleep commands")
	verbose := flag.Bool("v", false, "log every bus transmission")
	flag.Parse()
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	src := demoScript()
	switch {
	case *scriptPath != "" && len(commands) != 0:
		return fmt.Errorf("use -script or -e, not both")
	case *scriptPath != "":
		f, err := os.Open(*scriptPath)
		if err != nil {
			return err
		}
		src, err = readLines(f)
		f.Close()
		if err != nil {
			return err
		}
	case len(commands) != 0:
		src = commands
	}
	ops, err := parseScript(src)
	if err != nil {
		return err
	}
	opts, err := displayOpts(*addr, *lines, *cols)
	if err != nil {
		return err
	}

	var (
		bus i2c.Bus
		sim *lcdsim.Sim
	)
	if *useSim {
		sim = lcdsim.New(opts.I2CAddr, int(opts.Cols))
		bus = sim
		*fast = true
	} else {
		if _, err := host.Init(); err != nil {
			return err
		}
		b, err := i2creg.Open(*busName)
		if err != nil {
			return fmt.Errorf("failed to open I²C: %w", err)
		}
		defer b.Close()
		bus = b
	}
	if speed != 0 {
		if err := bus.SetSpeed(speed); err != nil {
			log.WithError(err).Warn("bus speed unchanged")
		}
	}

	if *doProbe {
		if opts.I2CAddr, err = probe(bus); err != nil {
			return err
		}
	}
	if *verbose {
		opts.Observer = scope.New(log.StandardLogger(), log.DebugLevel)
	}
	start := time.Now()
	dev, err := lcd1602.NewI2C(bus, &opts)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"dev": dev.String(), "took": time.Since(start)}).Info("display initialized")

	r := &runner{dev: dev, sleep: time.Sleep}
	if *fast {
		r.sleep = func(time.Duration) {}
	}
	if err := r.run(ops); err != nil {
		return err
	}

	if sim != nil {
		if err := lcdsim.NewTerminal().Render(sim); err != nil {
			return err
		}
		if *pngPath != "" {
			if err := writePNG(*pngPath, sim); err != nil {
				return err
			}
		}
	}
	return nil
}

// displayOpts turns the address and geometry flags into driver options. Zero
// selects the driver default, resolved here so the simulator answers at the
// address the driver writes to.
func displayOpts(addr, lines, cols uint) (lcd1602.Opts, error) {
	opts := lcd1602.DefaultOpts
	if addr > 0x7F {
		return opts, fmt.Errorf("-addr 0x%X is not a 7 bit I²C address", addr)
	}
	if lines > 0xFF {
		return opts, fmt.Errorf("-lines %d out of range", lines)
	}
	if cols > 0xFF {
		return opts, fmt.Errorf("-cols %d out of range", cols)
	}
	if addr != 0 {
		opts.I2CAddr = uint16(addr)
	}
	if lines != 0 {
		opts.Lines = uint8(lines)
	}
	if cols != 0 {
		opts.Cols = uint8(cols)
	}
	return opts, nil
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		out = append(out, s.Text())
	}
	return out, s.Err()
}

func writePNG(path string, sim *lcdsim.Sim) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := lcdsim.WritePNG(f, sim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatalf("lcd1602: %v", err)
	}
}
