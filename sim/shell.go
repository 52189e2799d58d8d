package sim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/rhartert/lsrsim/lsr"
)

const menu = `
------------------------------------
Link State Routing Simulator

(1) Create a Network Topology
(2) Build a Connection Table
(3) Shortest Path to Destination Router
(4) Modify a Topology
(5) Best Router for Broadcast
(6) Exit

Command: `

// Shell is an interactive, menu driven front end to a Session.
type Shell struct {
	session *Session
	printer *Printer
	out     io.Writer
	in      *bufio.Scanner
}

// NewShell returns a shell reading commands from in and writing to out.
func NewShell(s *Session, in io.Reader, out io.Writer) *Shell {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &Shell{
		session: s,
		printer: NewPrinter(out),
		out:     out,
		in:      scanner,
	}
}

// Run reads and executes commands until the exit command is entered or the
// input is exhausted.
func (sh *Shell) Run() error {
	for {
		fmt.Fprint(sh.out, menu)
		cmd, ok := sh.next()
		if !ok {
			return sh.in.Err()
		}
		fmt.Fprintln(sh.out)

		if cmd == "6" {
			fmt.Fprintln(sh.out, "Good Bye!")
			return nil
		}
		if err := sh.dispatch(cmd); err != nil {
			if errors.Is(err, io.EOF) {
				return sh.in.Err()
			}
			sh.printer.Error(err)
		}
	}
}

func (sh *Shell) dispatch(cmd string) error {
	switch cmd {
	case "1":
		return sh.load()
	case "2", "3", "4", "5":
		if !sh.session.Loaded() {
			fmt.Fprintln(sh.out, "Please load a file before performing simulation!")
			fmt.Fprintln(sh.out, "(Command 1 not executed)")
			return nil
		}
	default:
		fmt.Fprintln(sh.out, "Please enter a valid response")
		return nil
	}

	switch cmd {
	case "2":
		return sh.table()
	case "3":
		return sh.path()
	case "4":
		return sh.fail()
	default:
		return sh.broadcast()
	}
}

func (sh *Shell) load() error {
	fmt.Fprint(sh.out, "Input original network topology matrix data file: ")
	path, ok := sh.next()
	if !ok {
		return io.EOF
	}
	if err := sh.session.LoadFile(path); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Review original topology matrix:")
	return sh.printer.Matrix(sh.session.Matrix())
}

func (sh *Shell) table() error {
	source, err := sh.readRouter("Select a source router : ")
	if err != nil {
		return err
	}
	r, err := sh.session.Table(source)
	if err != nil {
		return err
	}
	sh.printer.Table(r)
	return nil
}

func (sh *Shell) path() error {
	if err := sh.ensureSource(); err != nil {
		return err
	}
	dest, err := sh.readRouter("Select a destination router : ")
	if err != nil {
		return err
	}
	r, err := sh.session.Path(sh.session.Source, dest)
	if err != nil {
		return err
	}
	sh.printer.Path(r)
	return nil
}

func (sh *Shell) fail() error {
	id, err := sh.readRouter("Select Router to be removed : ")
	if err != nil {
		return err
	}
	if err := sh.ensureSource(); err != nil {
		return err
	}
	if sh.session.Dest == lsr.NoRouter {
		fmt.Fprintln(sh.out, "No destination router specified")
		dest, err := sh.readRouter("Destination Router : ")
		if err != nil {
			return err
		}
		sh.session.Dest = dest
	}
	r, err := sh.session.Fail(id)
	if err != nil {
		return err
	}
	sh.printer.Fail(r)
	return nil
}

func (sh *Shell) broadcast() error {
	r, err := sh.session.Broadcast()
	if err != nil {
		return err
	}
	sh.printer.Broadcast(r)
	return nil
}

func (sh *Shell) ensureSource() error {
	if sh.session.Source != lsr.NoRouter {
		return nil
	}
	fmt.Fprintln(sh.out, "No source router specified")
	source, err := sh.readRouter("Source Router : ")
	if err != nil {
		return err
	}
	sh.session.Source = source
	return nil
}

func (sh *Shell) readRouter(prompt string) (int, error) {
	fmt.Fprint(sh.out, prompt)
	token, ok := sh.next()
	if !ok {
		return 0, io.EOF
	}
	id, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("invalid router %q", token)
	}
	if _, err := sh.session.Network().Router(id); err != nil {
		return 0, err
	}
	return id, nil
}

func (sh *Shell) next() (string, bool) {
	if !sh.in.Scan() {
		return "", false
	}
	return sh.in.Text(), true
}
