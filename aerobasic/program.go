package aerobasic

import (
	"fmt"
	"os"
	"strings"
)

// Program accumulates AeroBasic lines in memory. It implements Sender, so
// the same API vocabulary that drives a live connection can also build a
// program for download into a controller task.
type Program struct {
	lines []string
	vars  []string
}

func NewProgram() *Program { return &Program{} }

// Send records one command line. A single trailing newline is stripped.
func (p *Program) Send(command string) (string, error) {
	command = strings.TrimSuffix(command, "\n")
	p.lines = append(p.lines, command)
	return command, nil
}

// Len returns the number of recorded lines.
func (p *Program) Len() int { return len(p.lines) }

// Lines returns a copy of the recorded lines.
func (p *Program) Lines() []string {
	return append([]string(nil), p.lines...)
}

// Extend appends all lines and variable declarations of other.
func (p *Program) Extend(other *Program) {
	p.lines = append(p.lines, other.lines...)
	for _, name := range other.vars {
		p.declare(name)
	}
}

// Concat returns a new program holding the lines of p followed by other.
func Concat(p, other *Program) *Program {
	out := NewProgram()
	out.Extend(p)
	out.Extend(other)
	return out
}

// Comment records comment lines. Empty lines pass through unchanged.
func (p *Program) Comment(text string) {
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			p.Send("")
			continue
		}
		p.Send("' " + line)
	}
}

// Critical wraps the lines recorded by fn in a CRITICAL section, which the
// controller executes without interruption.
func (p *Program) Critical(fn func()) {
	p.Send("CRITICAL START")
	defer p.Send("CRITICAL END")
	fn()
}

func (p *Program) declare(name string) {
	for _, v := range p.vars {
		if v == name {
			return
		}
	}
	p.vars = append(p.vars, name)
}

// Var declares a program variable and returns a handle for assignments.
// Declaring the same name twice yields a single DVAR line.
func (p *Program) Var(name string) Variable {
	p.declare(name)
	return Variable{name: name, program: p}
}

// Variable is a declared program variable.
type Variable struct {
	name    string
	program *Program
}

// Ref is the variable reference usable inside command arguments.
func (v Variable) Ref() string { return "$" + v.name }

// Set records an assignment of a literal value or expression.
func (v Variable) Set(value interface{}) (string, error) {
	return v.program.Send(fmt.Sprintf("$%s = %v", v.name, value))
}

// Text renders the complete program: variable declarations first, then the
// recorded lines, closed by END PROGRAM.
func (p *Program) Text() string {
	var b strings.Builder
	for _, name := range p.vars {
		fmt.Fprintf(&b, "DVAR $%s\n", name)
	}
	for _, line := range p.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("END PROGRAM\n")
	return b.String()
}

func (p *Program) String() string { return p.Text() }

// Write stores the rendered program under path, typically with a .pgm
// extension for the controller to load.
func (p *Program) Write(path string) error {
	return os.WriteFile(path, []byte(p.Text()), 0644)
}
