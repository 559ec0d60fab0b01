// Package shellsyntax parses a single line of POSIX-ish shell input into
// an AST of commands, pipelines, sequencing operators, and file-descriptor
// redirections, and formats such an AST back into canonical shell text.
//
// Variable expansion, command substitution, globbing, here-documents,
// and execution are out of scope; see the package README-equivalent in
// SPEC_FULL.md at the repo root for the full rationale.
package shellsyntax

import "strings"

// Word is a fully dequoted, fully unescaped argument or command name.
// Two Words are equal iff their underlying strings are equal.
type Word string

func (w Word) String() string { return string(w) }

// Equal supports github.com/google/go-cmp without extra options.
func (w Word) Equal(other Word) bool { return w == other }

// StdTarget identifies one of the process's default standard streams.
type StdTarget interface {
	stdTarget()
	String() string
}

type stdinTarget struct{}
type stdoutTarget struct{}
type stderrTarget struct{}

func (stdinTarget) stdTarget()  {}
func (stdoutTarget) stdTarget() {}
func (stderrTarget) stdTarget() {}

func (stdinTarget) String() string  { return "/dev/stdin" }
func (stdoutTarget) String() string { return "/dev/stdout" }
func (stderrTarget) String() string { return "/dev/stderr" }

// StdinTarget, StdoutTarget, and StderrTarget are the three singleton
// StdTarget values.
var (
	StdinTarget  StdTarget = stdinTarget{}
	StdoutTarget StdTarget = stdoutTarget{}
	StderrTarget StdTarget = stderrTarget{}
)

// File is an explicit filesystem path used as a redirection target.
// shellsyntax never opens it; resolution is left to the caller.
type File struct {
	Name Word
}

// DefaultFile is a symbolic reference to one of the process's default
// standard streams.
type DefaultFile struct {
	Target StdTarget
}

// FileTarget is the sum type File | DefaultFile.
type FileTarget interface {
	fileTarget()
}

func (File) fileTarget()        {}
func (DefaultFile) fileTarget() {}

// RedirOp is the closed enum of redirection operators.
type RedirOp interface {
	redirOp()
	String() string
}

type redirInputOp struct{}
type redirOutputOp struct{}
type redirAppendOp struct{}

func (redirInputOp) redirOp()  {}
func (redirOutputOp) redirOp() {}
func (redirAppendOp) redirOp() {}

func (redirInputOp) String() string  { return "<" }
func (redirOutputOp) String() string { return ">" }
func (redirAppendOp) String() string { return ">>" }

var (
	RedirInput  RedirOp = redirInputOp{}
	RedirOutput RedirOp = redirOutputOp{}
	RedirAppend RedirOp = redirAppendOp{}
)

// DescriptorMode is the closed enum describing a descriptor's I/O
// direction.
type DescriptorMode interface {
	descriptorMode()
	String() string
}

type modeRead struct{}
type modeWrite struct{}

func (modeRead) descriptorMode()  {}
func (modeWrite) descriptorMode() {}

func (modeRead) String() string  { return "read" }
func (modeWrite) String() string { return "write" }

var (
	ModeRead  DescriptorMode = modeRead{}
	ModeWrite DescriptorMode = modeWrite{}
)

// CommandFileDescriptor pairs a redirection target with the operator
// that produced it. IsDefaultFile is a convenience flag: true iff
// Target is a DefaultFile rather than a concrete File.
type CommandFileDescriptor struct {
	Target        FileTarget
	Operator      RedirOp
	IsDefaultFile bool
}

func newCommandFileDescriptor(target FileTarget, operator RedirOp) CommandFileDescriptor {
	_, isDefault := target.(DefaultFile)
	return CommandFileDescriptor{Target: target, Operator: operator, IsDefaultFile: isDefault}
}

// Descriptor is the sum type CommandDescriptor | ClosedDescriptor held
// per file-descriptor number in a DescriptorTable.
type Descriptor interface {
	descriptor()
}

// CommandDescriptor is an open descriptor: a mode paired with the file
// target and operator that opened it. Construct only via
// NewCommandDescriptor, which enforces the mode/operator invariant.
type CommandDescriptor struct {
	Mode       DescriptorMode
	Descriptor CommandFileDescriptor
}

func (*CommandDescriptor) descriptor() {}

// NewCommandDescriptor validates mode against operator before
// constructing a CommandDescriptor: ModeRead requires RedirInput;
// ModeWrite requires RedirOutput or RedirAppend. Any other pairing,
// including a mode argument that isn't a DescriptorMode at all, fails
// with InvalidDescriptorDataError.
func NewCommandDescriptor(mode DescriptorMode, descriptor CommandFileDescriptor) (*CommandDescriptor, error) {
	switch mode {
	case ModeRead:
		if descriptor.Operator != RedirInput {
			return nil, InvalidDescriptorDataError{Reason: "mode=Read requires operator=Input"}
		}
	case ModeWrite:
		if descriptor.Operator != RedirOutput && descriptor.Operator != RedirAppend {
			return nil, InvalidDescriptorDataError{Reason: "mode=Write requires operator=Output or Append"}
		}
	default:
		return nil, InvalidDescriptorDataError{Reason: "mode is not a recognized descriptor mode"}
	}
	return &CommandDescriptor{Mode: mode, Descriptor: descriptor}, nil
}

func newDefaultDescriptor(target StdTarget, mode DescriptorMode, operator RedirOp) *CommandDescriptor {
	d, err := NewCommandDescriptor(mode, newCommandFileDescriptor(DefaultFile{Target: target}, operator))
	if err != nil {
		// Unreachable: defaults are always internally consistent.
		panic(err)
	}
	return d
}

// ClosedDescriptor marks a file descriptor as closed (from N>&- / N<&-).
type ClosedDescriptor struct{}

func (ClosedDescriptor) descriptor() {}

// NextOperator is the closed enum of sequencing operators chaining one
// Command to the next. A nil *NextOperator means ';'.
type NextOperator interface {
	nextOperator()
	String() string
}

type opAnd struct{}
type opOr struct{}

func (opAnd) nextOperator() {}
func (opOr) nextOperator()  {}

func (opAnd) String() string { return "&&" }
func (opOr) String() string  { return "||" }

var (
	OpAnd NextOperator = opAnd{}
	OpOr  NextOperator = opOr{}
)

// DescriptorTable maps file-descriptor numbers to their resolved state.
// Fds 0, 1, and 2 are always present unless explicitly closed or
// redirected, holding stdin-read/stdout-write/stderr-write defaults.
type DescriptorTable struct {
	Descriptors map[int]Descriptor
}

// newDefaultDescriptorTable returns a table with the standard fd 0/1/2
// defaults and nothing else.
func newDefaultDescriptorTable() DescriptorTable {
	return DescriptorTable{
		Descriptors: map[int]Descriptor{
			0: newDefaultDescriptor(StdinTarget, ModeRead, RedirInput),
			1: newDefaultDescriptor(StdoutTarget, ModeWrite, RedirOutput),
			2: newDefaultDescriptor(StderrTarget, ModeWrite, RedirOutput),
		},
	}
}

// Command is one node of the parsed AST: a command word, its
// arguments, its resolved descriptor table, and links to the next
// pipeline member and/or the next sequenced statement.
//
// Command, once returned by Parse, is never mutated. PipeCommand and
// NextCommand are exclusively owned by their parent; the AST is a tree
// with no shared subtrees and no back-references.
type Command struct {
	Command             Word
	Args                []Word
	Descriptors         DescriptorTable
	PipeCommand         *Command
	NextCommand         *Command
	NextCommandOperator NextOperator
	Asynchronous        bool
}

// String renders the single statement headed by c (not including any
// NextCommand) in canonical form.
func (c *Command) String() string {
	return FormatStatement(c)
}

// reservedFormatChars is the set of runes that force a word to be
// single-quoted when rendered.
const reservedFormatChars = " \t\n'\"\\;&|<>$`()*?[]#~=!"

func wordNeedsQuoting(w Word) bool {
	s := string(w)
	if s == "" {
		return true
	}
	return strings.ContainsAny(s, reservedFormatChars)
}
