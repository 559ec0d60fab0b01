package shellsyntax

import "strings"

// Parser parses shell statements. It carries no state between calls;
// the zero value is ready to use, and a single Parser can be reused
// concurrently or not — parsing itself is stateless, confined to the
// parseState built fresh inside Parse.
type Parser struct{}

// Parse parses a single shell statement into its AST. Leading and
// trailing whitespace is insignificant; input that is empty or
// consists only of whitespace fails with EmptyInputError.
func Parse(input string) (*Command, error) {
	return Parser{}.Parse(input)
}

func (Parser) Parse(input string) (*Command, error) {
	if strings.TrimSpace(input) == "" {
		return nil, EmptyInputError{}
	}
	ps := &parseState{tk: newTokenizer(input)}
	if err := ps.advance(); err != nil {
		return nil, err
	}
	return ps.parseProgram()
}

// parseState is the mutable cursor driving one Parse call: the shared
// tokenizer plus whichever token has most recently been read into cur.
type parseState struct {
	tk  *tokenizer
	cur token
}

func (ps *parseState) advance() error {
	t, err := ps.tk.next()
	if err != nil {
		return err
	}
	ps.cur = t
	return nil
}

// bailsOutOfCommand reports whether a token cannot begin a command —
// i.e. it is one of the operators that structurally separates commands
// from each other, or end of input.
func bailsOutOfCommand(k tokKind) bool {
	switch k {
	case tkAnd, tkOr, tkSemi, tkAmpBG, tkPipe, tkEOF:
		return true
	default:
		return false
	}
}

// parseProgram parses the full flat chain of ';'/'&&'/'||'/trailing-'&'
// sequenced statements. Every Command in the chain is reached through
// NextCommand off the head returned here; pipelines are a separate,
// orthogonal chain reached through PipeCommand off each statement's
// head.
func (ps *parseState) parseProgram() (*Command, error) {
	head, err := ps.tryParsePipeline()
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, EmptyStatementError{Position: ps.cur.pos}
	}

	cur := head
	for {
		switch ps.cur.kind {
		case tkEOF:
			return head, nil

		case tkSemi:
			if err := ps.advance(); err != nil {
				return nil, err
			}
			if ps.cur.kind == tkEOF {
				return head, nil
			}
			next, err := ps.requireNextStatement()
			if err != nil {
				return nil, err
			}
			cur.NextCommand = next
			cur.NextCommandOperator = nil
			cur = next

		case tkAmpBG:
			cur.Asynchronous = true
			if err := ps.advance(); err != nil {
				return nil, err
			}
			if ps.cur.kind == tkEOF {
				return head, nil
			}
			next, err := ps.requireNextStatement()
			if err != nil {
				return nil, err
			}
			cur.NextCommand = next
			cur.NextCommandOperator = nil
			cur = next

		case tkAnd, tkOr:
			op := OpAnd
			if ps.cur.kind == tkOr {
				op = OpOr
			}
			if err := ps.advance(); err != nil {
				return nil, err
			}
			next, err := ps.requireNextStatement()
			if err != nil {
				return nil, err
			}
			cur.NextCommand = next
			cur.NextCommandOperator = op
			cur = next

		default:
			return nil, UnexpectedStatementFinishError{Position: ps.cur.pos}
		}
	}
}

// requireNextStatement parses the pipeline following a sequencing
// operator, reporting EmptyStatementError at the offending token's
// position when the slot is empty. The ';' and '&' callers return
// before reaching here on EOF; after '&&'/'||' an EOF reaches here and
// is reported as EmptyStatementError at the end-of-input position.
func (ps *parseState) requireNextStatement() (*Command, error) {
	next, err := ps.tryParsePipeline()
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, EmptyStatementError{Position: ps.cur.pos}
	}
	return next, nil
}

// tryParsePipeline returns (nil, nil) when the current token cannot
// start a command, letting the caller decide what that absence means.
func (ps *parseState) tryParsePipeline() (*Command, error) {
	if bailsOutOfCommand(ps.cur.kind) {
		return nil, nil
	}
	return ps.parsePipeline()
}

// parsePipeline parses one or more commands joined by '|', linking them
// through PipeCommand. Only the returned head ever carries NextCommand
// / NextCommandOperator; those fields are set later by parseProgram.
func (ps *parseState) parsePipeline() (*Command, error) {
	head, err := ps.parseCommand()
	if err != nil {
		return nil, err
	}
	cur := head
	for ps.cur.kind == tkPipe {
		if err := ps.advance(); err != nil {
			return nil, err
		}
		if bailsOutOfCommand(ps.cur.kind) {
			return nil, UnexpectedStatementFinishError{Position: ps.cur.pos}
		}
		next, err := ps.parseCommand()
		if err != nil {
			return nil, err
		}
		cur.PipeCommand = next
		cur = next
	}
	return head, nil
}

// parseCommand parses one command: exactly one name Word, zero or more
// argument Words, and zero or more redirections, interleaved in any
// order, terminated by a structural operator or EOF.
func (ps *parseState) parseCommand() (*Command, error) {
	startPos := ps.cur.pos
	var name Word
	nameSet := false
	var args []Word
	var specs []redirectSpec

loop:
	for {
		switch ps.cur.kind {
		case tkWord:
			if !nameSet {
				name = Word(ps.cur.word)
				nameSet = true
			} else {
				args = append(args, Word(ps.cur.word))
			}
			if err := ps.advance(); err != nil {
				return nil, err
			}

		case tkRedirect:
			spec, err := ps.parseRedirectTail()
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)

		default:
			break loop
		}
	}

	if !nameSet {
		return nil, EmptyStatementError{Position: startPos}
	}

	table, err := resolveDescriptors(specs)
	if err != nil {
		return nil, err
	}
	return &Command{Command: name, Args: args, Descriptors: table}, nil
}

// parseRedirectTail consumes the right-hand side of the redirection
// operator currently in ps.cur, which the tokenizer has already fully
// lexed (its operator characters are behind the cursor). ">>&" is
// rejected immediately: it is never followed by a payload read, valid
// or not.
func (ps *parseState) parseRedirectTail() (redirectSpec, error) {
	op := ps.cur

	if op.rk == redirAppendDup {
		return redirectSpec{}, InvalidRedirectionError{Position: op.pos}
	}

	fd := op.fd
	if !op.hasFd {
		fd = defaultFdFor(op.rk)
	}

	switch op.rk {
	case redirOutputDup, redirInputDup:
		payload, err := ps.tk.readDupPayload()
		if err != nil {
			return redirectSpec{}, err
		}
		if err := ps.advance(); err != nil {
			return redirectSpec{}, err
		}
		if payload.isClose {
			return redirectSpec{fd: fd, pos: op.pos, kind: rrClose}, nil
		}
		kind := rrDupOutput
		if op.rk == redirInputDup {
			kind = rrDupInput
		}
		return redirectSpec{fd: fd, pos: op.pos, kind: kind, dupFd: payload.fd}, nil

	default:
		if err := ps.advance(); err != nil {
			return redirectSpec{}, err
		}
		if ps.cur.kind == tkEOF {
			return redirectSpec{}, UnexpectedStatementFinishError{Position: ps.cur.pos}
		}
		if ps.cur.kind != tkWord {
			return redirectSpec{}, EmptyRedirectError{Position: ps.cur.pos}
		}
		filename := Word(ps.cur.word)
		if err := ps.advance(); err != nil {
			return redirectSpec{}, err
		}
		kind := rrOutput
		switch op.rk {
		case redirAppend:
			kind = rrAppend
		case redirInput:
			kind = rrInput
		}
		return redirectSpec{fd: fd, pos: op.pos, kind: kind, file: filename}, nil
	}
}

func defaultFdFor(rk redirKind) int {
	switch rk {
	case redirInput, redirInputDup:
		return 0
	default:
		return 1
	}
}
