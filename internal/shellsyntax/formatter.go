package shellsyntax

import (
	"sort"
	"strconv"
	"strings"
)

// FormatStatement renders the single statement headed by c — its
// pipeline only, never any NextCommand — in canonical form. Parsing
// FormatStatement(c) reproduces c's pipeline exactly; formatting is
// idempotent.
func FormatStatement(c *Command) string {
	if c == nil {
		return ""
	}
	s := formatPipeline(c)
	if c.Asynchronous {
		s += " &"
	}
	return s
}

// FormatStatements renders the full chain reachable from head through
// NextCommand, splitting it into one string per top-level ';' boundary.
// Within each returned string, pipelines chained by '&&'/'||' are joined
// with " && "/" || ", and a statement ended by '&' is followed by " & "
// and the next statement, so joining the result with "; " re-parses.
func FormatStatements(head *Command) []string {
	if head == nil {
		return nil
	}
	var out []string
	var sb strings.Builder
	cur := head
	for {
		sb.WriteString(formatPipeline(cur))
		if cur.NextCommand != nil && cur.NextCommandOperator != nil {
			sb.WriteString(" ")
			sb.WriteString(cur.NextCommandOperator.String())
			sb.WriteString(" ")
			cur = cur.NextCommand
			continue
		}
		if cur.Asynchronous && cur.NextCommand != nil {
			sb.WriteString(" & ")
			cur = cur.NextCommand
			continue
		}
		if cur.Asynchronous {
			sb.WriteString(" &")
		}
		out = append(out, sb.String())
		sb.Reset()
		if cur.NextCommand == nil {
			return out
		}
		cur = cur.NextCommand
	}
}

func formatPipeline(head *Command) string {
	var parts []string
	for cmd := head; cmd != nil; cmd = cmd.PipeCommand {
		parts = append(parts, formatCommand(cmd))
	}
	return strings.Join(parts, " | ")
}

func formatCommand(cmd *Command) string {
	parts := make([]string, 0, 2+len(cmd.Args)+len(cmd.Descriptors.Descriptors))
	parts = append(parts, formatWord(cmd.Command))
	for _, a := range cmd.Args {
		parts = append(parts, formatWord(a))
	}

	fds := make([]int, 0, len(cmd.Descriptors.Descriptors))
	for fd := range cmd.Descriptors.Descriptors {
		fds = append(fds, fd)
	}
	sort.Ints(fds)
	for _, fd := range fds {
		if s, ok := formatDescriptor(fd, cmd.Descriptors.Descriptors[fd]); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func formatWord(w Word) string {
	if wordNeedsQuoting(w) {
		return quoteWord(w)
	}
	return string(w)
}

// quoteWord wraps s in single quotes, escaping any embedded single
// quote by closing the quote, emitting a backslash-escaped quote
// character, and reopening the quote ('\'') — the standard POSIX
// single-quote escape trick, since single quotes admit no escape of
// their own.
func quoteWord(w Word) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range string(w) {
		if r == '\'' {
			sb.WriteString(`'\''`)
			continue
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('\'')
	return sb.String()
}

// formatDescriptor renders fd's descriptor, returning ok=false when it
// should be elided: fds 0/1/2 holding exactly their own natural
// stdin/stdout/stderr default are never rendered; an fd outside that
// set is always rendered, since it can only be present via an explicit
// redirection in this command.
func formatDescriptor(fd int, d Descriptor) (string, bool) {
	switch v := d.(type) {
	case ClosedDescriptor:
		if fd == 0 {
			return "<&-", true
		}
		return elideFdPrefix(fd, 1) + ">&-", true

	case *CommandDescriptor:
		if isNaturalDefault(fd, v) {
			return "", false
		}
		defaultFd := 1
		if v.Descriptor.Operator == RedirInput {
			defaultFd = 0
		}
		return elideFdPrefix(fd, defaultFd) + v.Descriptor.Operator.String() + " " + formatTarget(v.Descriptor.Target), true

	default:
		return "", false
	}
}

func elideFdPrefix(fd, defaultFd int) string {
	if fd == defaultFd {
		return ""
	}
	return strconv.Itoa(fd)
}

func isNaturalDefault(fd int, cd *CommandDescriptor) bool {
	dt, ok := cd.Descriptor.Target.(DefaultFile)
	if !ok {
		return false
	}
	switch fd {
	case 0:
		return dt.Target == StdinTarget && cd.Descriptor.Operator == RedirInput
	case 1:
		return dt.Target == StdoutTarget && cd.Descriptor.Operator == RedirOutput
	case 2:
		return dt.Target == StderrTarget && cd.Descriptor.Operator == RedirOutput
	default:
		return false
	}
}

func formatTarget(t FileTarget) string {
	switch v := t.(type) {
	case File:
		return formatWord(v.Name)
	case DefaultFile:
		return v.Target.String()
	default:
		return ""
	}
}
