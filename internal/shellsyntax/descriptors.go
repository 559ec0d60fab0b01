package shellsyntax

// redirectKindResolved enumerates the fully-resolved shapes a single
// parsed redirection can take once the parser has read its right-hand
// side, ready for descriptor-table resolution.
type redirectKindResolved int

const (
	rrOutput redirectKindResolved = iota
	rrAppend
	rrInput
	rrDupOutput
	rrDupInput
	rrClose
)

// redirectSpec is one redirection as parsed, in source order, prior to
// descriptor-table resolution.
type redirectSpec struct {
	fd    int
	pos   int // operator position, for error reporting
	kind  redirectKindResolved
	file  Word // rrOutput, rrAppend, rrInput
	dupFd int  // rrDupOutput, rrDupInput
}

// resolveDescriptors applies specs to a fresh default descriptor table,
// strictly in source order. Each N>&M / N<&M duplication snapshots
// whatever fd M currently holds in the table at the moment it is
// processed — including values written earlier by this same call — not
// the table's original defaults. A duplication always takes the mode
// and operator of its own direction (>& gives Write/Output, <& gives
// Read/Input) and keeps only the source's target. Duplicating a
// descriptor onto itself (fd == M) needs no special-casing: for a
// default such as 2>&2 on stderr the rebuilt value equals the old one.
func resolveDescriptors(specs []redirectSpec) (DescriptorTable, error) {
	table := newDefaultDescriptorTable()
	for _, s := range specs {
		switch s.kind {
		case rrOutput, rrAppend, rrInput:
			op, mode := RedirOutput, DescriptorMode(ModeWrite)
			switch s.kind {
			case rrAppend:
				op = RedirAppend
			case rrInput:
				op, mode = RedirInput, ModeRead
			}
			cd, err := NewCommandDescriptor(mode, newCommandFileDescriptor(File{Name: s.file}, op))
			if err != nil {
				return DescriptorTable{}, err
			}
			table.Descriptors[s.fd] = cd

		case rrClose:
			table.Descriptors[s.fd] = ClosedDescriptor{}

		case rrDupOutput, rrDupInput:
			src, ok := table.Descriptors[s.dupFd]
			if !ok {
				return DescriptorTable{}, BadFileDescriptorError{Fd: s.dupFd, Position: s.pos}
			}
			srcCD, ok := src.(*CommandDescriptor)
			if !ok {
				return DescriptorTable{}, BadFileDescriptorError{Fd: s.dupFd, Position: s.pos}
			}
			op, mode := RedirOutput, DescriptorMode(ModeWrite)
			if s.kind == rrDupInput {
				op, mode = RedirInput, ModeRead
			}
			cd, err := NewCommandDescriptor(mode, newCommandFileDescriptor(srcCD.Descriptor.Target, op))
			if err != nil {
				return DescriptorTable{}, err
			}
			table.Descriptors[s.fd] = cd
		}
	}
	return table, nil
}
