package shellsyntax

import "testing"

func TestRedirectOutputAppendInputDefaults(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"cmd > test.txt", "cmd > test.txt"},
		{"cmd 0> test.txt", "cmd 0> test.txt"},
		{"cmd 2> test.txt", "cmd 2> test.txt"},
		{"cmd >> test.txt", "cmd >> test.txt"},
		{"cmd 3>> test.txt", "cmd 3>> test.txt"},
		{"cmd < test.txt", "cmd < test.txt"},
		{"cmd 1< test.txt", "cmd 1< test.txt"},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.line)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error %v", tc.line, err)
		}
		if got := FormatStatement(cmd); got != tc.want {
			t.Errorf("Parse(%q) -> %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestUnusualDescriptorRedirects(t *testing.T) {
	cases := []struct{ line, want string }{
		{"cmd1 2>&2", "cmd1"},
		{"cmd2 2>test2.txt 2>&2", "cmd2 2> test2.txt"},
		{"cmd7 22<&0", "cmd7 22< /dev/stdin"},
		{`cmd8 2>\-test8.txt`, "cmd8 2> -test8.txt"},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.line)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error %v", tc.line, err)
		}
		if got := FormatStatement(cmd); got != tc.want {
			t.Errorf("Parse(%q) -> %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestDuplicatingDescriptorsSnapshotsAtProcessingTime(t *testing.T) {
	cmd, err := Parse("cmd arg1 22>&2 >33 44>&22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := FormatStatement(cmd), "cmd arg1 > 33 22> /dev/stderr 44> /dev/stderr"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClosingDescriptors(t *testing.T) {
	cases := []struct{ line, want string }{
		{"cmd arg1 >&-", "cmd arg1 >&-"},
		{"cmd arg1 >& -", "cmd arg1 >&-"},
		{"cmd arg1 2>&- >&-", "cmd arg1 >&- 2>&-"},
		{"cmd 'arg1 arg2'>&-", "cmd 'arg1 arg2' >&-"},
		{"cmd 'arg1 arg2'2>&-", "cmd 'arg1 arg22' >&-"},
		{"cmd arg1 arg2>&-", "cmd arg1 arg2 >&-"},
		{"cmd arg1 2>&-", "cmd arg1 2>&-"},
		{`cmd arg1 \2>&-`, "cmd arg1 2 >&-"},
		{"cmd arg1 1000>&-", "cmd arg1 1000>&-"},
		{"cmd arg1 >&--", "cmd arg1 - >&-"},
		{"cmd <&-", "cmd <&-"},
		{"cmd 0<&-", "cmd <&-"},
		{"cmd 0>&-", "cmd <&-"},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.line)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error %v", tc.line, err)
		}
		if got := FormatStatement(cmd); got != tc.want {
			t.Errorf("Parse(%q) -> %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestAmbiguousDescriptorRedirects(t *testing.T) {
	lines := []string{"cmd >&a", "cmd >&1a", "cmd >&a1", "cmd >&1a1", "cmd >&a1a", `cmd >&\--`}
	for _, line := range lines {
		_, err := Parse(line)
		if _, ok := err.(AmbiguousRedirectError); !ok {
			t.Errorf("Parse(%q): want AmbiguousRedirectError, got %v", line, err)
		}
	}
}

func TestInvalidDescriptorDuplications(t *testing.T) {
	lines := []string{"cmd >>&a", "cmd >>&1a", "cmd >>&a1", "cmd >>&1a1", "cmd >>&a1a"}
	for _, line := range lines {
		_, err := Parse(line)
		if _, ok := err.(InvalidRedirectionError); !ok {
			t.Errorf("Parse(%q): want InvalidRedirectionError, got %v", line, err)
		}
	}
}

func TestBadDescriptorDuplications(t *testing.T) {
	lines := []string{
		"cmd >&- 2>&1",
		"cmd 2>&- 1>&2",
		"cmd 2>&- 3>&- 4>&2",
		"cmd 3>&- 4>&3",
		"cmd 4>&3",
	}
	for _, line := range lines {
		_, err := Parse(line)
		if _, ok := err.(BadFileDescriptorError); !ok {
			t.Errorf("Parse(%q): want BadFileDescriptorError, got %v", line, err)
		}
	}
}

func TestNewCommandDescriptorValidation(t *testing.T) {
	if _, err := NewCommandDescriptor(ModeRead, CommandFileDescriptor{Target: File{Name: "f"}, Operator: RedirOutput}); err == nil {
		t.Error("ModeRead + RedirOutput: want error")
	}
	if _, err := NewCommandDescriptor(ModeWrite, CommandFileDescriptor{Target: File{Name: "f"}, Operator: RedirInput}); err == nil {
		t.Error("ModeWrite + RedirInput: want error")
	}
	if _, err := NewCommandDescriptor(ModeRead, CommandFileDescriptor{Target: File{Name: "f"}, Operator: RedirInput}); err != nil {
		t.Errorf("ModeRead + RedirInput: unexpected error %v", err)
	}
	if _, err := NewCommandDescriptor(ModeWrite, CommandFileDescriptor{Target: File{Name: "f"}, Operator: RedirAppend}); err != nil {
		t.Errorf("ModeWrite + RedirAppend: unexpected error %v", err)
	}
}
