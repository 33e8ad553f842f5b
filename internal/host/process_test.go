package host

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSplitIncomplete(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		complete string
		rest     string
	}{
		{"ascii", "hello", "hello", ""},
		{"empty", "", "", ""},
		{"full multibyte", "h\xc3\xa9", "h\xc3\xa9", ""},
		{"cut two byte", "h\xc3", "h", "\xc3"},
		{"cut three byte", "a\xe2\x9c", "a", "\xe2\x9c"},
		{"cut four byte", "\xf0\x9f\x98", "", "\xf0\x9f\x98"},
	}

	for _, tt := range tests {
		complete, rest := splitIncomplete([]byte(tt.in))
		if string(complete) != tt.complete || string(rest) != tt.rest {
			t.Errorf("%s: splitIncomplete(%q) = (%q, %q), want (%q, %q)",
				tt.name, tt.in, complete, rest, tt.complete, tt.rest)
		}
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Output, "output"},
		{Error, "error"},
		{Input, "input"},
		{Exit, "exit"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

// collect gathers events until Exit.
func collect(t *testing.T, p *Process) (stdout, stderr string, exit Event) {
	t.Helper()
	var out, errOut strings.Builder
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev := <-p.Events():
			switch ev.Kind {
			case Output:
				out.WriteString(ev.Content)
			case Error:
				errOut.WriteString(ev.Content)
			case Exit:
				return out.String(), errOut.String(), ev
			}
		case <-timeout:
			t.Fatal("timed out waiting for exit")
		}
	}
}

func newProcess(t *testing.T, opts Options) *Process {
	t.Helper()
	p, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestProcess_Streams(t *testing.T) {
	p := newProcess(t, Options{})
	if err := p.Start("/bin/sh", `-c "echo hi; echo err 1>&2; exit 3"`); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	stdout, stderr, exit := collect(t, p)
	if stdout != "hi\n" {
		t.Errorf("stdout = %q, want %q", stdout, "hi\n")
	}
	if stderr != "err\n" {
		t.Errorf("stderr = %q, want %q", stderr, "err\n")
	}
	if exit.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", exit.ExitCode)
	}
	if p.Running() {
		t.Error("Running() = true after exit")
	}
	if p.FileName() != "/bin/sh" {
		t.Errorf("FileName() = %q, want %q", p.FileName(), "/bin/sh")
	}
}

func TestProcess_WriteInput(t *testing.T) {
	p := newProcess(t, Options{})
	if err := p.Start("/bin/sh", `-c "read line; echo got:$line"`); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := p.WriteInput("ping"); err != nil {
		t.Fatalf("WriteInput() error = %v", err)
	}

	var out strings.Builder
	sawInput := false
	timeout := time.After(10 * time.Second)
	for done := false; !done; {
		select {
		case ev := <-p.Events():
			switch ev.Kind {
			case Input:
				sawInput = ev.Content == "ping"
			case Output:
				out.WriteString(ev.Content)
			case Exit:
				done = true
			}
		case <-timeout:
			t.Fatal("timed out waiting for exit")
		}
	}
	if !sawInput {
		t.Error("no Input event for the written line")
	}
	if out.String() != "got:ping\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "got:ping\n")
	}
}

func TestProcess_Stop(t *testing.T) {
	p := newProcess(t, Options{})
	if err := p.Start("/bin/sh", `-c "sleep 30"`); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := p.Start("/bin/sh", ""); !errors.Is(err, ErrRunning) {
		t.Errorf("second Start() error = %v, want ErrRunning", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	_, _, exit := collect(t, p)
	if exit.ExitCode == 0 {
		t.Error("killed process reported exit code 0")
	}
}

func TestProcess_NotRunning(t *testing.T) {
	p := newProcess(t, Options{})
	if err := p.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Stop() error = %v, want ErrNotRunning", err)
	}
	if err := p.WriteInput("x"); !errors.Is(err, ErrNotRunning) {
		t.Errorf("WriteInput() error = %v, want ErrNotRunning", err)
	}
}

func TestProcess_StartFailure(t *testing.T) {
	p := newProcess(t, Options{})
	if err := p.Start("/nonexistent/binary", ""); err == nil {
		t.Fatal("Start() of a missing binary should fail")
	}
	if p.Running() {
		t.Error("Running() = true after failed start")
	}
	if err := p.Start("/bin/sh", `-c "unterminated`); err == nil {
		t.Error("Start() with bad quoting should fail")
	}
}

func TestProcess_CodePage(t *testing.T) {
	p := newProcess(t, Options{CodePage: 1252})
	if p.CodePage() != 1252 {
		t.Errorf("CodePage() = %d, want 1252", p.CodePage())
	}
	if err := p.Start("/bin/sh", `-c "printf '\\351t\\351'"`); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	stdout, _, _ := collect(t, p)
	if stdout != "été" {
		t.Errorf("stdout = %q, want %q", stdout, "été")
	}

	if err := p.SetCodePage(12345); err == nil {
		t.Error("SetCodePage(12345) should fail")
	}
	if _, err := New(Options{CodePage: 12345}); err == nil {
		t.Error("New with unknown code page should fail")
	}
}

func TestProcess_PTY(t *testing.T) {
	p := newProcess(t, Options{UsePTY: true})
	if err := p.Start("/bin/sh", `-c "printf '\\033[31mred\\033[0m'"`); err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	stdout, _, exit := collect(t, p)
	if stdout != "red" {
		t.Errorf("stdout = %q, want %q", stdout, "red")
	}
	if exit.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", exit.ExitCode)
	}
}

func TestProcess_ExitWithBackgroundJob(t *testing.T) {
	p := newProcess(t, Options{ExitDrain: 100 * time.Millisecond})
	if err := p.Start("/bin/sh", `-c "sleep 8 & echo hi"`); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	start := time.Now()
	stdout, _, exit := collect(t, p)
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Exit arrived after %v, want it shortly after the shell exits", elapsed)
	}
	if stdout != "hi\n" {
		t.Errorf("stdout = %q, want %q", stdout, "hi\n")
	}
	if exit.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", exit.ExitCode)
	}
	if p.Running() {
		t.Error("Running() = true after exit")
	}
}

func TestProcess_StopKillsGroup(t *testing.T) {
	p := newProcess(t, Options{})
	if err := p.Start("/bin/sh", `-c "sleep 30 & wait"`); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	start := time.Now()
	_, _, exit := collect(t, p)
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Exit arrived after %v", elapsed)
	}
	if exit.ExitCode == 0 {
		t.Error("killed process reported exit code 0")
	}
}

func TestProcess_StripsEscapesWithoutPTY(t *testing.T) {
	p := newProcess(t, Options{})
	if err := p.Start("/bin/sh", `-c "printf '\\033[H\\033[2J\\033[3J'; printf '\\033[32mok\\033[0m'"`); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	stdout, _, _ := collect(t, p)
	if stdout != "ok" {
		t.Errorf("stdout = %q, want %q", stdout, "ok")
	}
}

func TestProcess_BlockedWriteDoesNotHoldLock(t *testing.T) {
	p := newProcess(t, Options{})
	if err := p.Start("/bin/sh", `-c "sleep 30"`); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Larger than any pipe buffer, and the child never reads.
	written := make(chan error, 1)
	go func() {
		written <- p.WriteInput(strings.Repeat("x", 1<<20))
	}()
	time.Sleep(100 * time.Millisecond)

	stopped := make(chan error, 1)
	go func() {
		_ = p.FileName()
		stopped <- p.Stop()
	}()
	select {
	case err := <-stopped:
		if err != nil {
			t.Fatalf("Stop() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() blocked behind WriteInput")
	}

	collect(t, p)
	select {
	case err := <-written:
		if err == nil {
			t.Error("WriteInput to a killed process should fail")
		}
	case <-time.After(2 * time.Second):
		t.Error("WriteInput still blocked after the process exited")
	}
}
