// Package host runs the child process behind a console and turns its
// output streams into an ordered event channel.
package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	clog "github.com/charmbracelet/log"
	"github.com/creack/pty"
	"github.com/google/shlex"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/abdullathedruid/conpane/internal/codepage"
	"github.com/abdullathedruid/conpane/internal/logging"
)

// Kind tags a process event.
type Kind int

const (
	// Output carries a chunk of stdout.
	Output Kind = iota
	// Error carries a chunk of stderr.
	Error
	// Input echoes a line written to stdin.
	Input
	// Exit reports that the process ended. It is the last event of a run.
	Exit
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Output:
		return "output"
	case Error:
		return "error"
	case Input:
		return "input"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// Event is something the child process did.
type Event struct {
	Kind     Kind
	Content  string
	ExitCode int // set for Exit; -1 when the process was killed by a signal
}

var (
	// ErrRunning is returned when starting while a process is running.
	ErrRunning = errors.New("process already running")
	// ErrNotRunning is returned when stopping or writing with no process.
	ErrNotRunning = errors.New("no process running")
)

const (
	readChunk = 4096
	// defaultExitDrain bounds how long output is still read after the child
	// exits while something else holds its streams open.
	defaultExitDrain = 500 * time.Millisecond
)

// Options configures a Process.
type Options struct {
	// UsePTY runs the child on a pseudo-terminal. Stdout and stderr are
	// then a single stream.
	UsePTY bool
	// CodePage selects the decoder for the child's output.
	CodePage int
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env is appended to the current environment.
	Env []string
	// Events is the event channel capacity.
	Events int
	// ExitDrain is how long to keep reading after the child exits before
	// its streams are closed. Zero means 500ms.
	ExitDrain time.Duration
	Logger    *clog.Logger
}

// Process hosts at most one running child at a time. Events from every
// run are delivered on the same channel, which is closed by Close.
type Process struct {
	opts   Options
	log    *clog.Logger
	events chan Event
	done   chan struct{}
	wg     sync.WaitGroup

	mu       sync.Mutex
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	pty      *os.File
	fileName string
	codePage int
	enc      encoding.Encoding
	closed   bool
}

// New creates a host. It fails when the code page is unknown.
func New(opts Options) (*Process, error) {
	if opts.CodePage == 0 {
		opts.CodePage = codepage.UTF8
	}
	enc, err := codepage.Lookup(opts.CodePage)
	if err != nil {
		return nil, err
	}
	if opts.Events <= 0 {
		opts.Events = 256
	}
	if opts.ExitDrain <= 0 {
		opts.ExitDrain = defaultExitDrain
	}
	return &Process{
		opts:     opts,
		log:      logging.Component(opts.Logger, "host"),
		events:   make(chan Event, opts.Events),
		done:     make(chan struct{}),
		codePage: opts.CodePage,
		enc:      enc,
	}, nil
}

// Events returns the channel of process events.
func (p *Process) Events() <-chan Event {
	return p.events
}

// FileName returns the file name of the last started process.
func (p *Process) FileName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fileName
}

// Running reports whether a child is running.
func (p *Process) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}

// CodePage returns the configured output code page.
func (p *Process) CodePage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.codePage
}

// SetCodePage changes the output decoder. It applies to processes started
// afterwards.
func (p *Process) SetCodePage(cp int) error {
	enc, err := codepage.Lookup(cp)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.codePage = cp
	p.enc = enc
	return nil
}

// Start spawns fileName with arguments split using shell quoting rules.
func (p *Process) Start(fileName, arguments string) error {
	args, err := shlex.Split(arguments)
	if err != nil {
		return fmt.Errorf("parse arguments: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errors.New("host closed")
	}
	if p.cmd != nil {
		return ErrRunning
	}

	cmd := exec.Command(fileName, args...)
	cmd.Dir = p.opts.Dir
	if len(p.opts.Env) > 0 {
		cmd.Env = append(os.Environ(), p.opts.Env...)
	}

	var readers []stream
	if p.opts.UsePTY {
		// pty.Start puts the child in its own session, so its pid is also
		// its process group.
		f, err := pty.Start(cmd)
		if err != nil {
			return fmt.Errorf("start pty: %w", err)
		}
		p.pty = f
		p.stdin = f
		readers = []stream{{r: f, kind: Output}}
	} else {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return fmt.Errorf("stdin pipe: %w", err)
		}
		// The read ends stay ours so that cmd.Wait does not close them
		// under the readers.
		stdout, stdoutW, err := os.Pipe()
		if err != nil {
			return fmt.Errorf("stdout pipe: %w", err)
		}
		stderr, stderrW, err := os.Pipe()
		if err != nil {
			closeAll(stdout, stdoutW)
			return fmt.Errorf("stderr pipe: %w", err)
		}
		cmd.Stdout = stdoutW
		cmd.Stderr = stderrW
		err = cmd.Start()
		closeAll(stdoutW, stderrW)
		if err != nil {
			closeAll(stdout, stderr)
			return fmt.Errorf("start process: %w", err)
		}
		p.stdin = stdin
		readers = []stream{{r: stdout, kind: Output}, {r: stderr, kind: Error}}
	}

	p.cmd = cmd
	p.fileName = fileName
	p.log.Info("process started", "file", fileName, "args", args, "pid", cmd.Process.Pid, "pty", p.opts.UsePTY)

	var readWg sync.WaitGroup
	for _, s := range readers {
		readWg.Add(1)
		go func(s stream) {
			defer readWg.Done()
			p.readStream(s, p.enc)
		}(s)
	}

	p.wg.Add(1)
	go p.wait(cmd, readers, &readWg)

	return nil
}

type stream struct {
	r    io.ReadCloser
	kind Kind
}

// closeStreams closes the read ends. Closing twice is harmless.
func closeStreams(streams []stream) {
	for _, s := range streams {
		s.r.Close()
	}
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		f.Close()
	}
}

// readStream decodes a stream and emits it in chunks. Chunks never end in
// the middle of a UTF-8 sequence.
func (p *Process) readStream(s stream, enc encoding.Encoding) {
	reader := transform.NewReader(s.r, enc.NewDecoder())
	buf := make([]byte, readChunk)
	var carry []byte

	for {
		n, err := reader.Read(buf)
		if n > 0 {
			data := append(carry, buf[:n]...)
			complete, rest := splitIncomplete(data)
			carry = append([]byte(nil), rest...)
			if len(complete) > 0 {
				p.emitChunk(s.kind, string(complete))
			}
		}
		if err != nil {
			if len(carry) > 0 {
				p.emitChunk(s.kind, string(carry))
			}
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) && !errors.Is(err, syscall.EIO) {
				p.log.Warn("read failed", "stream", s.kind, "err", err)
			}
			return
		}
	}
}

// emitChunk drops terminal escape sequences, which the console does not
// render, whether or not the child runs on a pty.
func (p *Process) emitChunk(kind Kind, content string) {
	content = ansi.Strip(content)
	if content == "" {
		return
	}
	p.emit(Event{Kind: kind, Content: content})
}

// splitIncomplete splits off a trailing partial UTF-8 sequence.
func splitIncomplete(b []byte) (complete, rest []byte) {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}
		if !utf8.FullRune(b[i:]) {
			return b[:i], b[i:]
		}
		break
	}
	return b, nil
}

// wait reaps the child, then gives the readers ExitDrain to finish before
// closing the streams. A background job that inherited the streams can
// otherwise hold them open long after the child is gone. The Exit event
// is sent only once every reader has returned, so it follows all output.
func (p *Process) wait(cmd *exec.Cmd, streams []stream, readers *sync.WaitGroup) {
	defer p.wg.Done()

	err := cmd.Wait()

	drained := make(chan struct{})
	go func() {
		readers.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(p.opts.ExitDrain):
		p.log.Debug("streams still open after exit, closing", "file", cmd.Path)
		closeStreams(streams)
		<-drained
	}
	closeStreams(streams)

	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}

	p.mu.Lock()
	if p.pty != nil {
		p.pty.Close()
		p.pty = nil
	}
	p.cmd = nil
	p.stdin = nil
	p.mu.Unlock()

	p.log.Info("process exited", "file", cmd.Path, "code", code)
	p.emit(Event{Kind: Exit, ExitCode: code})
}

func (p *Process) emit(ev Event) {
	select {
	case p.events <- ev:
	case <-p.done:
	}
}

// WriteInput writes a line to the child's stdin, adding the newline. The
// write happens outside the lock; a child that never reads blocks only the
// caller.
func (p *Process) WriteInput(text string) error {
	p.mu.Lock()
	stdin, enc := p.stdin, p.enc
	p.mu.Unlock()

	if stdin == nil {
		return ErrNotRunning
	}

	data, err := enc.NewEncoder().Bytes([]byte(text + "\n"))
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	if _, err := stdin.Write(data); err != nil {
		return fmt.Errorf("write stdin: %w", err)
	}

	// Input events are not blocking: a full channel drops them.
	select {
	case p.events <- Event{Kind: Input, Content: text}:
	default:
	}
	return nil
}

// Stop kills the running child and every process in its group. The Exit
// event reports the outcome.
func (p *Process) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd == nil || p.cmd.Process == nil {
		return ErrNotRunning
	}
	pid := p.cmd.Process.Pid
	p.log.Info("stopping process", "pid", pid)
	if err := syscall.Kill(-pid, syscall.SIGKILL); err == nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill process: %w", err)
	}
	return nil
}

// Close stops any running child, waits for its goroutines and closes the
// event channel.
func (p *Process) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	if err := p.Stop(); err != nil && !errors.Is(err, ErrNotRunning) {
		p.log.Warn("stop on close failed", "err", err)
	}
	close(p.done)
	p.wg.Wait()
	close(p.events)
	return nil
}
