// Package exiftool drives a persistent exiftool process in -stay_open
// mode. Spawning exiftool per file costs around 100ms of interpreter
// startup; a single long-lived process answers each request over stdin
// and stdout instead. Requests are framed by the -execute line and
// replies by the {ready} sentinel.
package exiftool

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/stedavkle/fish-renamer/internal/errors"
	"github.com/stedavkle/fish-renamer/internal/logging"
)

// readySentinel is the line exiftool prints when a command completes.
const readySentinel = "{ready}"

// shutdownWait bounds how long Shutdown waits for a graceful exit
// before killing the process.
const shutdownWait = 5 * time.Second

// DefaultBatchSize caps files per request so argument lists stay well
// under platform command length limits.
const DefaultBatchSize = 40

// ErrUnavailable means no exiftool binary was found.
var ErrUnavailable = errors.NewStd("exiftool is not available")

// Config controls session construction.
type Config struct {
	// Path is an explicit exiftool binary path. Empty means discover.
	Path string
	// BatchSize overrides DefaultBatchSize when positive.
	BatchSize int
}

// Session is a handle on the persistent exiftool process. The process is
// started lazily on first use and restarted transparently if it dies.
// All methods are safe for concurrent use; requests are serialized.
type Session struct {
	mu        sync.Mutex
	path      string
	batchSize int

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader

	dateCache *cache.Cache
	logger    *slog.Logger
}

// New builds a session, resolving the binary location immediately but
// deferring process start until the first request.
func New(cfg Config) *Session {
	s := &Session{
		batchSize: cfg.BatchSize,
		dateCache: cache.New(cache.NoExpiration, cache.NoExpiration),
		logger:    logging.ForService("exiftool"),
	}
	if s.batchSize <= 0 {
		s.batchSize = DefaultBatchSize
	}
	s.path = findBinary(cfg.Path)
	if s.path == "" {
		s.logger.Warn("exiftool not found")
	} else {
		s.logger.Info("found exiftool", "path", s.path)
	}
	return s
}

// findBinary resolves the exiftool binary: an explicit path wins, then
// the system PATH, then platform-typical install locations that may not
// be on PATH when the app is launched from a desktop shell.
func findBinary(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	name := "exiftool"
	if runtime.GOOS == "windows" {
		name = "exiftool.exe"
	}
	if path, err := exec.LookPath(name); err == nil {
		return path
	}

	var candidates []string
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "fish-renamer", "exiftool", name))
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		candidates = append(candidates,
			"/usr/local/bin/exiftool",
			"/opt/homebrew/bin/exiftool",
			"/usr/bin/exiftool",
			filepath.Join(home, "bin", "exiftool"),
		)
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// IsAvailable reports whether an exiftool binary was found.
func (s *Session) IsAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path != ""
}

// RefreshAvailability shuts down any running process and re-runs binary
// discovery, reporting whether exiftool is now available.
func (s *Session) RefreshAvailability(explicit string) bool {
	s.Shutdown()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = findBinary(explicit)
	return s.path != ""
}

// Version asks the running process for its version string.
func (s *Session) Version() (string, error) {
	out, err := s.execute("-ver")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// startLocked launches the stay-open process. Caller holds s.mu.
func (s *Session) startLocked() error {
	if s.cmd != nil {
		return nil
	}
	if s.path == "" {
		return errors.New(ErrUnavailable).
			Component("exiftool").
			Category(errors.CategoryExifTool).
			Build()
	}

	cmd := exec.Command(s.path, "-stay_open", "True", "-@", "-")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return errors.New(err).
			Component("exiftool").
			Category(errors.CategoryExifTool).
			Build()
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.New(err).
			Component("exiftool").
			Category(errors.CategoryExifTool).
			Build()
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return errors.New(err).
			Component("exiftool").
			Category(errors.CategoryExifTool).
			Context("path", s.path).
			Build()
	}

	s.cmd = cmd
	s.stdin = stdin
	s.stdout = bufio.NewReader(stdout)
	s.logger.Info("started persistent exiftool process", "pid", cmd.Process.Pid)
	return nil
}

// dropLocked forgets the current process so the next request restarts
// it. Caller holds s.mu.
func (s *Session) dropLocked() {
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
		_ = s.cmd.Wait()
	}
	s.cmd = nil
	s.stdin = nil
	s.stdout = nil
}

// execute sends one command to the process and reads the reply. Args go
// one per line, terminated by -execute; the reply is every line up to
// the ready sentinel. An EOF mid-reply means the process died: the
// handle is dropped so the next call restarts it.
func (s *Session) execute(args ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.startLocked(); err != nil {
		return "", err
	}

	var req strings.Builder
	for _, arg := range args {
		req.WriteString(arg)
		req.WriteByte('\n')
	}
	req.WriteString("-execute\n")

	if _, err := io.WriteString(s.stdin, req.String()); err != nil {
		s.dropLocked()
		return "", errors.New(err).
			Component("exiftool").
			Category(errors.CategoryProtocol).
			Context("stage", "write").
			Build()
	}

	var lines []string
	for {
		line, err := s.stdout.ReadString('\n')
		if err != nil {
			s.logger.Warn("exiftool process died unexpectedly")
			s.dropLocked()
			return "", errors.Newf("exiftool process died mid-reply").
				Component("exiftool").
				Category(errors.CategoryProtocol).
				Context("stage", "read").
				Build()
		}
		line = strings.TrimRight(line, "\r\n")
		if line == readySentinel {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// Shutdown asks the process to exit via the stay_open protocol, waits a
// bounded time, then kills it. Safe to call when nothing is running.
func (s *Session) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd == nil {
		return
	}

	if _, err := io.WriteString(s.stdin, "-stay_open\nFalse\n"); err != nil {
		s.dropLocked()
		return
	}

	done := make(chan error, 1)
	go func(cmd *exec.Cmd) { done <- cmd.Wait() }(s.cmd)
	select {
	case <-done:
		s.logger.Info("exiftool process shut down gracefully")
	case <-time.After(shutdownWait):
		_ = s.cmd.Process.Kill()
		<-done
		s.logger.Warn("exiftool process killed after shutdown timeout")
	}
	s.cmd = nil
	s.stdin = nil
	s.stdout = nil
}
