// Package audio captures spoken answers for pronunciation practice.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/abhisek/lingua/internal/api"
)

var (
	// ErrPermissionDenied is returned when the microphone cannot be used.
	ErrPermissionDenied = errors.New("microphone permission denied")

	// ErrNotRecording is returned by Stop without a matching Start.
	ErrNotRecording = errors.New("not recording")

	// ErrAlreadyRecording is returned by a second Start.
	ErrAlreadyRecording = errors.New("already recording")
)

// Recorder captures one clip at a time.
type Recorder interface {
	Start(ctx context.Context) error
	Stop() (api.Audio, error)
}

// CommandRecorder records by running an external program that writes audio
// to a file until it is interrupted, such as arecord or sox's rec.
type CommandRecorder struct {
	argv []string
	dir  string

	mu   sync.Mutex
	cmd  *exec.Cmd
	path string
}

// NewCommandRecorder creates a recorder running argv with the output path
// appended. Clips are written to dir, or the system temp dir when empty.
func NewCommandRecorder(argv []string, dir string) *CommandRecorder {
	return &CommandRecorder{argv: argv, dir: dir}
}

// Start launches the recording program.
func (r *CommandRecorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd != nil {
		return ErrAlreadyRecording
	}
	if len(r.argv) == 0 {
		return errors.New("no record command configured")
	}

	f, err := os.CreateTemp(r.dir, "lingua-*.wav")
	if err != nil {
		return fmt.Errorf("create clip file: %w", err)
	}
	path := f.Name()
	_ = f.Close()

	args := append(append([]string(nil), r.argv[1:]...), path)
	cmd := exec.CommandContext(ctx, r.argv[0], args...)
	if err := cmd.Start(); err != nil {
		_ = os.Remove(path)
		if errors.Is(err, os.ErrPermission) {
			return ErrPermissionDenied
		}
		return fmt.Errorf("start %s: %w", r.argv[0], err)
	}
	r.cmd = cmd
	r.path = path
	return nil
}

// Stop interrupts the program and returns what it captured.
func (r *CommandRecorder) Stop() (api.Audio, error) {
	r.mu.Lock()
	cmd, path := r.cmd, r.path
	r.cmd, r.path = nil, ""
	r.mu.Unlock()

	if cmd == nil {
		return api.Audio{}, ErrNotRecording
	}
	defer func() { _ = os.Remove(path) }()

	_ = cmd.Process.Signal(syscall.SIGINT)
	// Recorders exit non-zero when interrupted; the file is what matters.
	_ = cmd.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		return api.Audio{}, fmt.Errorf("read clip: %w", err)
	}
	if len(data) == 0 {
		return api.Audio{}, fmt.Errorf("%s captured no audio", r.argv[0])
	}
	return api.Audio{Filename: "recording.wav", ContentType: "audio/wav", Data: data}, nil
}

// FileRecorder "records" by reading an existing audio file. It backs
// non-interactive use and tests.
type FileRecorder struct {
	Path string

	mu      sync.Mutex
	started bool
}

// Start marks the recording as begun.
func (r *FileRecorder) Start(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return ErrAlreadyRecording
	}
	r.started = true
	return nil
}

// Stop returns the file's contents.
func (r *FileRecorder) Stop() (api.Audio, error) {
	r.mu.Lock()
	started := r.started
	r.started = false
	r.mu.Unlock()
	if !started {
		return api.Audio{}, ErrNotRecording
	}

	data, err := os.ReadFile(r.Path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return api.Audio{}, ErrPermissionDenied
		}
		return api.Audio{}, fmt.Errorf("read %s: %w", r.Path, err)
	}
	return api.Audio{
		Filename:    filepath.Base(r.Path),
		ContentType: contentType(r.Path),
		Data:        data,
	}, nil
}

func contentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".webm":
		return "audio/webm"
	case ".ogg", ".oga":
		return "audio/ogg"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	}
	return "application/octet-stream"
}
