package sink

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

var (
	execLookPath = exec.LookPath
	execCommand  = exec.Command
)

// ErrNoCommand indicates an empty command template.
var ErrNoCommand = errors.New("no rescale command given")

// ExecParams fill the placeholders of an Exec command template.
type ExecParams struct {
	Rate     int // rate of the piped PCM
	OutRate  int // rate the command should produce
	Channels int
	Output   string
}

// Expand substitutes the placeholders in every argument of template.
func (p ExecParams) Expand(template []string) []string {
	r := strings.NewReplacer(
		placeholderRate, strconv.Itoa(p.Rate),
		placeholderOutRate, strconv.Itoa(p.OutRate),
		placeholderChannels, strconv.Itoa(p.Channels),
		placeholderOutput, p.Output,
	)
	args := make([]string, len(template))
	for i, a := range template {
		args[i] = r.Replace(a)
	}
	return args
}

// Exec pipes raw little-endian PCM into the stdin of an external command,
// typically a resampler writing the final file. A full pipe blocks Write.
type Exec struct {
	name   string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	done   bool
}

// StartExec starts the command described by template.
func StartExec(template []string, p ExecParams) (*Exec, error) {
	if len(template) == 0 {
		return nil, ErrNoCommand
	}
	args := p.Expand(template)

	path, err := execLookPath(args[0])
	if err != nil {
		return nil, fmt.Errorf("rescale command %q not found: %w", args[0], err)
	}

	s := &Exec{name: args[0], cmd: execCommand(path, args[1:]...)}
	s.cmd.Stderr = &s.stderr

	s.stdin, err = s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("rescale command stdin: %w", err)
	}
	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start rescale command %q: %w", s.name, err)
	}
	return s, nil
}

func (s *Exec) Write(p []byte) (int, error) {
	n, err := s.stdin.Write(p)
	if err != nil {
		return n, fmt.Errorf("write to rescale command %q: %w", s.name, err)
	}
	return n, nil
}

// Finish closes the pipe and waits for the command to exit. The frame count
// is not needed; the command writes its own header.
func (s *Exec) Finish(uint32) error {
	if s.done {
		return nil
	}
	s.done = true

	closeErr := s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("rescale command %q: %w%s", s.name, err, s.stderrSuffix())
	}
	if closeErr != nil {
		return fmt.Errorf("close rescale command stdin: %w", closeErr)
	}
	return nil
}

// Close stops the command if Finish was not called.
func (s *Exec) Close() error {
	if s.done {
		return nil
	}
	s.done = true

	_ = s.stdin.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()
	return nil
}

// stderrSuffix must only be called after Wait returned.
func (s *Exec) stderrSuffix() string {
	msg := bytes.TrimSpace(s.stderr.Bytes())
	if len(msg) == 0 {
		return ""
	}
	return fmt.Sprintf(" (stderr: %s)", msg)
}
