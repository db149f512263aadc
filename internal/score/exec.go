package score

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultCommand is the scoring executable looked up on PATH.
const DefaultCommand = "xc-score"

// ExecEngine runs an external scoring program. The request is written to its
// stdin as JSON and a Response is decoded from its stdout.
type ExecEngine struct {
	Command string
	Args    []string
}

// NewExecEngine splits a command line into executable and arguments.
func NewExecEngine(commandLine string) (*ExecEngine, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("scorer command is empty")
	}
	return &ExecEngine{Command: fields[0], Args: fields[1:]}, nil
}

// Evaluate implements Engine.
func (e *ExecEngine) Evaluate(ctx context.Context, req Request) (Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("encode scoring request: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Command, e.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Response{}, fmt.Errorf("run %s: %w: %s", e.Command, err, msg)
		}
		return Response{}, fmt.Errorf("run %s: %w", e.Command, err)
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return Response{}, fmt.Errorf("decode %s output: %w", e.Command, err)
	}
	return resp, nil
}
