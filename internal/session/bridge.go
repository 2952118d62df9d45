// Package session delegates login to the host wallet container and keeps
// the resulting session in local storage.
//
// Which bridge is used is decided once, at startup, by Resolve.
package session

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"masroufi/internal/models"
)

// Scope requested from the host container.
const Scope = "auth_user"

var ErrAuthorizationFailed = errors.New("authorization failed")

// Bridge obtains a session from whatever is hosting the app.
type Bridge interface {
	Name() string
	Authorize(ctx context.Context) (models.Session, error)
}

// CommandRunner executes a host command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// HostBridge asks the host container for an auth code by running its
// auth command. The command prints the code on stdout.
type HostBridge struct {
	Command string
	run     CommandRunner
}

// NewHostBridge creates a bridge for command. A nil runner executes the
// command with os/exec.
func NewHostBridge(command string, runner CommandRunner) *HostBridge {
	if runner == nil {
		runner = execRunner
	}
	return &HostBridge{Command: command, run: runner}
}

func (b *HostBridge) Name() string { return "host" }

func (b *HostBridge) Authorize(ctx context.Context) (models.Session, error) {
	out, err := b.run(ctx, b.Command, "--scopes", Scope)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return models.Session{}, fmt.Errorf("%w: %s", ErrAuthorizationFailed, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return models.Session{}, fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}

	code := strings.TrimSpace(string(out))
	if code == "" {
		return models.Session{}, fmt.Errorf("%w: host returned no auth code", ErrAuthorizationFailed)
	}

	prefix := []rune(code)
	if len(prefix) > 5 {
		prefix = prefix[:5]
	}
	return models.Session{
		Name:  "SuperQi User",
		ID:    "qi_user_" + string(prefix),
		Token: code,
	}, nil
}

// MockBridge stands in when no host container is present.
type MockBridge struct{}

func (MockBridge) Name() string { return "mock" }

func (MockBridge) Authorize(context.Context) (models.Session, error) {
	return models.Session{
		Name:  "Demo User",
		ID:    "12345",
		Token: "mock_token_abc123",
	}, nil
}

// Resolve picks the host bridge when command is set and can be found,
// and the mock bridge otherwise.
func Resolve(command string) Bridge {
	command = strings.TrimSpace(command)
	if command == "" {
		return MockBridge{}
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return MockBridge{}
	}
	return NewHostBridge(path, nil)
}
