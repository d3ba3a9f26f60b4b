package metrics

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// Terminate outcome sentinels, distinguished so the presenter can tell the
// operator something more useful than "failed".
var (
	// ErrNoSuchProcess means the target already exited.
	ErrNoSuchProcess = errors.New("process no longer exists")
	// ErrAccessDenied means the caller lacks the privilege to signal the
	// target.
	ErrAccessDenied = errors.New("access denied")
)

// Killer terminates processes by pid. The UI depends on this interface so the
// confirm/terminate flow is testable without signaling real processes.
type Killer interface {
	Terminate(ctx context.Context, pid int32) error
}

type systemKiller struct{}

// NewSystemKiller returns a Killer that sends a termination signal through
// the OS. Fire-and-forget: it reports the immediate outcome and does not wait
// for the process to exit.
func NewSystemKiller() Killer {
	return systemKiller{}
}

func (systemKiller) Terminate(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return fmt.Errorf("pid %d: %w", pid, ErrNoSuchProcess)
		}
		return fmt.Errorf("pid %d: %w", pid, err)
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		return fmt.Errorf("pid %d: %w", pid, classifyKillError(err))
	}
	return nil
}

// classifyKillError maps OS-level signal failures onto the terminate
// sentinels, falling back to the raw error for anything unrecognized.
func classifyKillError(err error) error {
	switch {
	case errors.Is(err, os.ErrProcessDone), isNoSuchProcess(err):
		return ErrNoSuchProcess
	case errors.Is(err, os.ErrPermission), isPermissionDenied(err):
		return ErrAccessDenied
	default:
		return err
	}
}
