// Package planner decides what happens to a file once its verdict is
// known. Keeping the decision separate from execution means the dispatch
// rules are a pure function of (mode, verdict) and testable without a
// filesystem.
package planner

import (
	"github.com/backmassage/mediarestore/internal/config"
	"github.com/backmassage/mediarestore/internal/validate"
)

// Action is the filesystem operation chosen for one file.
type Action string

const (
	ActionRename      Action = "rename"       // Rename in place to the restored name.
	ActionMoveValid   Action = "move-valid"   // Move to valid/ under the restored name.
	ActionMoveInvalid Action = "move-invalid" // Move to invalid/ keeping the exported name.
	ActionDelete      Action = "delete"       // Remove the file.
	ActionKeep        Action = "keep"         // Leave untouched (cleanup mode, valid file).
)

// Plan maps a verdict to the action for the active run mode. TimedOut
// dispatches exactly like Invalid; the distinction only survives in logs.
// Interrupted is not a judgment on the file, so it is always kept.
func Plan(mode config.RunMode, status validate.Status) Action {
	if status == validate.StatusInterrupted {
		return ActionKeep
	}

	valid := status == validate.StatusValid

	switch mode {
	case config.ModeMove:
		if valid {
			return ActionMoveValid
		}
		return ActionMoveInvalid
	case config.ModeCleanup:
		if valid {
			return ActionKeep
		}
		return ActionDelete
	default: // ModeRename
		if valid {
			return ActionRename
		}
		return ActionDelete
	}
}
