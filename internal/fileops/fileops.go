package fileops

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"mediadesk/internal/logging"
	"mediadesk/internal/sandbox"
	"mediadesk/internal/services"
)

// Action names a file operation.
type Action string

const (
	ActionCopy      Action = "copy"
	ActionMove      Action = "move"
	ActionRename    Action = "rename"
	ActionDelete    Action = "delete"
	ActionCreateDir Action = "createDir"
)

// ParseAction maps a wire action name onto an Action.
func ParseAction(name string) (Action, error) {
	switch Action(strings.TrimSpace(name)) {
	case ActionCopy:
		return ActionCopy, nil
	case ActionMove:
		return ActionMove, nil
	case ActionRename:
		return ActionRename, nil
	case ActionDelete:
		return ActionDelete, nil
	case ActionCreateDir:
		return ActionCreateDir, nil
	default:
		return "", services.Wrap(services.ErrInvalidInput, "fileops", "parse", fmt.Sprintf("unknown action %q", name), nil)
	}
}

// Operation is one requested file operation. Copy and move use Source and
// Target, delete uses Source, createDir uses Target.
type Operation struct {
	Action Action
	Source string
	Target string
}

// Result echoes the resolved paths of a completed operation.
type Result struct {
	Action Action `json:"action"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

// Executor applies operations inside the sandbox.
type Executor struct {
	box    *sandbox.Sandbox
	logger *slog.Logger
}

// New constructs an executor.
func New(box *sandbox.Sandbox, logger *slog.Logger) *Executor {
	return &Executor{box: box, logger: logging.NewComponentLogger(logger, "fileops")}
}

// Apply validates and performs op.
func (e *Executor) Apply(op Operation) (Result, error) {
	action, err := ParseAction(string(op.Action))
	if err != nil {
		return Result{}, err
	}

	var result Result
	switch action {
	case ActionCreateDir:
		result, err = e.createDir(op)
	case ActionDelete:
		result, err = e.delete(op)
	case ActionCopy:
		result, err = e.copy(op)
	case ActionMove, ActionRename:
		result, err = e.move(action, op)
	}
	if err != nil {
		e.logger.Warn("file operation failed",
			logging.String(logging.FieldOperation, string(action)),
			logging.String("kind", services.Kind(err)),
			logging.Error(err),
		)
		return Result{}, err
	}
	e.logger.Info("file operation completed",
		logging.String(logging.FieldOperation, string(action)),
		logging.String("source", result.Source),
		logging.String("target", result.Target),
	)
	return result, nil
}

func (e *Executor) createDir(op Operation) (Result, error) {
	target, err := e.resolve(ActionCreateDir, "target", op.Target)
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return Result{}, ioError(ActionCreateDir, err)
	}
	return Result{Action: ActionCreateDir, Target: target}, nil
}

func (e *Executor) delete(op Operation) (Result, error) {
	source, err := e.resolve(ActionDelete, "source", op.Source)
	if err != nil {
		return Result{}, err
	}
	if err := e.rejectRoot(ActionDelete, source); err != nil {
		return Result{}, err
	}
	if err := os.Remove(source); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Result{}, ioError(ActionDelete, err)
	}
	return Result{Action: ActionDelete, Source: source}, nil
}

func (e *Executor) copy(op Operation) (Result, error) {
	source, target, err := e.resolvePair(ActionCopy, op)
	if err != nil {
		return Result{}, err
	}
	info, err := os.Stat(source)
	if err != nil {
		return Result{}, ioError(ActionCopy, err)
	}
	if info.IsDir() {
		return Result{}, services.Wrap(services.ErrIO, "fileops", string(ActionCopy), fmt.Sprintf("%s is a directory", source), nil)
	}
	if targetInfo, err := os.Stat(target); err == nil && os.SameFile(info, targetInfo) {
		return Result{}, services.Wrap(services.ErrInvalidInput, "fileops", string(ActionCopy), "source and target are the same file", nil)
	}
	if err := CopyFileMode(source, target, info.Mode().Perm()); err != nil {
		return Result{}, ioError(ActionCopy, err)
	}
	return Result{Action: ActionCopy, Source: source, Target: target}, nil
}

func (e *Executor) move(action Action, op Operation) (Result, error) {
	source, target, err := e.resolvePair(action, op)
	if err != nil {
		return Result{}, err
	}
	if err := e.rejectRoot(action, source); err != nil {
		return Result{}, err
	}
	if err := Rename(source, target); err != nil {
		return Result{}, ioError(action, err)
	}
	return Result{Action: action, Source: source, Target: target}, nil
}

func (e *Executor) resolvePair(action Action, op Operation) (string, string, error) {
	if err := requirePath(action, "source", op.Source); err != nil {
		return "", "", err
	}
	if err := requirePath(action, "target", op.Target); err != nil {
		return "", "", err
	}
	paths, err := e.box.ResolveAll(op.Source, op.Target)
	if err != nil {
		return "", "", err
	}
	return paths[0], paths[1], nil
}

// resolve rejects blank paths before the sandbox would default them to the
// first root.
func (e *Executor) resolve(action Action, field, raw string) (string, error) {
	if err := requirePath(action, field, raw); err != nil {
		return "", err
	}
	return e.box.Resolve(raw)
}

func requirePath(action Action, field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return services.Wrap(services.ErrInvalidInput, "fileops", string(action), field+" is required", nil)
	}
	return nil
}

func (e *Executor) rejectRoot(action Action, path string) error {
	for _, root := range e.box.Roots() {
		if path == root {
			return services.Wrap(services.ErrInvalidInput, "fileops", string(action), fmt.Sprintf("refusing to %s media root %s", action, path), nil)
		}
	}
	return nil
}

func ioError(action Action, err error) error {
	return services.Wrap(services.ErrIO, "fileops", string(action), "", err)
}
