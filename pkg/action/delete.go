package action

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/selection"
	"github.com/hwameistor/poolconsole/pkg/taskwrapper"
)

var (
	// ErrNoSelection is returned when a delete is requested without exactly one selected row
	ErrNoSelection = errors.New("exactly one row must be selected")
	// ErrCancelled is returned by Run when the user declines the confirmation
	ErrCancelled = errors.New("cancelled by user")
	// ErrInvalidState is returned when an operation is not allowed in the current state
	ErrInvalidState = errors.New("invalid state for this operation")
)

// State of a delete flow
type State int

const (
	StateIdle State = iota
	StateConfirmPending
	StateExecuting
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateConfirmPending:
		return "ConfirmPending"
	case StateExecuting:
		return "Executing"
	case StateFailed:
		return "Failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Confirmation is what the dialog shows to the user
type Confirmation struct {
	ItemDescription string
	Name            string
	// Err is the error of the previous attempt, set when retrying
	Err error
}

// Dialog asks the user to confirm a destructive action
type Dialog interface {
	Confirm(ctx context.Context, confirmation Confirmation) (bool, error)
}

// DeleteFunc deletes the named resource, see taskwrapper.CallFunc for accepted
type DeleteFunc func(ctx context.Context, name string) (accepted bool, err error)

// DeleteOptions configures a DeleteInvoker for one resource kind
type DeleteOptions struct {
	ItemDescription string
	TaskName        string
	MetadataKey     string
	Delete          DeleteFunc
	// Refresh is called after a successful delete, usually Reconciler.Refresh
	Refresh func(ctx context.Context)
}

// DeleteInvoker drives Idle -> ConfirmPending -> Executing -> Idle | Failed
type DeleteInvoker[T any] struct {
	opts      DeleteOptions
	selection *selection.Tracker[T]
	wrapper   taskwrapper.TaskWrapper
	logger    *log.Entry

	lock    sync.Mutex
	state   State
	target  string
	lastErr error
}

func NewDeleteInvoker[T any](opts DeleteOptions, tracker *selection.Tracker[T], wrapper taskwrapper.TaskWrapper) *DeleteInvoker[T] {
	return &DeleteInvoker[T]{
		opts:      opts,
		selection: tracker,
		wrapper:   wrapper,
		logger:    log.WithFields(log.Fields{"Module": "DeleteInvoker", "task": opts.TaskName}),
	}
}

func (d *DeleteInvoker[T]) State() State {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.state
}

// Err is the error of the last failed attempt
func (d *DeleteInvoker[T]) Err() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.lastErr
}

// Target is the name the pending or failed delete applies to
func (d *DeleteInvoker[T]) Target() string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.target
}

// RequestDelete captures the selected row and waits for confirmation
func (d *DeleteInvoker[T]) RequestDelete() (Confirmation, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.state == StateExecuting {
		return Confirmation{}, ErrInvalidState
	}
	if !d.selection.HasSingleSelection() {
		return Confirmation{}, ErrNoSelection
	}
	row, err := d.selection.First()
	if err != nil {
		return Confirmation{}, ErrNoSelection
	}

	d.state = StateConfirmPending
	d.target = d.selection.Identity(row)
	d.lastErr = nil
	d.logger.WithField("target", d.target).Debug("Waiting for confirmation")
	return Confirmation{ItemDescription: d.opts.ItemDescription, Name: d.target}, nil
}

// Confirm performs the delete through the task wrapper. It is also the retry after a
// failure.
func (d *DeleteInvoker[T]) Confirm(ctx context.Context) error {
	d.lock.Lock()
	if d.state != StateConfirmPending && d.state != StateFailed {
		d.lock.Unlock()
		return ErrInvalidState
	}
	d.state = StateExecuting
	name := d.target
	d.lock.Unlock()

	envelope := taskwrapper.Envelope{
		Task: api.FinishedTask{Task: api.NewTask(d.opts.TaskName, map[string]string{d.opts.MetadataKey: name})},
		Call: func(ctx context.Context) (bool, error) {
			return d.opts.Delete(ctx, name)
		},
	}
	err := d.wrapper.Wrap(ctx, envelope)

	d.lock.Lock()
	if err != nil {
		d.state = StateFailed
		d.lastErr = err
		d.lock.Unlock()
		d.logger.WithError(err).WithField("target", name).Error("Failed to delete")
		return err
	}
	d.state = StateIdle
	d.target = ""
	d.lastErr = nil
	d.lock.Unlock()

	d.logger.WithField("target", name).Info("Delete submitted")
	if d.opts.Refresh != nil {
		d.opts.Refresh(ctx)
	}
	return nil
}

// Cancel abandons a pending or failed delete without calling anything
func (d *DeleteInvoker[T]) Cancel() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.state != StateConfirmPending && d.state != StateFailed {
		return ErrInvalidState
	}
	d.state = StateIdle
	d.target = ""
	d.lastErr = nil
	return nil
}

// Run requests the delete and keeps asking the dialog until the delete succeeds or
// the user cancels. Declining a retry returns the error of the failed attempt.
func (d *DeleteInvoker[T]) Run(ctx context.Context, dialog Dialog) error {
	confirmation, err := d.RequestDelete()
	if err != nil {
		return err
	}

	for {
		ok, err := dialog.Confirm(ctx, confirmation)
		if err != nil || !ok {
			_ = d.Cancel()
			if err != nil {
				return err
			}
			if confirmation.Err != nil {
				return confirmation.Err
			}
			return ErrCancelled
		}
		if err = d.Confirm(ctx); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			_ = d.Cancel()
			return err
		}
		confirmation.Err = err
	}
}
