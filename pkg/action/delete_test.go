package action

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/selection"
	"github.com/hwameistor/poolconsole/pkg/tasklist"
	"github.com/hwameistor/poolconsole/pkg/taskwrapper"
)

func poolName(p api.Pool) string { return p.PoolName }

func selectPool(names ...string) *selection.Tracker[api.Pool] {
	tracker := selection.NewTracker(poolName)
	rows := make([]tasklist.DisplayRow[api.Pool], 0, len(names))
	for _, name := range names {
		rows = append(rows, tasklist.DisplayRow[api.Pool]{Item: api.Pool{PoolName: name, Size: 3}})
	}
	tracker.Update(rows)
	return tracker
}

// runEnvelope executes the wrapped call like the real wrapper does
func runEnvelope(ctx context.Context, envelope taskwrapper.Envelope) error {
	if _, err := envelope.Call(ctx); err != nil {
		return &taskwrapper.MutationError{Task: envelope.Task.Task, Err: err}
	}
	return nil
}

type scriptedDialog struct {
	answers []bool
	seen    []Confirmation
}

func (s *scriptedDialog) Confirm(_ context.Context, c Confirmation) (bool, error) {
	s.seen = append(s.seen, c)
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func TestDeleteInvoker_RequiresSingleSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	wrapper := taskwrapper.NewMockTaskWrapper(ctrl)

	for _, tracker := range []*selection.Tracker[api.Pool]{selectPool(), selectPool("a", "b")} {
		d := NewDeleteInvoker(DeleteOptions{TaskName: api.TaskPoolDelete}, tracker, wrapper)
		_, err := d.RequestDelete()
		assert.ErrorIs(t, err, ErrNoSelection)
		assert.Equal(t, StateIdle, d.State())
	}
}

func TestDeleteInvoker_ConfirmSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var deleted string
	refreshed := 0
	wrapper := taskwrapper.NewMockTaskWrapper(ctrl)
	wrapper.EXPECT().Wrap(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, envelope taskwrapper.Envelope) error {
			assert.Equal(t, api.TaskPoolDelete, envelope.Task.Name)
			assert.Equal(t, map[string]string{api.TaskMetadataPoolName: "images"}, envelope.Task.Metadata)
			return runEnvelope(ctx, envelope)
		})

	d := NewDeleteInvoker(DeleteOptions{
		ItemDescription: "Pool",
		TaskName:        api.TaskPoolDelete,
		MetadataKey:     api.TaskMetadataPoolName,
		Delete: func(_ context.Context, name string) (bool, error) {
			deleted = name
			return true, nil
		},
		Refresh: func(context.Context) { refreshed++ },
	}, selectPool("images"), wrapper)

	confirmation, err := d.RequestDelete()
	require.NoError(t, err)
	assert.Equal(t, Confirmation{ItemDescription: "Pool", Name: "images"}, confirmation)
	assert.Equal(t, StateConfirmPending, d.State())

	require.NoError(t, d.Confirm(context.Background()))
	assert.Equal(t, StateIdle, d.State())
	assert.Equal(t, "images", deleted)
	assert.Equal(t, 1, refreshed)
	assert.Empty(t, d.Target())
}

func TestDeleteInvoker_FailureThenRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	callErr := errors.New("pool has volumes")
	attempts := 0
	wrapper := taskwrapper.NewMockTaskWrapper(ctrl)
	wrapper.EXPECT().Wrap(gomock.Any(), gomock.Any()).DoAndReturn(runEnvelope).Times(2)

	d := NewDeleteInvoker(DeleteOptions{
		TaskName:    api.TaskPoolDelete,
		MetadataKey: api.TaskMetadataPoolName,
		Delete: func(context.Context, string) (bool, error) {
			attempts++
			if attempts == 1 {
				return false, callErr
			}
			return false, nil
		},
	}, selectPool("images"), wrapper)

	_, err := d.RequestDelete()
	require.NoError(t, err)

	err = d.Confirm(context.Background())
	assert.ErrorIs(t, err, callErr)
	assert.Equal(t, StateFailed, d.State())
	assert.ErrorIs(t, d.Err(), callErr)
	assert.Equal(t, "images", d.Target())

	require.NoError(t, d.Confirm(context.Background()))
	assert.Equal(t, StateIdle, d.State())
	assert.NoError(t, d.Err())
}

func TestDeleteInvoker_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	// no Wrap expected: cancelling never calls the backend
	wrapper := taskwrapper.NewMockTaskWrapper(ctrl)

	d := NewDeleteInvoker(DeleteOptions{TaskName: api.TaskPoolDelete}, selectPool("images"), wrapper)

	assert.ErrorIs(t, d.Cancel(), ErrInvalidState)
	assert.ErrorIs(t, d.Confirm(context.Background()), ErrInvalidState)

	_, err := d.RequestDelete()
	require.NoError(t, err)
	require.NoError(t, d.Cancel())
	assert.Equal(t, StateIdle, d.State())
}

func TestDeleteInvoker_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	callErr := errors.New("busy")
	attempts := 0
	wrapper := taskwrapper.NewMockTaskWrapper(ctrl)
	wrapper.EXPECT().Wrap(gomock.Any(), gomock.Any()).DoAndReturn(runEnvelope).Times(2)

	d := NewDeleteInvoker(DeleteOptions{
		ItemDescription: "Pool",
		TaskName:        api.TaskPoolDelete,
		MetadataKey:     api.TaskMetadataPoolName,
		Delete: func(context.Context, string) (bool, error) {
			attempts++
			if attempts == 1 {
				return false, callErr
			}
			return true, nil
		},
	}, selectPool("images"), wrapper)

	dialog := &scriptedDialog{answers: []bool{true, true}}
	require.NoError(t, d.Run(context.Background(), dialog))

	require.Len(t, dialog.seen, 2)
	assert.NoError(t, dialog.seen[0].Err)
	assert.ErrorIs(t, dialog.seen[1].Err, callErr)
	assert.Equal(t, StateIdle, d.State())
}

func TestDeleteInvoker_RunCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	wrapper := taskwrapper.NewMockTaskWrapper(ctrl)

	d := NewDeleteInvoker(DeleteOptions{TaskName: api.TaskPoolDelete}, selectPool("images"), wrapper)
	err := d.Run(context.Background(), &scriptedDialog{answers: []bool{false}})

	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, StateIdle, d.State())
}

func TestDeleteInvoker_RunDeclineRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	callErr := errors.New("pool is in use")
	wrapper := taskwrapper.NewMockTaskWrapper(ctrl)
	wrapper.EXPECT().Wrap(gomock.Any(), gomock.Any()).DoAndReturn(runEnvelope)

	d := NewDeleteInvoker(DeleteOptions{
		TaskName:    api.TaskPoolDelete,
		MetadataKey: api.TaskMetadataPoolName,
		Delete:      func(context.Context, string) (bool, error) { return false, callErr },
	}, selectPool("images"), wrapper)

	err := d.Run(context.Background(), &scriptedDialog{answers: []bool{true, false}})
	assert.ErrorIs(t, err, callErr)
	assert.Equal(t, StateIdle, d.State())
}
