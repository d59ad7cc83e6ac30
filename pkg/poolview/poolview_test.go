package poolview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/selection"
	"github.com/hwameistor/poolconsole/pkg/tasklist"
)

func executing(name, pool string) api.ExecutingTask {
	return api.ExecutingTask{
		Task:      api.NewTask(name, map[string]string{api.TaskMetadataPoolName: pool}),
		BeginTime: time.Now(),
	}
}

func TestPoolReconciler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tasks := tasklist.NewMockTaskSource(ctrl)
	tasks.EXPECT().Current(gomock.Any()).Return([]api.ExecutingTask{
		executing(api.TaskPoolDelete, "images"),
		executing(api.TaskPoolCreate, "new-pool"),
		executing("rbd/delete", "rbd"),
	}, nil)

	fetch := func(context.Context) ([]api.Pool, error) {
		return []api.Pool{{PoolName: "rbd", Size: 3}, {PoolName: "images", Size: 2}}, nil
	}
	r, err := NewReconciler(fetch, tasks, time.Minute, nil)
	require.NoError(t, err)

	snapshot := r.Refresh(context.Background())
	require.Equal(t, tasklist.ViewStateLoaded, snapshot.ViewState)
	require.Len(t, snapshot.Rows, 3)

	assert.Nil(t, snapshot.Rows[0].Task)
	assert.Equal(t, "Deleting", snapshot.Rows[1].Executing())
	assert.True(t, snapshot.Rows[2].Placeholder)
	assert.Equal(t, api.Pool{PoolName: "new-pool"}, snapshot.Rows[2].Item)
}

func TestTaskPattern(t *testing.T) {
	filter, err := tasklist.NameGlob(TaskPattern)
	require.NoError(t, err)

	for name, expected := range map[string]bool{
		api.TaskPoolCreate: true,
		api.TaskPoolDelete: true,
		"pool/rbd/mirror":  true,
		"rbd/delete":       false,
		"pools/create":     false,
	} {
		assert.Equal(t, expected, filter(executing(name, "rbd")), name)
	}
}

func TestCells(t *testing.T) {
	row := tasklist.DisplayRow[api.Pool]{Item: api.Pool{
		PoolName:            "rbd",
		Type:                api.PoolTypeReplicated,
		ApplicationMetadata: []string{"rbd", "rgw"},
		PgPlacementNum:      64,
		Size:                3,
		LastChange:          12,
		CrushRule:           api.DefaultCrushRule,
	}}
	assert.Equal(t, []string{"rbd", "replicated", "rbd, rgw", "64", "3", "12", "", "replicated_rule"}, Cells(row))
	assert.Equal(t, []string{"Name", "Type", "Applications", "Placement Groups", "Replica Size", "Last Change",
		"Erasure Coded Profile", "Crush Ruleset"}, Headers())

	task := executing(api.TaskPoolDelete, "rbd")
	row.Task = &task
	assert.Equal(t, "rbd (Deleting...)", Cells(row)[0])
	task.Progress = 40
	assert.Equal(t, "rbd (Deleting... 40%)", Cells(row)[0])

	created := executing(api.TaskPoolCreate, "new-pool")
	placeholder := tasklist.DisplayRow[api.Pool]{Item: Placeholder(created), Task: &created, Placeholder: true}
	assert.Equal(t, []string{"new-pool (Creating...)", "", "", "", "", "", "", ""}, Cells(placeholder))
}

func TestParsePermissions(t *testing.T) {
	p, err := ParsePermissions("read, delete")
	require.NoError(t, err)
	assert.Equal(t, Permissions{Read: true, Delete: true}, p)

	p, err = ParsePermissions("all")
	require.NoError(t, err)
	assert.Equal(t, AllPermissions, p)

	_, err = ParsePermissions("read,admin")
	assert.Error(t, err)
}

func TestActions(t *testing.T) {
	readDelete := Permissions{Read: true, Delete: true}
	assert.Equal(t, []Action{ActionDelete}, Visible(readDelete))
	assert.Equal(t, Actions, Visible(AllPermissions))

	tracker := selection.NewTracker(Identity)
	assert.True(t, ActionAdd.Enabled(AllPermissions, tracker))
	assert.False(t, ActionAdd.Enabled(readDelete, tracker))
	assert.False(t, ActionEdit.Enabled(AllPermissions, tracker))
	assert.False(t, ActionDelete.Enabled(AllPermissions, tracker))

	task := executing(api.TaskPoolEdit, "rbd")
	rows := []tasklist.DisplayRow[api.Pool]{{Item: api.Pool{PoolName: "rbd", Size: 3}, Task: &task}}
	tracker.Update(rows)
	assert.False(t, ActionEdit.Enabled(AllPermissions, tracker))
	assert.True(t, ActionDelete.Enabled(AllPermissions, tracker))

	rows[0].Task = nil
	tracker.Update(rows)
	assert.True(t, ActionEdit.Enabled(AllPermissions, tracker))
	assert.False(t, ActionEdit.Enabled(readDelete, tracker))
}

func TestPoolReconcilerDegraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tasks := tasklist.NewMockTaskSource(ctrl)
	tasks.EXPECT().Current(gomock.Any()).Return(nil, nil)

	fetchErr := errors.New("connection refused")
	r, err := NewReconciler(func(context.Context) ([]api.Pool, error) { return nil, fetchErr }, tasks, time.Minute, nil)
	require.NoError(t, err)

	snapshot := r.Refresh(context.Background())
	assert.Equal(t, tasklist.ViewStateErrorDegraded, snapshot.ViewState)
	assert.ErrorIs(t, snapshot.Err, fetchErr)
	assert.Empty(t, snapshot.Rows)
}
