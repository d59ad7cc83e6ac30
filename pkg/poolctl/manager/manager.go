package manager

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/poolconsole/pkg/action"
	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/client"
	"github.com/hwameistor/poolconsole/pkg/poolctl/cmdparser/definitions"
	"github.com/hwameistor/poolconsole/pkg/poolview"
	"github.com/hwameistor/poolconsole/pkg/selection"
	"github.com/hwameistor/poolconsole/pkg/tasklist"
	"github.com/hwameistor/poolconsole/pkg/taskwrapper"
)

// Console bundles everything a pool command needs
type Console struct {
	Client      *client.Client
	Wrapper     *taskwrapper.Wrapper
	Reconciler  *tasklist.Reconciler[api.Pool]
	Tracker     *selection.Tracker[api.Pool]
	Submitter   *action.Submitter
	Permissions poolview.Permissions
}

// NewConsole builds a Console from the poolctl flags, publish may be nil
func NewConsole(publish tasklist.Publisher[api.Pool]) (*Console, error) {
	permissions, err := poolview.ParsePermissions(definitions.Permissions)
	if err != nil {
		return nil, err
	}

	c := client.NewClient(definitions.Server, definitions.Timeout)
	wrapper := taskwrapper.NewWrapper(c.Tasks(poolview.TaskPattern))
	tracker := selection.NewTracker(poolview.Identity)
	// the selection follows every published list
	reconciler, err := poolview.NewReconciler(c.ListPools, wrapper, definitions.Interval, func(snapshot tasklist.Snapshot[api.Pool]) {
		tracker.Sync(snapshot.Rows)
		if publish != nil {
			publish(snapshot)
		}
	})
	if err != nil {
		return nil, err
	}

	console := &Console{
		Client:      c,
		Wrapper:     wrapper,
		Reconciler:  reconciler,
		Tracker:     tracker,
		Permissions: permissions,
	}
	console.Submitter = action.NewSubmitter(c, wrapper, func(ctx context.Context) {
		reconciler.Refresh(ctx)
	})

	log.WithFields(log.Fields{"server": definitions.Server, "permissions": definitions.Permissions}).Debug("Console created")
	return console, nil
}

// SelectPool refreshes the list and selects the named pool for an action
func (c *Console) SelectPool(ctx context.Context, a poolview.Action, name string) (tasklist.Snapshot[api.Pool], error) {
	if err := c.CheckPermission(a); err != nil {
		return tasklist.Snapshot[api.Pool]{}, err
	}

	snapshot := c.Reconciler.Refresh(ctx)
	c.Tracker.Select(snapshot.Rows, name)
	if !c.Tracker.HasSingleSelection() {
		if snapshot.Err != nil {
			return snapshot, snapshot.Err
		}
		return snapshot, fmt.Errorf("pool %q not found or still being created", name)
	}
	if !a.Enabled(c.Permissions, c.Tracker) {
		row, _ := c.Tracker.First()
		return snapshot, fmt.Errorf("cannot %s pool %q while it is %s", strings.ToLower(a.Name), name, strings.ToLower(row.Executing()))
	}
	return snapshot, nil
}

// CheckPermission fails when the user may not run a
func (c *Console) CheckPermission(a poolview.Action) error {
	if !c.Permissions.Has(a.Permission) {
		return fmt.Errorf("permission denied: %s requires the %s permission", a.Name, a.Permission)
	}
	return nil
}

// DeleteInvoker returns the delete flow over the current selection
func (c *Console) DeleteInvoker() *action.DeleteInvoker[api.Pool] {
	return action.NewDeleteInvoker(c.Submitter.DeleteOptions(), c.Tracker, c.Wrapper)
}
