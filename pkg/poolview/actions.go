package poolview

import (
	"fmt"
	"strings"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/selection"
)

// Permission names as accepted by ParsePermissions
const (
	PermissionRead   = "read"
	PermissionCreate = "create"
	PermissionUpdate = "update"
	PermissionDelete = "delete"
)

// Permissions of the current user on pools
type Permissions struct {
	Read   bool
	Create bool
	Update bool
	Delete bool
}

// AllPermissions grants everything
var AllPermissions = Permissions{Read: true, Create: true, Update: true, Delete: true}

// ParsePermissions parses a comma separated list such as "read,delete", or "all"
func ParsePermissions(s string) (Permissions, error) {
	var p Permissions
	for _, item := range strings.Split(s, ",") {
		switch strings.TrimSpace(strings.ToLower(item)) {
		case "":
		case "all":
			p = AllPermissions
		case PermissionRead:
			p.Read = true
		case PermissionCreate:
			p.Create = true
		case PermissionUpdate:
			p.Update = true
		case PermissionDelete:
			p.Delete = true
		default:
			return Permissions{}, fmt.Errorf("unknown permission %q", item)
		}
	}
	return p, nil
}

func (p Permissions) Has(permission string) bool {
	switch permission {
	case PermissionRead:
		return p.Read
	case PermissionCreate:
		return p.Create
	case PermissionUpdate:
		return p.Update
	case PermissionDelete:
		return p.Delete
	}
	return false
}

// Action is one table action
type Action struct {
	Name       string
	Permission string
	// NeedsSelection actions act on the single selected row
	NeedsSelection bool
	// AllowExecuting is false for actions that must not target a row with a running task
	AllowExecuting bool
}

var (
	ActionAdd    = Action{Name: "Add", Permission: PermissionCreate, AllowExecuting: true}
	ActionEdit   = Action{Name: "Edit", Permission: PermissionUpdate, NeedsSelection: true}
	ActionDelete = Action{Name: "Delete", Permission: PermissionDelete, NeedsSelection: true, AllowExecuting: true}
)

// Actions of the pool list, in display order
var Actions = []Action{ActionAdd, ActionEdit, ActionDelete}

// Visible lists the actions the user is permitted to see
func Visible(p Permissions) []Action {
	var actions []Action
	for _, a := range Actions {
		if p.Has(a.Permission) {
			actions = append(actions, a)
		}
	}
	return actions
}

// Enabled reports whether the action can run against the current selection
func (a Action) Enabled(p Permissions, tracker *selection.Tracker[api.Pool]) bool {
	if !p.Has(a.Permission) {
		return false
	}
	if !a.NeedsSelection {
		return true
	}
	if tracker == nil || !tracker.HasSingleSelection() {
		return false
	}
	row, err := tracker.First()
	if err != nil {
		return false
	}
	return a.AllowExecuting || row.Task == nil
}
