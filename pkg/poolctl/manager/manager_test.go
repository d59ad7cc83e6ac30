package manager

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	apimanager "github.com/hwameistor/poolconsole/pkg/apiserver/manager"
	"github.com/hwameistor/poolconsole/pkg/apiserver/manager/storage"
	routers "github.com/hwameistor/poolconsole/pkg/apiserver/router"
	"github.com/hwameistor/poolconsole/pkg/poolctl/cmdparser/definitions"
	"github.com/hwameistor/poolconsole/pkg/poolview"
	"github.com/hwameistor/poolconsole/pkg/task"
)

func newTestConsole(t *testing.T, permissions string) (*Console, *storage.StoragePoolController) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pools := storage.NewStoragePoolController(0,
		&api.Pool{PoolName: "rbd", Type: api.PoolTypeReplicated, Size: 3},
		&api.Pool{PoolName: "images", Type: api.PoolTypeReplicated, Size: 2},
	)
	sm, err := apimanager.NewServerManager(pools, task.NewManager(task.Options{WaitTimeout: 5 * time.Second}))
	require.NoError(t, err)
	sm.Start(ctx)

	srv := httptest.NewServer(routers.CollectRoute(gin.New(), sm))
	t.Cleanup(srv.Close)

	definitions.Server = srv.URL
	definitions.Timeout = time.Second
	definitions.Interval = time.Minute
	definitions.Permissions = permissions

	c, err := NewConsole(nil)
	require.NoError(t, err)
	return c, pools
}

func TestConsole_SelectionFollowsPublishedList(t *testing.T) {
	c, pools := newTestConsole(t, definitions.DefaultPermissions)
	ctx := context.Background()

	_, err := c.SelectPool(ctx, poolview.ActionEdit, "rbd")
	require.NoError(t, err)

	_, err = pools.UpdateStoragePool(ctx, "rbd", &api.PoolUpdateReqBody{Size: 2})
	require.NoError(t, err)
	c.Reconciler.Refresh(ctx)

	row, err := c.Tracker.First()
	require.NoError(t, err)
	assert.Equal(t, int32(2), row.Item.Size)

	require.NoError(t, pools.DeleteStoragePool(ctx, "rbd"))
	c.Reconciler.Refresh(ctx)
	assert.False(t, c.Tracker.HasSelection())
}

func TestConsole_SelectPool(t *testing.T) {
	c, _ := newTestConsole(t, "read")
	ctx := context.Background()

	_, err := c.SelectPool(ctx, poolview.ActionDelete, "images")
	assert.ErrorContains(t, err, "permission denied")

	c.Permissions, err = poolview.ParsePermissions(definitions.DefaultPermissions)
	require.NoError(t, err)
	_, err = c.SelectPool(ctx, poolview.ActionDelete, "missing")
	assert.ErrorContains(t, err, "not found")

	_, err = c.SelectPool(ctx, poolview.ActionDelete, "images")
	require.NoError(t, err)
	assert.True(t, c.Tracker.HasSingleSelection())
}
