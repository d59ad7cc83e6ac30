package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/apiserver/manager"
	"github.com/hwameistor/poolconsole/pkg/apiserver/manager/storage"
	routers "github.com/hwameistor/poolconsole/pkg/apiserver/router"
	"github.com/hwameistor/poolconsole/pkg/task"
)

func newEngine(t *testing.T, applyDelay, waitTimeout time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pools := storage.NewStoragePoolController(applyDelay,
		&api.Pool{PoolName: "rbd", Type: api.PoolTypeReplicated, Size: 3},
		&api.Pool{PoolName: "images", Type: api.PoolTypeReplicated, Size: 2},
	)
	sm, err := manager.NewServerManager(pools, task.NewManager(task.Options{WaitTimeout: waitTimeout}))
	require.NoError(t, err)
	sm.Start(ctx)

	return routers.CollectRoute(gin.New(), sm)
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, routers.BasePath+path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestStoragePoolList(t *testing.T) {
	r := newEngine(t, 0, time.Second)

	w := do(t, r, http.MethodGet, "/cluster/pools", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[api.StoragePoolList](t, w)
	require.Len(t, list.StoragePools, 2)
	assert.Equal(t, "images", list.StoragePools[0].PoolName)

	w = do(t, r, http.MethodGet, "/cluster/pools?name=rb&page=1&pageSize=10", nil)
	list = decode[api.StoragePoolList](t, w)
	require.Len(t, list.StoragePools, 1)
	assert.Equal(t, "rbd", list.StoragePools[0].PoolName)
}

func TestStoragePoolListBadPageSize(t *testing.T) {
	r := newEngine(t, 0, time.Second)

	w := do(t, r, http.MethodGet, "/cluster/pools?page=1&pageSize=-5", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, decode[api.RspFailBody](t, w).ErrCode)

	w = do(t, r, http.MethodGet, "/cluster/pools?pageSize=-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[api.StoragePoolList](t, w).StoragePools, 2)
}

func TestStoragePoolGet(t *testing.T) {
	r := newEngine(t, 0, time.Second)

	w := do(t, r, http.MethodGet, "/cluster/pools/rbd", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(3), decode[api.Pool](t, w).Size)

	w = do(t, r, http.MethodGet, "/cluster/pools/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, decode[api.RspFailBody](t, w).ErrCode)
}

func TestStoragePoolCreateUpdateDelete(t *testing.T) {
	r := newEngine(t, 0, 5*time.Second)

	w := do(t, r, http.MethodPost, "/cluster/pools", api.PoolCreateReqBody{PoolName: "backups", ApplicationMetadata: []string{"rgw"}})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "backups", decode[api.Pool](t, w).PoolName)

	w = do(t, r, http.MethodPost, "/cluster/pools", api.PoolCreateReqBody{PoolName: "backups"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/cluster/pools", api.PoolCreateReqBody{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, "/cluster/pools/backups", api.PoolUpdateReqBody{Size: 2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(2), decode[api.Pool](t, w).Size)

	w = do(t, r, http.MethodDelete, "/cluster/pools/backups", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodDelete, "/cluster/pools/backups", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/cluster/tasks?name=pool/*", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[api.TaskSummary](t, w)
	assert.Empty(t, summary.ExecutingTasks)
	assert.Len(t, summary.FinishedTasks, 3)
}

func TestStoragePoolDeleteAccepted(t *testing.T) {
	r := newEngine(t, 300*time.Millisecond, 10*time.Millisecond)

	w := do(t, r, http.MethodDelete, "/cluster/pools/images", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	executing := decode[api.ExecutingTask](t, w)
	assert.Equal(t, api.TaskPoolDelete, executing.Name)
	assert.Equal(t, "images", executing.Metadata[api.TaskMetadataPoolName])

	w = do(t, r, http.MethodGet, "/cluster/tasks?name=pool/*", nil)
	summary := decode[api.TaskSummary](t, w)
	require.Len(t, summary.ExecutingTasks, 1)
	assert.Equal(t, "images", summary.ExecutingTasks[0].Metadata[api.TaskMetadataPoolName])

	w = do(t, r, http.MethodGet, "/cluster/tasks?name=rbd/*", nil)
	assert.Empty(t, decode[api.TaskSummary](t, w).ExecutingTasks)

	assert.Eventually(t, func() bool {
		return do(t, r, http.MethodGet, "/cluster/pools/images", nil).Code == http.StatusNotFound
	}, 2*time.Second, 20*time.Millisecond)
}

func TestMetrics(t *testing.T) {
	r := newEngine(t, 0, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "poolconsole_pools_total 2")
}
