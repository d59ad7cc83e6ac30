package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
)

type recorded struct {
	method string
	path   string
	query  string
	body   string
}

func newServer(t *testing.T, status int, body string) (*Client, *[]recorded) {
	var requests []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		requests = append(requests, recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(data)})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second), &requests
}

func TestListPools(t *testing.T) {
	list := api.StoragePoolList{StoragePools: []*api.Pool{{PoolName: "rbd", Size: 3}, nil, {PoolName: "images"}}}
	data, err := json.Marshal(list)
	require.NoError(t, err)
	c, requests := newServer(t, http.StatusOK, string(data))

	pools, err := c.ListPools(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []api.Pool{{PoolName: "rbd", Size: 3}, {PoolName: "images"}}, pools)
	require.Len(t, *requests, 1)
	assert.Equal(t, basePath+"/cluster/pools", (*requests)[0].path)
	assert.Equal(t, "pageSize=-1", (*requests)[0].query)
}

func TestMutationsReportAccepted(t *testing.T) {
	testCases := []struct {
		description string
		status      int
		accepted    bool
	}{
		{description: "finished", status: http.StatusNoContent, accepted: false},
		{description: "created", status: http.StatusCreated, accepted: false},
		{description: "still executing", status: http.StatusAccepted, accepted: true},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			c, requests := newServer(t, tc.status, `{"name":"pool/delete","metadata":{"pool_name":"rbd"}}`)

			accepted, err := c.DeletePool(context.Background(), "rbd")
			require.NoError(t, err)
			assert.Equal(t, tc.accepted, accepted)
			assert.Equal(t, http.MethodDelete, (*requests)[0].method)
			assert.Equal(t, basePath+"/cluster/pools/rbd", (*requests)[0].path)
		})
	}
}

func TestCreateAndUpdateSendBody(t *testing.T) {
	c, requests := newServer(t, http.StatusOK, `{}`)

	_, err := c.CreatePool(context.Background(), &api.PoolCreateReqBody{PoolName: "new"})
	require.NoError(t, err)
	_, err = c.UpdatePool(context.Background(), "new", &api.PoolUpdateReqBody{Size: 2})
	require.NoError(t, err)

	require.Len(t, *requests, 2)
	assert.Equal(t, http.MethodPost, (*requests)[0].method)
	assert.JSONEq(t, `{"pool_name":"new"}`, (*requests)[0].body)
	assert.Equal(t, http.MethodPut, (*requests)[1].method)
	assert.JSONEq(t, `{"size":2}`, (*requests)[1].body)
}

func TestErrorDescription(t *testing.T) {
	c, _ := newServer(t, http.StatusNotFound, `{"errcode":404,"description":"pool not found: rbd"}`)

	_, err := c.GetPool(context.Background(), "rbd")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "pool not found: rbd (404)", err.Error())
}

func TestErrorPlainBody(t *testing.T) {
	c, _ := newServer(t, http.StatusBadGateway, "upstream down\n")

	_, err := c.DeletePool(context.Background(), "rbd")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream down", apiErr.Desc)
	assert.False(t, IsNotFound(err))
}

func TestTaskSummary(t *testing.T) {
	c, requests := newServer(t, http.StatusOK,
		`{"executing_tasks":[{"name":"pool/delete","metadata":{"pool_name":"rbd"},"begin_time":"2023-01-01T00:00:00Z","progress":10}],"finished_tasks":[]}`)

	summary, err := c.Tasks("pool/*").Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.ExecutingTasks, 1)
	assert.Equal(t, "rbd", summary.ExecutingTasks[0].Metadata[api.TaskMetadataPoolName])
	assert.Equal(t, 10, summary.ExecutingTasks[0].Progress)
	assert.Equal(t, "name=pool%2F%2A", (*requests)[0].query)
}

func TestUnreachableServer(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 100*time.Millisecond)

	_, err := c.ListPools(context.Background())
	assert.Error(t, err)
}
