package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
)

const (
	DefaultServer  = "http://127.0.0.1:8080"
	DefaultTimeout = 10 * time.Second

	basePath = "/apis/poolconsole.io/v1alpha1"
)

// APIError is a non 2xx answer of the pool server
type APIError struct {
	StatusCode int
	Desc       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d)", e.Desc, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the pool server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the pool server REST API
type Client struct {
	server string
	http   *http.Client
	logger *log.Entry
}

func NewClient(server string, timeout time.Duration) *Client {
	if server == "" {
		server = DefaultServer
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		server: strings.TrimRight(server, "/"),
		http:   &http.Client{Timeout: timeout},
		logger: log.WithField("Module", "PoolClient"),
	}
}

// ListPools returns every pool
func (c *Client) ListPools(ctx context.Context) ([]api.Pool, error) {
	var list api.StoragePoolList
	if _, err := c.do(ctx, http.MethodGet, "/cluster/pools?pageSize=-1", nil, &list); err != nil {
		return nil, err
	}

	pools := make([]api.Pool, 0, len(list.StoragePools))
	for _, pool := range list.StoragePools {
		if pool != nil {
			pools = append(pools, *pool)
		}
	}
	return pools, nil
}

func (c *Client) GetPool(ctx context.Context, name string) (*api.Pool, error) {
	var pool api.Pool
	if _, err := c.do(ctx, http.MethodGet, "/cluster/pools/"+url.PathEscape(name), nil, &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

// CreatePool returns true when the server accepted the request and is still executing it
func (c *Client) CreatePool(ctx context.Context, req *api.PoolCreateReqBody) (bool, error) {
	return c.mutate(ctx, http.MethodPost, "/cluster/pools", req)
}

// UpdatePool returns true when the server accepted the request and is still executing it
func (c *Client) UpdatePool(ctx context.Context, name string, req *api.PoolUpdateReqBody) (bool, error) {
	return c.mutate(ctx, http.MethodPut, "/cluster/pools/"+url.PathEscape(name), req)
}

// DeletePool returns true when the server accepted the request and is still executing it
func (c *Client) DeletePool(ctx context.Context, name string) (bool, error) {
	return c.mutate(ctx, http.MethodDelete, "/cluster/pools/"+url.PathEscape(name), nil)
}

// Tasks returns a task client limited to task names matching pattern, all when empty
func (c *Client) Tasks(pattern string) *TaskClient {
	return &TaskClient{c: c, pattern: pattern}
}

// TaskClient reads the task summary of the pool server
type TaskClient struct {
	c       *Client
	pattern string
}

func (t *TaskClient) Summary(ctx context.Context) (*api.TaskSummary, error) {
	path := "/cluster/tasks"
	if t.pattern != "" {
		path += "?name=" + url.QueryEscape(t.pattern)
	}

	var summary api.TaskSummary
	if _, err := t.c.do(ctx, http.MethodGet, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) mutate(ctx context.Context, method, path string, body interface{}) (bool, error) {
	status, err := c.do(ctx, method, path, body, nil)
	if err != nil {
		return false, err
	}
	return status == http.StatusAccepted, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.server+basePath+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logCtx := c.logger.WithFields(log.Fields{"method": method, "path": path})
	logCtx.Debug("Sending request")
	rsp, err := c.http.Do(req)
	if err != nil {
		logCtx.WithError(err).Debug("Request failed")
		return 0, err
	}
	defer rsp.Body.Close()

	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		return rsp.StatusCode, err
	}
	logCtx.WithField("status", rsp.StatusCode).Debug("Got response")

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		return rsp.StatusCode, parseError(rsp.StatusCode, data)
	}
	if out != nil && rsp.StatusCode != http.StatusNoContent && rsp.StatusCode != http.StatusAccepted {
		if err := json.Unmarshal(data, out); err != nil {
			return rsp.StatusCode, fmt.Errorf("invalid response body: %w", err)
		}
	}
	return rsp.StatusCode, nil
}

func parseError(status int, data []byte) error {
	desc := strings.TrimSpace(string(data))
	if gjson.ValidBytes(data) {
		if d := gjson.GetBytes(data, "description"); d.Exists() {
			desc = d.String()
		}
	}
	if desc == "" {
		desc = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Desc: desc}
}
