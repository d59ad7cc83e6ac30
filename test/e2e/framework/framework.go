package framework

import (
	"context"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/apiserver/manager"
	"github.com/hwameistor/poolconsole/pkg/apiserver/manager/storage"
	routers "github.com/hwameistor/poolconsole/pkg/apiserver/router"
	"github.com/hwameistor/poolconsole/pkg/task"
)

// Server is a pool server running in process
type Server struct {
	URL   string
	Pools *storage.StoragePoolController

	srv    *httptest.Server
	cancel context.CancelFunc
}

// StartServer starts a pool server whose mutations take applyDelay and whose requests
// wait at most waitTimeout for their task
func StartServer(applyDelay, waitTimeout time.Duration, seed ...*api.Pool) *Server {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())

	pools := storage.NewStoragePoolController(applyDelay, seed...)
	sm, err := manager.NewServerManager(pools, task.NewManager(task.Options{WaitTimeout: waitTimeout}))
	if err != nil {
		cancel()
		panic(err)
	}
	sm.Start(ctx)

	srv := httptest.NewServer(routers.CollectRoute(gin.New(), sm))
	return &Server{URL: srv.URL, Pools: pools, srv: srv, cancel: cancel}
}

func (s *Server) Close() {
	s.srv.Close()
	s.cancel()
}

// Recorder keeps every published value
type Recorder[T any] struct {
	lock  sync.Mutex
	items []T
}

func (r *Recorder[T]) Record(item T) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.items = append(r.items, item)
}

func (r *Recorder[T]) Last() (T, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	var zero T
	if len(r.items) == 0 {
		return zero, false
	}
	return r.items[len(r.items)-1], true
}

func (r *Recorder[T]) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.items)
}
