package action

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/taskwrapper"
)

// PoolService is the mutating half of the pool API
type PoolService interface {
	CreatePool(ctx context.Context, req *api.PoolCreateReqBody) (bool, error)
	UpdatePool(ctx context.Context, name string, req *api.PoolUpdateReqBody) (bool, error)
	DeletePool(ctx context.Context, name string) (bool, error)
}

// Submitter wraps pool create and edit calls as tracked tasks
type Submitter struct {
	service PoolService
	wrapper taskwrapper.TaskWrapper
	refresh func(ctx context.Context)
	logger  *log.Entry
}

func NewSubmitter(service PoolService, wrapper taskwrapper.TaskWrapper, refresh func(ctx context.Context)) *Submitter {
	return &Submitter{
		service: service,
		wrapper: wrapper,
		refresh: refresh,
		logger:  log.WithField("Module", "PoolSubmitter"),
	}
}

// Create submits a pool/create task
func (s *Submitter) Create(ctx context.Context, req *api.PoolCreateReqBody) error {
	if req == nil || req.PoolName == "" {
		return fmt.Errorf("pool name cannot be empty")
	}
	return s.submit(ctx, api.TaskPoolCreate, req.PoolName, func(ctx context.Context) (bool, error) {
		return s.service.CreatePool(ctx, req)
	})
}

// Update submits a pool/edit task
func (s *Submitter) Update(ctx context.Context, name string, req *api.PoolUpdateReqBody) error {
	if name == "" {
		return fmt.Errorf("pool name cannot be empty")
	}
	return s.submit(ctx, api.TaskPoolEdit, name, func(ctx context.Context) (bool, error) {
		return s.service.UpdatePool(ctx, name, req)
	})
}

// DeleteOptions returns the options of a pool DeleteInvoker backed by this service
func (s *Submitter) DeleteOptions() DeleteOptions {
	return DeleteOptions{
		ItemDescription: "Pool",
		TaskName:        api.TaskPoolDelete,
		MetadataKey:     api.TaskMetadataPoolName,
		Delete:          s.service.DeletePool,
		Refresh:         s.refresh,
	}
}

func (s *Submitter) submit(ctx context.Context, taskName, poolName string, call taskwrapper.CallFunc) error {
	envelope := taskwrapper.Envelope{
		Task: api.FinishedTask{Task: api.NewTask(taskName, map[string]string{api.TaskMetadataPoolName: poolName})},
		Call: call,
	}
	if err := s.wrapper.Wrap(ctx, envelope); err != nil {
		return err
	}
	s.logger.WithFields(log.Fields{"task": taskName, "pool": poolName}).Info("Task submitted")
	if s.refresh != nil {
		s.refresh(ctx)
	}
	return nil
}
