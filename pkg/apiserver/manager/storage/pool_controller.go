package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	utils "github.com/hwameistor/poolconsole/pkg/apiserver/util"
	"github.com/hwameistor/poolconsole/pkg/task"
)

const progressSteps = 10

var (
	ErrPoolNotFound = errors.New("pool not found")
	ErrPoolExists   = errors.New("pool already exists")
	ErrInvalidPool  = errors.New("invalid pool")
)

// StoragePoolController keeps the pool records in memory. Mutations bump a cluster wide
// epoch which is recorded as the LastChange of the pool they touch.
type StoragePoolController struct {
	lock  sync.RWMutex
	pools map[string]*api.Pool
	epoch int64

	// applyDelay is how long a mutation takes to be applied
	applyDelay time.Duration
	logger     *log.Entry
}

func NewStoragePoolController(applyDelay time.Duration, seed ...*api.Pool) *StoragePoolController {
	c := &StoragePoolController{
		pools:      map[string]*api.Pool{},
		applyDelay: applyDelay,
		logger:     log.WithField("Module", "StoragePoolController"),
	}
	for _, pool := range seed {
		c.epoch++
		p := copyPool(pool)
		p.LastChange = c.epoch
		c.pools[p.PoolName] = p
	}
	return c
}

// StoragePoolList lists the pools sorted by name, filtered by name substring
func (c *StoragePoolController) StoragePoolList(queryPage api.QueryPage) (*api.StoragePoolList, error) {
	c.lock.RLock()
	pools := make([]*api.Pool, 0, len(c.pools))
	for name, pool := range c.pools {
		if queryPage.PoolName == "" || strings.Contains(name, queryPage.PoolName) {
			pools = append(pools, copyPool(pool))
		}
	}
	c.lock.RUnlock()

	sort.Slice(pools, func(i, j int) bool {
		return pools[i].PoolName < pools[j].PoolName
	})

	return &api.StoragePoolList{
		StoragePools: utils.DataPagination(pools, queryPage.Page, queryPage.PageSize),
		Page: &api.Pagination{
			Total:    uint32(len(pools)),
			Page:     queryPage.Page,
			PageSize: queryPage.PageSize,
			Pages:    utils.Pages(len(pools), queryPage.PageSize),
		},
	}, nil
}

// GetStoragePool returns ErrPoolNotFound for an unknown name
func (c *StoragePoolController) GetStoragePool(poolName string) (*api.Pool, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	pool, exists := c.pools[poolName]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, poolName)
	}
	return copyPool(pool), nil
}

// Count is the number of pools
func (c *StoragePoolController) Count() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return len(c.pools)
}

// ValidateCreate checks a create request without applying it
func (c *StoragePoolController) ValidateCreate(req *api.PoolCreateReqBody) error {
	if req == nil || req.PoolName == "" {
		return fmt.Errorf("%w: pool name cannot be empty", ErrInvalidPool)
	}
	if req.Type != "" && req.Type != api.PoolTypeReplicated && req.Type != api.PoolTypeErasure {
		return fmt.Errorf("%w: unknown pool type %q", ErrInvalidPool, req.Type)
	}
	if req.Size < 0 || req.PgPlacementNum < 0 {
		return fmt.Errorf("%w: size and pg_placement_num must not be negative", ErrInvalidPool)
	}

	c.lock.RLock()
	defer c.lock.RUnlock()
	if _, exists := c.pools[req.PoolName]; exists {
		return fmt.Errorf("%w: %s", ErrPoolExists, req.PoolName)
	}
	return nil
}

// ValidateUpdate checks an update request without applying it
func (c *StoragePoolController) ValidateUpdate(poolName string, req *api.PoolUpdateReqBody) error {
	if req == nil {
		return fmt.Errorf("%w: empty update", ErrInvalidPool)
	}
	if req.Size < 0 || req.PgPlacementNum < 0 {
		return fmt.Errorf("%w: size and pg_placement_num must not be negative", ErrInvalidPool)
	}
	_, err := c.GetStoragePool(poolName)
	return err
}

// CreateStoragePool adds a pool after the apply delay
func (c *StoragePoolController) CreateStoragePool(ctx context.Context, req *api.PoolCreateReqBody) (*api.Pool, error) {
	if err := c.ValidateCreate(req); err != nil {
		return nil, err
	}
	if err := c.delay(ctx); err != nil {
		return nil, err
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	if _, exists := c.pools[req.PoolName]; exists {
		return nil, fmt.Errorf("%w: %s", ErrPoolExists, req.PoolName)
	}
	pool := req.ToPool()
	c.epoch++
	pool.LastChange = c.epoch
	c.pools[pool.PoolName] = pool

	c.logger.WithFields(log.Fields{"pool": pool.PoolName, "epoch": c.epoch}).Info("Pool created")
	return copyPool(pool), nil
}

// UpdateStoragePool applies the non-empty fields of req
func (c *StoragePoolController) UpdateStoragePool(ctx context.Context, poolName string, req *api.PoolUpdateReqBody) (*api.Pool, error) {
	if err := c.ValidateUpdate(poolName, req); err != nil {
		return nil, err
	}
	if err := c.delay(ctx); err != nil {
		return nil, err
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	pool, exists := c.pools[poolName]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, poolName)
	}
	if req.ApplicationMetadata != nil {
		pool.ApplicationMetadata = append([]string{}, req.ApplicationMetadata...)
	}
	if req.PgPlacementNum > 0 {
		pool.PgPlacementNum = req.PgPlacementNum
	}
	if req.Size > 0 {
		pool.Size = req.Size
	}
	c.epoch++
	pool.LastChange = c.epoch

	c.logger.WithFields(log.Fields{"pool": poolName, "epoch": c.epoch}).Info("Pool updated")
	return copyPool(pool), nil
}

// DeleteStoragePool removes a pool after the apply delay
func (c *StoragePoolController) DeleteStoragePool(ctx context.Context, poolName string) error {
	if _, err := c.GetStoragePool(poolName); err != nil {
		return err
	}
	if err := c.delay(ctx); err != nil {
		return err
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	if _, exists := c.pools[poolName]; !exists {
		return fmt.Errorf("%w: %s", ErrPoolNotFound, poolName)
	}
	delete(c.pools, poolName)
	c.epoch++

	c.logger.WithFields(log.Fields{"pool": poolName, "epoch": c.epoch}).Info("Pool deleted")
	return nil
}

// delay waits applyDelay and reports the elapsed share as the progress of the running task
func (c *StoragePoolController) delay(ctx context.Context) error {
	if c.applyDelay <= 0 {
		return nil
	}
	interval := c.applyDelay / progressSteps
	if interval <= 0 {
		interval = time.Nanosecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for step := 1; step <= progressSteps; step++ {
		select {
		case <-ticker.C:
			task.SetProgress(ctx, step*100/progressSteps)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func copyPool(pool *api.Pool) *api.Pool {
	p := *pool
	if pool.ApplicationMetadata != nil {
		p.ApplicationMetadata = append([]string{}, pool.ApplicationMetadata...)
	}
	return &p
}
