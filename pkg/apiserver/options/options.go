package options

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/task"
)

// ServerOption is the configuration of the pool server
type ServerOption struct {
	Addr        string
	ApplyDelay  time.Duration
	WaitTimeout time.Duration
	FinishedTTL time.Duration
	Workers     int
	DemoPools   bool
	Debug       bool
}

// NewServerOption creates a new ServerOption with default values
func NewServerOption() *ServerOption {
	return &ServerOption{
		Addr:        ":8080",
		WaitTimeout: task.DefaultWaitTimeout,
		FinishedTTL: task.DefaultFinishedTTL,
		Workers:     task.DefaultWorkers,
	}
}

// AddFlags adds flags for a specific ServerOption to the specified FlagSet
func (s *ServerOption) AddFlags(fs *pflag.FlagSet) *pflag.FlagSet {
	fs.StringVar(&s.Addr, "listen", s.Addr, "The address the pool server listens on.")
	fs.DurationVar(&s.ApplyDelay, "apply-delay", s.ApplyDelay,
		"How long a pool create, edit or delete takes to be applied. "+
			"Requests that take longer than --wait-timeout are answered with 202 and keep running as tasks.")
	fs.DurationVar(&s.WaitTimeout, "wait-timeout", s.WaitTimeout, "How long a request waits for its task to finish.")
	fs.DurationVar(&s.FinishedTTL, "finished-ttl", s.FinishedTTL, "How long finished tasks are listed.")
	fs.IntVar(&s.Workers, "workers", s.Workers, "Number of task workers.")
	fs.BoolVar(&s.DemoPools, "demo-pools", s.DemoPools, "Start with a few demo pools.")
	fs.BoolVar(&s.Debug, "debug", s.Debug, "Enable debug logging.")
	return fs
}

// TaskOptions derives the task manager options
func (s *ServerOption) TaskOptions() task.Options {
	return task.Options{
		Workers:     s.Workers,
		WaitTimeout: s.WaitTimeout,
		FinishedTTL: s.FinishedTTL,
	}
}

// SeedPools are the pools the server starts with
func (s *ServerOption) SeedPools() []*api.Pool {
	if !s.DemoPools {
		return nil
	}
	return []*api.Pool{
		(&api.PoolCreateReqBody{PoolName: "rbd", ApplicationMetadata: []string{"rbd"}}).ToPool(),
		(&api.PoolCreateReqBody{PoolName: "images", ApplicationMetadata: []string{"rbd"}, Size: 2}).ToPool(),
		(&api.PoolCreateReqBody{PoolName: "ec-data", Type: api.PoolTypeErasure, ApplicationMetadata: []string{"rgw"}}).ToPool(),
	}
}
