package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/hwameistor/poolconsole/pkg/apiserver/manager"
	"github.com/hwameistor/poolconsole/pkg/apiserver/manager/storage"
	"github.com/hwameistor/poolconsole/pkg/apiserver/options"
	routers "github.com/hwameistor/poolconsole/pkg/apiserver/router"
	"github.com/hwameistor/poolconsole/pkg/task"
)

func setupLogging(debug bool) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.JSONFormatter{
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			s := strings.Split(f.Function, ".")
			funcName := s[len(s)-1]
			fileName := path.Base(f.File)
			return funcName, fmt.Sprintf("%s:%d", fileName, f.Line)
		}})
	log.SetReportCaller(true)
}

func main() {
	opts := options.NewServerOption()
	pflag.CommandLine.AddFlagSet(opts.AddFlags(&pflag.FlagSet{}))
	pflag.Parse()
	setupLogging(opts.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pools := storage.NewStoragePoolController(opts.ApplyDelay, opts.SeedPools()...)
	sm, err := manager.NewServerManager(pools, task.NewManager(opts.TaskOptions()))
	if err != nil {
		log.WithError(err).Fatal("Failed to create server manager")
	}
	sm.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	// middleware must be registered before the routes
	engine.Use(gin.Recovery())
	r := routers.CollectRoute(engine, sm)

	server := &http.Server{
		Addr:    opts.Addr,
		Handler: r,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Failed to shutdown pool server")
		}
	}()

	log.WithField("addr", opts.Addr).Info("Starting pool server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("Pool server exited")
	}
	log.Info("Pool server stopped")
}
