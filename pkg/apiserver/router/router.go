package api

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/poolconsole/pkg/apiserver/controller"
	"github.com/hwameistor/poolconsole/pkg/apiserver/manager"
	"github.com/hwameistor/poolconsole/pkg/exporter"
)

// BasePath is the prefix of every API route
const BasePath = "/apis/poolconsole.io/v1alpha1"

func CollectRoute(r *gin.Engine, sm *manager.ServerManager) *gin.Engine {
	log.Info("CollectRoute start ...")

	v1 := r.Group(BasePath)

	poolController := controller.NewPoolController(sm)
	v1.GET("/cluster/pools", poolController.StoragePoolList)
	v1.POST("/cluster/pools", poolController.StoragePoolCreate)
	v1.GET("/cluster/pools/:poolName", poolController.StoragePoolGet)
	v1.PUT("/cluster/pools/:poolName", poolController.StoragePoolUpdate)
	v1.DELETE("/cluster/pools/:poolName", poolController.StoragePoolDelete)

	taskController := controller.NewTaskController(sm)
	v1.GET("/cluster/tasks", taskController.TaskSummary)

	collectors := exporter.NewCollectorManager(sm.StoragePoolController(), sm.TaskManager())
	r.GET("/metrics", gin.WrapH(collectors.Handler()))

	log.Info("CollectRoute end ...")

	return r
}
