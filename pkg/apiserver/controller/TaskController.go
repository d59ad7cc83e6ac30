package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gobwas/glob"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/apiserver/manager"
	"github.com/hwameistor/poolconsole/pkg/task"
)

type ITaskController interface {
	TaskSummary(ctx *gin.Context)
}

type TaskController struct {
	m *manager.ServerManager
}

func NewTaskController(m *manager.ServerManager) ITaskController {
	return &TaskController{m}
}

// TaskSummary godoc
// @Summary     List executing and recently finished tasks
// @Description name is a '/' separated glob, e.g. pool/*
// @Tags        Task
// @Param       name query string false "name"
// @Produce     json
// @Success     200 {object} api.TaskSummary
// @Failure     400 {object} api.RspFailBody
// @Router      /cluster/tasks [get]
func (n *TaskController) TaskSummary(ctx *gin.Context) {
	var filter task.Filter
	if name := ctx.Query("name"); name != "" {
		g, err := glob.Compile(name, '/')
		if err != nil {
			fail(ctx, http.StatusBadRequest, err.Error())
			return
		}
		filter = func(t api.Task) bool { return g.Match(t.Name) }
	}

	ctx.JSON(http.StatusOK, api.TaskSummary{
		ExecutingTasks: n.m.TaskManager().Executing(filter),
		FinishedTasks:  n.m.TaskManager().Finished(filter),
	})
}
