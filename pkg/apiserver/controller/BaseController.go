package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/apiserver/manager/storage"
	"github.com/hwameistor/poolconsole/pkg/task"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, storage.ErrPoolNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrPoolExists):
		return http.StatusConflict
	case errors.Is(err, storage.ErrInvalidPool):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(ctx *gin.Context, code int, desc string) {
	ctx.JSON(code, api.RspFailBody{ErrCode: code, Desc: desc})
}

func failWithError(ctx *gin.Context, err error) {
	fail(ctx, statusOf(err), err.Error())
}

// respondTask writes 202 with the executing task when it did not finish in time, otherwise
// it writes the task error or calls done
func respondTask(ctx *gin.Context, result *task.Result, done func()) {
	if !result.Done() {
		ctx.JSON(http.StatusAccepted, result.Executing)
		return
	}
	if result.Err != nil {
		failWithError(ctx, result.Err)
		return
	}
	done()
}
