package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/apiserver/manager"
)

type IPoolController interface {
	StoragePoolGet(ctx *gin.Context)
	StoragePoolList(ctx *gin.Context)
	StoragePoolCreate(ctx *gin.Context)
	StoragePoolUpdate(ctx *gin.Context)
	StoragePoolDelete(ctx *gin.Context)
}

type PoolController struct {
	m *manager.ServerManager
}

func NewPoolController(m *manager.ServerManager) IPoolController {
	return &PoolController{m}
}

// StoragePoolGet godoc
// @Summary     Get a storage pool
// @Description get Pool
// @Tags        Pool
// @Param       poolName path string true "poolName"
// @Accept      json
// @Produce     json
// @Success     200 {object}  api.Pool
// @Failure     404 {object}  api.RspFailBody
// @Router      /cluster/pools/{poolName} [get]
func (n *PoolController) StoragePoolGet(ctx *gin.Context) {
	poolName := ctx.Param("poolName")
	if poolName == "" {
		fail(ctx, http.StatusBadRequest, "poolName cannot be empty")
		return
	}

	sp, err := n.m.StoragePoolController().GetStoragePool(poolName)
	if err != nil {
		failWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sp)
}

// StoragePoolList godoc
// @Summary     List storage pools
// @Description list StoragePools
// @Tags        Pool
// @Param       name query string false "name"
// @Param       page query int32 false "page"
// @Param       pageSize query int32 false "pageSize"
// @Accept      json
// @Produce     json
// @Success     200 {object} api.StoragePoolList
// @Failure     400 {object} api.RspFailBody
// @Router      /cluster/pools [get]
func (n *PoolController) StoragePoolList(ctx *gin.Context) {
	p, _ := strconv.ParseInt(ctx.Query("page"), 10, 32)
	ps, _ := strconv.ParseInt(ctx.Query("pageSize"), 10, 32)
	if ps < -1 {
		fail(ctx, http.StatusBadRequest, "pageSize must be -1 or greater")
		return
	}

	queryPage := api.QueryPage{
		Page:     int32(p),
		PageSize: int32(ps),
		PoolName: ctx.Query("name"),
	}

	sps, err := n.m.StoragePoolController().StoragePoolList(queryPage)
	if err != nil {
		failWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sps)
}

// StoragePoolCreate godoc
// @Summary     Create a storage pool
// @Description runs a pool/create task, 202 when it is still executing
// @Tags        Pool
// @Param       body body api.PoolCreateReqBody true "body"
// @Accept      application/json
// @Produce     application/json
// @Success     201 {object} api.Pool
// @Success     202 {object} api.ExecutingTask
// @Failure     400 {object} api.RspFailBody
// @Failure     409 {object} api.RspFailBody
// @Router      /cluster/pools [post]
func (n *PoolController) StoragePoolCreate(ctx *gin.Context) {
	var req api.PoolCreateReqBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Error("Failed to unmarshal pool create request")
		fail(ctx, http.StatusBadRequest, err.Error())
		return
	}

	pools := n.m.StoragePoolController()
	if err := pools.ValidateCreate(&req); err != nil {
		failWithError(ctx, err)
		return
	}

	result := n.m.TaskManager().Run(ctx.Request.Context(), api.TaskPoolCreate,
		map[string]string{api.TaskMetadataPoolName: req.PoolName},
		func(taskCtx context.Context) error {
			_, err := pools.CreateStoragePool(taskCtx, &req)
			return err
		})

	respondTask(ctx, result, func() {
		sp, err := pools.GetStoragePool(req.PoolName)
		if err != nil {
			failWithError(ctx, err)
			return
		}
		ctx.JSON(http.StatusCreated, sp)
	})
}

// StoragePoolUpdate godoc
// @Summary     Edit a storage pool
// @Description runs a pool/edit task, 202 when it is still executing
// @Tags        Pool
// @Param       poolName path string true "poolName"
// @Param       body body api.PoolUpdateReqBody true "body"
// @Accept      application/json
// @Produce     application/json
// @Success     200 {object} api.Pool
// @Success     202 {object} api.ExecutingTask
// @Failure     404 {object} api.RspFailBody
// @Router      /cluster/pools/{poolName} [put]
func (n *PoolController) StoragePoolUpdate(ctx *gin.Context) {
	poolName := ctx.Param("poolName")

	var req api.PoolUpdateReqBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Error("Failed to unmarshal pool update request")
		fail(ctx, http.StatusBadRequest, err.Error())
		return
	}

	pools := n.m.StoragePoolController()
	if err := pools.ValidateUpdate(poolName, &req); err != nil {
		failWithError(ctx, err)
		return
	}

	result := n.m.TaskManager().Run(ctx.Request.Context(), api.TaskPoolEdit,
		map[string]string{api.TaskMetadataPoolName: poolName},
		func(taskCtx context.Context) error {
			_, err := pools.UpdateStoragePool(taskCtx, poolName, &req)
			return err
		})

	respondTask(ctx, result, func() {
		sp, err := pools.GetStoragePool(poolName)
		if err != nil {
			failWithError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, sp)
	})
}

// StoragePoolDelete godoc
// @Summary     Delete a storage pool
// @Description runs a pool/delete task, 202 when it is still executing
// @Tags        Pool
// @Param       poolName path string true "poolName"
// @Produce     application/json
// @Success     204
// @Success     202 {object} api.ExecutingTask
// @Failure     404 {object} api.RspFailBody
// @Router      /cluster/pools/{poolName} [delete]
func (n *PoolController) StoragePoolDelete(ctx *gin.Context) {
	poolName := ctx.Param("poolName")

	pools := n.m.StoragePoolController()
	if _, err := pools.GetStoragePool(poolName); err != nil {
		failWithError(ctx, err)
		return
	}

	result := n.m.TaskManager().Run(ctx.Request.Context(), api.TaskPoolDelete,
		map[string]string{api.TaskMetadataPoolName: poolName},
		func(taskCtx context.Context) error {
			return pools.DeleteStoragePool(taskCtx, poolName)
		})

	respondTask(ctx, result, func() {
		ctx.Status(http.StatusNoContent)
	})
}
