package manager

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/poolconsole/pkg/apiserver/manager/storage"
	"github.com/hwameistor/poolconsole/pkg/task"
)

type ServerManager struct {
	logger *log.Entry

	spController *storage.StoragePoolController
	taskManager  *task.Manager
}

func NewServerManager(spController *storage.StoragePoolController, taskManager *task.Manager) (*ServerManager, error) {
	return &ServerManager{
		logger:       log.WithField("Module", "ServerManager"),
		spController: spController,
		taskManager:  taskManager,
	}, nil
}

// Start runs the background task workers until ctx is done
func (m *ServerManager) Start(ctx context.Context) {
	m.logger.Info("Starting server manager")
	m.taskManager.Start(ctx)
}

func (m *ServerManager) StoragePoolController() *storage.StoragePoolController {
	return m.spController
}

func (m *ServerManager) TaskManager() *task.Manager {
	return m.taskManager
}
