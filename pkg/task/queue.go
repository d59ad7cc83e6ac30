package task

import (
	log "github.com/sirupsen/logrus"
	"k8s.io/client-go/util/workqueue"
)

// TaskQueue hands submitted task ids to the workers, an id is never processed by two
// workers at the same time
type TaskQueue struct {
	queue  workqueue.Interface
	logger *log.Entry
}

// NewTaskQueue creates a queue
func NewTaskQueue(queueName string) *TaskQueue {
	return &TaskQueue{
		queue:  workqueue.NewNamed(queueName),
		logger: log.WithField("TaskQueue", queueName),
	}
}

// Add a task into the queue
func (q *TaskQueue) Add(id string) {
	q.queue.Add(id)
}

// Get a task from queue. It's a blocking call
func (q *TaskQueue) Get() (string, bool) {
	item, shutdown := q.queue.Get()
	if item == nil {
		return "", true
	}
	return item.(string), shutdown
}

// Done completes the task and remove from the queue
func (q *TaskQueue) Done(id string) {
	q.queue.Done(id)
}

// Len is the number of tasks waiting for a worker
func (q *TaskQueue) Len() int {
	return q.queue.Len()
}

// Shutdown the queue
func (q *TaskQueue) Shutdown() {
	q.logger.Debug("Shutting down")
	q.queue.ShutDown()
}
