package api

import (
	"sort"
	"strings"
	"time"
)

const (
	TaskPoolCreate = "pool/create"
	TaskPoolEdit   = "pool/edit"
	TaskPoolDelete = "pool/delete"

	// TaskMetadataPoolName identifies the target pool of a pool task
	TaskMetadataPoolName = "pool_name"
)

// Task identifies a background operation by name and metadata
type Task struct {
	Name     string            `json:"name"`
	Metadata map[string]string `json:"metadata"`
}

// ExecutingTask is a task that has been submitted and has not finished yet
type ExecutingTask struct {
	Task      `json:",inline"`
	BeginTime time.Time `json:"begin_time"`
	Progress  int       `json:"progress"`
}

// FinishedTask is a task which completed, successfully or not
type FinishedTask struct {
	Task      `json:",inline"`
	BeginTime time.Time     `json:"begin_time,omitempty"`
	EndTime   time.Time     `json:"end_time,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Success   bool          `json:"success"`
	Exception string        `json:"exception,omitempty"`
}

// TaskSummary
type TaskSummary struct {
	ExecutingTasks []ExecutingTask `json:"executing_tasks"`
	FinishedTasks  []FinishedTask  `json:"finished_tasks"`
}

// NewTask copies the metadata so later changes by the caller are not visible
func NewTask(name string, metadata map[string]string) Task {
	md := make(map[string]string, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}
	return Task{Name: name, Metadata: md}
}

// Key is a stable identity of name plus metadata
func (t Task) Key() string {
	keys := make([]string, 0, len(t.Metadata))
	for k := range t.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(t.Name)
	for _, k := range keys {
		b.WriteString("|")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(t.Metadata[k])
	}
	return b.String()
}

// Verb returns the part after the last '/', e.g. "delete" for "pool/delete"
func (t Task) Verb() string {
	if i := strings.LastIndex(t.Name, "/"); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}
