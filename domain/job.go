package domain

import (
	"slices"
	"time"
)

// Job statuses. Progression is accepted -> started -> (paused) ->
// succeeded | failed; dismissed is reachable from any non-terminal state.
const (
	StatusAccepted  = "accepted"
	StatusStarted   = "started"
	StatusPaused    = "paused"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusDismissed = "dismissed"
)

// Status categories group literal statuses for coarse filtering.
const (
	CategoryRunning  = "running"
	CategoryFinished = "finished"
)

// StatusValues lists every literal job status.
var StatusValues = []string{
	StatusAccepted,
	StatusStarted,
	StatusPaused,
	StatusSucceeded,
	StatusFailed,
	StatusDismissed,
}

// StatusCategories maps a category name to its member statuses.
var StatusCategories = map[string][]string{
	CategoryRunning:  {StatusAccepted, StatusStarted, StatusPaused},
	CategoryFinished: {StatusSucceeded, StatusFailed, StatusDismissed},
}

// IsValidStatus reports whether s is a member of the status vocabulary.
func IsValidStatus(s string) bool {
	return slices.Contains(StatusValues, s)
}

// Job sort keys accepted by the listing surface.
const (
	SortCreated  = "created"
	SortFinished = "finished"
	SortStatus   = "status"
	SortProcess  = "process"
	SortService  = "service"
	SortUser     = "user"
)

// Well-known job tags. Every job carries an environment tag, exactly one
// of workflow/single and exactly one of async/sync; the public tag marks
// jobs visible to unauthenticated listing.
const (
	TagPublic   = "public"
	TagWorkflow = "workflow"
	TagSingle   = "single"
	TagAsync    = "async"
	TagSync     = "sync"
)

// Job tracks one asynchronous OWS process execution. Finished is nil
// until the job reaches a terminal status.
type Job struct {
	TaskID     string     `bson:"task_id" json:"task_id"`
	UserID     string     `bson:"user_id" json:"user_id,omitempty"`
	Service    string     `bson:"service" json:"service,omitempty"`
	Process    string     `bson:"process" json:"process"`
	Status     string     `bson:"status" json:"status"`
	IsWorkflow bool       `bson:"is_workflow" json:"is_workflow"`
	Created    time.Time  `bson:"created" json:"created"`
	Finished   *time.Time `bson:"finished,omitempty" json:"finished,omitempty"`
	Tags       []string   `bson:"tags" json:"tags"`
}

// Finish marks the job finished at t. It is idempotent.
func (j *Job) Finish(t time.Time) {
	if j.Finished == nil {
		j.Finished = &t
	}
}

// Tagged reports whether the job carries the given tag.
func (j *Job) Tagged(tag string) bool {
	return slices.Contains(j.Tags, tag)
}
