package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCategories(t *testing.T) {
	assert.ElementsMatch(t, []string{StatusAccepted, StatusStarted, StatusPaused}, StatusCategories[CategoryRunning])
	assert.ElementsMatch(t, []string{StatusSucceeded, StatusFailed, StatusDismissed}, StatusCategories[CategoryFinished])

	// every category member is a valid literal status
	for category, members := range StatusCategories {
		for _, status := range members {
			assert.True(t, IsValidStatus(status), "category %s member %s", category, status)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range StatusValues {
		assert.True(t, IsValidStatus(status))
	}
	assert.False(t, IsValidStatus("running"))
	assert.False(t, IsValidStatus(""))
}

func TestJobTagged(t *testing.T) {
	job := &Job{Tags: []string{"dev", TagSingle, TagAsync}}
	assert.True(t, job.Tagged(TagAsync))
	assert.False(t, job.Tagged(TagPublic))
}
