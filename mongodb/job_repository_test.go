package mongodb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofront-io/geofront/domain"
	"github.com/geofront-io/geofront/mongodb/testutil"
)

func TestJobRepositorySaveAndUpdate(t *testing.T) {
	db, cleanup := testutil.SetupTestMongoDB(t, "geofront_jobs")
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, EnsureIndexes(ctx, db))
	repo := NewJobRepository(db, "dev")

	t.Run("save composes tags and accepts the job", func(t *testing.T) {
		job, err := repo.SaveJob(ctx, domain.SaveJobOptions{
			TaskID:     uuid.NewString(),
			Process:    "subset",
			Service:    "flyingpigeon",
			UserID:     "alice",
			Async:      true,
			CustomTags: []string{"ops"},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, job.Status)
		assert.False(t, job.Created.IsZero())
		assert.Contains(t, job.Tags, "dev")
		assert.Contains(t, job.Tags, "ops")
		assert.Contains(t, job.Tags, domain.TagSingle)
		assert.NotContains(t, job.Tags, domain.TagWorkflow)
		assert.Contains(t, job.Tags, domain.TagAsync)
		assert.NotContains(t, job.Tags, domain.TagSync)
	})

	t.Run("workflow sync job gets the complementary tags", func(t *testing.T) {
		job, err := repo.SaveJob(ctx, domain.SaveJobOptions{
			TaskID:     uuid.NewString(),
			Process:    "workflow-run",
			IsWorkflow: true,
		})
		require.NoError(t, err)
		assert.Contains(t, job.Tags, domain.TagWorkflow)
		assert.Contains(t, job.Tags, domain.TagSync)
	})

	t.Run("duplicate task id fails", func(t *testing.T) {
		taskID := uuid.NewString()
		_, err := repo.SaveJob(ctx, domain.SaveJobOptions{TaskID: taskID, Process: "subset"})
		require.NoError(t, err)
		_, err = repo.SaveJob(ctx, domain.SaveJobOptions{TaskID: taskID, Process: "subset"})
		assert.ErrorIs(t, err, domain.ErrJobRegistration)
	})

	t.Run("update transitions status", func(t *testing.T) {
		job, err := repo.SaveJob(ctx, domain.SaveJobOptions{TaskID: uuid.NewString(), Process: "subset"})
		require.NoError(t, err)

		job.Status = domain.StatusStarted
		updated, err := repo.UpdateJob(ctx, job)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusStarted, updated.Status)
	})

	t.Run("update of unknown job fails naming it", func(t *testing.T) {
		err := func() error {
			_, err := repo.UpdateJob(ctx, &domain.Job{
				TaskID: "no-such-task", Status: domain.StatusStarted,
			})
			return err
		}()
		require.ErrorIs(t, err, domain.ErrJobUpdate)
		assert.Contains(t, err.Error(), "no-such-task")
	})

	t.Run("update with invalid status fails", func(t *testing.T) {
		_, err := repo.UpdateJob(ctx, &domain.Job{TaskID: "any", Status: "exploded"})
		assert.ErrorIs(t, err, domain.ErrJobUpdate)
	})
}

func TestJobRepositoryFindJobs(t *testing.T) {
	db, cleanup := testutil.SetupTestMongoDB(t, "geofront_jobs_find")
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, EnsureIndexes(ctx, db))
	repo := NewJobRepository(db, "dev")

	// 25 async jobs owned by alice, every fifth one public
	for i := 0; i < 25; i++ {
		opts := domain.SaveJobOptions{
			TaskID:  fmt.Sprintf("task-%02d", i),
			Process: "subset",
			Service: "flyingpigeon",
			UserID:  "alice",
			Async:   true,
		}
		if i%5 == 0 {
			opts.CustomTags = []string{domain.TagPublic}
		}
		_, err := repo.SaveJob(ctx, opts)
		require.NoError(t, err)
	}
	// one job owned by bob
	_, err := repo.SaveJob(ctx, domain.SaveJobOptions{
		TaskID: "bob-task", Process: "subset", UserID: "bob", Async: true,
	})
	require.NoError(t, err)

	alice := domain.AccessClaims{UserID: "alice"}
	admin := domain.AccessClaims{UserID: "root", Admin: true}

	t.Run("pagination returns one page but counts all matches", func(t *testing.T) {
		jobs, count, err := repo.FindJobs(ctx, alice, domain.JobFilter{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, jobs, 10)
		assert.EqualValues(t, 25, count)
	})

	t.Run("public access returns only public-tagged jobs", func(t *testing.T) {
		jobs, count, err := repo.FindJobs(ctx, alice, domain.JobFilter{
			Access: domain.AccessPublic, Limit: 50,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 5, count)
		for _, job := range jobs {
			assert.True(t, job.Tagged(domain.TagPublic))
		}
	})

	t.Run("private access returns only owned unpublished jobs", func(t *testing.T) {
		jobs, count, err := repo.FindJobs(ctx, alice, domain.JobFilter{
			Access: domain.AccessPrivate, Limit: 50,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 20, count)
		for _, job := range jobs {
			assert.Equal(t, "alice", job.UserID)
			assert.False(t, job.Tagged(domain.TagPublic))
		}
	})

	t.Run("all access spans owners for admins", func(t *testing.T) {
		_, count, err := repo.FindJobs(ctx, admin, domain.JobFilter{
			Access: domain.AccessAll, Limit: 50,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 26, count)
	})

	t.Run("status category filter", func(t *testing.T) {
		job, err := repo.FetchByID(ctx, "task-01")
		require.NoError(t, err)
		job.Status = domain.StatusSucceeded
		job.Finish(time.Now().UTC())
		updated, err := repo.UpdateJob(ctx, job)
		require.NoError(t, err)
		require.NotNil(t, updated.Finished)

		_, count, err := repo.FindJobs(ctx, alice, domain.JobFilter{
			Status: domain.CategoryFinished, Limit: 50,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("default sort is creation time descending", func(t *testing.T) {
		jobs, _, err := repo.FindJobs(ctx, alice, domain.JobFilter{Limit: 50})
		require.NoError(t, err)
		require.NotEmpty(t, jobs)
		for i := 1; i < len(jobs); i++ {
			assert.False(t, jobs[i].Created.After(jobs[i-1].Created))
		}
	})
}
