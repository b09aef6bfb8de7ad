package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/geofront-io/geofront/domain"
)

// JobRepository implements domain.JobStore on MongoDB.
type JobRepository struct {
	coll *mongo.Collection
	// environmentTag is attached to every job, e.g. "dev" or "prod".
	environmentTag string
}

func NewJobRepository(db *mongo.Database, environmentTag string) *JobRepository {
	if environmentTag == "" {
		environmentTag = "dev"
	}
	return &JobRepository{coll: db.Collection(JobsCollection), environmentTag: environmentTag}
}

// SaveJob inserts a new accepted job and re-reads it to return the
// normalized record. Insert plus readback is one logical operation.
func (r *JobRepository) SaveJob(ctx context.Context, opts domain.SaveJobOptions) (*domain.Job, error) {
	tags := []string{r.environmentTag}
	tags = append(tags, opts.CustomTags...)
	if opts.IsWorkflow {
		tags = append(tags, domain.TagWorkflow)
	} else {
		tags = append(tags, domain.TagSingle)
	}
	if opts.Async {
		tags = append(tags, domain.TagAsync)
	} else {
		tags = append(tags, domain.TagSync)
	}

	if _, err := r.coll.InsertOne(ctx, &domain.Job{
		TaskID:     opts.TaskID,
		UserID:     opts.UserID,
		Service:    opts.Service,
		Process:    opts.Process,
		Status:     domain.StatusAccepted,
		IsWorkflow: opts.IsWorkflow,
		Created:    time.Now().UTC(),
		Tags:       tags,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrJobRegistration, err)
	}

	job, err := r.FetchByID(ctx, opts.TaskID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve registered job %s", domain.ErrJobRegistration, opts.TaskID)
	}
	return job, nil
}

// UpdateJob applies the job's fields as a patch keyed by task id. It
// succeeds only if exactly one document was modified; anything else,
// including an unknown task id or a no-op patch, is an update error.
func (r *JobRepository) UpdateJob(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	if !domain.IsValidStatus(job.Status) {
		return nil, fmt.Errorf("%w: invalid status %q for job %s", domain.ErrJobUpdate, job.Status, job.TaskID)
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"task_id": job.TaskID}, bson.M{"$set": bson.M{
		"user_id":     job.UserID,
		"service":     job.Service,
		"process":     job.Process,
		"status":      job.Status,
		"is_workflow": job.IsWorkflow,
		"created":     job.Created,
		"finished":    job.Finished,
		"tags":        job.Tags,
	}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrJobUpdate, err)
	}
	if result.ModifiedCount != 1 {
		return nil, fmt.Errorf("%w: failed to update specified job: %s", domain.ErrJobUpdate, job.TaskID)
	}
	return r.FetchByID(ctx, job.TaskID)
}

func (r *JobRepository) DeleteJob(ctx context.Context, taskID string) (bool, error) {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"task_id": taskID}); err != nil {
		return false, err
	}
	return true, nil
}

func (r *JobRepository) FetchByID(ctx context.Context, taskID string) (*domain.Job, error) {
	var job domain.Job
	err := r.coll.FindOne(ctx, bson.M{"task_id": taskID}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: could not find job matching %s", domain.ErrJobNotFound, taskID)
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "task_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var jobs []*domain.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// FindJobs returns one page of jobs matching the filter under the
// caller's access scope, and the pre-pagination match count.
func (r *JobRepository) FindJobs(ctx context.Context, claims domain.AccessClaims, filter domain.JobFilter) ([]*domain.Job, int64, error) {
	search := buildJobSearch(claims, filter)
	sortKey, sortOrder := jobSortCriteria(filter.Sort)

	count, err := r.coll.CountDocuments(ctx, search)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortKey, Value: sortOrder}}).
		SetSkip(int64(filter.Page * filter.Limit)).
		SetLimit(int64(filter.Limit))
	cursor, err := r.coll.Find(ctx, search, opts)
	if err != nil {
		return nil, 0, err
	}
	var jobs []*domain.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, 0, err
	}
	return jobs, count, nil
}

func (r *JobRepository) ClearJobs(ctx context.Context) (bool, error) {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return false, err
	}
	return true, nil
}

// buildJobSearch translates access scoping and field filters into a
// mongo query. Access modes are mutually exclusive: public restricts to
// public-tagged jobs, private to the caller's unpublished jobs, all is
// admin-only and unrestricted; everything else scopes by supplied tags
// and ownership.
func buildJobSearch(claims domain.AccessClaims, filter domain.JobFilter) bson.M {
	search := bson.M{}
	switch {
	case filter.Access == domain.AccessPublic:
		search["tags"] = domain.TagPublic
	case filter.Access == domain.AccessPrivate:
		search["tags"] = bson.M{"$ne": domain.TagPublic}
		search["user_id"] = claims.UserID
	case filter.Access == domain.AccessAll && claims.Admin:
		// no restriction
	default:
		if len(filter.Tags) > 0 {
			search["tags"] = bson.M{"$all": filter.Tags}
		}
		search["user_id"] = claims.UserID
	}

	if members, ok := domain.StatusCategories[filter.Status]; ok {
		search["status"] = bson.M{"$in": members}
	} else if filter.Status != "" {
		search["status"] = filter.Status
	}

	if filter.Process != "" {
		search["process"] = filter.Process
	}
	if filter.Service != "" {
		search["service"] = filter.Service
	}
	return search
}

// jobSortCriteria resolves the sort key and direction: creation time by
// default, the owner field for the "user" key, descending only for
// creation and finish times.
func jobSortCriteria(sort string) (string, int) {
	switch sort {
	case "":
		sort = domain.SortCreated
	case domain.SortUser:
		sort = "user_id"
	}
	if sort == domain.SortCreated || sort == domain.SortFinished {
		return sort, -1
	}
	return sort, 1
}

var _ domain.JobStore = (*JobRepository)(nil)
