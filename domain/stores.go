package domain

import "context"

// TokenStore persists access tokens. There is no update operation:
// tokens are immutable once issued and revoked by deletion.
type TokenStore interface {
	SaveToken(ctx context.Context, token *AccessToken) error
	DeleteToken(ctx context.Context, token string) error
	// FetchByToken returns ErrTokenNotFound when no record matches.
	FetchByToken(ctx context.Context, token string) (*AccessToken, error)
	ClearTokens(ctx context.Context) error
}

// ServiceStore persists registered OWS services. Name and base URL are
// unique; uniqueness is enforced by storage-level constraints, not by
// check-then-insert in the application layer.
type ServiceStore interface {
	// SaveService registers a service, resolving its name and base URL.
	// With overwrite disabled a colliding URL fails with
	// ErrServiceRegistered and a colliding name with ErrServiceNameTaken,
	// in both cases without mutating the registry.
	SaveService(ctx context.Context, service *Service, overwrite bool) (*Service, error)
	DeleteService(ctx context.Context, name string) (bool, error)
	// FetchByName returns ErrServiceNotFound when absent.
	FetchByName(ctx context.Context, name string) (*Service, error)
	// FetchByURL matches on the base URL and returns ErrServiceNotFound
	// when absent.
	FetchByURL(ctx context.Context, url string) (*Service, error)
	// ListServices returns all services ordered by name, ascending.
	ListServices(ctx context.Context) ([]*Service, error)
	ClearServices(ctx context.Context) (bool, error)
	// IsPublic propagates ErrServiceNotFound on lookup miss; deciding
	// fail-open or fail-closed is the caller's policy.
	IsPublic(ctx context.Context, name string) (bool, error)
}

// SaveJobOptions carries the caller-supplied attributes of a new job.
type SaveJobOptions struct {
	TaskID     string
	Process    string
	Service    string
	IsWorkflow bool
	UserID     string
	Async      bool
	CustomTags []string
}

// JobFilter narrows a job search. Zero values mean "no filter" except
// Limit, which callers default before querying.
type JobFilter struct {
	Page    int
	Limit   int
	Process string
	Service string
	Tags    []string
	Access  string
	Status  string
	Sort    string
}

// Access scoping modes for job searches.
const (
	AccessPublic  = "public"
	AccessPrivate = "private"
	AccessAll     = "all"
)

// AccessClaims identifies the caller of a job search.
type AccessClaims struct {
	UserID string
	Admin  bool
}

// JobStore persists tracked executions and answers filtered listings.
type JobStore interface {
	// SaveJob inserts a new job with status accepted and re-reads it so
	// the caller gets the normalized record. Insert plus readback is one
	// logical operation: a readback miss fails with ErrJobRegistration.
	SaveJob(ctx context.Context, opts SaveJobOptions) (*Job, error)
	// UpdateJob patches the record keyed by TaskID and succeeds only if
	// exactly one document was modified.
	UpdateJob(ctx context.Context, job *Job) (*Job, error)
	DeleteJob(ctx context.Context, taskID string) (bool, error)
	// FetchByID returns ErrJobNotFound when absent.
	FetchByID(ctx context.Context, taskID string) (*Job, error)
	// ListJobs returns all jobs ordered by task id, ascending.
	ListJobs(ctx context.Context) ([]*Job, error)
	// FindJobs returns one page of matching jobs and the pre-pagination
	// match count.
	FindJobs(ctx context.Context, claims AccessClaims, filter JobFilter) ([]*Job, int64, error)
	ClearJobs(ctx context.Context) (bool, error)
}
