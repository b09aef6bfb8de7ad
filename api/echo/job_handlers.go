package echo

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/geofront-io/geofront/domain"
)

const (
	defaultJobPage  = 0
	defaultJobLimit = 10
)

type jobListResponse struct {
	Jobs  []string `json:"jobs"`
	Count int64    `json:"count"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
}

// ListJobsHandler answers the reporting surface: a filtered, paginated
// listing of tracked job ids with the pre-pagination match count.
func (a *API) ListJobsHandler(c echo.Context) error {
	filter := domain.JobFilter{
		Page:    intQueryParam(c, "page", defaultJobPage),
		Limit:   intQueryParam(c, "limit", defaultJobLimit),
		Status:  c.QueryParam("status"),
		Process: c.QueryParam("process"),
		Service: c.QueryParam("service"),
		Access:  c.QueryParam("access"),
		Sort:    c.QueryParam("sort"),
	}
	if tags := c.QueryParam("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	jobs, count, err := a.jobs.FindJobs(c.Request().Context(), callerClaims(c), filter)
	if err != nil {
		return writeError(c, err)
	}

	ids := make([]string, 0, len(jobs))
	for _, job := range jobs {
		ids = append(ids, job.TaskID)
	}
	return c.JSON(http.StatusOK, jobListResponse{
		Jobs:  ids,
		Count: count,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
