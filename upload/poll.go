package upload

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Prototype-Group/sidekick/internal/pkg/pkgerror"
)

// JobStatuses issues one batched status query for the wrapper and returns
// the jobs exactly as the server reported them.
func (c *Client) JobStatuses(ctx context.Context, wrapperID string) ([]Job, error) {
	var resp struct {
		UploadStatuses []struct {
			UploadID string  `json:"uploadId"`
			Status   string  `json:"status"`
			Message  *string `json:"message"`
		} `json:"uploadStatuses"`
	}
	if err := c.do(ctx, http.MethodGet, c.url+"/"+wrapperID+"/uploads", "", nil, &resp); err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(resp.UploadStatuses))
	for _, s := range resp.UploadStatuses {
		status, err := ParseStatus(s.Status)
		if err != nil {
			return nil, pkgerror.NewBadResponse(err)
		}
		job := Job{ID: s.UploadID, Status: status}
		if s.Message != nil {
			job.Message = *s.Message
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// PollJobs queries the wrapper's job statuses until every tracked job
// reaches SUCCESS. A FAILED report stops the loop immediately with a
// remote error carrying the server message; jobs still in flight are left
// to the server. When the timeout elapses with jobs not yet terminal, a
// timeout error is returned instead, since the server-side outcome is
// unknown rather than failed.
//
// The jobs slice is updated in place on every query. Statuses are only
// ever taken from server reports; unknown ids in a report are ignored.
func (c *Client) PollJobs(ctx context.Context, wrapperID string, jobs []*Job) error {
	if len(jobs) == 0 {
		return nil
	}

	tracked := make(map[string]*Job, len(jobs))
	for _, job := range jobs {
		tracked[job.ID] = job
	}

	deadline := time.Now().Add(c.pollTimeout)
	for {
		reported, err := c.JobStatuses(ctx, wrapperID)
		if err != nil {
			return err
		}

		for _, r := range reported {
			job, ok := tracked[r.ID]
			if !ok {
				continue
			}
			job.Status = r.Status
			job.Message = r.Message
		}

		done := true
		for _, job := range jobs {
			if job.Status == StatusFailed {
				return pkgerror.NewRemote(job.Message)
			}
			if job.Status != StatusSuccess {
				done = false
			}
		}
		if done {
			return nil
		}

		if time.Now().After(deadline) {
			return pkgerror.NewTimeout(
				fmt.Sprintf("upload jobs not terminal after %s, server-side state unknown", c.pollTimeout))
		}

		slog.DebugContext(ctx, "upload jobs still processing", "wrapperId", wrapperID, "jobs", len(jobs))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}
