package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Prototype-Group/sidekick/internal/pkg/pkgconfig"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkgerror"
)

const (
	defaultPollInterval = time.Second
	defaultPollTimeout  = 10 * time.Minute
)

// AllowedExtensions lists the file extensions accepted for direct upload.
var AllowedExtensions = map[string]struct{}{
	"csv": {},
	"zip": {},
}

// Client uploads dataset files to the remote dataset service and tracks
// their processing jobs. It performs no retries: any transport or remote
// failure stops the pipeline and surfaces to the caller.
type Client struct {
	url          string
	token        string
	http         *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// Option adjusts Client construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithPollInterval sets the sleep between status queries.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// WithPollTimeout bounds how long PollJobs waits for terminal states.
func WithPollTimeout(d time.Duration) Option {
	return func(c *Client) { c.pollTimeout = d }
}

// NewClient creates a Client for the given dataset endpoint. A trailing
// slash on url is stripped so equivalent URLs build identical requests.
func NewClient(url, token string, opts ...Option) *Client {
	c := &Client{
		url:          strings.TrimSuffix(url, "/"),
		token:        token,
		http:         &http.Client{Timeout: 5 * time.Minute},
		pollInterval: defaultPollInterval,
		pollTimeout:  defaultPollTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig builds a Client from the client.* configuration keys.
func NewClientFromConfig(cfg pkgconfig.Config, opts ...Option) *Client {
	base := []Option{}
	if d := cfg.GetInt("client.poll_interval_ms"); d > 0 {
		base = append(base, WithPollInterval(time.Duration(d)*time.Millisecond))
	}
	if d := cfg.GetInt("client.poll_timeout_ms"); d > 0 {
		base = append(base, WithPollTimeout(time.Duration(d)*time.Millisecond))
	}
	return NewClient(cfg.GetString("client.url"), cfg.GetString("client.token"), append(base, opts...)...)
}

// URL returns the normalized base endpoint.
func (c *Client) URL() string {
	return c.url
}

// ValidateFile checks that path exists locally and carries an allowed
// extension. It never touches the network.
func ValidateFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return pkgerror.NewValidation(err, pkgerror.CodeMissingFile)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, ok := AllowedExtensions[ext]; !ok {
		return pkgerror.NewValidation(
			fmt.Errorf("file extension %q is not allowed for upload", ext), pkgerror.CodeBadExtension)
	}
	return nil
}

// Initiate opens a new dataset wrapper on the server and returns its id.
func (c *Client) Initiate(ctx context.Context) (string, error) {
	var resp struct {
		DatasetWrapperID string `json:"datasetWrapperId"`
	}
	if err := c.do(ctx, http.MethodPost, c.url, "", nil, &resp); err != nil {
		return "", err
	}
	if resp.DatasetWrapperID == "" {
		return "", pkgerror.NewBadResponse(fmt.Errorf("response carries no dataset wrapper id"))
	}
	return resp.DatasetWrapperID, nil
}

// UploadChunk submits one local file into the wrapper and returns the
// pending job tracking its processing. The file is validated before any
// request is sent.
func (c *Client) UploadChunk(ctx context.Context, wrapperID, path string) (*Job, error) {
	if err := ValidateFile(path); err != nil {
		return nil, err
	}

	body, contentType, err := multipartFile(path)
	if err != nil {
		return nil, err
	}

	var resp struct {
		UploadID string `json:"uploadId"`
	}
	url := c.url + "/" + wrapperID + "/upload"
	if err := c.do(ctx, http.MethodPost, url, contentType, body, &resp); err != nil {
		return nil, err
	}
	if resp.UploadID == "" {
		return nil, pkgerror.NewBadResponse(fmt.Errorf("response carries no upload id"))
	}
	return &Job{ID: resp.UploadID, Status: StatusPending}, nil
}

// Finalize signals that every chunk of the wrapper finished processing.
// Call it only once all jobs reached SUCCESS.
func (c *Client) Finalize(ctx context.Context, wrapperID string) error {
	return c.do(ctx, http.MethodPost, c.url+"/"+wrapperID+"/upload_complete", "", nil, nil)
}

// UploadData runs the full pipeline for a set of local files: validate
// everything, initiate a wrapper, upload each file as one chunk, poll the
// jobs to completion and finalize. Validation failures surface before the
// first request is sent.
func (c *Client) UploadData(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return pkgerror.NewValidation(fmt.Errorf("no files to upload"), pkgerror.CodeMissingFile)
	}
	for _, path := range paths {
		if err := ValidateFile(path); err != nil {
			return err
		}
	}

	wrapperID, err := c.Initiate(ctx)
	if err != nil {
		return err
	}

	jobs := make([]*Job, 0, len(paths))
	for _, path := range paths {
		job, err := c.UploadChunk(ctx, wrapperID, path)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
	}

	if err := c.PollJobs(ctx, wrapperID, jobs); err != nil {
		return err
	}
	return c.Finalize(ctx, wrapperID)
}

// do performs one HTTP call. Connection failures and non-2xx responses
// become transport errors, undecodable bodies become bad-response errors.
func (c *Client) do(ctx context.Context, method, url, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return pkgerror.NewTransport(err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerror.NewTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return pkgerror.NewTransport(
			fmt.Errorf("%s %s: unexpected status %d: %s", method, url, resp.StatusCode, strings.TrimSpace(string(payload))))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerror.NewBadResponse(err)
	}
	return nil
}

// multipartFile builds a multipart body holding the file under the "file"
// field. The body is buffered in memory so the request carries an exact
// content length.
func multipartFile(path string) (io.Reader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", pkgerror.NewValidation(err, pkgerror.CodeMissingFile)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
