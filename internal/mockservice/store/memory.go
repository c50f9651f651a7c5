package store

import (
	"context"
	"strings"
	"sync"

	"github.com/Prototype-Group/sidekick/internal/mockservice/entity"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkgerror"
)

// Config tunes how the store advances upload statuses.
type Config struct {
	// SuccessAfter is the number of status queries an upload spends in
	// PROCESSING before it reaches SUCCESS. Zero means immediate success
	// on the first query.
	SuccessAfter int

	// FailSubstrings maps a file name fragment to a failure message. An
	// upload whose file name contains the fragment reaches FAILED instead
	// of SUCCESS, carrying the message.
	FailSubstrings map[string]string
}

// InMemoryStore keeps wrappers and their uploads in process memory.
// Statuses advance on read: each status query moves non-terminal uploads
// one step along PENDING, PROCESSING, then their terminal state, which
// gives clients a realistic asynchronous progression to poll against.
type InMemoryStore struct {
	mu       sync.RWMutex
	cfg      Config
	wrappers map[string]*wrapperRecord
}

type wrapperRecord struct {
	mu      sync.Mutex
	wrapper entity.Wrapper
	uploads []*uploadRecord
}

type uploadRecord struct {
	upload  entity.Upload
	queries int
}

func NewInMemoryStore(cfg Config) *InMemoryStore {
	return &InMemoryStore{
		cfg:      cfg,
		wrappers: make(map[string]*wrapperRecord),
	}
}

func (s *InMemoryStore) CreateWrapper(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.wrappers[id]; exists {
		return pkgerror.NewBusiness("wrapper already exists", pkgerror.CodeConflict)
	}

	s.wrappers[id] = &wrapperRecord{
		wrapper: entity.Wrapper{ID: id},
	}

	return nil
}

func (s *InMemoryStore) AddUpload(ctx context.Context, wrapperID string, upload entity.Upload) error {
	rec, err := s.get(wrapperID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.wrapper.Completed {
		return pkgerror.NewBusiness("wrapper already completed", pkgerror.CodeConflict)
	}

	upload.Status = entity.UploadStatusPending
	rec.uploads = append(rec.uploads, &uploadRecord{upload: upload})

	return nil
}

// Statuses returns the current upload states of the wrapper, advancing
// every non-terminal upload by one query step first.
func (s *InMemoryStore) Statuses(ctx context.Context, wrapperID string) ([]entity.Upload, error) {
	rec, err := s.get(wrapperID)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	out := make([]entity.Upload, 0, len(rec.uploads))
	for _, u := range rec.uploads {
		s.advance(u)
		out = append(out, u.upload)
	}

	return out, nil
}

func (s *InMemoryStore) advance(u *uploadRecord) {
	if u.upload.Status.Terminal() {
		return
	}

	if u.queries < s.cfg.SuccessAfter {
		u.upload.Status = entity.UploadStatusProcessing
		u.queries++
		return
	}

	for fragment, message := range s.cfg.FailSubstrings {
		if strings.Contains(u.upload.FileName, fragment) {
			u.upload.Status = entity.UploadStatusFailed
			u.upload.Message = message
			return
		}
	}

	u.upload.Status = entity.UploadStatusSuccess
}

// Complete marks the wrapper finished. Every upload must have reached
// SUCCESS first.
func (s *InMemoryStore) Complete(ctx context.Context, wrapperID string) error {
	rec, err := s.get(wrapperID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.wrapper.Completed {
		return pkgerror.NewBusiness("wrapper already completed", pkgerror.CodeConflict)
	}
	for _, u := range rec.uploads {
		if u.upload.Status != entity.UploadStatusSuccess {
			return pkgerror.NewBusiness("wrapper has uploads not yet succeeded", pkgerror.CodeConflict)
		}
	}

	rec.wrapper.Completed = true

	return nil
}

func (s *InMemoryStore) get(wrapperID string) (*wrapperRecord, error) {
	s.mu.RLock()
	rec, ok := s.wrappers[wrapperID]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}
