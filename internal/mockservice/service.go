package mockservice

import (
	"context"
	"strconv"

	"github.com/Prototype-Group/sidekick/internal/mockservice/entity"
	"github.com/Prototype-Group/sidekick/internal/mockservice/store"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkguid"
)

// Service implements the dataset service semantics on top of the
// in-memory store. Wrapper ids are UUIDs, upload ids are snowflakes so
// they sort by arrival.
type Service struct {
	store     *store.InMemoryStore
	wrapperID pkguid.StringID
	uploadID  pkguid.NumberID
}

func NewService(st *store.InMemoryStore, wrapperID pkguid.StringID, uploadID pkguid.NumberID) *Service {
	return &Service{store: st, wrapperID: wrapperID, uploadID: uploadID}
}

func (s *Service) CreateWrapper(ctx context.Context) (string, error) {
	id := s.wrapperID.Generate()
	if err := s.store.CreateWrapper(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) ReceiveUpload(ctx context.Context, wrapperID, fileName string, size int64) (string, error) {
	id := strconv.FormatInt(s.uploadID.Generate(), 10)
	upload := entity.Upload{ID: id, FileName: fileName, Size: size}
	if err := s.store.AddUpload(ctx, wrapperID, upload); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) Statuses(ctx context.Context, wrapperID string) ([]entity.Upload, error) {
	return s.store.Statuses(ctx, wrapperID)
}

func (s *Service) Complete(ctx context.Context, wrapperID string) error {
	return s.store.Complete(ctx, wrapperID)
}
