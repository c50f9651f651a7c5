package inbound

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Prototype-Group/sidekick/internal/pkg/pkgerror"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkgrouter"
)

type HTTPEndpoint struct {
	svc service
}

func (h *HTTPEndpoint) CreateWrapper(ctx context.Context, r *http.Request) (any, error) {
	id, err := h.svc.CreateWrapper(ctx)
	if err != nil {
		return nil, err
	}

	return CreateWrapperResponse{DatasetWrapperID: id}, nil
}

func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	wrapperID := pkgrouter.GetParam(ctx, "wrapperId")

	fileName, size, err := drainMultipartFile(r)
	if err != nil {
		return nil, err
	}

	id, err := h.svc.ReceiveUpload(ctx, wrapperID, fileName, size)
	if err != nil {
		return nil, err
	}

	return UploadResponse{UploadID: id}, nil
}

func (h *HTTPEndpoint) Statuses(ctx context.Context, r *http.Request) (any, error) {
	wrapperID := pkgrouter.GetParam(ctx, "wrapperId")

	uploads, err := h.svc.Statuses(ctx, wrapperID)
	if err != nil {
		return nil, err
	}

	statuses := make([]UploadStatus, 0, len(uploads))
	for _, u := range uploads {
		s := UploadStatus{UploadID: u.ID, Status: string(u.Status)}
		if u.Message != "" {
			s.Message = &u.Message
		}
		statuses = append(statuses, s)
	}

	return StatusesResponse{UploadStatuses: statuses}, nil
}

func (h *HTTPEndpoint) Complete(ctx context.Context, r *http.Request) (any, error) {
	wrapperID := pkgrouter.GetParam(ctx, "wrapperId")

	if err := h.svc.Complete(ctx, wrapperID); err != nil {
		return nil, err
	}

	return nil, nil
}

// drainMultipartFile consumes the "file" part of the request, returning
// its name and byte count. The mock service never retains chunk content.
func drainMultipartFile(r *http.Request) (string, int64, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return "", 0, pkgerror.NewValidation(errors.New("request body must be multipart"), pkgerror.CodeBadValueType)
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", 0, pkgerror.NewValidation(errors.New("file part is required"), pkgerror.CodeBadValueType)
			}
			return "", 0, pkgerror.NewServer(err)
		}

		if part.FormName() != "file" {
			_ = part.Close()
			continue
		}

		size, err := io.Copy(io.Discard, part)
		_ = part.Close()
		if err != nil {
			return "", 0, pkgerror.NewServer(err)
		}

		return part.FileName(), size, nil
	}
}
