package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/contracthq/contracts-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

var (
	ErrFileTooLarge     = errors.New("file exceeds the maximum allowed size")
	ErrInvalidExtension = errors.New("file extension is not allowed")
)

// maxDocumentSize is 10 MiB.
const maxDocumentSize = 10 << 20

// documentURLExpiry bounds presigned URLs when the backing store is
// object storage; local storage ignores it.
const documentURLExpiry = 24 * time.Hour

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// Service stores contract documents behind the FileStorage abstraction.
type Service struct {
	storage storage.FileStorage
}

func NewService(fileStorage storage.FileStorage) *Service {
	return &Service{storage: fileStorage}
}

// Upload validates and stores a document, returning its public URL and
// storage path. Files are keyed by a fresh UUID so names never collide.
func (s *Service) Upload(ctx context.Context, contractID, fileName string, size int64, reader io.Reader) (url string, path string, err error) {
	if size > maxDocumentSize {
		return "", "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return "", "", ErrInvalidExtension
	}

	path = fmt.Sprintf("contracts/%s/%s%s", contractID, uuid.NewString(), ext)
	if _, err := s.storage.Upload(ctx, reader, path, contentType); err != nil {
		return "", "", fmt.Errorf("failed to upload document: %w", err)
	}

	url, err = s.storage.GetURL(ctx, path, documentURLExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve document URL: %w", err)
	}
	return url, path, nil
}

func (s *Service) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, path)
}

func (s *Service) Delete(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}
