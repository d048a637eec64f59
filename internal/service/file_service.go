package service

import (
	"github.com/iot-kit/sensor-gateway/internal/storage"
	apperrors "github.com/iot-kit/sensor-gateway/pkg/util"
)

// FileService exposes the lab file-CRUD operations on top of a
// path-confined store.
type FileService struct {
	files *storage.FileStore
}

// NewFileService builds the service.
func NewFileService(files *storage.FileStore) *FileService {
	return &FileService{files: files}
}

// List returns all stored file names, relative to the store root.
func (s *FileService) List() ([]string, error) {
	names, err := s.files.List()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// CreateAuto stores content under the next free auto-generated name.
func (s *FileService) CreateAuto(content string) (string, error) {
	name, err := s.files.NextName()
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if err := s.files.Write(name, content); err != nil {
		return "", s.mapErr(err, name)
	}
	return name, nil
}

// Read returns the content of the named file.
func (s *FileService) Read(name string) (string, error) {
	content, err := s.files.Read(name)
	if err != nil {
		return "", s.mapErr(err, name)
	}
	return content, nil
}

// Update overwrites an existing file.
func (s *FileService) Update(name, content string) error {
	if err := s.files.Update(name, content); err != nil {
		return s.mapErr(err, name)
	}
	return nil
}

// Delete removes a file.
func (s *FileService) Delete(name string) error {
	if err := s.files.Delete(name); err != nil {
		return s.mapErr(err, name)
	}
	return nil
}

func (s *FileService) mapErr(err error, name string) error {
	switch err {
	case storage.ErrNotFound:
		return apperrors.NewNotFound("file", map[string]any{"filename": name})
	case storage.ErrInvalidPath:
		return apperrors.NewValidationError("invalid path", map[string]any{"filename": name})
	default:
		return apperrors.NewInternalError(err)
	}
}
