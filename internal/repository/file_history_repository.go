package repository

import (
	"context"
	"errors"
	"io/fs"

	"github.com/noah-isme/checklist-epi-api/pkg/storage"
)

// FileHistoryRepository stores history as <key>.json on local storage.
type FileHistoryRepository struct {
	storage *storage.LocalStorage
}

// NewFileHistoryRepository constructs the repository.
func NewFileHistoryRepository(store *storage.LocalStorage) *FileHistoryRepository {
	return &FileHistoryRepository{storage: store}
}

// Read returns the payload stored under key.
func (r *FileHistoryRepository) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := r.storage.Read(key + ".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write atomically replaces the file for key.
func (r *FileHistoryRepository) Write(ctx context.Context, key string, payload []byte) error {
	_, err := r.storage.Save(key+".json", payload)
	return err
}
