package user

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	usererrors "github.com/Petros-Code/Pointeuse-MeduzaStore/internal/user/errors"
)

// fileRepository stores all users in one JSON array file, rewritten
// atomically on every change.
type fileRepository struct {
	path string
	mu   sync.RWMutex
}

func NewFileRepository(dataDir string) (Repository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &fileRepository{path: filepath.Join(dataDir, "users.json")}, nil
}

func (r *fileRepository) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll()
	if err != nil {
		return err
	}
	for _, existing := range users {
		if existing.Username == u.Username {
			return usererrors.ErrUserAlreadyExists
		}
	}

	users = append(users, *u)
	return r.writeAll(users)
}

func (r *fileRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, usererrors.ErrUserNotFound
}

func (r *fileRepository) FindByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID.String() == id {
			return &u, nil
		}
	}
	return nil, usererrors.ErrUserNotFound
}

func (r *fileRepository) FindAll(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.readAll()
}

func (r *fileRepository) readAll() ([]User, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("corrupt JSON in %s: %w", r.path, err)
	}
	return users, nil
}

func (r *fileRepository) writeAll(users []User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}

	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
