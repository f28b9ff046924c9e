package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// identityPath is where the pet identity lives, next to the database.
func identityPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "pet_id")
}

// loadPetID reads the pet identity from path, creating one on first run.
func loadPetID(path string) (uuid.UUID, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		id, parseErr := uuid.Parse(strings.TrimSpace(string(data)))
		if parseErr == nil {
			return id, nil
		}
		return uuid.Nil, fmt.Errorf("corrupt pet identity %s: %w", path, parseErr)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return uuid.Nil, fmt.Errorf("cannot read pet identity: %w", err)
	}

	id := uuid.New()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return uuid.Nil, fmt.Errorf("cannot create identity directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(id.String()+"\n"), 0o600); err != nil {
		return uuid.Nil, fmt.Errorf("cannot write pet identity: %w", err)
	}
	return id, nil
}
