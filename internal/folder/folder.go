// Package folder manages custom sentence folders.
//
// Folders and the current selection live in the key-value store; every
// mutation is a serialized read-modify-write so concurrent callers
// cannot lose updates.
package folder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/verte-zerg/taja/internal/model"
	"github.com/verte-zerg/taja/internal/storage"
)

// Folder errors.
var (
	ErrNotFound      = errors.New("folder not found")
	ErrEmptyName     = errors.New("folder name is empty")
	ErrDuplicateName = errors.New("folder name already exists")
	ErrEmptySentence = errors.New("sentence is empty")
)

// Manager performs folder operations over the store.
type Manager struct {
	kv storage.KV
	mu sync.Mutex
}

// NewManager returns a Manager over kv.
func NewManager(kv storage.KV) *Manager {
	return &Manager{kv: kv}
}

// List returns all folders in their stored order.
func (m *Manager) List(ctx context.Context) ([]model.SentenceFolder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

// Get returns the folder with the given id.
func (m *Manager) Get(ctx context.Context, id string) (model.SentenceFolder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	folders, err := m.load(ctx)
	if err != nil {
		return model.SentenceFolder{}, err
	}
	for _, f := range folders {
		if f.ID == id {
			return f, nil
		}
	}
	return model.SentenceFolder{}, ErrNotFound
}

// FindByName returns the folder with the given name.
func (m *Manager) FindByName(ctx context.Context, name string) (model.SentenceFolder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	folders, err := m.load(ctx)
	if err != nil {
		return model.SentenceFolder{}, err
	}
	for _, f := range folders {
		if f.Name == name {
			return f, nil
		}
	}
	return model.SentenceFolder{}, ErrNotFound
}

// Create adds an empty folder. Names must be unique and non-blank.
func (m *Manager) Create(ctx context.Context, name string) (model.SentenceFolder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.SentenceFolder{}, ErrEmptyName
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	folders, err := m.load(ctx)
	if err != nil {
		return model.SentenceFolder{}, err
	}
	for _, f := range folders {
		if f.Name == name {
			return model.SentenceFolder{}, ErrDuplicateName
		}
	}
	created := model.SentenceFolder{
		ID:        uuid.NewString(),
		Name:      name,
		Sentences: []string{},
	}
	folders = append(folders, created)
	if err := m.save(ctx, folders); err != nil {
		return model.SentenceFolder{}, err
	}
	return created, nil
}

// Rename changes a folder's name. Names must stay unique.
func (m *Manager) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	folders, err := m.load(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, f := range folders {
		if f.ID == id {
			idx = i
			continue
		}
		if f.Name == name {
			return ErrDuplicateName
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	folders[idx].Name = name
	return m.save(ctx, folders)
}

// Delete removes a folder. If it was selected, the selection moves to
// the first remaining folder, or clears when none remain.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	folders, err := m.load(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, f := range folders {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	folders = append(folders[:idx], folders[idx+1:]...)
	if err := m.save(ctx, folders); err != nil {
		return err
	}

	selected, err := m.selectedID(ctx)
	if err != nil {
		return err
	}
	if selected != id {
		return nil
	}
	if len(folders) == 0 {
		return m.kv.Delete(ctx, storage.KeySelectedFolderID)
	}
	return storage.WriteJSON(ctx, m.kv, storage.KeySelectedFolderID, folders[0].ID)
}

// AddSentence appends text to the folder's sentences.
func (m *Manager) AddSentence(ctx context.Context, id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptySentence
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	folders, err := m.load(ctx)
	if err != nil {
		return err
	}
	for i, f := range folders {
		if f.ID == id {
			folders[i].Sentences = append(folders[i].Sentences, text)
			return m.save(ctx, folders)
		}
	}
	return ErrNotFound
}

// RemoveSentence deletes the sentence at index from the folder.
func (m *Manager) RemoveSentence(ctx context.Context, id string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	folders, err := m.load(ctx)
	if err != nil {
		return err
	}
	for i, f := range folders {
		if f.ID != id {
			continue
		}
		if index < 0 || index >= len(f.Sentences) {
			return fmt.Errorf("sentence index %d out of range", index)
		}
		folders[i].Sentences = append(f.Sentences[:index], f.Sentences[index+1:]...)
		return m.save(ctx, folders)
	}
	return ErrNotFound
}

// Select marks the folder as active for custom practice.
func (m *Manager) Select(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	folders, err := m.load(ctx)
	if err != nil {
		return err
	}
	for _, f := range folders {
		if f.ID == id {
			return storage.WriteJSON(ctx, m.kv, storage.KeySelectedFolderID, id)
		}
	}
	return ErrNotFound
}

// Selected returns the active folder, reporting false when no valid
// selection exists.
func (m *Manager) Selected(ctx context.Context) (model.SentenceFolder, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, err := m.selectedID(ctx)
	if err != nil {
		return model.SentenceFolder{}, false, err
	}
	if id == "" {
		return model.SentenceFolder{}, false, nil
	}
	folders, err := m.load(ctx)
	if err != nil {
		return model.SentenceFolder{}, false, err
	}
	for _, f := range folders {
		if f.ID == id {
			return f, true, nil
		}
	}
	// A stale selection counts as no selection.
	return model.SentenceFolder{}, false, nil
}

func (m *Manager) load(ctx context.Context) ([]model.SentenceFolder, error) {
	var folders []model.SentenceFolder
	if _, err := storage.ReadJSON(ctx, m.kv, storage.KeySentenceFolders, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

func (m *Manager) save(ctx context.Context, folders []model.SentenceFolder) error {
	return storage.WriteJSON(ctx, m.kv, storage.KeySentenceFolders, folders)
}

func (m *Manager) selectedID(ctx context.Context) (string, error) {
	var id string
	ok, err := storage.ReadJSON(ctx, m.kv, storage.KeySelectedFolderID, &id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return id, nil
}
