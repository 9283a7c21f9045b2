package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/repository"
)

type fakeAccounts struct {
	mu       sync.Mutex
	byID     map[int64]*model.Account
	nextID   int64
	failWith error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byID: make(map[int64]*model.Account)}
}

func (f *fakeAccounts) Create(_ context.Context, a *model.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for _, existing := range f.byID {
		if existing.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now().UTC()
	stored := *a
	f.byID[a.ID] = &stored
	return nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.Email == email {
			found := *a
			return &found, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (f *fakeAccounts) GetByID(_ context.Context, id int64) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	found := *a
	return &found, nil
}

type fakePresets struct {
	mu     sync.Mutex
	byID   map[string]model.Preset
	nextID int
}

func newFakePresets() *fakePresets {
	return &fakePresets{byID: make(map[string]model.Preset)}
}

func (f *fakePresets) Create(_ context.Context, p *model.Preset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.AccountID == p.AccountID && existing.Name == p.Name {
			return repository.ErrDuplicatePreset
		}
	}
	f.nextID++
	p.ID = fmt.Sprintf("preset-%d", f.nextID)
	p.CreatedAt = time.Now().UTC()
	f.byID[p.ID] = *p
	return nil
}

func (f *fakePresets) Get(_ context.Context, accountID int64, id string) (*model.Preset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok || p.AccountID != accountID {
		return nil, repository.ErrPresetNotFound
	}
	return &p, nil
}

func (f *fakePresets) ListByAccount(_ context.Context, accountID int64) ([]model.Preset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Preset
	for _, p := range f.byID {
		if p.AccountID == accountID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakePresets) Delete(_ context.Context, accountID int64, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok || p.AccountID != accountID {
		return repository.ErrPresetNotFound
	}
	delete(f.byID, id)
	return nil
}
