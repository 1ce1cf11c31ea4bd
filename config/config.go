package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
)

// Filters lists messages to leave out of the digest. Matching is a
// case-insensitive substring test.
type Filters struct {
	IgnoreSenders           []string `json:"ignoreSenders"`
	IgnoreKeywordsInSubject []string `json:"ignoreKeywordsInSubject"`
	IgnoreKeywordsInBody    []string `json:"ignoreKeywordsInBody"`
}

// Manager loads, saves and hands out filter rules. Safe for concurrent use.
type Manager struct {
	filePath string
	filters  *Filters
	mu       sync.RWMutex
}

// NewManager reads filePath, creating it with empty rules when missing.
func NewManager(filePath string) (*Manager, error) {
	m := &Manager{
		filePath: filePath,
		filters:  emptyFilters(),
	}
	if err := m.LoadFilters(); err != nil {
		return nil, fmt.Errorf("loading filters from %s: %w", filePath, err)
	}
	return m, nil
}

func emptyFilters() *Filters {
	return &Filters{
		IgnoreSenders:           []string{},
		IgnoreKeywordsInSubject: []string{},
		IgnoreKeywordsInBody:    []string{},
	}
}

// LoadFilters replaces the in-memory rules with the file's contents.
func (m *Manager) LoadFilters() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.filePath)
	if errors.Is(err, os.ErrNotExist) {
		m.filters = emptyFilters()
		return m.saveFilters()
	}
	if err != nil {
		return err
	}

	filters := emptyFilters()
	if err := json.Unmarshal(data, filters); err != nil {
		return err
	}
	m.filters = filters
	return nil
}

// saveFilters writes the rules back. Callers hold the lock.
func (m *Manager) saveFilters() error {
	data, err := json.MarshalIndent(m.filters, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.filePath, data, 0644)
}

// GetFilters returns a copy of the current filters.
func (m *Manager) GetFilters() Filters {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Filters{
		IgnoreSenders:           slices.Clone(m.filters.IgnoreSenders),
		IgnoreKeywordsInSubject: slices.Clone(m.filters.IgnoreKeywordsInSubject),
		IgnoreKeywordsInBody:    slices.Clone(m.filters.IgnoreKeywordsInBody),
	}
}

func (m *Manager) AddIgnoreSender(sender string) error {
	return m.add(func(f *Filters) *[]string { return &f.IgnoreSenders }, sender)
}

func (m *Manager) AddIgnoreKeywordInSubject(keyword string) error {
	return m.add(func(f *Filters) *[]string { return &f.IgnoreKeywordsInSubject }, keyword)
}

func (m *Manager) AddIgnoreKeywordInBody(keyword string) error {
	return m.add(func(f *Filters) *[]string { return &f.IgnoreKeywordsInBody }, keyword)
}

func (m *Manager) RemoveIgnoreSender(sender string) error {
	return m.remove(func(f *Filters) *[]string { return &f.IgnoreSenders }, sender)
}

func (m *Manager) RemoveIgnoreKeywordInSubject(keyword string) error {
	return m.remove(func(f *Filters) *[]string { return &f.IgnoreKeywordsInSubject }, keyword)
}

func (m *Manager) RemoveIgnoreKeywordInBody(keyword string) error {
	return m.remove(func(f *Filters) *[]string { return &f.IgnoreKeywordsInBody }, keyword)
}

type listOf func(*Filters) *[]string

func (m *Manager) add(field listOf, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	list := field(m.filters)
	if slices.Contains(*list, value) {
		return nil
	}
	*list = append(*list, value)
	return m.saveFilters()
}

func (m *Manager) remove(field listOf, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := field(m.filters)
	i := slices.Index(*list, strings.TrimSpace(value))
	if i < 0 {
		return nil
	}
	*list = slices.Delete(*list, i, i+1)
	return m.saveFilters()
}
