/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package typereg

import (
	"sort"
	"sync"

	"github.com/suparena/typereg/datastore"
	"github.com/suparena/typereg/errors"
)

// Storage is a higher-level interface that manages a collection of type map
// stores by name (for example, "settings" or "profiles").
type Storage interface {
	// RegisterDataStore registers a store under a given name.
	RegisterDataStore(name string, ds datastore.Store) error
	// GetDataStore retrieves the store registered under name.
	GetDataStore(name string) (datastore.Store, error)
	// RemoveDataStore unregisters the store registered under name.
	RemoveDataStore(name string) error
	// ListDataStores returns the registered names, sorted.
	ListDataStores() []string
}

// storageManager is a thread-safe implementation of the Storage interface.
type storageManager struct {
	mu     sync.RWMutex
	stores map[string]datastore.Store
}

// NewStorageManager creates and returns a new Storage implementation.
func NewStorageManager() Storage {
	return &storageManager{
		stores: make(map[string]datastore.Store),
	}
}

// RegisterDataStore stores the provided store under the given name.
func (sm *storageManager) RegisterDataStore(name string, ds datastore.Store) error {
	if ds == nil {
		return errors.NewValidationError("ds", "datastore is nil")
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.stores[name]; exists {
		return errors.NewAlreadyExistsError("datastore", name)
	}
	sm.stores[name] = ds
	return nil
}

// GetDataStore retrieves the store associated with the given name.
func (sm *storageManager) GetDataStore(name string) (datastore.Store, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	ds, exists := sm.stores[name]
	if !exists {
		return nil, errors.NewNotFoundError("datastore", name)
	}
	return ds, nil
}

// RemoveDataStore deletes the store registered under name.
func (sm *storageManager) RemoveDataStore(name string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.stores[name]; !exists {
		return errors.NewNotFoundError("datastore", name)
	}
	delete(sm.stores, name)
	return nil
}

// ListDataStores returns all registered store names.
func (sm *storageManager) ListDataStores() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	names := make([]string, 0, len(sm.stores))
	for name := range sm.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
