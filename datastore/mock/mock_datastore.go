/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Store for testing.
//
// Maps are kept as YAML documents and decoded through the registry on every
// read, so the mock exercises the same untagged round trip as a real store.
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/typereg/datastore"
	"github.com/suparena/typereg/errors"
	"github.com/suparena/typereg/format/yamlfmt"
	"github.com/suparena/typereg/storagemodels"
	"github.com/suparena/typereg/untagged"
)

// DataStore is a mock implementation of datastore.Store
type DataStore struct {
	mu          sync.RWMutex
	reg         *untagged.TypeReg[string]
	data        map[string][]byte
	queryFunc   func(ctx context.Context, params *storagemodels.QueryParams) ([]*datastore.TypeMap, error)
	putError    error
	deleteError error
}

var _ datastore.Store = (*DataStore)(nil)

// New creates a new mock DataStore decoding with reg
func New(reg *untagged.TypeReg[string]) *DataStore {
	return &DataStore{
		reg:  reg,
		data: make(map[string][]byte),
	}
}

// WithQueryFunc sets a custom query function for testing
func (m *DataStore) WithQueryFunc(f func(ctx context.Context, params *storagemodels.QueryParams) ([]*datastore.TypeMap, error)) *DataStore {
	m.queryFunc = f
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore) WithPutError(err error) *DataStore {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore) WithDeleteError(err error) *DataStore {
	m.deleteError = err
	return m
}

// GetOne decodes the map stored under id
func (m *DataStore) GetOne(ctx context.Context, id string) (*datastore.TypeMap, error) {
	m.mu.RLock()
	doc, exists := m.data[id]
	m.mu.RUnlock()

	if !exists {
		return nil, errors.NewNotFoundError("TypeMap", id)
	}
	return yamlfmt.Decode(m.reg, doc)
}

// Put encodes and stores a map
func (m *DataStore) Put(ctx context.Context, id string, tm *datastore.TypeMap) error {
	if m.putError != nil {
		return m.putError
	}
	if id == "" {
		return errors.NewValidationError("id", "must not be empty")
	}
	if tm == nil {
		return errors.NewValidationError("m", "type map is nil")
	}

	doc, err := yamlfmt.Encode(tm)
	if err != nil {
		return fmt.Errorf("failed to encode type map: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = doc
	return nil
}

// Query returns every stored map in identifier order unless a query function is set
func (m *DataStore) Query(ctx context.Context, params *storagemodels.QueryParams) ([]*datastore.TypeMap, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params)
	}

	var results []*datastore.TypeMap
	for _, id := range m.IDs() {
		tm, err := m.GetOne(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", id, err)
		}
		results = append(results, tm)
	}
	return results, nil
}

// Stream sends every stored map in identifier order
func (m *DataStore) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[*datastore.TypeMap] {
	options := storagemodels.ApplyStreamOptions(opts...)
	resultChan := make(chan storagemodels.StreamResult[*datastore.TypeMap], options.BufferSize)

	ids := m.IDs()
	go func() {
		defer close(resultChan)

		for index, id := range ids {
			tm, err := m.GetOne(ctx, id)
			result := storagemodels.StreamResult[*datastore.TypeMap]{
				ID:    id,
				Item:  tm,
				Error: err,
				Meta: storagemodels.StreamMeta{
					Index:      int64(index),
					PageNumber: 1,
				},
			}
			select {
			case <-ctx.Done():
				return
			case resultChan <- result:
			}
		}
	}()

	return resultChan
}

// Delete removes the map stored under id
func (m *DataStore) Delete(ctx context.Context, id string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[id]; !exists {
		return errors.NewNotFoundError("TypeMap", id)
	}
	delete(m.data, id)
	return nil
}

// Helper methods for testing

// SetRaw stores a YAML document under id without validating it
func (m *DataStore) SetRaw(id string, doc []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = doc
}

// Raw returns the YAML document stored under id
func (m *DataStore) Raw(id string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.data[id]
	return doc, ok
}

// IDs returns the stored identifiers, sorted
func (m *DataStore) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of stored maps
func (m *DataStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
}
