/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/typereg/storagemodels"
	"github.com/suparena/typereg/untagged"
)

// TypeMap is the map type persisted by a Store.
type TypeMap = untagged.TypeMap[string]

// Store persists type maps under string identifiers. Values are written
// without type information and read back through the store's registry.
type Store interface {
	GetOne(ctx context.Context, id string) (*TypeMap, error)

	Put(ctx context.Context, id string, m *TypeMap) error

	Query(ctx context.Context, params *storagemodels.QueryParams) ([]*TypeMap, error)

	Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[*TypeMap]

	Delete(ctx context.Context, id string) error
}
