/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sync"
)

// IndexMapRegistry associates DynamoDB table names with the key templates
// used to store type maps in them.

var (
	indexMapRegistry = make(map[string]map[string]string)
	mu               sync.RWMutex
)

// RegisterIndexMap associates a table with a DynamoDB index map (PK, SK, etc.).
// Templates may reference the {ID} macro.
func RegisterIndexMap(table string, idxMap map[string]string) {
	cp := make(map[string]string, len(idxMap))
	for k, v := range idxMap {
		cp[k] = v
	}

	mu.Lock()
	defer mu.Unlock()
	indexMapRegistry[table] = cp
}

// GetIndexMap retrieves the index map for table, if any.
func GetIndexMap(table string) (map[string]string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := indexMapRegistry[table]
	return m, ok
}
