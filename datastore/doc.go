/*
Package datastore defines the persistence interface for untagged type maps.

The main interface is Store, which keeps one type map per identifier:

	type Store interface {
	    GetOne(ctx context.Context, id string) (*TypeMap, error)
	    Put(ctx context.Context, id string, m *TypeMap) error
	    Query(ctx context.Context, params *storagemodels.QueryParams) ([]*TypeMap, error)
	    Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[*TypeMap]
	    Delete(ctx context.Context, id string) error
	}

Stores write map values with no type tag and decode them on read with the
untagged.TypeReg they were built with, so the registry must know every key
a stored map can contain.

Implementations:
  - ddb: DynamoDB implementation, one item per type map
  - mock: In-memory implementation for testing, storing maps as YAML
*/
package datastore
