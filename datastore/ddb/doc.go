/*
Package ddb provides a DynamoDB implementation of the datastore.Store interface.

Each type map is stored as one item:

	PK         S  "TYPEMAP#settings"   expanded from the table's index map
	SK         S  "TYPEMAP#settings"
	ID         S  "settings"
	EntityType S  "TypeMap"
	Data       M  {"one": N "1", "two": N "2"}

The Data attribute holds the map entries with no type information; they
are decoded with the store's untagged.TypeReg.

Macro Expansion:
Key templates use the {ID} macro and are looked up per table in the index
map registry:

	registry.RegisterIndexMap("settings-table", map[string]string{
	    "PK":     "SETTINGS#{ID}",
	    "SK":     "SETTINGS",
	    "GSI1PK": "ALL_SETTINGS",
	})

Streaming:
Stream pages through a query with retries on throttling errors:

	results := store.Stream(ctx, params,
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	    storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
	        slog.Info("stream progress", "items", p.ItemsProcessed)
	    }),
	)
*/
package ddb
