/*
Package typereg deserializes heterogeneous maps whose serialized form carries
no type tags.

A registry maps each expected key to the Go type of its value. Decoding
walks the serialized map, resolves every key against the registry and
stores the decoded value behind a type-erased, downcastable box. Encoding
writes each value back in its natural form, so the wire shape is exactly
what a hand-written struct would produce.

The library is organized in layers:
  - untagged: the registry (TypeReg), the ordered map (TypeMap), the value
    box (BoxDt) and the decoding protocol
  - format/yamlfmt, format/jsonfmt, format/ddbfmt, format/pbfmt: adapters
    for YAML, JSON, DynamoDB attribute values and protobuf Struct
  - registry: process-wide registrations and named types for configuration
  - datastore: persistence of type maps (DynamoDB and in-memory)
  - config: environment and registry file loading

Basic Usage:

	reg := untagged.NewTypeReg[string]()
	untagged.Register[uint32](reg, "one")
	untagged.Register[uint64](reg, "two")

	typeMap, err := yamlfmt.Decode(reg, []byte("one: 1\ntwo: 2\n"))
	if err != nil {
	    return err
	}
	one, ok := untagged.Get[uint32](typeMap, "one") // 1, true

	// Persist it
	mts := typereg.NewStorageManager()
	mts.RegisterDataStore("settings", ddb.New(client, "settings-table", reg))
	store, _ := mts.GetDataStore("settings")
	err = store.Put(ctx, "defaults", typeMap)

For more information, see the documentation at https://github.com/suparena/typereg
*/
package typereg
