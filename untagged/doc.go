/*
Package untagged provides a type registry and a type-erased map whose
serialized form carries no type tags.

For a map holding

	{"one": uint32(1), "two": uint64(2)}

the serialized form is simply

	one: 1
	two: 2

At runtime, deserialization relies on the key given at registration
matching the key of each value:

	reg := untagged.NewTypeReg[string]()
	untagged.Register[uint32](reg, "one")
	untagged.Register[uint64](reg, "two")

	typeMap, err := yamlfmt.Decode(reg, []byte("one: 1\ntwo: 2\n"))
	if err != nil {
	    return err
	}
	one, _ := untagged.Get[uint32](typeMap, "one") // 1
	two, _ := untagged.Get[uint64](typeMap, "two") // 2
	_, ok := untagged.Get[uint64](typeMap, "one")  // false, "one" holds a uint32

Values are stored in a BoxDt, which owns the value behind the DataType
capability set (type name, equality, clone, debug formatting) and
recovers it with DowncastRef or DowncastMut. A downcast to the wrong type
misses; it never panics.

The package does not define a wire format. Any format that can present a
map as a MapAccess cursor can be decoded, and any format that implements
MapEncoder can be written; see the format/ packages for YAML, JSON,
DynamoDB attribute values and protobuf Struct. TypeMap also implements
json.Marshaler and yaml.Marshaler directly.
*/
package untagged
