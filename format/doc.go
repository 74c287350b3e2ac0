/*
Package format groups the serialization adapters for untagged type maps.

Each subpackage presents one wire format to the untagged package:

  - yamlfmt: gopkg.in/yaml.v3 documents, order preserving
  - jsonfmt: JSON objects read as a token stream, order preserving
  - ddbfmt: DynamoDB attribute value maps, read in lexical key order
  - pbfmt: protobuf Struct messages, read in lexical key order

Every adapter offers a MapAccess cursor, Decode helpers that run
TypeReg.DeserializeMap over it, and Encode helpers that write a TypeMap
without type information.
*/
package format
