/*
Package registry provides process-wide registrations for typereg.

Default Registry:
Maps keys to the concrete type of their values, for registration from
init() functions:

	func init() {
	    registry.RegisterType[uint32]("one")
	    registry.RegisterType[RatingSystem]("rating")
	}

	typeMap, err := yamlfmt.Decode(registry.Default(), data)

RegisterType panics when a key is registered twice.

Named Types:
Configuration files refer to types by name. Builtin names cover the Go
scalar types, byte and string slices, generic maps, and the go-openapi
strfmt formats (datetime, date, duration, uuid, email):

	reg, err := registry.FromTypeNames(map[string]string{
	    "one": "u32",
	    "two": "u64",
	})

Applications add their own types with RegisterNamed("rating", registry.Of[RatingSystem]()).

Index Map Registry:
Associates DynamoDB tables with the key patterns used by the ddb store:

	registry.RegisterIndexMap("settings", map[string]string{
	    "PK": "SETTINGS#{ID}",
	    "SK": "SETTINGS",
	})

The registries are thread-safe and should be populated during initialization.
*/
package registry
