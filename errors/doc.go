/*
Package errors provides semantic error types for the typereg module.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound      = errors.New("entity not found")
	    ErrAlreadyExists = errors.New("entity already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	    ErrUnknownKey    = errors.New("no type registered for key")
	    ErrValueDecode   = errors.New("value decode failed")
	    ErrNoIndexMap    = errors.New("no index map found for table")
	)

Usage:

	typeMap, err := reg.DeserializeMap(access)
	if err != nil {
	    if errors.IsUnknownKey(err) {
	        // the input holds a key that was never registered
	    }
	    var decodeErr *errors.ValueDecodeError
	    if stderrors.As(err, &decodeErr) {
	        log.Printf("key %v is not a %s: %v", decodeErr.Key, decodeErr.TypeName, decodeErr.Err)
	    }
	    return nil, err
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
