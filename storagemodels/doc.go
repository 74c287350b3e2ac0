/*
Package storagemodels defines the data structures shared by the type map stores.

Key Types:

QueryParams:
Parameters for querying the datastore:

	params := &QueryParams{
	    KeyConditionExpression: "PK = :pk",
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk": &types.AttributeValueMemberS{Value: "TYPEMAP#settings"},
	    },
	    Limit: aws.Int32(100),
	}

StreamResult:
Results from streaming operations with metadata:

	type StreamResult[T any] struct {
	    ID    string                          // Identifier the item was stored under
	    Item  T                               // The decoded type map
	    Raw   map[string]types.AttributeValue // Raw DynamoDB attributes
	    Error error                           // Item-specific error, if any
	    Meta  StreamMeta                      // Metadata about this item
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithProgressHandler(progressFunc),
	}
*/
package storagemodels
