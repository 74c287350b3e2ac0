/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// QueryParams selects the items a store reads in Query and Stream. Items
// that do not hold a type map are skipped by the store, so the key
// condition may cover a partition shared with other data.
type QueryParams struct {
	// TableName overrides the store's table when set.
	TableName string
	// IndexName queries a secondary index, e.g. one keyed by the GSI
	// attributes written from the table's index map.
	IndexName *string

	// KeyConditionExpression selects the partition, e.g. "PK = :pk".
	KeyConditionExpression string
	// FilterExpression narrows the page after the key condition.
	FilterExpression *string
	// ExpressionAttributeNames maps #placeholders to attribute names. The
	// map attribute is named "Data", a DynamoDB reserved word, so filters
	// on it must go through a placeholder.
	ExpressionAttributeNames map[string]string
	// ExpressionAttributeValues holds the :placeholders of both expressions.
	ExpressionAttributeValues map[string]types.AttributeValue

	// Limit caps the items evaluated per page. Stream sets it from its
	// page size option.
	Limit *int32
	// ExclusiveStartKey resumes a previous query.
	ExclusiveStartKey map[string]types.AttributeValue
	// ScanIndexForward orders the sort key ascending when nil or true.
	ScanIndexForward *bool
	// ConsistentRead requests strongly consistent reads. Not valid on GSIs.
	ConsistentRead *bool
}
