/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/suparena/typereg/datastore"
	"github.com/suparena/typereg/storagemodels"
)

// queryInput converts params to a QueryInput on the store's table unless
// params names another one.
func (s *Store) queryInput(params *storagemodels.QueryParams) *sdk.QueryInput {
	table := params.TableName
	if table == "" {
		table = s.tableName
	}
	return &sdk.QueryInput{
		TableName:                 &table,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeNames:  params.ExpressionAttributeNames,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ExclusiveStartKey:         params.ExclusiveStartKey,
		ScanIndexForward:          params.ScanIndexForward,
		ConsistentRead:            params.ConsistentRead,
	}
}

// Query runs a single Query page and decodes every returned item. Items
// not written by this store are skipped.
func (s *Store) Query(ctx context.Context, params *storagemodels.QueryParams) ([]*datastore.TypeMap, error) {
	out, err := s.client.Query(ctx, s.queryInput(params))
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	results := make([]*datastore.TypeMap, 0, len(out.Items))
	for _, item := range out.Items {
		if !isTypeMapItem(item) {
			continue
		}
		id, m, err := s.decodeItem(item)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", id, err)
		}
		results = append(results, m)
	}
	return results, nil
}
