/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/typereg/datastore"
	"github.com/suparena/typereg/storagemodels"
)

// Stream pages through a query and sends each decoded type map on the
// returned channel, which is closed when the query is exhausted, fails, or
// ctx is done.
func (s *Store) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[*datastore.TypeMap] {
	options := storagemodels.ApplyStreamOptions(opts...)

	resultCh := make(chan storagemodels.StreamResult[*datastore.TypeMap], options.BufferSize)

	go s.streamWorker(ctx, params, options, resultCh)

	return resultCh
}

// streamWorker handles the actual streaming logic
func (s *Store) streamWorker(
	ctx context.Context,
	params *storagemodels.QueryParams,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[*datastore.TypeMap],
) {
	defer close(resultCh)

	var itemIndex int64
	var pageNumber int
	var errs []error
	startTime := time.Now()

	reportProgress := func(lastKey map[string]types.AttributeValue) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			LastKey:        lastKey,
			Errors:         errs,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	send := func(result storagemodels.StreamResult[*datastore.TypeMap]) bool {
		select {
		case <-ctx.Done():
			return false
		case resultCh <- result:
			return true
		}
	}

	input := s.queryInput(params)
	input.Limit = aws.Int32(options.PageSize)

	for {
		if ctx.Err() != nil {
			return
		}

		out, err := s.queryWithRetry(ctx, input, options)
		if err != nil {
			if options.ErrorHandler == nil || !options.ErrorHandler(err) {
				send(storagemodels.StreamResult[*datastore.TypeMap]{
					Error: fmt.Errorf("query failed: %w", err),
					Meta: storagemodels.StreamMeta{
						Index:      itemIndex,
						PageNumber: pageNumber,
						Timestamp:  time.Now(),
					},
				})
				return
			}
			// The handler decides how often the same page is attempted again.
			errs = append(errs, err)
			continue
		}

		pageNumber++

		for _, item := range out.Items {
			if !isTypeMapItem(item) {
				continue
			}
			result := s.processItem(item, itemIndex, pageNumber)
			itemIndex++

			if !send(result) {
				return
			}
			if result.Error != nil {
				errs = append(errs, result.Error)
			}
		}

		reportProgress(out.LastEvaluatedKey)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	reportProgress(nil)
}

// queryWithRetry executes a query with configurable retry logic
func (s *Store) queryWithRetry(
	ctx context.Context,
	input *dynamodb.QueryInput,
	options storagemodels.StreamOptions,
) (*dynamodb.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := s.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			s.logger.Debug("retrying query", "table", aws.ToString(input.TableName), "attempt", attempt+1, "backoff", backoff, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", options.MaxRetries, lastErr)
}

// processItem converts a DynamoDB item to a stream result
func (s *Store) processItem(
	item map[string]types.AttributeValue,
	index int64,
	pageNumber int,
) storagemodels.StreamResult[*datastore.TypeMap] {
	meta := storagemodels.StreamMeta{
		Index:      index,
		PageNumber: pageNumber,
		Timestamp:  time.Now(),
	}

	rawCopy := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		rawCopy[k] = v
	}

	id, m, err := s.decodeItem(item)
	if err != nil {
		return storagemodels.StreamResult[*datastore.TypeMap]{
			ID:    id,
			Error: fmt.Errorf("failed to decode item %q: %w", id, err),
			Raw:   rawCopy,
			Meta:  meta,
		}
	}
	return storagemodels.StreamResult[*datastore.TypeMap]{
		ID:   id,
		Item: m,
		Raw:  rawCopy,
		Meta: meta,
	}
}

// isTypeMapItem reports whether item was written by a Store. Items without
// an EntityType attribute are accepted.
func isTypeMapItem(item map[string]types.AttributeValue) bool {
	attr, ok := item[AttrEntityType]
	if !ok {
		return true
	}
	var et string
	if err := attributevalue.Unmarshal(attr, &et); err != nil {
		return false
	}
	return et == entityType
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	switch err.(type) {
	case *types.ProvisionedThroughputExceededException:
		return true
	case *types.RequestLimitExceeded:
		return true
	case *types.InternalServerError:
		return true
	}

	if awsErr, ok := err.(interface{ IsRetryable() bool }); ok {
		return awsErr.IsRetryable()
	}

	return false
}
