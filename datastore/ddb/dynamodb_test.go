/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"sort"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/typereg/datastore/testmodels"
	"github.com/suparena/typereg/errors"
	"github.com/suparena/typereg/registry"
	"github.com/suparena/typereg/storagemodels"
	"github.com/suparena/typereg/untagged"
)

// fakeClient keeps items in memory, keyed by PK and SK.
type fakeClient struct {
	mu         sync.Mutex
	items      map[string]map[string]types.AttributeValue
	pageSize   int
	queryErrs  []error
	queryCalls int
	deleteErr  error
	lastPut    *sdk.PutItemInput
	lastQuery  *sdk.QueryInput
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[string]map[string]types.AttributeValue)}
}

func itemKey(key map[string]types.AttributeValue) string {
	pk := key["PK"].(*types.AttributeValueMemberS).Value
	sk := key["SK"].(*types.AttributeValueMemberS).Value
	return pk + "|" + sk
}

func (f *fakeClient) GetItem(ctx context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &sdk.GetItemOutput{Item: f.items[itemKey(in.Key)]}, nil
}

func (f *fakeClient) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[itemKey(in.Item)] = in.Item
	f.lastPut = in
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	delete(f.items, itemKey(in.Key))
	return &sdk.DeleteItemOutput{}, nil
}

// Query returns every stored item in key order, paginated by pageSize.
func (f *fakeClient) Query(ctx context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queryCalls++
	f.lastQuery = in
	if len(f.queryErrs) > 0 {
		err := f.queryErrs[0]
		f.queryErrs = f.queryErrs[1:]
		return nil, err
	}

	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if in.ExclusiveStartKey != nil {
		last := itemKey(in.ExclusiveStartKey)
		start = sort.SearchStrings(keys, last) + 1
	}
	end := len(keys)
	if f.pageSize > 0 && start+f.pageSize < end {
		end = start + f.pageSize
	}

	out := &sdk.QueryOutput{}
	for _, k := range keys[start:end] {
		out.Items = append(out.Items, f.items[k])
	}
	if end < len(keys) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"PK": f.items[keys[end-1]]["PK"],
			"SK": f.items[keys[end-1]]["SK"],
		}
	}
	return out, nil
}

func newRegistry() *untagged.TypeReg[string] {
	reg := untagged.NewTypeReg[string]()
	untagged.Register[uint32](reg, "one")
	untagged.Register[uint64](reg, "two")
	untagged.Register[testmodels.RatingSystem](reg, "rating")
	return reg
}

func sampleMap(n uint32) *untagged.TypeMap[string] {
	m := untagged.NewTypeMap[string]()
	untagged.Insert(m, "one", n)
	untagged.Insert(m, "two", uint64(n)*2)
	untagged.Insert(m, "rating", testmodels.RatingSystem{
		ID:     aws.String("TTOakville"),
		Name:   aws.String("Oakville Table Tennis Ranking System"),
		Levels: []int{1000, 1500},
	})
	return m
}

func TestStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := New(client, "typemaps", newRegistry())

	m := sampleMap(1)
	require.NoError(t, store.Put(ctx, "defaults", m))

	item := client.lastPut.Item
	assert.Equal(t, &types.AttributeValueMemberS{Value: "TYPEMAP#defaults"}, item["PK"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "defaults"}, item[AttrID])
	data, ok := item[AttrData].(*types.AttributeValueMemberM)
	require.True(t, ok)
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1"}, data.Value["one"], "values carry no type tag")

	got, err := store.GetOne(ctx, "defaults")
	require.NoError(t, err)
	assert.True(t, m.Equal(got))

	one, ok := untagged.Get[uint32](got, "one")
	require.True(t, ok)
	assert.Equal(t, uint32(1), one)
	_, ok = untagged.Get[uint64](got, "one")
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "defaults"))
	_, err = store.GetOne(ctx, "defaults")
	assert.True(t, errors.IsNotFound(err))
}

func TestStoreDeleteError(t *testing.T) {
	client := newFakeClient()
	client.deleteErr = &types.ResourceNotFoundException{}
	store := New(client, "typemaps", newRegistry())

	err := store.Delete(context.Background(), "defaults")
	require.Error(t, err)
	var rnf *types.ResourceNotFoundException
	assert.ErrorAs(t, err, &rnf)
	assert.Contains(t, err.Error(), "failed to delete item in DynamoDB")
}

func TestStorePutNil(t *testing.T) {
	store := New(newFakeClient(), "typemaps", newRegistry())
	err := store.Put(context.Background(), "x", nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestStoreUnknownKeyOnRead(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	writer := New(client, "typemaps", newRegistry())

	m := sampleMap(1)
	untagged.Insert(m, "extra", "not registered for readers")
	require.NoError(t, writer.Put(ctx, "defaults", m))

	_, err := writer.GetOne(ctx, "defaults")
	assert.True(t, errors.IsUnknownKey(err))
}

func TestStoreIndexMap(t *testing.T) {
	registry.RegisterIndexMap("ddb_test.settings", map[string]string{
		"PK":     "SETTINGS#{ID}",
		"SK":     "SETTINGS",
		"GSI1PK": "ALL_SETTINGS",
	})

	ctx := context.Background()
	client := newFakeClient()
	store := New(client, "ddb_test.settings", newRegistry())
	require.NoError(t, store.Put(ctx, "eu", sampleMap(2)))

	item := client.lastPut.Item
	assert.Equal(t, &types.AttributeValueMemberS{Value: "SETTINGS#eu"}, item["PK"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "SETTINGS"}, item["SK"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "ALL_SETTINGS"}, item["GSI1PK"])

	_, err := store.GetOne(ctx, "eu")
	require.NoError(t, err)

	broken := New(client, "typemaps", newRegistry(), WithIndexMap(map[string]string{"PK": "{Missing}"}))
	assert.Error(t, broken.Put(ctx, "eu", sampleMap(2)))

	empty := New(client, "typemaps", newRegistry(), WithIndexMap(nil))
	_, err = empty.GetOne(ctx, "eu")
	assert.ErrorIs(t, err, errors.ErrNoIndexMap)
}

func TestExpandMacros(t *testing.T) {
	got := expandMacros(map[string]string{
		"PK": "USER#{ID}",
		"SK": "STATIC",
		"X":  "{Unknown}-{ID}",
	}, map[string]string{"ID": "42"})

	assert.Equal(t, map[string]string{"PK": "USER#42", "SK": "STATIC", "X": "-42"}, got)
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := New(client, "typemaps", newRegistry())
	require.NoError(t, store.Put(ctx, "a", sampleMap(1)))
	require.NoError(t, store.Put(ctx, "b", sampleMap(2)))

	// Items written by other code share the table and are skipped.
	client.items["OTHER|1"] = map[string]types.AttributeValue{
		"PK":         &types.AttributeValueMemberS{Value: "OTHER"},
		"SK":         &types.AttributeValueMemberS{Value: "1"},
		"EntityType": &types.AttributeValueMemberS{Value: "User"},
	}

	maps, err := store.Query(ctx, &storagemodels.QueryParams{KeyConditionExpression: "PK = :pk"})
	require.NoError(t, err)
	require.Len(t, maps, 2)

	two, _ := untagged.Get[uint64](maps[1], "two")
	assert.Equal(t, uint64(4), two)
}

func TestQueryInput(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := New(client, "typemaps", newRegistry())

	_, err := store.Query(ctx, &storagemodels.QueryParams{
		KeyConditionExpression:   "PK = :pk",
		FilterExpression:         aws.String("attribute_exists(#data.one)"),
		ExpressionAttributeNames: map[string]string{"#data": AttrData},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: "TYPEMAP#a"},
		},
		ConsistentRead: aws.Bool(true),
	})
	require.NoError(t, err)

	in := client.lastQuery
	require.NotNil(t, in)
	assert.Equal(t, "typemaps", aws.ToString(in.TableName))
	assert.Equal(t, map[string]string{"#data": "Data"}, in.ExpressionAttributeNames)
	assert.True(t, aws.ToBool(in.ConsistentRead))
	assert.Equal(t, "attribute_exists(#data.one)", aws.ToString(in.FilterExpression))

	_, err = store.Query(ctx, &storagemodels.QueryParams{TableName: "other"})
	require.NoError(t, err)
	assert.Equal(t, "other", aws.ToString(client.lastQuery.TableName))
}

func TestStream(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	client.pageSize = 2
	store := New(client, "typemaps", newRegistry())
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, store.Put(ctx, id, sampleMap(uint32(i))))
	}

	var progress []storagemodels.StreamProgress
	results := store.Stream(ctx, &storagemodels.QueryParams{},
		storagemodels.WithBufferSize(1),
		storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
			progress = append(progress, p)
		}),
	)

	var ids []string
	for r := range results {
		require.NoError(t, r.Error)
		ids = append(ids, r.ID)
		one, ok := untagged.Get[uint32](r.Item, "one")
		require.True(t, ok)
		assert.Equal(t, uint32(r.Meta.Index), one)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)
	require.NotEmpty(t, progress)
	last := progress[len(progress)-1]
	assert.Equal(t, int64(5), last.ItemsProcessed)
	assert.Equal(t, 3, last.PagesProcessed)
}

func TestStreamRetries(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := New(client, "typemaps", newRegistry())
	require.NoError(t, store.Put(ctx, "a", sampleMap(1)))

	client.queryErrs = []error{&types.ProvisionedThroughputExceededException{}}
	var got []storagemodels.StreamResult[*untagged.TypeMap[string]]
	for r := range store.Stream(ctx, &storagemodels.QueryParams{}, storagemodels.WithRetryBackoff(0)) {
		got = append(got, r)
	}
	require.Len(t, got, 1)
	assert.NoError(t, got[0].Error)
	assert.Equal(t, 2, client.queryCalls)
}

func TestStreamFatalError(t *testing.T) {
	client := newFakeClient()
	store := New(client, "typemaps", newRegistry())
	client.queryErrs = []error{stderrors.New("access denied")}

	var got []storagemodels.StreamResult[*untagged.TypeMap[string]]
	for r := range store.Stream(context.Background(), &storagemodels.QueryParams{}) {
		got = append(got, r)
	}
	require.Len(t, got, 1)
	assert.ErrorContains(t, got[0].Error, "access denied")
	assert.Equal(t, 1, client.queryCalls, "non-retryable errors are not retried")
}

func TestStreamDecodeErrorPerItem(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := New(client, "typemaps", newRegistry())
	require.NoError(t, store.Put(ctx, "a", sampleMap(1)))

	bad := sampleMap(2)
	untagged.Insert(bad, "one", "not a number")
	require.NoError(t, store.Put(ctx, "b", bad))

	var errs, ok int
	for r := range store.Stream(ctx, &storagemodels.QueryParams{}) {
		if r.Error != nil {
			errs++
			assert.True(t, errors.IsValueDecode(r.Error))
			assert.Equal(t, "b", r.ID)
			continue
		}
		ok++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, errs)
}

func TestStreamCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := newFakeClient()
	client.pageSize = 1
	store := New(client, "typemaps", newRegistry())
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Put(ctx, id, sampleMap(1)))
	}

	results := store.Stream(ctx, &storagemodels.QueryParams{}, storagemodels.WithBufferSize(0))
	<-results
	cancel()
	for range results {
	}
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(&types.RequestLimitExceeded{}))
	assert.True(t, isRetryableError(&types.InternalServerError{}))
	assert.False(t, isRetryableError(stderrors.New("boom")))
}
