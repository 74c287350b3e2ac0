/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/typereg/config"
	"github.com/suparena/typereg/datastore"
	tserrors "github.com/suparena/typereg/errors"
	"github.com/suparena/typereg/format/ddbfmt"
	"github.com/suparena/typereg/registry"
	"github.com/suparena/typereg/untagged"
)

const (
	// AttrID holds the identifier a type map was stored under.
	AttrID = "ID"
	// AttrData holds the untagged map entries.
	AttrData = "Data"
	// AttrEntityType marks items written by this store.
	AttrEntityType = "EntityType"

	entityType = "TypeMap"
)

// DefaultIndexMap is used for tables without a registered index map.
var DefaultIndexMap = map[string]string{
	"PK": "TYPEMAP#{ID}",
	"SK": "TYPEMAP#{ID}",
}

// Client is the subset of the DynamoDB API used by Store.
type Client interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// Store implements datastore.Store on a DynamoDB table, one item per type map.
type Store struct {
	client    Client
	tableName string
	reg       *untagged.TypeReg[string]
	indexMap  map[string]string
	logger    *slog.Logger
}

var _ datastore.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithIndexMap overrides the key templates of the table.
func WithIndexMap(indexMap map[string]string) Option {
	return func(s *Store) {
		s.indexMap = indexMap
	}
}

// WithLogger sets the logger used for retries and client setup.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros replaces {Name} macros in every template with fields[Name].
// Unknown macros expand to the empty string.
func expandMacros(indexMap map[string]string, fields map[string]string) map[string]string {
	res := make(map[string]string, len(indexMap))
	for attr, template := range indexMap {
		res[attr] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			return fields[strings.Trim(macro, "{}")]
		})
	}
	return res
}

// NewClient initializes a DynamoDB client from the AWS settings. Without
// static credentials the default AWS credential chain is used.
func NewClient(ctx context.Context, cfg config.AWS) (*sdk.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(awsCfg), nil
}

// New constructs a Store on tableName. The table's index map is taken from
// the index map registry, falling back to DefaultIndexMap.
func New(client Client, tableName string, reg *untagged.TypeReg[string], opts ...Option) *Store {
	s := &Store{
		client:    client,
		tableName: tableName,
		reg:       reg,
		indexMap:  DefaultIndexMap,
		logger:    slog.Default(),
	}
	if m, ok := registry.GetIndexMap(tableName); ok {
		s.indexMap = m
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig creates the DynamoDB client and a Store on the configured table.
func NewFromConfig(ctx context.Context, cfg config.AWS, reg *untagged.TypeReg[string], opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	s := New(client, cfg.TableName, reg, opts...)
	s.logger.Info("DynamoDB client initialized", "table", cfg.TableName, "region", cfg.Region)
	return s, nil
}

// key builds the primary key of the item holding id.
func (s *Store) key(id string) (map[string]types.AttributeValue, error) {
	if len(s.indexMap) == 0 {
		return nil, tserrors.ErrNoIndexMap
	}
	expanded := expandMacros(s.indexMap, map[string]string{AttrID: id})

	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]
	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// GetOne loads the type map stored under id.
func (s *Store) GetOne(ctx context.Context, id string) (*datastore.TypeMap, error) {
	key, err := s.key(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &s.tableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, tserrors.NewNotFoundError(entityType, id)
	}

	_, m, err := s.decodeItem(out.Item)
	return m, err
}

// decodeItem reads the identifier and the type map held by item.
func (s *Store) decodeItem(item map[string]types.AttributeValue) (string, *datastore.TypeMap, error) {
	var id string
	if attr, ok := item[AttrID]; ok {
		if err := attributevalue.Unmarshal(attr, &id); err != nil {
			return "", nil, fmt.Errorf("failed to unmarshal %s: %w", AttrID, err)
		}
	}

	data, ok := item[AttrData]
	if !ok {
		return id, nil, tserrors.NewValidationError(AttrData, "attribute missing from item")
	}
	m, err := ddbfmt.DecodeAttributeValue(s.reg, data)
	if err != nil {
		return id, nil, err
	}
	return id, m, nil
}

// Put stores m under id, replacing any previous map.
func (s *Store) Put(ctx context.Context, id string, m *datastore.TypeMap) error {
	if m == nil {
		return tserrors.NewValidationError("m", "type map is nil")
	}
	item, err := s.key(id)
	if err != nil {
		return fmt.Errorf("failed to build key: %w", err)
	}

	data, err := ddbfmt.EncodeAttributeValue(m)
	if err != nil {
		return fmt.Errorf("failed to marshal type map: %w", err)
	}

	// Index attributes other than PK and SK (GSI keys) are stored as plain strings.
	for attr, v := range expandMacros(s.indexMap, map[string]string{AttrID: id}) {
		if _, isKey := item[attr]; !isKey && v != "" {
			item[attr] = &types.AttributeValueMemberS{Value: v}
		}
	}
	item[AttrID] = &types.AttributeValueMemberS{Value: id}
	item[AttrData] = data
	item[AttrEntityType] = &types.AttributeValueMemberS{Value: entityType}

	_, err = s.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes the type map stored under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	key, err := s.key(id)
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = s.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &s.tableName,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}
