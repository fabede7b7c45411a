package itemstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoStore.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoStore maps collections onto DynamoDB tables.
type DynamoStore struct {
	client DynamoAPI
	tables map[string]string
}

// NewDynamoStore builds a store over client. tables maps a collection name to
// its table name; collections missing from the map use their own name.
func NewDynamoStore(client DynamoAPI, tables map[string]string) *DynamoStore {
	return &DynamoStore{client: client, tables: tables}
}

// NewDynamoClient loads the default AWS credential chain. A non-empty endpoint
// points the client at a local DynamoDB.
func NewDynamoClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func (d *DynamoStore) table(collection string) string {
	if t, ok := d.tables[collection]; ok && t != "" {
		return t
	}
	return collection
}

func (d *DynamoStore) Put(ctx context.Context, collection string, key Key, item Item) error {
	table := d.table(collection)
	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      toAttributeMap(item),
	})
	if err != nil {
		return fmt.Errorf("%w: put %s/%s: %w", ErrUnavailable, table, key, err)
	}
	return nil
}

func (d *DynamoStore) Get(ctx context.Context, collection string, key Key) (Item, bool, error) {
	table := d.table(collection)
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       keyAttribute(key),
	})
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %s/%s: %w", ErrUnavailable, table, key, err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}
	item, err := fromAttributeMap(out.Item)
	if err != nil {
		return nil, false, fmt.Errorf("get %s/%s: %w", table, key, err)
	}
	return item, true, nil
}

func (d *DynamoStore) Delete(ctx context.Context, collection string, key Key) error {
	table := d.table(collection)
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       keyAttribute(key),
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s/%s: %w", ErrUnavailable, table, key, err)
	}
	return nil
}

// ScanAll drains one logical scan. Continuation keys are followed internally
// and never exposed.
func (d *DynamoStore) ScanAll(ctx context.Context, collection string) ([]Item, error) {
	table := d.table(collection)
	var (
		items []Item
		start map[string]types.AttributeValue
	)
	for {
		out, err := d.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(table),
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", ErrUnavailable, table, err)
		}
		for _, raw := range out.Items {
			item, err := fromAttributeMap(raw)
			if err != nil {
				return nil, fmt.Errorf("scan %s: %w", table, err)
			}
			items = append(items, item)
		}
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		start = out.LastEvaluatedKey
	}
}

func keyAttribute(key Key) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		key.Name: &types.AttributeValueMemberN{Value: key.String()},
	}
}

// toAttributeMap drops empty sets: DynamoDB rejects them, and an absent set
// attribute reads back as empty.
func toAttributeMap(item Item) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for name, v := range item {
		switch v.Kind {
		case KindString:
			out[name] = &types.AttributeValueMemberS{Value: v.S}
		case KindNumber:
			out[name] = &types.AttributeValueMemberN{Value: v.S}
		case KindStringSet:
			if len(v.Set) > 0 {
				out[name] = &types.AttributeValueMemberSS{Value: v.Set}
			}
		case KindNumberSet:
			if len(v.Set) > 0 {
				out[name] = &types.AttributeValueMemberNS{Value: v.Set}
			}
		}
	}
	return out
}

func fromAttributeMap(raw map[string]types.AttributeValue) (Item, error) {
	item := make(Item, len(raw))
	for name, av := range raw {
		switch v := av.(type) {
		case *types.AttributeValueMemberS:
			item[name] = String(v.Value)
		case *types.AttributeValueMemberN:
			item[name] = Value{Kind: KindNumber, S: v.Value}
		case *types.AttributeValueMemberSS:
			item[name] = StringSet(v.Value)
		case *types.AttributeValueMemberNS:
			item[name] = Value{Kind: KindNumberSet, Set: v.Value}
		default:
			return nil, fmt.Errorf("%w: attribute %q has unsupported type %T", ErrMalformed, name, av)
		}
	}
	return item, nil
}
