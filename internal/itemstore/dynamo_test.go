package itemstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	trace []string

	PutItemFunc    func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	GetItemFunc    func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	DeleteItemFunc func(in *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error)
	ScanFunc       func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.trace = append(f.trace, "PutItem")
	if f.PutItemFunc != nil {
		return f.PutItemFunc(in)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.trace = append(f.trace, "GetItem")
	if f.GetItemFunc != nil {
		return f.GetItemFunc(in)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.trace = append(f.trace, "DeleteItem")
	if f.DeleteItemFunc != nil {
		return f.DeleteItemFunc(in)
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.trace = append(f.trace, "Scan")
	if f.ScanFunc != nil {
		return f.ScanFunc(in)
	}
	return &dynamodb.ScanOutput{}, nil
}

var _ DynamoAPI = (*fakeDynamo)(nil)

func TestDynamoPutOmitsEmptySets(t *testing.T) {
	var captured *dynamodb.PutItemInput
	fake := &fakeDynamo{
		PutItemFunc: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			captured = in
			return &dynamodb.PutItemOutput{}, nil
		},
	}
	store := NewDynamoStore(fake, map[string]string{"Clubs": "clubs-prod"})

	item := Item{
		"clubId":   Number(1),
		"name":     String("Chess"),
		"eventIds": NumberSet(nil),
	}
	require.NoError(t, store.Put(context.Background(), "Clubs", Key{Name: "clubId", Value: 1}, item))

	require.NotNil(t, captured)
	assert.Equal(t, "clubs-prod", aws.ToString(captured.TableName))
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1"}, captured.Item["clubId"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "Chess"}, captured.Item["name"])
	assert.NotContains(t, captured.Item, "eventIds")
}

func TestDynamoGet(t *testing.T) {
	tests := []struct {
		name    string
		out     *dynamodb.GetItemOutput
		err     error
		wantOK  bool
		wantErr error
	}{
		{
			name: "found",
			out: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
				"eventId":     &types.AttributeValueMemberN{Value: "5"},
				"tags":        &types.AttributeValueMemberSS{Value: []string{"AI"}},
				"attendeeIds": &types.AttributeValueMemberNS{Value: []string{"1", "2"}},
			}},
			wantOK: true,
		},
		{
			name: "absent",
			out:  &dynamodb.GetItemOutput{},
		},
		{
			name:    "transport failure",
			err:     errors.New("connection reset"),
			wantErr: ErrUnavailable,
		},
		{
			name: "unsupported attribute",
			out: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
				"eventId": &types.AttributeValueMemberBOOL{Value: true},
			}},
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeDynamo{
				GetItemFunc: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
					assert.Equal(t, "Events", aws.ToString(in.TableName))
					assert.Equal(t, &types.AttributeValueMemberN{Value: "5"}, in.Key["eventId"])
					return tt.out, tt.err
				},
			}
			store := NewDynamoStore(fake, nil)

			item, ok, err := store.Get(context.Background(), "Events", Key{Name: "eventId", Value: 5})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, Number(5), item["eventId"])
				assert.Equal(t, StringSet([]string{"AI"}), item["tags"])
				assert.Equal(t, NumberSet([]int{1, 2}), item["attendeeIds"])
			}
		})
	}
}

func TestDynamoScanFollowsContinuation(t *testing.T) {
	calls := 0
	fake := &fakeDynamo{
		ScanFunc: func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			calls++
			if calls == 1 {
				assert.Nil(t, in.ExclusiveStartKey)
				return &dynamodb.ScanOutput{
					Items: []map[string]types.AttributeValue{
						{"clubId": &types.AttributeValueMemberN{Value: "1"}},
					},
					LastEvaluatedKey: map[string]types.AttributeValue{
						"clubId": &types.AttributeValueMemberN{Value: "1"},
					},
				}, nil
			}
			assert.NotNil(t, in.ExclusiveStartKey)
			return &dynamodb.ScanOutput{
				Items: []map[string]types.AttributeValue{
					{"clubId": &types.AttributeValueMemberN{Value: "2"}},
				},
			}, nil
		},
	}
	store := NewDynamoStore(fake, nil)

	items, err := store.ScanAll(context.Background(), "Clubs")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, []string{"Scan", "Scan"}, fake.trace)
}

func TestDynamoDeleteWrapsFailure(t *testing.T) {
	fake := &fakeDynamo{
		DeleteItemFunc: func(in *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	store := NewDynamoStore(fake, nil)

	err := store.Delete(context.Background(), "Clubs", Key{Name: "clubId", Value: 3})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "throttled")
}
