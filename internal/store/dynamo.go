package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/revradar/revradar/internal/models"
)

const ANALYSIS_TABLE_NAME = "ModelAnalyses"

// DynamoStore keeps unified artifacts in a DynamoDB table keyed by
// canonical model name, for deployments where several analyzer instances
// share one artifact store.
type DynamoStore struct {
	client *dynamodb.Client
}

type dynamoAnalysisItem struct {
	ModelKey  string `dynamodbav:"model_key"`
	Analysis  string `dynamodbav:"analysis"`
	UpdatedAt int64  `dynamodbav:"updated_at"`
}

func NewDynamoStore(client *dynamodb.Client) *DynamoStore {
	return &DynamoStore{client: client}
}

func (d *DynamoStore) Exists(ctx context.Context, key string) (bool, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(ANALYSIS_TABLE_NAME),
		Key:                  itemKey(key),
		ProjectionExpression: aws.String("model_key"),
	})
	if err != nil {
		return false, fmt.Errorf("[DynamoStore] exists check failed: %w", err)
	}
	return len(out.Item) > 0, nil
}

func (d *DynamoStore) Read(ctx context.Context, key string) (*models.ModelAnalysis, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ANALYSIS_TABLE_NAME),
		Key:       itemKey(key),
	})
	if err != nil {
		return nil, fmt.Errorf("[DynamoStore] read failed: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("[DynamoStore] no artifact for %q", key)
	}

	var item dynamoAnalysisItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("[DynamoStore] unmarshal failed: %w", err)
	}

	var analysis models.ModelAnalysis
	if err := json.Unmarshal([]byte(item.Analysis), &analysis); err != nil {
		return nil, fmt.Errorf("[DynamoStore] corrupted artifact for %q: %w", key, err)
	}
	return &analysis, nil
}

func (d *DynamoStore) Write(ctx context.Context, key string, analysis *models.ModelAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("[DynamoStore] marshal failed: %w", err)
	}

	item, err := attributevalue.MarshalMap(dynamoAnalysisItem{
		ModelKey:  key,
		Analysis:  string(data),
		UpdatedAt: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("[DynamoStore] marshal item failed: %w", err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(ANALYSIS_TABLE_NAME),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoStore] write failed: %w", err)
	}

	slog.Info("[DynamoStore] Saved unified analysis", slog.String("key", key))
	return nil
}

func itemKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"model_key": &types.AttributeValueMemberS{Value: key},
	}
}
