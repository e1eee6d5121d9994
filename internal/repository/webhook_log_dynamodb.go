package repository

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
)

// dynamoPutter is the subset of *dynamodb.Client used here.
type dynamoPutter interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type webhookLogItem struct {
	model.WebhookLog
	CreatedAt string `dynamodbav:"created_at"`
}

// WebhookLogDynamoRepo is the DynamoDB audit store for inbound webhooks.
//
// Table requirements:
//   - PK: id (string)
type WebhookLogDynamoRepo struct {
	ddb       dynamoPutter
	tableName string
}

func NewWebhookLogDynamoRepo(ddb dynamoPutter, tableName string) *WebhookLogDynamoRepo {
	if tableName == "" {
		tableName = "webhook_logs"
	}
	return &WebhookLogDynamoRepo{ddb: ddb, tableName: tableName}
}

// Append writes one audit entry.  Entries are never overwritten.
func (r *WebhookLogDynamoRepo) Append(ctx context.Context, l model.WebhookLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	av, err := attributevalue.MarshalMap(webhookLogItem{WebhookLog: l, CreatedAt: l.CreatedAt.Format(time.RFC3339Nano)})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}
