package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/younsl/rightsizer/internal/models"
)

// DynamoDBAPI is the subset of the DynamoDB API used by DynamoDBRecordWriter
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoDBRecordWriter writes records as DynamoDB items
type DynamoDBRecordWriter struct {
	client DynamoDBAPI
}

// NewDynamoDBRecordWriter creates a new DynamoDBRecordWriter
func NewDynamoDBRecordWriter(client DynamoDBAPI) *DynamoDBRecordWriter {
	return &DynamoDBRecordWriter{client: client}
}

// NewDynamoDBRecordWriterFromConfig creates a new DynamoDBRecordWriter from a loaded AWS config
func NewDynamoDBRecordWriterFromConfig(cfg aws.Config) *DynamoDBRecordWriter {
	return NewDynamoDBRecordWriter(dynamodb.NewFromConfig(cfg))
}

// PutRecord stores record as one item of table
func (w *DynamoDBRecordWriter) PutRecord(ctx context.Context, table string, record models.Record) error {
	item, err := attributevalue.MarshalMap(map[string]any(record))
	if err != nil {
		return fmt.Errorf("error marshalling record: %w", err)
	}

	_, err = w.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("error writing record to DynamoDB table %s: %w", table, err)
	}
	return nil
}

// Name identifies the backend in notices
func (w *DynamoDBRecordWriter) Name() string {
	return "dynamodb"
}
