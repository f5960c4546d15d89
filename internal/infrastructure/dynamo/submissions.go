package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/waza/waitlist-api/internal/domain"
)

// SubmissionRepo stores waitlist submissions. PK: email, with an id GSI for
// admin lookups and deletes.
type SubmissionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSubmissionRepo(client *dynamodb.Client, tableName string) *SubmissionRepo {
	return &SubmissionRepo{client: client, tableName: tableName}
}

// Insert persists a submission. The condition on the email key makes the
// table reject a second submission for the same address even under
// concurrent inserts; that rejection surfaces as domain.ErrConflict.
func (r *SubmissionRepo) Insert(ctx context.Context, s *domain.Submission) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return fmt.Errorf("email already on waitlist: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

// Scan returns every submission, following LastEvaluatedKey across pages.
// Filtering, search and pagination happen in the service; the admin surface
// needs the full set for its distinct-value stats anyway.
func (r *SubmissionRepo) Scan(ctx context.Context) ([]domain.Submission, error) {
	var all []domain.Submission
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Submission
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		all = append(all, page...)
		if out.LastEvaluatedKey == nil {
			return all, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// GetByID resolves a submission through the id GSI.
func (r *SubmissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("id-index"),
		KeyConditionExpression:    aws.String("id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: id}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("submission not found: %w", domain.ErrNotFound)
	}
	var s domain.Submission
	if err := attributevalue.UnmarshalMap(out.Items[0], &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes the submission with the given id. Reports
// domain.ErrNotFound when no such submission exists.
func (r *SubmissionRepo) Delete(ctx context.Context, id string) error {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", s.Email),
	})
	return err
}
