package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/waza/waitlist-api/internal/domain"
)

// AdminTokenRepo stores admin credentials. PK: token — the surface looks
// credentials up by raw value on every call — with an id GSI for
// deactivation by id.
type AdminTokenRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAdminTokenRepo(client *dynamodb.Client, tableName string) *AdminTokenRepo {
	return &AdminTokenRepo{client: client, tableName: tableName}
}

func (r *AdminTokenRepo) Put(ctx context.Context, t *domain.AdminToken) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal admin token: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *AdminTokenRepo) Get(ctx context.Context, token string) (*domain.AdminToken, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("token", token),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("admin token not found: %w", domain.ErrNotFound)
	}
	var t domain.AdminToken
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TouchLastUsed refreshes last_used_at for the given token.
func (r *AdminTokenRepo) TouchLastUsed(ctx context.Context, token string, at time.Time) error {
	ue, err := buildUpdateExpr(map[string]interface{}{"last_used_at": at.UTC().Format(time.RFC3339)})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("token", token),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// DeactivateByID flips is_active off for the token with the given id.
func (r *AdminTokenRepo) DeactivateByID(ctx context.Context, id string) error {
	t, err := r.getByID(ctx, id)
	if err != nil {
		return err
	}
	ue, err := buildUpdateExpr(map[string]interface{}{"is_active": false})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("token", t.Token),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *AdminTokenRepo) getByID(ctx context.Context, id string) (*domain.AdminToken, error) {
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
		return nil, fmt.Errorf("admin token not found: %w", domain.ErrNotFound)
	}
	var t domain.AdminToken
	if err := attributevalue.UnmarshalMap(out.Items[0], &t); err != nil {
		return nil, err
	}
	return &t, nil
}
