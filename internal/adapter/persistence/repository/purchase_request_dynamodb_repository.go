package repository

import (
	"context"
	"fmt"

	"pei_compras/internal/domain/entities"
	"pei_compras/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultPurchaseRequestsTableName = "purchase_requests"

type lineItemAttr struct {
	Name           string `dynamodbav:"name"`
	Quantity       int    `dynamodbav:"quantity"`
	Category       string `dynamodbav:"category"`
	Specifications string `dynamodbav:"specifications,omitempty"`
}

type purchaseRequestItem struct {
	ID               string         `dynamodbav:"id"`
	RequesterName    string         `dynamodbav:"requester_name"`
	RequesterContact string         `dynamodbav:"requester_contact"`
	Description      string         `dynamodbav:"description"`
	Category         string         `dynamodbav:"category"`
	Quantity         *int           `dynamodbav:"quantity,omitempty"`
	Budget           string         `dynamodbav:"budget,omitempty"`
	Deadline         string         `dynamodbav:"deadline,omitempty"`
	Urgency          string         `dynamodbav:"urgency"`
	Priority         int            `dynamodbav:"priority"`
	Status           string         `dynamodbav:"status"`
	FailureReason    string         `dynamodbav:"failure_reason,omitempty"`
	FailedStage      string         `dynamodbav:"failed_stage,omitempty"`
	Origin           string         `dynamodbav:"origin"`
	Items            []lineItemAttr `dynamodbav:"items"`
	InternalNotes    string         `dynamodbav:"internal_notes,omitempty"`
	CreatedAt        string         `dynamodbav:"created_at"`
	UpdatedAt        string         `dynamodbav:"updated_at"`
}

// PurchaseRequestDynamoRepository persists PurchaseRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Status changes are conditional on the stored status, so two writers can
// never both move a request out of the same state.

type PurchaseRequestDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IPurchaseRequestRepository = (*PurchaseRequestDynamoRepository)(nil)

func NewPurchaseRequestDynamoRepository(ddb dynamoAPI, table string) *PurchaseRequestDynamoRepository {
	return &PurchaseRequestDynamoRepository{
		ddb:       ddb,
		tableName: tableName(table, "PURCHASE_REQUESTS_TABLE", defaultPurchaseRequestsTableName),
	}
}

func (r *PurchaseRequestDynamoRepository) Create(ctx context.Context, pr entities.PurchaseRequest) (entities.PurchaseRequest, error) {
	av, err := attributevalue.MarshalMap(toPurchaseRequestItem(pr))
	if err != nil {
		return entities.PurchaseRequest{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.PurchaseRequest{}, err
	}
	return pr, nil
}

func (r *PurchaseRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.PurchaseRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PurchaseRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.PurchaseRequest{}, nil
	}

	var it purchaseRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PurchaseRequest{}, err
	}
	return fromPurchaseRequestItem(it)
}

// TransitionStatus moves id from -> to. It returns a zero PurchaseRequest when
// the id is unknown or the stored status is no longer from.
func (r *PurchaseRequestDynamoRepository) TransitionStatus(
	ctx context.Context,
	id string,
	from, to entities.PurchaseRequestStatus,
	failureReason, failedStage string,
) (entities.PurchaseRequest, error) {
	expr := "SET #status = :to, #updated_at = :updated_at, #failure_reason = :reason, #failed_stage = :stage"
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", id),
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:    aws.String(expr),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":to":         &types.AttributeValueMemberS{Value: string(to)},
			":reason":     &types.AttributeValueMemberS{Value: failureReason},
			":stage":      &types.AttributeValueMemberS{Value: failedStage},
			":updated_at": &types.AttributeValueMemberS{Value: nowString()},
		},
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#status":         "status",
			"#updated_at":     "updated_at",
			"#failure_reason": "failure_reason",
			"#failed_stage":   "failed_stage",
		}, map[string]string{"#id": "id"}),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.PurchaseRequest{}, nil
		}
		return entities.PurchaseRequest{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.PurchaseRequest{}, nil
	}
	var it purchaseRequestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PurchaseRequest{}, err
	}
	return fromPurchaseRequestItem(it)
}

func toPurchaseRequestItem(pr entities.PurchaseRequest) purchaseRequestItem {
	it := purchaseRequestItem{
		ID:               pr.ID,
		RequesterName:    pr.RequesterName,
		RequesterContact: pr.RequesterContact,
		Description:      pr.Description,
		Category:         string(pr.Category),
		Quantity:         pr.Quantity,
		Deadline:         formatTimePtr(pr.Deadline),
		Urgency:          string(pr.Urgency),
		Priority:         pr.Priority,
		Status:           string(pr.Status),
		FailureReason:    pr.FailureReason,
		FailedStage:      pr.FailedStage,
		Origin:           string(pr.Origin),
		InternalNotes:    pr.InternalNotes,
		CreatedAt:        formatTime(pr.CreatedAt),
		UpdatedAt:        formatTime(pr.UpdatedAt),
	}
	if pr.Budget != nil {
		it.Budget = pr.Budget.String()
	}
	it.Items = make([]lineItemAttr, 0, len(pr.Items))
	for _, li := range pr.Items {
		it.Items = append(it.Items, lineItemAttr{
			Name:           li.Name,
			Quantity:       li.Quantity,
			Category:       string(li.Category),
			Specifications: li.Specifications,
		})
	}
	return it
}

func fromPurchaseRequestItem(it purchaseRequestItem) (entities.PurchaseRequest, error) {
	status, err := entities.ParsePurchaseRequestStatus(it.Status)
	if err != nil {
		return entities.PurchaseRequest{}, fmt.Errorf("purchase request %s: %w", it.ID, err)
	}
	pr := entities.PurchaseRequest{
		ID:               it.ID,
		RequesterName:    it.RequesterName,
		RequesterContact: it.RequesterContact,
		Description:      it.Description,
		Category:         entities.Category(it.Category),
		Quantity:         it.Quantity,
		Deadline:         parseTimePtr(it.Deadline),
		Urgency:          entities.Urgency(it.Urgency),
		Priority:         it.Priority,
		Status:           status,
		FailureReason:    it.FailureReason,
		FailedStage:      it.FailedStage,
		Origin:           entities.Origin(it.Origin),
		InternalNotes:    it.InternalNotes,
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}
	if it.Budget != "" {
		if d, err := decimal.NewFromString(it.Budget); err == nil {
			pr.Budget = &d
		}
	}
	pr.Items = make([]entities.LineItem, 0, len(it.Items))
	for _, li := range it.Items {
		pr.Items = append(pr.Items, entities.LineItem{
			Name:           li.Name,
			Quantity:       li.Quantity,
			Category:       entities.Category(li.Category),
			Specifications: li.Specifications,
		})
	}
	return pr, nil
}
