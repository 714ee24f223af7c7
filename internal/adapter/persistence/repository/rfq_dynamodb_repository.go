package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"pei_compras/internal/domain/entities"
	"pei_compras/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultRFQsTableName        = "rfqs"
	defaultRFQCountersTableName = "rfq_counters"
	rfqsPurchaseRequestIndex    = "purchase_request_id-index"
)

type rfqItem struct {
	ID                string `dynamodbav:"id"`
	PurchaseRequestID string `dynamodbav:"purchase_request_id"`
	SupplierID        int64  `dynamodbav:"supplier_id,omitempty"`
	SupplierName      string `dynamodbav:"supplier_name"`
	SupplierEmail     string `dynamodbav:"supplier_email,omitempty"`
	SupplierSource    string `dynamodbav:"supplier_source"`
	Number            string `dynamodbav:"number"`
	Subject           string `dynamodbav:"subject"`
	Content           string `dynamodbav:"content"`
	Status            string `dynamodbav:"status"`
	Deadline          string `dynamodbav:"deadline"`
	SentAt            string `dynamodbav:"sent_at,omitempty"`
	RespondedAt       string `dynamodbav:"responded_at,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

// RFQDynamoRepository persists RFQ entities in DynamoDB.
//
// Table requirements:
//   - rfqs: PK id (string), GSI purchase_request_id-index on purchase_request_id
//   - rfq_counters: PK id (string), one item per year ("RFQ-2026") holding seq
//
// Numbers come from an atomic ADD on the counter item, so concurrent drafts
// never share a number.

type RFQDynamoRepository struct {
	ddb          dynamoAPI
	tableName    string
	countersName string
}

var _ interfaces.IRFQRepository = (*RFQDynamoRepository)(nil)

func NewRFQDynamoRepository(ddb dynamoAPI, table, countersTable string) *RFQDynamoRepository {
	return &RFQDynamoRepository{
		ddb:          ddb,
		tableName:    tableName(table, "RFQS_TABLE", defaultRFQsTableName),
		countersName: tableName(countersTable, "RFQ_COUNTERS_TABLE", defaultRFQCountersTableName),
	}
}

func (r *RFQDynamoRepository) NextSequence(ctx context.Context, year int) (int, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.countersName),
		Key:              stringKey("id", "RFQ-"+strconv.Itoa(year)),
		UpdateExpression: aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("rfq counter %d: missing seq attribute", year)
	}
	seq, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("rfq counter %d: %w", year, err)
	}
	return seq, nil
}

func (r *RFQDynamoRepository) Create(ctx context.Context, rfq entities.RFQ) (entities.RFQ, error) {
	av, err := attributevalue.MarshalMap(toRFQItem(rfq))
	if err != nil {
		return entities.RFQ{}, err
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
		return entities.RFQ{}, err
	}
	return rfq, nil
}

func (r *RFQDynamoRepository) GetByID(ctx context.Context, id string) (entities.RFQ, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.RFQ{}, err
	}
	if len(out.Item) == 0 {
		return entities.RFQ{}, nil
	}

	var it rfqItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.RFQ{}, err
	}
	return fromRFQItem(it)
}

// ListByPurchaseRequestID returns the request's RFQs in creation order.
func (r *RFQDynamoRepository) ListByPurchaseRequestID(ctx context.Context, purchaseRequestID string) ([]entities.RFQ, error) {
	var (
		rfqs  []entities.RFQ
		start map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(rfqsPurchaseRequestIndex),
			KeyConditionExpression: aws.String("purchase_request_id = :prid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":prid": &types.AttributeValueMemberS{Value: purchaseRequestID},
			},
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it rfqItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			rfq, err := fromRFQItem(it)
			if err != nil {
				return nil, err
			}
			rfqs = append(rfqs, rfq)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		start = out.LastEvaluatedKey
	}

	sort.SliceStable(rfqs, func(i, j int) bool { return rfqBefore(rfqs[i], rfqs[j]) })
	if rfqs == nil {
		rfqs = []entities.RFQ{}
	}
	return rfqs, nil
}

func (r *RFQDynamoRepository) UpdateContent(ctx context.Context, id, content string) (entities.RFQ, error) {
	return r.update(ctx, id, "", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #content = :content, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":content":    &types.AttributeValueMemberS{Value: content},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#content":    "content",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

// MarkSent records a successful send. Only drafts and already sent RFQs move;
// closed ones are left untouched and a zero RFQ is returned.
func (r *RFQDynamoRepository) MarkSent(ctx context.Context, id string, sentAt time.Time) (entities.RFQ, error) {
	cond := "#status IN (:borrador, :enviado)"
	return r.update(ctx, id, cond, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :enviado, #sent_at = :sent_at, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":borrador":   &types.AttributeValueMemberS{Value: string(entities.RFQStatusBorrador)},
			":enviado":    &types.AttributeValueMemberS{Value: string(entities.RFQStatusEnviado)},
			":sent_at":    &types.AttributeValueMemberS{Value: formatTime(sentAt)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#sent_at":    "sent_at",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *RFQDynamoRepository) update(
	ctx context.Context,
	id string,
	extraCondition string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.RFQ, error) {
	updateExpr, values, names := build(nowString())
	cond := "attribute_exists(#id)"
	if extraCondition != "" {
		cond += " AND " + extraCondition
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("id", id),
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.RFQ{}, nil
		}
		return entities.RFQ{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.RFQ{}, nil
	}
	var it rfqItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.RFQ{}, err
	}
	return fromRFQItem(it)
}

// rfqBefore orders by creation time, then by year and sequence of the number.
// Numbers are not compared as strings: RFQ-2026-10000 follows RFQ-2026-9999.
func rfqBefore(a, b entities.RFQ) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	ay, as, aok := entities.ParseRFQNumber(a.Number)
	by, bs, bok := entities.ParseRFQNumber(b.Number)
	switch {
	case aok && bok:
		if ay != by {
			return ay < by
		}
		return as < bs
	case aok != bok:
		return aok
	default:
		return a.Number < b.Number
	}
}

func toRFQItem(r entities.RFQ) rfqItem {
	return rfqItem{
		ID:                r.ID,
		PurchaseRequestID: r.PurchaseRequestID,
		SupplierID:        r.SupplierID,
		SupplierName:      r.SupplierName,
		SupplierEmail:     r.SupplierEmail,
		SupplierSource:    string(r.SupplierSource),
		Number:            r.Number,
		Subject:           r.Subject,
		Content:           r.Content,
		Status:            string(r.Status),
		Deadline:          formatTime(r.Deadline),
		SentAt:            formatTimePtr(r.SentAt),
		RespondedAt:       formatTimePtr(r.RespondedAt),
		CreatedAt:         formatTime(r.CreatedAt),
		UpdatedAt:         formatTime(r.UpdatedAt),
	}
}

func fromRFQItem(it rfqItem) (entities.RFQ, error) {
	status, err := entities.ParseRFQStatus(it.Status)
	if err != nil {
		return entities.RFQ{}, fmt.Errorf("rfq %s: %w", it.ID, err)
	}
	return entities.RFQ{
		ID:                it.ID,
		PurchaseRequestID: it.PurchaseRequestID,
		SupplierID:        it.SupplierID,
		SupplierName:      it.SupplierName,
		SupplierEmail:     it.SupplierEmail,
		SupplierSource:    entities.Source(it.SupplierSource),
		Number:            it.Number,
		Subject:           it.Subject,
		Content:           it.Content,
		Status:            status,
		Deadline:          parseTime(it.Deadline),
		SentAt:            parseTimePtr(it.SentAt),
		RespondedAt:       parseTimePtr(it.RespondedAt),
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}, nil
}
