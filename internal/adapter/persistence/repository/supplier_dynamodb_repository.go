package repository

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"pei_compras/internal/domain/entities"
	"pei_compras/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultSuppliersTableName = "suppliers"

var errSupplierWithoutID = errors.New("supplier registry id is required")

type supplierItem struct {
	ID          string   `dynamodbav:"id"`
	Name        string   `dynamodbav:"name"`
	Category    string   `dynamodbav:"category"`
	Email       string   `dynamodbav:"email,omitempty"`
	Phone       string   `dynamodbav:"phone,omitempty"`
	URL         string   `dynamodbav:"url,omitempty"`
	City        string   `dynamodbav:"city,omitempty"`
	Description string   `dynamodbav:"description,omitempty"`
	Rating      *float64 `dynamodbav:"rating,omitempty"`
	Verified    bool     `dynamodbav:"verified"`
	Notes       string   `dynamodbav:"notes,omitempty"`
}

// SupplierDynamoRepository is the local supplier registry.
//
// Table requirements:
//   - PK: id (string holding the numeric registry id)
//
// The registry is small, so ListAll scans the whole table.

type SupplierDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ISupplierRegistry = (*SupplierDynamoRepository)(nil)

func NewSupplierDynamoRepository(ddb dynamoAPI, table string) *SupplierDynamoRepository {
	return &SupplierDynamoRepository{
		ddb:       ddb,
		tableName: tableName(table, "SUPPLIERS_TABLE", defaultSuppliersTableName),
	}
}

// ListAll returns every supplier ordered by registry id.
func (r *SupplierDynamoRepository) ListAll(ctx context.Context) ([]entities.SupplierCandidate, error) {
	suppliers := []entities.SupplierCandidate{}
	var start map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it supplierItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			suppliers = append(suppliers, fromSupplierItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		start = out.LastEvaluatedKey
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].RegistryID < suppliers[j].RegistryID })
	return suppliers, nil
}

func (r *SupplierDynamoRepository) GetByID(ctx context.Context, id int64) (entities.SupplierCandidate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey("id", strconv.FormatInt(id, 10)),
	})
	if err != nil {
		return entities.SupplierCandidate{}, err
	}
	if len(out.Item) == 0 {
		return entities.SupplierCandidate{}, nil
	}
	var it supplierItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.SupplierCandidate{}, err
	}
	return fromSupplierItem(it), nil
}

// Save upserts a supplier by registry id.
func (r *SupplierDynamoRepository) Save(ctx context.Context, s entities.SupplierCandidate) (entities.SupplierCandidate, error) {
	if s.RegistryID <= 0 {
		return entities.SupplierCandidate{}, errSupplierWithoutID
	}
	av, err := attributevalue.MarshalMap(toSupplierItem(s))
	if err != nil {
		return entities.SupplierCandidate{}, err
	}
	if _, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return entities.SupplierCandidate{}, err
	}
	s.Source = entities.SourceRegistry
	return s, nil
}

func toSupplierItem(s entities.SupplierCandidate) supplierItem {
	return supplierItem{
		ID:          strconv.FormatInt(s.RegistryID, 10),
		Name:        s.Name,
		Category:    string(s.Category),
		Email:       s.Email,
		Phone:       s.Phone,
		URL:         s.URL,
		City:        s.City,
		Description: s.Description,
		Rating:      s.Rating,
		Verified:    s.Verified,
		Notes:       s.Notes,
	}
}

func fromSupplierItem(it supplierItem) entities.SupplierCandidate {
	id, _ := strconv.ParseInt(it.ID, 10, 64)
	return entities.SupplierCandidate{
		RegistryID:  id,
		Name:        it.Name,
		Category:    entities.Category(it.Category),
		Email:       it.Email,
		Phone:       it.Phone,
		URL:         it.URL,
		City:        it.City,
		Description: it.Description,
		Source:      entities.SourceRegistry,
		Rating:      it.Rating,
		Verified:    it.Verified,
		Notes:       it.Notes,
	}
}
