package repository

import (
	"context"
	"testing"
	"time"

	"pei_compras/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo records the last input of each call and replays scripted outputs.
type fakeDynamo struct {
	put    *dynamodb.PutItemInput
	get    *dynamodb.GetItemInput
	update *dynamodb.UpdateItemInput
	query  []*dynamodb.QueryInput
	scan   []*dynamodb.ScanInput

	getOut    *dynamodb.GetItemOutput
	updateOut *dynamodb.UpdateItemOutput
	updateErr error
	queryOut  []*dynamodb.QueryOutput
	scanOut   []*dynamodb.ScanOutput
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.put = in
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.get = in
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getOut, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.update = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateOut, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.query = append(f.query, in)
	out := f.queryOut[0]
	f.queryOut = f.queryOut[1:]
	return out, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scan = append(f.scan, in)
	out := f.scanOut[0]
	f.scanOut = f.scanOut[1:]
	return out, nil
}

func mustMarshal(t *testing.T, v any) map[string]types.AttributeValue {
	av, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	return av
}

func TestPurchaseRequestItem_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	qty := 5
	budget := decimal.RequireFromString("15000.50")
	pr := entities.PurchaseRequest{
		ID:            "pr-1",
		RequesterName: "Sistema",
		Description:   "Necesito laptops",
		Category:      entities.CategoryTecnologia,
		Quantity:      &qty,
		Budget:        &budget,
		Urgency:       entities.UrgencyAlta,
		Priority:      4,
		Status:        entities.PurchaseRequestStatusPendiente,
		Origin:        entities.OriginForm,
		Items:         []entities.LineItem{{Name: "Laptop HP", Quantity: 5, Category: entities.CategoryTecnologia, Specifications: "16GB"}},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	av := mustMarshal(t, toPurchaseRequestItem(pr))
	var it purchaseRequestItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &it))
	got, err := fromPurchaseRequestItem(it)
	require.NoError(t, err)

	require.NotNil(t, got.Budget)
	assert.True(t, budget.Equal(*got.Budget))
	got.Budget = pr.Budget
	assert.Equal(t, pr, got)
	assert.NotContains(t, av, "deadline")
}

func TestPurchaseRequestRepository_TransitionStatus(t *testing.T) {
	t.Run("conditional on the current status", func(t *testing.T) {
		f := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, purchaseRequestItem{ID: "pr-1", Status: "cancelada", FailedStage: "discover"})}}
		repo := NewPurchaseRequestDynamoRepository(f, "prs")

		got, err := repo.TransitionStatus(context.Background(), "pr-1", entities.PurchaseRequestStatusEnProceso, entities.PurchaseRequestStatusCancelada, "sin proveedores", "discover")
		require.NoError(t, err)
		assert.Equal(t, entities.PurchaseRequestStatusCancelada, got.Status)

		assert.Equal(t, "prs", aws.ToString(f.update.TableName))
		assert.Equal(t, "attribute_exists(#id) AND #status = :from", aws.ToString(f.update.ConditionExpression))
		assert.Equal(t, &types.AttributeValueMemberS{Value: "en_proceso"}, f.update.ExpressionAttributeValues[":from"])
		assert.Equal(t, &types.AttributeValueMemberS{Value: "sin proveedores"}, f.update.ExpressionAttributeValues[":reason"])
	})

	t.Run("stale status yields zero entity", func(t *testing.T) {
		f := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{Message: aws.String("failed")}}
		repo := NewPurchaseRequestDynamoRepository(f, "prs")

		got, err := repo.TransitionStatus(context.Background(), "pr-1", entities.PurchaseRequestStatusPendiente, entities.PurchaseRequestStatusEnProceso, "", "")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("unknown id on read", func(t *testing.T) {
		repo := NewPurchaseRequestDynamoRepository(&fakeDynamo{}, "prs")
		got, err := repo.GetByID(context.Background(), "nope")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})
}

func TestRFQRepository_NextSequence(t *testing.T) {
	f := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
		"seq": &types.AttributeValueMemberN{Value: "42"},
	}}}
	repo := NewRFQDynamoRepository(f, "rfqs", "counters")

	seq, err := repo.NextSequence(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, 42, seq)
	assert.Equal(t, "counters", aws.ToString(f.update.TableName))
	assert.Equal(t, &types.AttributeValueMemberS{Value: "RFQ-2026"}, f.update.Key["id"])
	assert.Equal(t, "ADD #seq :one", aws.ToString(f.update.UpdateExpression))
	assert.Equal(t, types.ReturnValueUpdatedNew, f.update.ReturnValues)

	f.updateOut = &dynamodb.UpdateItemOutput{}
	_, err = repo.NextSequence(context.Background(), 2026)
	assert.Error(t, err)
}

func TestRFQRepository_ListAndMarkSent(t *testing.T) {
	page1 := &dynamodb.QueryOutput{
		Items:            []map[string]types.AttributeValue{mustMarshal(t, rfqItem{ID: "b", Number: "RFQ-2026-0002", PurchaseRequestID: "pr-1", Status: "borrador"})},
		LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "b"}},
	}
	page2 := &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{mustMarshal(t, rfqItem{ID: "a", Number: "RFQ-2026-0001", PurchaseRequestID: "pr-1", Status: "enviado"})},
	}
	f := &fakeDynamo{queryOut: []*dynamodb.QueryOutput{page1, page2}}
	repo := NewRFQDynamoRepository(f, "rfqs", "counters")

	list, err := repo.ListByPurchaseRequestID(context.Background(), "pr-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	require.Len(t, f.query, 2)
	assert.Equal(t, rfqsPurchaseRequestIndex, aws.ToString(f.query[0].IndexName))
	assert.Equal(t, page1.LastEvaluatedKey, f.query[1].ExclusiveStartKey)

	sentAt := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	f.updateErr = &types.ConditionalCheckFailedException{}
	got, err := repo.MarkSent(context.Background(), "a", sentAt)
	require.NoError(t, err)
	assert.Empty(t, got.ID)
	assert.Equal(t, "attribute_exists(#id) AND #status IN (:borrador, :enviado)", aws.ToString(f.update.ConditionExpression))
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2026-03-10T10:00:00Z"}, f.update.ExpressionAttributeValues[":sent_at"])
}

func TestRFQItem_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	sent := now.Add(time.Minute)
	r := entities.RFQ{
		ID: "rfq-1", PurchaseRequestID: "pr-1", SupplierID: 3, SupplierName: "Tech", SupplierEmail: "v@t.cl",
		SupplierSource: entities.SourceRegistry, Number: "RFQ-2026-0001", Subject: "s", Content: "c",
		Status: entities.RFQStatusEnviado, Deadline: now.AddDate(0, 0, 5), SentAt: &sent, CreatedAt: now, UpdatedAt: now,
	}
	var it rfqItem
	require.NoError(t, attributevalue.UnmarshalMap(mustMarshal(t, toRFQItem(r)), &it))
	got, err := fromRFQItem(it)
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestRepositories_RejectUnknownStoredStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("purchase request read", func(t *testing.T) {
		f := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: mustMarshal(t, purchaseRequestItem{ID: "pr-1", Status: "processing"})}}
		got, err := NewPurchaseRequestDynamoRepository(f, "prs").GetByID(ctx, "pr-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"processing"`)
		assert.Empty(t, got.ID)
	})

	t.Run("purchase request transition", func(t *testing.T) {
		f := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, purchaseRequestItem{ID: "pr-1", Status: "processing"})}}
		_, err := NewPurchaseRequestDynamoRepository(f, "prs").TransitionStatus(ctx, "pr-1",
			entities.PurchaseRequestStatusPendiente, entities.PurchaseRequestStatusEnProceso, "", "")
		require.Error(t, err)
	})

	t.Run("rfq read", func(t *testing.T) {
		f := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: mustMarshal(t, rfqItem{ID: "rfq-1", Status: "error"})}}
		got, err := NewRFQDynamoRepository(f, "rfqs", "counters").GetByID(ctx, "rfq-1")
		require.Error(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("rfq mark sent", func(t *testing.T) {
		f := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, rfqItem{ID: "rfq-1", Status: "sent"})}}
		_, err := NewRFQDynamoRepository(f, "rfqs", "counters").MarkSent(ctx, "rfq-1", time.Now())
		require.Error(t, err)
	})

	t.Run("rfq list", func(t *testing.T) {
		f := &fakeDynamo{queryOut: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{
			mustMarshal(t, rfqItem{ID: "rfq-1", Status: "borrador"}),
			mustMarshal(t, rfqItem{ID: "rfq-2", Status: ""}),
		}}}}
		list, err := NewRFQDynamoRepository(f, "rfqs", "counters").ListByPurchaseRequestID(ctx, "pr-1")
		require.Error(t, err)
		assert.Nil(t, list)
	})
}

func TestRFQRepository_ListOrdersPastFourDigitSequences(t *testing.T) {
	created := "2026-03-10T09:30:00Z"
	f := &fakeDynamo{queryOut: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{
		mustMarshal(t, rfqItem{ID: "late", Number: "RFQ-2026-10000", Status: "borrador", CreatedAt: created}),
		mustMarshal(t, rfqItem{ID: "early", Number: "RFQ-2026-9999", Status: "borrador", CreatedAt: created}),
		mustMarshal(t, rfqItem{ID: "first", Number: "RFQ-2026-10001", Status: "enviado", CreatedAt: "2026-03-10T09:00:00Z"}),
	}}}}

	list, err := NewRFQDynamoRepository(f, "rfqs", "counters").ListByPurchaseRequestID(context.Background(), "pr-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"first", "early", "late"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestSupplierRepository(t *testing.T) {
	rating := 4.5
	f := &fakeDynamo{scanOut: []*dynamodb.ScanOutput{{
		Items: []map[string]types.AttributeValue{
			mustMarshal(t, supplierItem{ID: "7", Name: "Papelería Central", Category: "insumos"}),
			mustMarshal(t, supplierItem{ID: "1", Name: "Tech Solutions", Category: "tecnologia", Rating: &rating, Verified: true}),
		},
	}}}
	repo := NewSupplierDynamoRepository(f, "suppliers")

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].RegistryID)
	assert.Equal(t, entities.SourceRegistry, all[0].Source)
	assert.Equal(t, &rating, all[0].Rating)

	_, err = repo.Save(context.Background(), entities.SupplierCandidate{Name: "sin id"})
	assert.ErrorIs(t, err, errSupplierWithoutID)

	saved, err := repo.Save(context.Background(), entities.SupplierCandidate{RegistryID: 12, Name: "Nuevo"})
	require.NoError(t, err)
	assert.Equal(t, entities.SourceRegistry, saved.Source)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "12"}, f.put.Item["id"])
}
