package repository

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuwaiq_relay/internal/domain/entities"
	"tuwaiq_relay/internal/usecase/interfaces"
)

// fakeDynamo keeps items per table keyed by bill_id.
type fakeDynamo struct {
	tables map[string]map[string]map[string]types.AttributeValue
	err    error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := in.Key["bill_id"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.tables[aws.ToString(in.TableName)][key]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	table := aws.ToString(in.TableName)
	if f.tables[table] == nil {
		f.tables[table] = map[string]map[string]types.AttributeValue{}
	}
	key := in.Item["bill_id"].(*types.AttributeValueMemberS).Value
	f.tables[table][key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestLedgerDynamoRepository_SaveAndFind(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewLedgerDynamoRepository(ddb, "ledger", "ledger_consultation")
	ctx := context.Background()

	pending := entities.LedgerRecord{
		BillID:      "b-1",
		Name:        "Sara",
		Phone:       "0555",
		Amount:      decimal.NewNullDecimal(decimal.NewFromInt(270)),
		PaymentLink: "https://pay/b-1",
		Consultation: &entities.ConsultationTime{
			UTC:     "2030-01-08T10:00:00.000Z",
			Display: "2030-01-08 13:00 (+03:00)",
			Date:    "2030-01-08",
			Time:    "13:00",
		},
	}
	require.NoError(t, repo.Save(ctx, entities.LedgerConsultation, pending))

	got, err := repo.FindByBillID(ctx, entities.LedgerConsultation, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "Sara", got.Name)
	assert.True(t, got.Amount.Decimal.Equal(decimal.NewFromInt(270)))
	require.NotNil(t, got.Consultation)
	assert.Equal(t, *pending.Consultation, *got.Consultation)

	settled := got
	settled.Processed = true
	settled.TransactionID = "tx-9"
	require.NoError(t, repo.Save(ctx, entities.LedgerConsultation, settled))

	got, err = repo.FindByBillID(ctx, entities.LedgerConsultation, "b-1")
	require.NoError(t, err)
	assert.True(t, got.Processed)
	assert.Equal(t, "tx-9", got.TransactionID)
	assert.Len(t, ddb.tables["ledger_consultation"], 1)
	assert.Empty(t, ddb.tables["ledger"])
}

func TestLedgerDynamoRepository_NullConsultationFields(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewLedgerDynamoRepository(ddb, "ledger", "ledger_consultation")

	require.NoError(t, repo.Save(context.Background(), entities.LedgerOrdinary, entities.LedgerRecord{BillID: "b-2"}))

	item := ddb.tables["ledger"]["b-2"]
	_, isNull := item["consultation_at_utc"].(*types.AttributeValueMemberNULL)
	assert.True(t, isNull)

	got, err := repo.FindByBillID(context.Background(), entities.LedgerOrdinary, "b-2")
	require.NoError(t, err)
	assert.Nil(t, got.Consultation)
	assert.False(t, got.Amount.Valid)
}

func TestLedgerDynamoRepository_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := NewLedgerDynamoRepository(newFakeDynamo(), "ledger", "ledger_consultation")
		_, err := repo.FindByBillID(context.Background(), entities.LedgerOrdinary, "missing")
		assert.True(t, errors.Is(err, interfaces.ErrLedgerRecordNotFound))
	})

	t.Run("table not configured", func(t *testing.T) {
		repo := NewLedgerDynamoRepository(newFakeDynamo(), "ledger", "")
		err := repo.Save(context.Background(), entities.LedgerConsultation, entities.LedgerRecord{BillID: "b"})
		assert.True(t, errors.Is(err, interfaces.ErrIntegrationDisabled))
	})

	t.Run("client error is wrapped", func(t *testing.T) {
		ddb := newFakeDynamo()
		ddb.err = errors.New("throttled")
		repo := NewLedgerDynamoRepository(ddb, "ledger", "ledger_consultation")
		err := repo.Save(context.Background(), entities.LedgerOrdinary, entities.LedgerRecord{BillID: "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "throttled")
	})
}
