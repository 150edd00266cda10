package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"tuwaiq_relay/internal/domain/entities"
	"tuwaiq_relay/internal/usecase/interfaces"
)

// DynamoAPI is the part of the DynamoDB client the ledger uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type ledgerItem struct {
	BillID                 string  `dynamodbav:"bill_id"`
	CustomerStatus         string  `dynamodbav:"customer_status"`
	Name                   string  `dynamodbav:"name"`
	Phone                  string  `dynamodbav:"phone"`
	Email                  string  `dynamodbav:"email"`
	Amount                 string  `dynamodbav:"amount,omitempty"`
	PaymentLink            string  `dynamodbav:"payment_link"`
	Processed              bool    `dynamodbav:"processed"`
	TransactionID          string  `dynamodbav:"transaction_id"`
	PaidAt                 string  `dynamodbav:"paid_at"`
	PaymentStatus          string  `dynamodbav:"payment_status"`
	ConsultationAtUTC      *string `dynamodbav:"consultation_at_utc"`
	ConsultationAtRiyadh   *string `dynamodbav:"consultation_at_riyadh"`
	ConsultationDateRiyadh *string `dynamodbav:"consultation_date_riyadh"`
	ConsultationTimeRiyadh *string `dynamodbav:"consultation_time_riyadh"`
}

// LedgerDynamoRepository keeps ledger rows in DynamoDB, one table per ledger kind.
//
// Table requirements:
//   - PK: bill_id (string)
type LedgerDynamoRepository struct {
	ddb    DynamoAPI
	tables map[entities.LedgerKind]string
}

var _ interfaces.ILedgerRepository = (*LedgerDynamoRepository)(nil)

func NewLedgerDynamoRepository(ddb DynamoAPI, ordinaryTable, consultationTable string) *LedgerDynamoRepository {
	return &LedgerDynamoRepository{
		ddb: ddb,
		tables: map[entities.LedgerKind]string{
			entities.LedgerOrdinary:     ordinaryTable,
			entities.LedgerConsultation: consultationTable,
		},
	}
}

func (r *LedgerDynamoRepository) FindByBillID(ctx context.Context, kind entities.LedgerKind, billID string) (entities.LedgerRecord, error) {
	table, err := r.table(kind)
	if err != nil {
		return entities.LedgerRecord{}, err
	}

	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"bill_id": &types.AttributeValueMemberS{Value: billID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.LedgerRecord{}, errors.Wrapf(err, "get ledger item from %s", table)
	}
	if len(out.Item) == 0 {
		return entities.LedgerRecord{}, errors.Wrapf(interfaces.ErrLedgerRecordNotFound, "%s bill %s", table, billID)
	}

	var it ledgerItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.LedgerRecord{}, errors.Wrap(err, "decode ledger item")
	}
	return fromLedgerItem(it), nil
}

// Save upserts by bill id: the row written at bill creation is replaced when the payment settles.
func (r *LedgerDynamoRepository) Save(ctx context.Context, kind entities.LedgerKind, record entities.LedgerRecord) error {
	table, err := r.table(kind)
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(toLedgerItem(record))
	if err != nil {
		return errors.Wrap(err, "encode ledger item")
	}

	if _, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	}); err != nil {
		return errors.Wrapf(err, "put ledger item into %s", table)
	}
	return nil
}

func (r *LedgerDynamoRepository) table(kind entities.LedgerKind) (string, error) {
	if r.ddb == nil || r.tables[kind] == "" {
		return "", errors.Wrapf(interfaces.ErrIntegrationDisabled, "%s ledger", kind)
	}
	return r.tables[kind], nil
}

func toLedgerItem(r entities.LedgerRecord) ledgerItem {
	it := ledgerItem{
		BillID:         r.BillID,
		CustomerStatus: r.CustomerStatus,
		Name:           r.Name,
		Phone:          r.Phone,
		Email:          r.Email,
		PaymentLink:    r.PaymentLink,
		Processed:      r.Processed,
		TransactionID:  r.TransactionID,
		PaidAt:         r.PaidAt,
		PaymentStatus:  r.PaymentStatus,
	}
	if r.Amount.Valid {
		it.Amount = r.Amount.Decimal.String()
	}
	if c := r.Consultation; c != nil {
		it.ConsultationAtUTC = nullable(c.UTC)
		it.ConsultationAtRiyadh = nullable(c.Display)
		it.ConsultationDateRiyadh = nullable(c.Date)
		it.ConsultationTimeRiyadh = nullable(c.Time)
	}
	return it
}

func fromLedgerItem(it ledgerItem) entities.LedgerRecord {
	r := entities.LedgerRecord{
		BillID:         it.BillID,
		CustomerStatus: it.CustomerStatus,
		Name:           it.Name,
		Phone:          it.Phone,
		Email:          it.Email,
		PaymentLink:    it.PaymentLink,
		Processed:      it.Processed,
		TransactionID:  it.TransactionID,
		PaidAt:         it.PaidAt,
		PaymentStatus:  it.PaymentStatus,
	}
	if amount, err := decimal.NewFromString(it.Amount); err == nil {
		r.Amount = decimal.NewNullDecimal(amount)
	}
	c := entities.ConsultationTime{
		UTC:     deref(it.ConsultationAtUTC),
		Display: deref(it.ConsultationAtRiyadh),
		Date:    deref(it.ConsultationDateRiyadh),
		Time:    deref(it.ConsultationTimeRiyadh),
	}
	if !c.IsZero() {
		r.Consultation = &c
	}
	return r
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
