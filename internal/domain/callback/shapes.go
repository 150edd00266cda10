package callback

import (
	"tuwaiq_relay/internal/domain/entities"
)

const (
	keyTransactionDetails = "transactionDetails"
	keyBill               = "bill"
)

// nestedShape: {"transactionDetails": {..., "bill": {...}}, ...top-level fallbacks}.
type nestedShape struct{}

func (nestedShape) name() string { return ShapeNested }

func (nestedShape) matches(doc map[string]any) bool {
	_, ok := objectField(doc, keyTransactionDetails)
	return ok
}

func (nestedShape) extract(doc map[string]any) entities.PaymentEvent {
	td, _ := objectField(doc, keyTransactionDetails)
	bill, hasBill := objectField(td, keyBill)

	ev := entities.PaymentEvent{
		TransactionID: firstNonEmpty(
			stringField(td, "transactionId", "transactionIdDisplay"),
			stringField(doc, "transactionId", "txnId"),
		),
		MerchantTransactionID: firstNonEmpty(
			stringField(td, "merchantTransactionId", "merchantTransactionIdDisplay"),
			stringField(doc, "merchantTransactionId"),
		),
		PaymentMethod: firstNonEmpty(
			paymentMethod(td["paymentMethod"]),
			paymentMethod(doc["paymentMethod"]),
		),
		PaidAt: firstNonEmpty(
			canonicalTimestamp(td["paymentDate"]),
			canonicalTimestamp(td["paidAt"]),
			canonicalTimestamp(doc["paidAt"]),
		),
	}

	if hasBill {
		ev.BillID = firstNonEmpty(stringField(bill, "id", "billId"), stringField(doc, "billId"))
		ev.Amount = firstAmount(bill["amount"], td["amount"], doc["amount"])
		ev.Status = firstNonEmpty(stringField(td, "status"), stringField(bill, "status"), stringField(doc, "status"))
		contactFields(&ev, bill, td, doc)
	} else {
		ev.BillID = stringField(doc, "billId")
		ev.Amount = firstAmount(doc["amount"])
		ev.Status = firstNonEmpty(stringField(doc, "status"), stringField(td, "status"))
		contactFields(&ev, doc, td)
	}

	ev.Consultation = consultationFields(doc, td)
	return ev
}

// flatShape: every field at the top level. Matches any object.
type flatShape struct{}

func (flatShape) name() string { return ShapeFlat }

func (flatShape) matches(map[string]any) bool { return true }

func (flatShape) extract(doc map[string]any) entities.PaymentEvent {
	ev := entities.PaymentEvent{
		BillID:                stringField(doc, "billId"),
		TransactionID:         stringField(doc, "transactionId", "txnId"),
		MerchantTransactionID: stringField(doc, "merchantTransactionId"),
		Amount:                firstAmount(doc["amount"]),
		Status:                stringField(doc, "status"),
		PaymentMethod:         paymentMethod(doc["paymentMethod"]),
		PaidAt:                canonicalTimestamp(doc["paidAt"]),
	}
	contactFields(&ev, doc)
	ev.Consultation = consultationFields(doc)
	return ev
}
