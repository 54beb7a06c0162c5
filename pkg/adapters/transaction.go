package adapters

import (
	"strconv"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
)

func MapDomainTransactionToStore(t domain.Transaction, source string) store.TransactionRecord {
	var orderDate *time.Time
	if t.HasDate {
		d := t.OrderDate
		orderDate = &d
	}
	return store.TransactionRecord{
		OrderID:      t.OrderID,
		OrderDate:    orderDate,
		RawDate:      t.RawDate,
		ProductName:  t.ProductName,
		Category:     t.Category,
		CustomerName: t.CustomerName,
		Region:       t.Region,
		Sales:        t.Sales,
		Quantity:     t.Quantity,
		Profit:       t.Profit,
		Source:       source,
	}
}

// MapStoreTransactionToDomain rebuilds a transaction whose Raw row follows
// domain.RequiredColumns.
func MapStoreTransactionToDomain(r store.TransactionRecord) domain.Transaction {
	t := domain.Transaction{
		OrderID:      r.OrderID,
		RawDate:      r.RawDate,
		ProductName:  r.ProductName,
		Category:     r.Category,
		CustomerName: r.CustomerName,
		Region:       r.Region,
		Sales:        r.Sales,
		Quantity:     r.Quantity,
		Profit:       r.Profit,
	}
	if r.OrderDate != nil {
		t.OrderDate = domain.DateOnly(*r.OrderDate)
		t.HasDate = true
		if t.RawDate == "" {
			t.RawDate = t.OrderDate.Format(time.DateOnly)
		}
	}
	t.Raw = []string{
		t.OrderID,
		t.RawDate,
		t.ProductName,
		t.Category,
		t.Region,
		t.CustomerName,
		strconv.FormatFloat(t.Sales, 'f', -1, 64),
		strconv.Itoa(t.Quantity),
		strconv.FormatFloat(t.Profit, 'f', -1, 64),
	}
	return t
}

func MapStoreTransactionsToDataset(records []store.TransactionRecord) domain.Dataset {
	ds := domain.Dataset{
		Columns:      append([]string{}, domain.RequiredColumns...),
		Transactions: make([]domain.Transaction, 0, len(records)),
	}
	for _, r := range records {
		ds.Transactions = append(ds.Transactions, MapStoreTransactionToDomain(r))
	}
	return ds
}
