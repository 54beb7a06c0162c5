package store

import "time"

type TransactionRecord struct {
	RowID        int64
	OrderID      string
	OrderDate    *time.Time
	RawDate      string
	ProductName  string
	Category     string
	CustomerName string
	Region       string
	Sales        float64
	Quantity     int
	Profit       float64
	Source       string
	ImportedAt   time.Time
}

type ImportStats struct {
	Source  string
	Rows    int64
	FirstAt *time.Time
	LastAt  *time.Time
}
