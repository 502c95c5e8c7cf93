package core

// Ledger is an immutable, insertion-ordered snapshot of transactions.
// The zero value is an empty ledger.
type Ledger struct {
	txs []Transaction
}

// NewLedger builds a ledger holding a copy of txs in the given order.
func NewLedger(txs ...Transaction) Ledger {
	if len(txs) == 0 {
		return Ledger{}
	}
	return Ledger{txs: append([]Transaction(nil), txs...)}
}

func (l Ledger) Len() int {
	return len(l.txs)
}

func (l Ledger) IsEmpty() bool {
	return len(l.txs) == 0
}

// At returns the i-th transaction in insertion order.
func (l Ledger) At(i int) Transaction {
	return l.txs[i]
}

// Transactions returns a copy of the entries in insertion order.
func (l Ledger) Transactions() []Transaction {
	return append([]Transaction(nil), l.txs...)
}

// Append returns a new ledger with tx added at the end. The receiver is left
// untouched; callers persist the returned value.
func (l Ledger) Append(tx Transaction) Ledger {
	txs := make([]Transaction, len(l.txs), len(l.txs)+1)
	copy(txs, l.txs)
	return Ledger{txs: append(txs, tx)}
}
