package enums

// TransactionType classifies inventory transaction log rows. The enum is
// open on the storage side: unknown values round-trip untouched so external
// writers can record their own types (e.g. channel imports).
type TransactionType string

const (
	TransactionTypeInitial    TransactionType = "initial"
	TransactionTypeAdjustment TransactionType = "adjustment"
	TransactionTypeSync       TransactionType = "sync"
	TransactionTypeSale       TransactionType = "sale"
	TransactionTypePurchase   TransactionType = "purchase"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeInitial,
	TransactionTypeAdjustment,
	TransactionTypeSync,
	TransactionTypeSale,
	TransactionTypePurchase,
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsKnown reports whether the value is one of the canonical types.
func (t TransactionType) IsKnown() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}
