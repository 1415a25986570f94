package enums

import "testing"

func TestStockStatusFor(t *testing.T) {
	cases := []struct {
		total int
		want  StockStatus
	}{
		{0, StockStatusOutOfStock},
		{1, StockStatusLowStock},
		{9, StockStatusLowStock},
		{10, StockStatusInStock},
		{250, StockStatusInStock},
	}
	for _, tc := range cases {
		if got := StockStatusFor(tc.total); got != tc.want {
			t.Fatalf("total %d: expected %s, got %s", tc.total, tc.want, got)
		}
	}
}

func TestParseStockStatus(t *testing.T) {
	status, err := ParseStockStatus("low-stock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StockStatusLowStock {
		t.Fatalf("expected low-stock, got %s", status)
	}
	if _, err := ParseStockStatus("LOW-STOCK"); err == nil {
		t.Fatal("expected case-sensitive parse to reject upper case")
	}
}

func TestTransactionTypeIsKnown(t *testing.T) {
	if !TransactionTypeSync.IsKnown() {
		t.Fatal("sync should be a known type")
	}
	if TransactionType("channel-import").IsKnown() {
		t.Fatal("unknown types should not be reported as known")
	}
}
