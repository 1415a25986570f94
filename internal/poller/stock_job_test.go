package poller

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yxy-sys/stocksync/pkg/config"
	"github.com/yxy-sys/stocksync/pkg/logger"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "poller-test", Output: io.Discard})
}

type fakeAmazon struct {
	stock map[string]string
	errs  map[string]error
	calls []string
}

func (f *fakeAmazon) CheckStock(_ context.Context, asin string) (string, error) {
	f.calls = append(f.calls, asin)
	if err, ok := f.errs[asin]; ok {
		return "", err
	}
	return f.stock[asin], nil
}

type ebayCall struct {
	listingID string
	quantity  int
}

type fakeEbay struct {
	calls []ebayCall
	err   error
}

func (f *fakeEbay) UpdateQuantity(_ context.Context, listingID string, quantity int) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, ebayCall{listingID: listingID, quantity: quantity})
	return nil
}

func newStockJob(t *testing.T, amazon *fakeAmazon, ebay *fakeEbay, mappings []config.MappingEntry) Job {
	t.Helper()

	job, err := NewStockSyncJob(StockSyncJobParams{
		Logger:     newTestLogger(),
		Amazon:     amazon,
		Ebay:       ebay,
		Mappings:   mappings,
		LowSignals: []string{"わずか", "1", "0"},
	})
	require.NoError(t, err)
	return job
}

func TestStockSyncJobZeroesLowListings(t *testing.T) {
	amazon := &fakeAmazon{stock: map[string]string{
		"B0AAAAAAA": "In Stock",
		"B0BBBBBBB": "わずか",
		"B0CCCCCCC": "0",
	}}
	ebay := &fakeEbay{}
	job := newStockJob(t, amazon, ebay, []config.MappingEntry{
		{ASIN: "B0AAAAAAA", ListingID: "111111111111"},
		{ASIN: "B0BBBBBBB", ListingID: "222222222222"},
		{ASIN: "B0CCCCCCC", ListingID: "333333333333"},
	})

	require.NoError(t, job.Run(context.Background()))

	assert.Len(t, amazon.calls, 3)
	require.Len(t, ebay.calls, 2)
	assert.Equal(t, ebayCall{listingID: "222222222222", quantity: 0}, ebay.calls[0])
	assert.Equal(t, ebayCall{listingID: "333333333333", quantity: 0}, ebay.calls[1])
}

func TestStockSyncJobMatchesSignalsExactly(t *testing.T) {
	amazon := &fakeAmazon{stock: map[string]string{
		"B0AAAAAAA": "残りわずか",
		"B0BBBBBBB": "10",
	}}
	ebay := &fakeEbay{}
	job := newStockJob(t, amazon, ebay, []config.MappingEntry{
		{ASIN: "B0AAAAAAA", ListingID: "111111111111"},
		{ASIN: "B0BBBBBBB", ListingID: "222222222222"},
	})

	require.NoError(t, job.Run(context.Background()))
	assert.Empty(t, ebay.calls)
}

func TestStockSyncJobContinuesAfterFailure(t *testing.T) {
	amazon := &fakeAmazon{
		stock: map[string]string{"B0BBBBBBB": "1"},
		errs:  map[string]error{"B0AAAAAAA": fmt.Errorf("scrape blocked")},
	}
	ebay := &fakeEbay{}
	job := newStockJob(t, amazon, ebay, []config.MappingEntry{
		{ASIN: "B0AAAAAAA", ListingID: "111111111111"},
		{ASIN: "B0BBBBBBB", ListingID: "222222222222"},
	})

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "B0AAAAAAA")

	require.Len(t, ebay.calls, 1)
	assert.Equal(t, "222222222222", ebay.calls[0].listingID)
}

func TestNewStockSyncJobValidation(t *testing.T) {
	amazon := &fakeAmazon{}
	ebay := &fakeEbay{}
	logg := newTestLogger()

	_, err := NewStockSyncJob(StockSyncJobParams{Amazon: amazon, Ebay: ebay, LowSignals: []string{"0"}})
	require.Error(t, err)

	_, err = NewStockSyncJob(StockSyncJobParams{Logger: logg, Ebay: ebay, LowSignals: []string{"0"}})
	require.Error(t, err)

	_, err = NewStockSyncJob(StockSyncJobParams{Logger: logg, Amazon: amazon, LowSignals: []string{"0"}})
	require.Error(t, err)

	_, err = NewStockSyncJob(StockSyncJobParams{Logger: logg, Amazon: amazon, Ebay: ebay})
	require.Error(t, err)
}
