package poller

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/yxy-sys/stocksync/pkg/config"
	"github.com/yxy-sys/stocksync/pkg/logger"
	"github.com/yxy-sys/stocksync/pkg/metrics"
)

const stockSyncJobName = "marketplace-stock-sync"

type amazonChecker interface {
	CheckStock(ctx context.Context, asin string) (string, error)
}

type ebayUpdater interface {
	UpdateQuantity(ctx context.Context, listingID string, quantity int) error
}

// StockSyncJobParams configure the marketplace stock sync job.
type StockSyncJobParams struct {
	Logger     *logger.Logger
	Amazon     amazonChecker
	Ebay       ebayUpdater
	Mappings   []config.MappingEntry
	LowSignals []string
	Metrics    *metrics.PollerMetrics
}

// NewStockSyncJob constructs the job that mirrors Amazon availability onto
// eBay listings: when an Amazon listing reports low or no stock, the mapped
// eBay listing is zeroed out to stop overselling.
func NewStockSyncJob(params StockSyncJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Amazon == nil {
		return nil, fmt.Errorf("amazon client required")
	}
	if params.Ebay == nil {
		return nil, fmt.Errorf("ebay client required")
	}
	if len(params.LowSignals) == 0 {
		return nil, fmt.Errorf("low stock signals required")
	}
	return &stockSyncJob{
		logg:       params.Logger,
		amazon:     params.Amazon,
		ebay:       params.Ebay,
		mappings:   params.Mappings,
		lowSignals: params.LowSignals,
		metrics:    params.Metrics,
	}, nil
}

type stockSyncJob struct {
	logg       *logger.Logger
	amazon     amazonChecker
	ebay       ebayUpdater
	mappings   []config.MappingEntry
	lowSignals []string
	metrics    *metrics.PollerMetrics
}

func (j *stockSyncJob) Name() string { return stockSyncJobName }

// Run checks every mapped listing. One listing failing does not stop the
// rest; failures are combined into the returned error.
func (j *stockSyncJob) Run(ctx context.Context) error {
	var errs error
	zeroed := 0
	for _, mapping := range j.mappings {
		listingCtx := j.logg.WithFields(ctx, map[string]any{
			"asin":       mapping.ASIN,
			"listing_id": mapping.ListingID,
		})

		availability, err := j.amazon.CheckStock(ctx, mapping.ASIN)
		if err != nil {
			j.logg.Error(listingCtx, "amazon stock check failed", err)
			errs = multierr.Append(errs, fmt.Errorf("check %s: %w", mapping.ASIN, err))
			continue
		}
		if !j.isLow(availability) {
			continue
		}

		if err := j.ebay.UpdateQuantity(ctx, mapping.ListingID, 0); err != nil {
			j.logg.Error(listingCtx, "ebay quantity update failed", err)
			errs = multierr.Append(errs, fmt.Errorf("zero %s: %w", mapping.ListingID, err))
			continue
		}
		j.metrics.IncZeroed(stockSyncJobName)
		zeroed++
		j.logg.Info(listingCtx, "ebay listing zeroed on low amazon stock")
	}

	j.logg.Info(j.logg.WithField(ctx, "zeroed", zeroed), "stock sync pass complete")
	return errs
}

func (j *stockSyncJob) isLow(availability string) bool {
	for _, signal := range j.lowSignals {
		if signal != "" && availability == signal {
			return true
		}
	}
	return false
}
