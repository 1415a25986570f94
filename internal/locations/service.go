package locations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yxy-sys/stocksync/pkg/db"
	"github.com/yxy-sys/stocksync/pkg/db/models"
	pkgerrors "github.com/yxy-sys/stocksync/pkg/errors"
)

// Service exposes location management operations.
type Service interface {
	AddLocation(ctx context.Context, input AddLocationInput) (*LocationDTO, error)
	ListLocations(ctx context.Context) ([]LocationDTO, error)
}

// AddLocationInput holds the validated payload to create a location.
type AddLocationInput struct {
	Name        string
	Description *string
}

// LocationDTO is the API shape for a stock location.
type LocationDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ItemCount   int64     `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a location service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("location repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// AddLocation creates the location and backfills a zero-quantity item for
// every existing product. Backfilled rows carry no transaction history
// since nothing moved.
func (s *service) AddLocation(ctx context.Context, input AddLocationInput) (*LocationDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	now := time.Now().UTC()
	location := &models.Location{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
		CreatedAt:   now,
	}

	var backfilled int64
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.CreateLocation(ctx, location); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert location")
		}

		products, err := txRepo.ListProducts(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
		}
		for _, product := range products {
			item := &models.InventoryItem{
				ID:         uuid.New(),
				ProductID:  product.ID,
				LocationID: location.ID,
				Quantity:   0,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := txRepo.CreateItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inventory item")
			}
		}
		backfilled = int64(len(products))
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add location")
	}

	return &LocationDTO{
		ID:          location.ID,
		Name:        location.Name,
		Description: location.Description,
		ItemCount:   backfilled,
		CreatedAt:   location.CreatedAt,
	}, nil
}

// ListLocations returns every location with its current item count.
func (s *service) ListLocations(ctx context.Context) ([]LocationDTO, error) {
	rows, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list locations")
	}

	dtos := make([]LocationDTO, 0, len(rows))
	for _, row := range rows {
		count, err := s.repo.CountItemsByLocation(ctx, row.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count items")
		}
		dtos = append(dtos, LocationDTO{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			ItemCount:   count,
			CreatedAt:   row.CreatedAt,
		})
	}
	return dtos, nil
}
