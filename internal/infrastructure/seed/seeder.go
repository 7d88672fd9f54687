// Package seed loads the sample pie shop dataset.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/pieshop/admin/internal/domain/catalog"
	"github.com/pieshop/admin/internal/domain/partner"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/domain/trade"
	"github.com/pieshop/admin/internal/infrastructure/auth"
	"github.com/pieshop/admin/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var datasetYAML []byte

// Dataset is the validated sample data, keyed as it will be stored
type Dataset struct {
	Products  []catalog.Product
	Customers []partner.Customer
	Reviews   []catalog.Review
	Orders    []trade.Order
	LineItems []trade.OrderLineItem
}

type rawDataset struct {
	Products []struct {
		ID          int64  `yaml:"id"`
		Name        string `yaml:"name"`
		Category    string `yaml:"category"`
		Description string `yaml:"description"`
		Price       string `yaml:"price"`
		Stock       int    `yaml:"stock"`
	} `yaml:"products"`
	Customers []struct {
		ID               int64  `yaml:"id"`
		FirstName        string `yaml:"first_name"`
		LastName         string `yaml:"last_name"`
		Email            string `yaml:"email"`
		Password         string `yaml:"password"`
		Phone            string `yaml:"phone"`
		RegistrationDate string `yaml:"registration_date"`
	} `yaml:"customers"`
	Reviews []struct {
		ProductID  int64  `yaml:"product_id"`
		CustomerID int64  `yaml:"customer_id"`
		Review     string `yaml:"review"`
	} `yaml:"reviews"`
	Orders []struct {
		ID         int64  `yaml:"id"`
		CustomerID int64  `yaml:"customer_id"`
		OrderDate  string `yaml:"order_date"`
		TotalPrice string `yaml:"total_price"`
	} `yaml:"orders"`
	LineItems []struct {
		OrderID   int64 `yaml:"order_id"`
		ProductID int64 `yaml:"product_id"`
		Quantity  int   `yaml:"quantity"`
	} `yaml:"order_line_items"`
}

// LoadDataset parses the embedded sample data and validates every record
// with the domain constructors.
func LoadDataset() (*Dataset, error) {
	return parseDataset(datasetYAML)
}

func parseDataset(data []byte) (*Dataset, error) {
	var raw rawDataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse seed dataset: %w", err)
	}

	ds := &Dataset{}
	for _, r := range raw.Products {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d: invalid price %q: %w", r.ID, r.Price, err)
		}
		p, err := catalog.NewProduct(r.Name, r.Category, r.Description, price, r.Stock)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", r.ID, err)
		}
		p.ID = r.ID
		ds.Products = append(ds.Products, *p)
	}
	for _, r := range raw.Customers {
		registered, err := time.Parse(shared.DateLayout, r.RegistrationDate)
		if err != nil {
			return nil, fmt.Errorf("customer %d: invalid registration date %q: %w", r.ID, r.RegistrationDate, err)
		}
		c, err := partner.NewCustomer(partner.CustomerProfile{
			FirstName:        r.FirstName,
			LastName:         r.LastName,
			Email:            r.Email,
			Phone:            r.Phone,
			RegistrationDate: registered,
		}, r.Password)
		if err != nil {
			return nil, fmt.Errorf("customer %d: %w", r.ID, err)
		}
		c.ID = r.ID
		ds.Customers = append(ds.Customers, *c)
	}
	for _, r := range raw.Reviews {
		rv, err := catalog.NewReview(r.ProductID, r.CustomerID, r.Review)
		if err != nil {
			return nil, fmt.Errorf("review %d/%d: %w", r.ProductID, r.CustomerID, err)
		}
		ds.Reviews = append(ds.Reviews, *rv)
	}
	for _, r := range raw.Orders {
		ordered, err := time.Parse(shared.DateLayout, r.OrderDate)
		if err != nil {
			return nil, fmt.Errorf("order %d: invalid order date %q: %w", r.ID, r.OrderDate, err)
		}
		total, err := decimal.NewFromString(r.TotalPrice)
		if err != nil {
			return nil, fmt.Errorf("order %d: invalid total %q: %w", r.ID, r.TotalPrice, err)
		}
		o, err := trade.NewOrder(r.CustomerID, ordered, total)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", r.ID, err)
		}
		o.ID = r.ID
		ds.Orders = append(ds.Orders, *o)
	}
	for _, r := range raw.LineItems {
		item, err := trade.NewOrderLineItem(r.OrderID, r.ProductID, r.Quantity)
		if err != nil {
			return nil, fmt.Errorf("line item %d/%d: %w", r.OrderID, r.ProductID, err)
		}
		ds.LineItems = append(ds.LineItems, *item)
	}
	return ds, nil
}

// Seeder replaces the store contents with the sample dataset
type Seeder struct {
	store  *persistence.Store
	hasher auth.PasswordHasher
	logger *zap.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(store *persistence.Store, hasher auth.PasswordHasher, logger *zap.Logger) *Seeder {
	return &Seeder{store: store, hasher: hasher, logger: logger}
}

// Run clears every table and loads the dataset in a single transaction.
// Running it twice leaves the store in the same state.
func (s *Seeder) Run(ctx context.Context) error {
	ds, err := LoadDataset()
	if err != nil {
		return err
	}
	for i := range ds.Customers {
		hashed, err := s.hasher.Hash(ds.Customers[i].Password)
		if err != nil {
			return fmt.Errorf("customer %d: failed to hash password: %w", ds.Customers[i].ID, err)
		}
		ds.Customers[i].Password = hashed
	}

	err = s.store.WithinTransaction(ctx, func(tx *persistence.Store) error {
		if err := tx.ClearAll(ctx); err != nil {
			return err
		}
		if err := tx.BulkInsertProducts(ctx, ds.Products); err != nil {
			return err
		}
		if err := tx.BulkInsertCustomers(ctx, ds.Customers); err != nil {
			return err
		}
		if err := tx.BulkInsertOrders(ctx, ds.Orders); err != nil {
			return err
		}
		if err := tx.BulkInsertReviews(ctx, ds.Reviews); err != nil {
			return err
		}
		if err := tx.BulkInsertLineItems(ctx, ds.LineItems); err != nil {
			return err
		}
		return tx.ResetSequences(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to seed sample data: %w", err)
	}

	s.logger.Info("Sample data seeded",
		zap.Int("products", len(ds.Products)),
		zap.Int("customers", len(ds.Customers)),
		zap.Int("orders", len(ds.Orders)),
		zap.Int("reviews", len(ds.Reviews)),
		zap.Int("order_line_items", len(ds.LineItems)),
	)
	return nil
}
