// Package shopstub is a development stand-in for the shop backend the
// agent talks to. It serves the same product/cart REST contract over a
// Postgres store, schema-compatible with the production shop.
package shopstub

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type Config struct {
	DSN  string `envconfig:"DSN" split_words:"true" required:"true"`
	Addr string `envconfig:"ADDR" split_words:"true" default:":3000"`
}

type Product struct {
	bun.BaseModel `bun:"table:product"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description" json:"description"`
	Price       float64   `bun:"price,notnull" json:"price"`
	ImageURL    string    `bun:"imageUrl,notnull" json:"imageUrl"`
	Category    string    `bun:"category" json:"category"`
	CreatedAt   time.Time `bun:"createdAt,nullzero,default:current_timestamp" json:"createdAt"`
}

type CartItem struct {
	bun.BaseModel `bun:"table:cart_item"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	ProductID int64     `bun:"productId,notnull" json:"productId"`
	Email     string    `bun:"email,notnull" json:"email"`
	Quantity  int64     `bun:"quantity,notnull,default:1" json:"quantity"`
	CreatedAt time.Time `bun:"createdAt,nullzero,default:current_timestamp" json:"createdAt"`
}

// Store is the persistence contract behind the HTTP handlers.
type Store interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	FindCartItem(ctx context.Context, productID int64, email string) (*CartItem, error)
	AddCartQuantity(ctx context.Context, itemID int64, quantity int64) error
	InsertCartItem(ctx context.Context, item *CartItem) error
	ResetAndSeed(ctx context.Context) error
}

// OpenDB connects to Postgres via the bun pgdriver.
func OpenDB(cfg Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	return bun.NewDB(sqldb, pgdialect.New())
}

type bunStore struct {
	db *bun.DB
}

func NewStore(db *bun.DB) Store {
	return &bunStore{db: db}
}

func (s *bunStore) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.db.NewSelect().Model(&products).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *bunStore) GetProduct(ctx context.Context, id int64) (*Product, error) {
	product := new(Product)
	err := s.db.NewSelect().Model(product).Where("id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (s *bunStore) FindCartItem(ctx context.Context, productID int64, email string) (*CartItem, error) {
	item := new(CartItem)
	err := s.db.NewSelect().Model(item).
		Where("\"productId\" = ?", productID).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	return item, nil
}

func (s *bunStore) AddCartQuantity(ctx context.Context, itemID int64, quantity int64) error {
	_, err := s.db.NewUpdate().Model((*CartItem)(nil)).
		Set("quantity = quantity + ?", quantity).
		Where("id = ?", itemID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update cart quantity: %w", err)
	}
	return nil
}

func (s *bunStore) InsertCartItem(ctx context.Context, item *CartItem) error {
	if _, err := s.db.NewInsert().Model(item).Exec(ctx); err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

// ResetAndSeed recreates both tables and loads the demo product set.
func (s *bunStore) ResetAndSeed(ctx context.Context) error {
	models := []any{(*CartItem)(nil), (*Product)(nil)}
	for _, m := range models {
		if _, err := s.db.NewDropTable().Model(m).IfExists().Cascade().Exec(ctx); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	for _, m := range []any{(*Product)(nil), (*CartItem)(nil)} {
		if _, err := s.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	seed := SeedProducts()
	if _, err := s.db.NewInsert().Model(&seed).Exec(ctx); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}

// SeedProducts is the demo catalog served by the stub.
func SeedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Wireless Headphones", Description: "High-quality wireless headphones with noise cancellation.", Price: 199.99, ImageURL: "/products/headphones.png", Category: "Electronics"},
		{ID: 2, Name: "Smart Watch", Description: "Track your fitness and get notifications on the go.", Price: 149.99, ImageURL: "/products/watch.png", Category: "Wearables"},
		{ID: 3, Name: "Bluetooth Speaker", Description: "Portable speaker with deep bass and crisp sound.", Price: 89.99, ImageURL: "/products/speaker.png", Category: "Audio"},
		{ID: 4, Name: "Gaming Mouse", Description: "Ergonomic design with customizable DPI settings.", Price: 59.99, ImageURL: "/products/mouse.png", Category: "Gaming"},
		{ID: 5, Name: "Backpack", Description: "Durable backpack perfect for travel and daily use.", Price: 69.99, ImageURL: "/products/backpack.png", Category: "Accessories"},
		{ID: 6, Name: "LED Desk Lamp", Description: "Modern desk lamp with adjustable brightness.", Price: 39.99, ImageURL: "/products/lamp.png", Category: "Home"},
	}
}
