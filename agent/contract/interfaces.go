package contract

import (
	"context"

	catalogx "github.com/rndas/wallie/agent/catalog"
)

// Generator is the text-generation boundary: an opaque function from a
// rendered prompt to reply text. It may fail; callers absorb failures
// at the turn boundary.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ShopGateway is the product/cart collaborator consumed by the agent.
type ShopGateway interface {
	FetchProducts(ctx context.Context) ([]catalogx.Product, error)
	AddToCart(ctx context.Context, productID int, quantity int) (CartResult, error)
}
