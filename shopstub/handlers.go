package shopstub

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Router wires the shop REST contract: the product collection and the
// cart-addition endpoint used by the voice agent.
func Router(store Store) *gin.Engine {
	r := gin.Default()
	r.GET("/api/products", ListProductsHandler(store))
	r.POST("/api/voice-cart", AddToCartHandler(store))
	return r
}

func ListProductsHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := store.ListProducts(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("list products failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

type addToCartRequest struct {
	ProductID int64  `json:"productId"`
	Email     string `json:"email"`
	Quantity  int64  `json:"quantity"`
}

// AddToCartHandler validates the request, checks the product exists,
// and upserts the cart line: an existing product/email line has its
// quantity increased instead of a new row being inserted.
func AddToCartHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID and email are required"})
			return
		}
		if req.ProductID == 0 || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID and email are required"})
			return
		}
		if req.Quantity <= 0 {
			req.Quantity = 1
		}

		ctx := c.Request.Context()

		product, err := store.GetProduct(ctx, req.ProductID)
		if err != nil {
			log.Error().Err(err).Int64("product_id", req.ProductID).Msg("product lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		if product == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		existing, err := store.FindCartItem(ctx, req.ProductID, req.Email)
		if err != nil {
			log.Error().Err(err).Msg("cart lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		if existing != nil {
			err = store.AddCartQuantity(ctx, existing.ID, req.Quantity)
		} else {
			err = store.InsertCartItem(ctx, &CartItem{
				ProductID: req.ProductID,
				Email:     req.Email,
				Quantity:  req.Quantity,
			})
		}
		if err != nil {
			log.Error().Err(err).Msg("cart write failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Item added to cart successfully",
			"product": product,
		})
	}
}
