// The doctor verifies the agent's external collaborators end to end:
// shop products endpoint, cart-addition endpoint, and the text
// generation API. Exit status is non-zero when any check fails.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	configx "github.com/rndas/wallie/pkg/config"
	openrouterx "github.com/rndas/wallie/pkg/openrouter"
	shopx "github.com/rndas/wallie/shop"
)

func main() {
	shopCfg := configx.MustNew[shopx.Config]("SHOP")
	orCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	failed := false

	client, err := shopx.NewClient(*shopCfg)
	if err != nil {
		fmt.Printf("FAIL shop client: %v\n", err)
		os.Exit(1)
	}

	products, err := client.FetchProducts(ctx)
	if err != nil {
		fmt.Printf("FAIL products endpoint: %v\n", err)
		failed = true
	} else {
		fmt.Printf("ok   products endpoint: %d products\n", len(products))
		for i, p := range products {
			if i == 3 {
				break
			}
			fmt.Printf("     %d. %s - %s\n", i+1, p.Name, p.Price)
		}
	}

	if len(products) > 0 {
		result, err := client.AddToCart(ctx, products[0].ID, 1)
		switch {
		case err != nil:
			fmt.Printf("FAIL cart endpoint: %v\n", err)
			failed = true
		case !result.Success:
			fmt.Printf("FAIL cart endpoint: %s\n", result.Error)
			failed = true
		default:
			fmt.Printf("ok   cart endpoint: added %q\n", products[0].Name)
		}
	} else {
		fmt.Println("skip cart endpoint: no products to add")
	}

	llmClient := openrouterx.NewClient(*orCfg)
	if llmClient == nil {
		fmt.Println("FAIL llm endpoint: no API key configured")
		failed = true
	} else if _, err := llmClient.Models.List(ctx); err != nil {
		fmt.Printf("FAIL llm endpoint: %v\n", err)
		failed = true
	} else {
		fmt.Println("ok   llm endpoint: reachable")
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("all checks passed")
}
