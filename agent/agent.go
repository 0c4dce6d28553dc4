// Package agent drives the scripted sales dialogue: it records turns,
// resolves product mentions, advances the phase machine, prompts the
// text generator, and fires the cart side effect at most once.
package agent

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	catalogx "github.com/rndas/wallie/agent/catalog"
	contractx "github.com/rndas/wallie/agent/contract"
	matcherx "github.com/rndas/wallie/agent/matcher"
	memoryx "github.com/rndas/wallie/agent/memory"
	phasex "github.com/rndas/wallie/agent/phase"
	promptx "github.com/rndas/wallie/agent/prompt"
)

// FallbackReply is returned for a turn whose generation call failed.
// Generation failure never crashes the turn loop.
const FallbackReply = "Sorry, I'm having trouble right now. Kya aap phir se try kar sakte hain?"

// ContextKeyLastPurchase is the memory-context key holding the cart
// outcome of a fired checkout.
const ContextKeyLastPurchase = "last_purchase"

// Purchase records the outcome of the checkout side effect, including
// failed cart calls; the user-visible reply is fixed before the cart
// call completes and is never altered by it.
type Purchase struct {
	Product catalogx.Product
	Success bool
	Error   string
}

type Config struct {
	// HistoryWindow bounds the transcript rendered into prompts.
	HistoryWindow int
	// CartQuantity is the quantity sent with the cart addition.
	CartQuantity int
}

func (c *Config) applyDefaults() {
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = memoryx.DefaultHistoryWindow
	}
	if c.CartQuantity <= 0 {
		c.CartQuantity = 1
	}
}

// Agent owns one conversation session. Turns are processed strictly
// sequentially; nothing here is safe for concurrent use.
type Agent struct {
	catalog *catalogx.Catalog
	memory  *memoryx.Memory
	builder *promptx.Builder
	gen     contractx.Generator
	shop    contractx.ShopGateway

	current    phasex.Phase
	mentioned  catalogx.Product
	hasMention bool
	running    bool

	historyWindow int
	cartQuantity  int

	turnRunner compose.Runnable[turnInput, turnOutput]
}

// New builds a session agent. The catalog is fetched once from the shop
// gateway; if the source is unavailable the static fallback set is used
// instead of aborting.
func New(ctx context.Context, gen contractx.Generator, shop contractx.ShopGateway, cfg Config) (*Agent, error) {
	if gen == nil {
		return nil, contractx.ErrValidation
	}
	if shop == nil {
		return nil, contractx.ErrValidation
	}
	cfg.applyDefaults()

	var cat *catalogx.Catalog
	products, err := shop.FetchProducts(ctx)
	if err != nil || len(products) == 0 {
		log.Warn().Err(err).Msg("product source unavailable, using fallback catalog")
		cat = catalogx.Fallback()
	} else {
		cat = catalogx.Build(products)
	}
	log.Info().Int("products", cat.Len()).Msg("catalog loaded")

	a := &Agent{
		catalog:       cat,
		memory:        memoryx.New(),
		builder:       promptx.NewBuilder(cat),
		gen:           gen,
		shop:          shop,
		current:       phasex.Greeting,
		running:       true,
		historyWindow: cfg.HistoryWindow,
		cartQuantity:  cfg.CartQuantity,
	}

	runner, err := a.compileTurnGraph(ctx)
	if err != nil {
		return nil, err
	}
	a.turnRunner = runner

	return a, nil
}

// Greet produces the opening assistant turn.
func (a *Agent) Greet(ctx context.Context) (string, error) {
	if !a.running {
		return "", contractx.ErrSessionClosed
	}

	p := a.builder.Render(phasex.Greeting, a.memory.RenderHistory(a.historyWindow), "")
	reply := a.generateWithFallback(ctx, p)
	a.memory.AppendAgent(reply)
	return reply, nil
}

// ProcessTurn runs one customer utterance through the dialogue
// pipeline and returns the reply text unchanged, checkout literal
// included.
func (a *Agent) ProcessTurn(ctx context.Context, userText string) (string, error) {
	if !a.running {
		return "", contractx.ErrSessionClosed
	}

	out, err := a.turnRunner.Invoke(ctx, turnInput{Text: userText})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

// Running reports whether the session is still open. The checkout side
// effect closes the session on the same transition that fires it.
func (a *Agent) Running() bool {
	return a.running
}

func (a *Agent) Phase() phasex.Phase {
	return a.current
}

func (a *Agent) Catalog() *catalogx.Catalog {
	return a.catalog
}

// LastPurchase returns the recorded checkout outcome, if one fired.
func (a *Agent) LastPurchase() (Purchase, bool) {
	v := a.memory.GetContext(ContextKeyLastPurchase, nil)
	p, ok := v.(Purchase)
	return p, ok
}

func (a *Agent) generateWithFallback(ctx context.Context, prompt string) string {
	reply, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("generation failed, replying with fallback")
		return FallbackReply
	}
	return reply
}

// resolveCheckoutProduct picks the product for the cart call: the
// last-mentioned product wins; otherwise the rendered history is
// scanned for any catalog product name variant.
func (a *Agent) resolveCheckoutProduct() (catalogx.Product, bool) {
	if a.hasMention {
		return a.mentioned, true
	}

	history := strings.ToLower(a.memory.RenderHistory(a.historyWindow))
	for _, p := range a.catalog.Products() {
		name := strings.ToLower(p.Name)
		variants := []string{
			name,
			strings.ReplaceAll(name, " ", ""),
		}
		if first, _, found := strings.Cut(name, " "); found {
			variants = append(variants, first)
		}
		for _, v := range variants {
			if strings.Contains(history, v) {
				return p, true
			}
		}
	}
	return catalogx.Product{}, false
}

// fireCheckout performs the cart addition and records the outcome. The
// reply text is already fixed at this point, so a failed cart call is
// recorded and logged but never surfaced in the reply.
func (a *Agent) fireCheckout(ctx context.Context) {
	a.current = phasex.Checkout
	a.running = false

	product, ok := a.resolveCheckoutProduct()
	if !ok {
		log.Warn().Msg("checkout fired but no product could be resolved")
		return
	}

	purchase := Purchase{Product: product}
	result, err := a.shop.AddToCart(ctx, product.ID, a.cartQuantity)
	switch {
	case err != nil:
		purchase.Error = err.Error()
		log.Error().Err(err).Str("product", product.Name).Msg("cart addition failed")
	case !result.Success:
		purchase.Error = result.Error
		log.Error().Str("product", product.Name).Str("reason", result.Error).Msg("cart addition rejected")
	default:
		purchase.Success = true
		log.Info().Str("product", product.Name).Msg("added to cart")
	}
	a.memory.SetContext(ContextKeyLastPurchase, purchase)
}

// track remembers the first catalog product the utterance mentions.
func (a *Agent) track(userText string) {
	if p, ok := matcherx.FindMention(userText, a.catalog); ok {
		a.mentioned = p
		a.hasMention = true
	}
}
