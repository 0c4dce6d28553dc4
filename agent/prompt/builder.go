// Package prompt renders the phase-specific instruction templates sent
// to the text generator.
package prompt

import (
	"strings"

	catalogx "github.com/rndas/wallie/agent/catalog"
	phasex "github.com/rndas/wallie/agent/phase"
)

// CheckoutClosing is the literal closing phrase the checkout template
// instructs the model to reproduce verbatim. It is surfaced to the
// customer unchanged.
const CheckoutClosing = "I have added to cart....Thank You!!!"

// Builder interpolates a catalog summary, a bounded history window, and
// the current utterance into the template for a phase.
type Builder struct {
	cat *catalogx.Catalog
}

func NewBuilder(cat *catalogx.Catalog) *Builder {
	return &Builder{cat: cat}
}

// Render produces the full prompt for one turn. The greeting phase
// lists product names only; every other phase lists names with prices.
func (b *Builder) Render(p phasex.Phase, history string, userInput string) string {
	products := b.cat.NamesWithPrices()
	if p == phasex.Greeting {
		products = b.cat.Names()
	}

	r := strings.NewReplacer(
		"{products}", products,
		"{conversation_history}", history,
		"{user_input}", userInput,
	)
	return r.Replace(templateFor(p))
}
