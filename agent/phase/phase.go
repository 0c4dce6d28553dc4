// Package phase implements the scripted sales-dialogue state machine.
package phase

import (
	"strings"

	catalogx "github.com/rndas/wallie/agent/catalog"
	matcherx "github.com/rndas/wallie/agent/matcher"
)

type Phase string

const (
	Greeting       Phase = "greeting"
	ProductInquiry Phase = "product_inquiry"
	Details        Phase = "details"
	Checkout       Phase = "checkout"
)

// Affirmation and purchase-intent tokens. Matched by substring
// containment over the lowercased utterance, like the rest of the
// dialogue heuristics.
var affirmations = []string{"yes", "haan", "ok", "okay", "sure", "buy", "order", "lena"}

// Advance applies the user-text transition rules: an affirmation token
// moves exactly one step forward along
// greeting -> product_inquiry -> details -> checkout (no-op at
// checkout); otherwise a product mention while greeting moves to
// product_inquiry. The phase never regresses.
func Advance(current Phase, userText string, c *catalogx.Catalog) Phase {
	lower := strings.ToLower(userText)

	if containsAffirmation(lower) {
		return next(current)
	}
	if current == Greeting && matcherx.IsAnyProductMentioned(lower, c) {
		return ProductInquiry
	}
	return current
}

// CheckoutTriggered reports whether a generated reply fires the cart
// side effect: it must contain both the cart-confirmation phrase and
// the gratitude phrase. Evaluated once per turn, after generation.
func CheckoutTriggered(reply string) bool {
	lower := strings.ToLower(reply)
	return strings.Contains(lower, "added to cart") && strings.Contains(lower, "thank you")
}

func containsAffirmation(lower string) bool {
	for _, token := range affirmations {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func next(p Phase) Phase {
	switch p {
	case Greeting:
		return ProductInquiry
	case ProductInquiry:
		return Details
	case Details:
		return Checkout
	default:
		return p
	}
}
