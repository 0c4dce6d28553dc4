package prompt

import (
	_ "embed"
	"strings"

	phasex "github.com/rndas/wallie/agent/phase"
)

var (
	//go:embed template/greeting.txt
	greetingRaw string

	//go:embed template/product_inquiry.txt
	productInquiryRaw string

	//go:embed template/details.txt
	detailsRaw string

	//go:embed template/checkout.txt
	checkoutRaw string
)

// templateFor returns the trimmed instruction template for a phase.
// Unknown phase values fall back to the product_inquiry template.
func templateFor(p phasex.Phase) string {
	switch p {
	case phasex.Greeting:
		return strings.TrimSpace(greetingRaw)
	case phasex.Details:
		return strings.TrimSpace(detailsRaw)
	case phasex.Checkout:
		return strings.TrimSpace(checkoutRaw)
	default:
		return strings.TrimSpace(productInquiryRaw)
	}
}
