package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	catalogx "github.com/rndas/wallie/agent/catalog"
	contractx "github.com/rndas/wallie/agent/contract"
	phasex "github.com/rndas/wallie/agent/phase"
	promptx "github.com/rndas/wallie/agent/prompt"
)

// fakeGenerator replays scripted replies in order. Once the script is
// exhausted it keeps returning the last entry.
type fakeGenerator struct {
	replies []string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	if len(g.replies) == 0 {
		return "theek hai", nil
	}
	reply := g.replies[0]
	if len(g.replies) > 1 {
		g.replies = g.replies[1:]
	}
	return reply, nil
}

type cartCall struct {
	productID int
	quantity  int
}

type fakeShop struct {
	products []catalogx.Product
	fetchErr error

	addResult contractx.CartResult
	addErr    error
	addCalls  []cartCall
}

func (s *fakeShop) FetchProducts(context.Context) ([]catalogx.Product, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.products, nil
}

func (s *fakeShop) AddToCart(_ context.Context, productID, quantity int) (contractx.CartResult, error) {
	s.addCalls = append(s.addCalls, cartCall{productID: productID, quantity: quantity})
	if s.addErr != nil {
		return contractx.CartResult{}, s.addErr
	}
	return s.addResult, nil
}

func storeProducts() []catalogx.Product {
	return []catalogx.Product{
		{ID: 1, Name: "Smart Watch", Price: "₹149.99", Description: "Fitness tracking"},
		{ID: 2, Name: "Backpack", Price: "₹69.99", Description: "Durable travel backpack"},
		{ID: 3, Name: "LED Desk Lamp", Price: "₹39.99", Description: "Adjustable lamp"},
	}
}

func newTestAgent(t *testing.T, gen *fakeGenerator, shop *fakeShop) *Agent {
	t.Helper()
	a, err := New(context.Background(), gen, shop, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestFullPurchaseFlow(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{replies: []string{
		"Namaste! Smart Watch, Backpack, LED Desk Lamp available hain.",
		"Smart Watch sirf ₹149.99 mein. Lena chahenge?",
		"Smart Watch mein fitness tracking hai. Kharidna hai?",
		"Smart Watch ₹149.99 ka hai. Final karein?",
		promptx.CheckoutClosing,
	}}
	shop := &fakeShop{products: storeProducts(), addResult: contractx.CartResult{Success: true}}
	a := newTestAgent(t, gen, shop)

	greeting, err := a.Greet(context.Background())
	if err != nil {
		t.Fatalf("Greet: %v", err)
	}
	if !strings.Contains(greeting, "Smart Watch") {
		t.Fatalf("greeting missing catalog names: %q", greeting)
	}

	turns := []struct {
		text      string
		wantPhase phasex.Phase
	}{
		{"smart watch dikhao", phasex.ProductInquiry},
		{"iske features batao", phasex.ProductInquiry},
		{"haan kharidna hai", phasex.Details},
	}
	for _, turn := range turns {
		if _, err := a.ProcessTurn(context.Background(), turn.text); err != nil {
			t.Fatalf("ProcessTurn(%q): %v", turn.text, err)
		}
		if got := a.Phase(); got != turn.wantPhase {
			t.Fatalf("after %q phase = %q, want %q", turn.text, got, turn.wantPhase)
		}
	}

	reply, err := a.ProcessTurn(context.Background(), "confirm karo")
	if err != nil {
		t.Fatalf("ProcessTurn(confirm): %v", err)
	}
	if reply != promptx.CheckoutClosing {
		t.Fatalf("checkout reply = %q, want the closing literal", reply)
	}
	if a.Phase() != phasex.Checkout {
		t.Fatalf("phase after checkout = %q", a.Phase())
	}
	if a.Running() {
		t.Fatalf("session still running after checkout")
	}
	if len(shop.addCalls) != 1 {
		t.Fatalf("cart calls = %d, want 1", len(shop.addCalls))
	}
	if got := shop.addCalls[0]; got.productID != 1 || got.quantity != 1 {
		t.Fatalf("cart call = %+v, want product 1 quantity 1", got)
	}
	purchase, ok := a.LastPurchase()
	if !ok || !purchase.Success || purchase.Product.ID != 1 {
		t.Fatalf("last purchase = %+v ok=%v", purchase, ok)
	}
}

func TestCheckoutFiresAtMostOnce(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{replies: []string{promptx.CheckoutClosing}}
	shop := &fakeShop{products: storeProducts(), addResult: contractx.CartResult{Success: true}}
	a := newTestAgent(t, gen, shop)

	if _, err := a.ProcessTurn(context.Background(), "backpack de do"); err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if len(shop.addCalls) != 1 {
		t.Fatalf("cart calls = %d, want 1", len(shop.addCalls))
	}

	if _, err := a.ProcessTurn(context.Background(), "ek aur daal do"); !errors.Is(err, contractx.ErrSessionClosed) {
		t.Fatalf("turn after checkout err = %v, want ErrSessionClosed", err)
	}
	if _, err := a.Greet(context.Background()); !errors.Is(err, contractx.ErrSessionClosed) {
		t.Fatalf("greet after checkout err = %v, want ErrSessionClosed", err)
	}
	if len(shop.addCalls) != 1 {
		t.Fatalf("cart calls after closed turns = %d, want 1", len(shop.addCalls))
	}
}

func TestCheckoutUsesLastMentionBeyondHistoryWindow(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{replies: []string{
		"Backpack accha choice hai!",
		"hmm", "hmm", "hmm", "hmm",
		promptx.CheckoutClosing,
	}}
	shop := &fakeShop{products: storeProducts(), addResult: contractx.CartResult{Success: true}}
	a := newTestAgent(t, gen, shop)

	if _, err := a.ProcessTurn(context.Background(), "backpack dikhao"); err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	// Enough filler to push the mention out of the rendered window.
	for i := 0; i < 4; i++ {
		if _, err := a.ProcessTurn(context.Background(), "hmm theek"); err != nil {
			t.Fatalf("filler turn %d: %v", i, err)
		}
	}
	if _, err := a.ProcessTurn(context.Background(), "le leta hoon"); err != nil {
		t.Fatalf("checkout turn: %v", err)
	}

	if len(shop.addCalls) != 1 || shop.addCalls[0].productID != 2 {
		t.Fatalf("cart calls = %+v, want one call for product 2", shop.addCalls)
	}
}

func TestCheckoutFallsBackToHistoryScan(t *testing.T) {
	t.Parallel()

	// "smart wala" never matches a full name or nospace variant, so no
	// mention is tracked; resolution scans history and hits the first
	// word of "Smart Watch".
	gen := &fakeGenerator{replies: []string{promptx.CheckoutClosing}}
	shop := &fakeShop{products: storeProducts(), addResult: contractx.CartResult{Success: true}}
	a := newTestAgent(t, gen, shop)

	if _, err := a.ProcessTurn(context.Background(), "smart wala de do"); err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if len(shop.addCalls) != 1 || shop.addCalls[0].productID != 1 {
		t.Fatalf("cart calls = %+v, want one call for product 1", shop.addCalls)
	}
}

func TestGenerationFailureYieldsFallbackReply(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: errors.New("provider down")}
	shop := &fakeShop{products: storeProducts()}
	a := newTestAgent(t, gen, shop)

	reply, err := a.ProcessTurn(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if reply != FallbackReply {
		t.Fatalf("reply = %q, want fallback", reply)
	}
	if !a.Running() {
		t.Fatalf("session closed by a failed generation")
	}
	if a.Phase() != phasex.Greeting {
		t.Fatalf("phase = %q, want greeting", a.Phase())
	}
	if len(shop.addCalls) != 0 {
		t.Fatalf("cart called on a failed turn")
	}
}

func TestFetchFailureUsesFallbackCatalog(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{}
	shop := &fakeShop{fetchErr: errors.New("shop unreachable")}
	a := newTestAgent(t, gen, shop)

	if got := a.Catalog().Len(); got != 5 {
		t.Fatalf("fallback catalog size = %d, want 5", got)
	}
	if _, ok := a.Catalog().Get("watch"); !ok {
		t.Fatalf("fallback catalog missing the watch entry")
	}
}

func TestCartFailureDoesNotAlterReply(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{replies: []string{promptx.CheckoutClosing}}
	shop := &fakeShop{
		products:  storeProducts(),
		addResult: contractx.CartResult{Success: false, Error: "Product not found"},
	}
	a := newTestAgent(t, gen, shop)

	reply, err := a.ProcessTurn(context.Background(), "backpack de do")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if reply != promptx.CheckoutClosing {
		t.Fatalf("reply = %q, want the unchanged closing literal", reply)
	}
	if a.Running() {
		t.Fatalf("session still running after a fired checkout")
	}
	purchase, ok := a.LastPurchase()
	if !ok || purchase.Success || purchase.Error != "Product not found" {
		t.Fatalf("last purchase = %+v ok=%v", purchase, ok)
	}
}

func TestEmptyInputRejected(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{}
	shop := &fakeShop{products: storeProducts()}
	a := newTestAgent(t, gen, shop)

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := a.ProcessTurn(context.Background(), text); err == nil {
			t.Fatalf("ProcessTurn(%q) accepted blank input", text)
		}
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("blank input reached the generator")
	}
	if a.Phase() != phasex.Greeting {
		t.Fatalf("blank input moved the phase to %q", a.Phase())
	}
}

func TestNewRejectsNilCollaborators(t *testing.T) {
	t.Parallel()

	if _, err := New(context.Background(), nil, &fakeShop{}, Config{}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("nil generator err = %v", err)
	}
	if _, err := New(context.Background(), &fakeGenerator{}, nil, Config{}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("nil shop err = %v", err)
	}
}
