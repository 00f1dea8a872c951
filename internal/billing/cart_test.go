package billing

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/karthikrajap/textile-pos-backend/internal/product"
)

func sampleProduct(id int, price float64, stock int) product.Product {
	return product.Product{
		ID:          id,
		ProductName: "Cotton Saree",
		Barcode:     "WC000001",
		HsnCode:     "52081100",
		RetailPrice: price,
		Quantity:    stock,
		Status:      product.StatusAvailable,
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.011
}

func TestAddItem_NewAndIncrement(t *testing.T) {
	cart := NewCart()
	p := sampleProduct(1, 200, 10)

	if err := cart.AddItem(p, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	item, ok := cart.Item(1)
	if !ok {
		t.Fatalf("item missing after add")
	}
	if item.Quantity != 1 || item.Total != 200 || item.DiscountAmount != 0 {
		t.Fatalf("unexpected line after add: %+v", item)
	}

	if err := cart.AddItem(p, 1); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	item, _ = cart.Item(1)
	if item.Quantity != 2 || item.Total != 400 {
		t.Fatalf("expected quantity 2 total 400, got %+v", item)
	}
}

func TestAddItem_OutOfStock(t *testing.T) {
	cart := NewCart()
	p := sampleProduct(1, 200, 0)

	err := cart.AddItem(p, 1)
	var oos *OutOfStockError
	if !errors.As(err, &oos) {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}
	if cart.Len() != 0 {
		t.Fatalf("cart mutated by rejected add")
	}
}

func TestAddItem_StockExceeded(t *testing.T) {
	cart := NewCart()
	p := sampleProduct(1, 200, 5)

	if err := cart.AddItem(p, 1); err != nil {
		t.Fatalf("setup add: %v", err)
	}
	if err := cart.UpdateQuantity(1, 5); err != nil {
		t.Fatalf("setup quantity: %v", err)
	}

	err := cart.AddItem(p, 1)
	var exceeded *StockExceededError
	if !errors.As(err, &exceeded) {
		t.Fatalf("expected StockExceededError, got %v", err)
	}
	if exceeded.Available != 5 || exceeded.ProductName != "Cotton Saree" {
		t.Fatalf("unexpected error payload: %+v", exceeded)
	}
	item, _ := cart.Item(1)
	if item.Quantity != 5 {
		t.Fatalf("quantity changed by rejected add: %d", item.Quantity)
	}
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(sampleProduct(1, 200, 10), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cart.UpdateQuantity(1, 0); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cart.Len() != 0 {
		t.Fatalf("expected empty cart after zero quantity")
	}
}

func TestUpdateQuantity_ExceedsStockClamps(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(sampleProduct(1, 200, 3), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cart.UpdateQuantity(1, 3); err != nil {
		t.Fatalf("quantity 3: %v", err)
	}

	err := cart.UpdateQuantity(1, 7)
	var exceeded *StockExceededError
	if !errors.As(err, &exceeded) {
		t.Fatalf("expected StockExceededError, got %v", err)
	}
	item, _ := cart.Item(1)
	// clamped to min(current, availableStock), not the requested value
	if item.Quantity != 3 {
		t.Fatalf("expected quantity clamped to 3, got %d", item.Quantity)
	}
	if item.Total != 600 {
		t.Fatalf("line total not recomputed after clamp: %v", item.Total)
	}
}

func TestLineTotalInvariant_HoldsAfterEveryMutation(t *testing.T) {
	cart := NewCart()
	p := sampleProduct(1, 149.99, 50)

	check := func(step string) {
		item, ok := cart.Item(1)
		if !ok {
			return
		}
		want := math.Max(0, round2(float64(item.Quantity)*item.Price-item.DiscountAmount))
		if item.Total != want {
			t.Fatalf("%s: invariant broken, total=%v want=%v (%+v)", step, item.Total, want, item)
		}
	}

	if err := cart.AddItem(p, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	check("add")
	if err := cart.UpdateQuantity(1, 7); err != nil {
		t.Fatalf("quantity: %v", err)
	}
	check("quantity")
	cart.UpdateDiscountPercent(1, 12.5)
	check("discount percent")
	cart.UpdateDiscountAmount(1, 99.5)
	check("discount amount")
	if err := cart.UpdateQuantity(1, 2); err != nil {
		t.Fatalf("quantity shrink: %v", err)
	}
	check("quantity shrink")
}

func TestDiscountPercentAmountConsistency(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(sampleProduct(1, 200, 10), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cart.UpdateQuantity(1, 2); err != nil {
		t.Fatalf("quantity: %v", err)
	}

	cart.UpdateDiscountPercent(1, 15)
	item, _ := cart.Item(1)
	if !approx(item.DiscountAmount, 60) { // 15% of 400
		t.Fatalf("expected amount 60, got %v", item.DiscountAmount)
	}

	cart.UpdateDiscountAmount(1, 100)
	item, _ = cart.Item(1)
	if !approx(item.DiscountPercentage, 25) { // 100 of 400
		t.Fatalf("expected percent 25, got %v", item.DiscountPercentage)
	}
	if item.Total != 300 {
		t.Fatalf("expected total 300, got %v", item.Total)
	}
}

func TestDiscountClamping(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(sampleProduct(1, 200, 10), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart.UpdateDiscountPercent(1, 150)
	item, _ := cart.Item(1)
	if item.DiscountPercentage != 100 {
		t.Fatalf("expected percent clamped to 100, got %v", item.DiscountPercentage)
	}
	if item.Total != 0 {
		t.Fatalf("expected total 0 at full discount, got %v", item.Total)
	}

	cart.UpdateDiscountAmount(1, -5)
	item, _ = cart.Item(1)
	if item.DiscountAmount != 0 {
		t.Fatalf("expected amount clamped to 0, got %v", item.DiscountAmount)
	}

	cart.UpdateDiscountAmount(1, 9999)
	item, _ = cart.Item(1)
	if item.DiscountAmount != 200 { // maxDiscount = 1 * 200
		t.Fatalf("expected amount clamped to 200, got %v", item.DiscountAmount)
	}
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	cart := NewCart()
	cart.RemoveItem(42)
	if cart.Len() != 0 {
		t.Fatalf("unexpected cart content")
	}
}

func TestTaxBackComputation(t *testing.T) {
	cart := NewCart()
	p := sampleProduct(1, 105, 10)
	if err := cart.AddItem(p, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	// grand total 105 at 5% combined -> taxable value 100, 2.50 each half
	if !approx(cart.CgstAmount(), 2.5) {
		t.Fatalf("cgst: got %v", cart.CgstAmount())
	}
	if !approx(cart.SgstAmount(), 2.5) {
		t.Fatalf("sgst: got %v", cart.SgstAmount())
	}
	if cart.TaxableAmount() != 100 {
		t.Fatalf("taxable: got %v", cart.TaxableAmount())
	}
}

func TestAggregateIdempotence(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(sampleProduct(1, 333.33, 9), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart.UpdateDiscountPercent(1, 7)

	first := []float64{cart.Subtotal(), cart.TotalDiscount(), cart.GrandTotal(), cart.CgstAmount(), cart.SgstAmount(), cart.TaxableAmount()}
	for i := 0; i < 3; i++ {
		again := []float64{cart.Subtotal(), cart.TotalDiscount(), cart.GrandTotal(), cart.CgstAmount(), cart.SgstAmount(), cart.TaxableAmount()}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("aggregate %d changed without mutation: %v vs %v", j, first[j], again[j])
			}
		}
	}
}

func TestEndToEndScenario(t *testing.T) {
	cart := NewCart()

	a := sampleProduct(1, 200, 10)
	a.ProductName = "Silk Saree"
	b := sampleProduct(2, 50, 3)
	b.ProductName = "Dhoti"
	b.Barcode = "WC000002"

	if err := cart.AddItem(a, 1); err != nil {
		t.Fatalf("add A: %v", err)
	}
	cart.UpdateDiscountPercent(1, 10)
	item, _ := cart.Item(1)
	if item.DiscountAmount != 20 || item.Total != 180 {
		t.Fatalf("A after 10%%: %+v", item)
	}

	if err := cart.AddItem(b, 1); err != nil {
		t.Fatalf("add B: %v", err)
	}
	if err := cart.UpdateQuantity(2, 2); err != nil {
		t.Fatalf("B quantity: %v", err)
	}
	item, _ = cart.Item(2)
	if item.Total != 100 {
		t.Fatalf("B total: %+v", item)
	}

	if cart.Subtotal() != 300 {
		t.Fatalf("subtotal: %v", cart.Subtotal())
	}
	if cart.TotalDiscount() != 20 {
		t.Fatalf("discount: %v", cart.TotalDiscount())
	}
	if cart.GrandTotal() != 280 {
		t.Fatalf("grand total: %v", cart.GrandTotal())
	}
	if !approx(cart.CgstAmount(), 6.67) {
		t.Fatalf("cgst: %v", cart.CgstAmount())
	}
	if !approx(cart.SgstAmount(), 6.67) {
		t.Fatalf("sgst: %v", cart.SgstAmount())
	}
	if !approx(cart.TaxableAmount(), 266.67) {
		t.Fatalf("taxable: %v", cart.TaxableAmount())
	}
}

func TestBuildInvoiceRequest_Preconditions(t *testing.T) {
	cart := NewCart()

	assertIssue := func(wantSubstring string) {
		t.Helper()
		_, err := cart.BuildInvoiceRequest()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if !strings.Contains(strings.Join(verr.Issues, "\n"), wantSubstring) {
			t.Fatalf("expected issue containing %q, got %v", wantSubstring, verr.Issues)
		}
	}

	assertIssue("cart is empty")

	if err := cart.AddItem(sampleProduct(1, 200, 10), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	assertIssue("phone number is required")

	cart.EditCustomer(CustomerDetails{Phone: "9876543210"})
	assertIssue("name is required")

	cart.EditCustomer(CustomerDetails{Name: "Meena", Phone: "9876543210"})
	assertIssue("save customer")

	cart.ApplyCustomerRecord(7, CustomerDetails{Name: "Meena", Phone: "9876543210"})
	inv, err := cart.BuildInvoiceRequest()
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if inv.CustomerID != 7 || len(inv.InvoiceItems) != 1 || inv.Total != 200 {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	// building is read-only
	if cart.Len() != 1 {
		t.Fatalf("cart mutated by BuildInvoiceRequest")
	}
}

func TestBuildInvoiceRequest_AggregatesAllStockIssues(t *testing.T) {
	cart := NewCart()
	a := sampleProduct(1, 200, 5)
	a.ProductName = "Silk Saree"
	b := sampleProduct(2, 50, 3)
	b.ProductName = "Dhoti"

	if err := cart.AddItem(a, 5); err != nil {
		t.Fatalf("add A: %v", err)
	}
	if err := cart.AddItem(b, 3); err != nil {
		t.Fatalf("add B: %v", err)
	}
	cart.ApplyCustomerRecord(7, CustomerDetails{Name: "Meena", Phone: "9876543210"})

	// stock shrank after add; simulate by shrinking the snapshots
	cart.items[1].AvailableStock = 3
	cart.items[2].AvailableStock = 1

	_, err := cart.BuildInvoiceRequest()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 2 {
		t.Fatalf("expected both lines reported, got %v", verr.Issues)
	}
	if !strings.Contains(verr.Issues[0], "Silk Saree: Requested 5, Available 3") {
		t.Fatalf("unexpected first issue: %q", verr.Issues[0])
	}
	if !strings.Contains(verr.Issues[1], "Dhoti: Requested 3, Available 1") {
		t.Fatalf("unexpected second issue: %q", verr.Issues[1])
	}
}

func TestReset(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(sampleProduct(1, 200, 10), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart.SetTaxRates(9, 9)
	cart.SetPaymentMethod("card")
	cart.ApplyCustomerRecord(7, CustomerDetails{Name: "Meena", Phone: "9876543210"})

	cart.Reset()

	if cart.Len() != 0 {
		t.Fatalf("items survived reset")
	}
	cgst, sgst := cart.TaxRates()
	if cgst != DefaultCgstRate || sgst != DefaultSgstRate {
		t.Fatalf("tax rates not restored: %v/%v", cgst, sgst)
	}
	if cart.PaymentMethod() != DefaultPaymentMethod {
		t.Fatalf("payment method not restored: %s", cart.PaymentMethod())
	}
	ref := cart.Customer()
	if ref.ID != 0 || ref.Status != CustomerUnknown || ref.Details != (CustomerDetails{}) {
		t.Fatalf("customer survived reset: %+v", ref)
	}
}

func TestHasUnsavedCustomerChanges(t *testing.T) {
	cart := NewCart()

	// unknown status: always disabled
	if cart.HasUnsavedCustomerChanges() {
		t.Fatalf("expected false for unknown status")
	}

	// new customer: enabled only when name and phone are filled
	cart.MarkCustomerNew("98765")
	if cart.HasUnsavedCustomerChanges() {
		t.Fatalf("expected false without a name")
	}
	cart.EditCustomer(CustomerDetails{Name: "Meena", Phone: "98765"})
	if !cart.HasUnsavedCustomerChanges() {
		t.Fatalf("expected true for filled-in new customer")
	}

	// known customer: enabled only when a field differs from the snapshot
	saved := CustomerDetails{Name: "Meena", Phone: "9876543210", Email: "m@example.com"}
	cart.ApplyCustomerRecord(7, saved)
	if cart.HasUnsavedCustomerChanges() {
		t.Fatalf("expected false right after fetch")
	}
	edited := saved
	edited.Address = "12 Weaver Street"
	cart.EditCustomer(edited)
	if !cart.HasUnsavedCustomerChanges() {
		t.Fatalf("expected true after an edit")
	}
	cart.EditCustomer(saved)
	if cart.HasUnsavedCustomerChanges() {
		t.Fatalf("expected false after reverting the edit")
	}
}

func TestEditCustomer_PhoneChangeInvalidatesLookup(t *testing.T) {
	cart := NewCart()
	cart.ApplyCustomerRecord(7, CustomerDetails{Name: "Meena", Phone: "9876543210"})

	cart.EditCustomer(CustomerDetails{Name: "Meena", Phone: "9876500000"})
	ref := cart.Customer()
	if ref.ID != 0 || ref.Status != CustomerUnknown {
		t.Fatalf("expected lookup invalidated, got %+v", ref)
	}
}

func TestEditCustomer_PhoneChangeResetsNotExists(t *testing.T) {
	cart := NewCart()
	cart.MarkCustomerNew("9876543210")

	// typing a different number must trigger a fresh lookup, not keep the
	// stale not-found verdict
	cart.EditCustomer(CustomerDetails{Phone: "9876500000"})
	if got := cart.Customer().Status; got != CustomerUnknown {
		t.Fatalf("expected unknown status after phone change, got %q", got)
	}

	// editing other fields with the same phone keeps the verdict
	cart.MarkCustomerNew("9876543210")
	cart.EditCustomer(CustomerDetails{Name: "Meena", Phone: "9876543210"})
	if got := cart.Customer().Status; got != CustomerNotExists {
		t.Fatalf("expected not-exists to survive a name edit, got %q", got)
	}
}
