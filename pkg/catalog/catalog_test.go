package catalog

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	products := c.ListAll()
	if len(products) != 8 {
		t.Fatalf("products = %d, want 8", len(products))
	}
	if products[0].ID != "1" || products[7].ID != "8" {
		t.Fatalf("catalog order not preserved: first %s, last %s", products[0].ID, products[7].ID)
	}

	p, ok := c.GetByID("5")
	if !ok || p.Name != "Royal Peacock" {
		t.Fatalf("lookup by id: ok=%v name=%q", ok, p.Name)
	}
	if _, ok := c.GetByID("999"); ok {
		t.Fatalf("unknown id should not resolve")
	}
}
