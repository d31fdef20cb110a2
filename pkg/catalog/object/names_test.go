package object

import (
	"strings"
	"testing"
)

func TestNames(t *testing.T) {
	if EnsureRooted("Sales.Orders") != ".Sales.Orders" || EnsureRooted(".Sales.Orders") != ".Sales.Orders" {
		t.Error("EnsureRooted should add exactly one qualifier")
	}
	if EnsureUnrooted(".Sales.Orders") != "Sales.Orders" {
		t.Error("EnsureUnrooted should strip the qualifier")
	}
	if Qualify("ID", "new") != "new.ID" || Qualify("ID", "") != "ID" {
		t.Error("Qualify mismatch")
	}
	if Unqualify("Sales.Orders.ID") != "ID" || QualifierOf(".Sales.Orders") != "Sales" || QualifierOf("Orders") != "" {
		t.Error("Unqualify/QualifierOf mismatch")
	}
}

func TestNamesEqual(t *testing.T) {
	tests := []struct {
		name, reference string
		expected        bool
	}{
		{"Sales.Orders", "Orders", true},
		{"Sales.Orders", "Sales.Orders", true},
		{"Sales.Orders", ".Sales.Orders", true},
		{"Sales.Orders", ".Orders", false},
		{"Sales.BigOrders", "Orders", false},
	}
	for _, tt := range tests {
		if got := NamesEqual(tt.name, tt.reference); got != tt.expected {
			t.Errorf("NamesEqual(%q, %q): expected %v, got %v", tt.name, tt.reference, tt.expected, got)
		}
	}
}

func TestSynthesizeGlobalName(t *testing.T) {
	a := SynthesizeGlobalName(".Orders_FK")
	b := SynthesizeGlobalName(".Orders_FK")
	if a == b {
		t.Error("synthesized names should be unique")
	}
	if !strings.HasPrefix(a, "Orders_FK_") || strings.Contains(a, "-") {
		t.Errorf("Unexpected synthesized name %q", a)
	}
}
