//go:build !exactbinding

package signature

import (
	"testing"

	schemaerr "schemacore/pkg/error"
	"schemacore/pkg/types"
)

func TestResolve(t *testing.T) {
	st := types.NewSystemTypes()
	actual := Of(st.Money, st.Integer)

	tests := []struct {
		name       string
		candidates []*Signature
		expected   int
	}{
		{"exact preferred", []*Signature{Of(st.Decimal, st.Integer), Of(st.Money, st.Integer)}, 1},
		{"fewest widenings", []*Signature{Of(st.Generic, st.Generic), Of(st.Decimal, st.Integer), Of(st.Scalar, st.Scalar)}, 1},
		{"tie goes to earliest", []*Signature{Of(st.Decimal, st.Integer), Of(st.Scalar, st.Integer)}, 0},
		{"skips non-matching", []*Signature{Of(st.String, st.Integer), Of(st.Generic, st.Integer)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(actual, tt.candidates)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected candidate %d, got %d", tt.expected, got)
			}
		})
	}

	if _, err := Resolve(actual, []*Signature{Of(st.String, st.String)}); !schemaerr.HasCode(err, schemaerr.CodeSignatureNotResolved) {
		t.Errorf("Expected SIGNATURE_NOT_RESOLVED, got %v", err)
	}
}

func TestOperatorMap(t *testing.T) {
	st := types.NewSystemTypes()
	m, err := NewOperatorMap[string](4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	m.Add("Add", Of(st.Decimal, st.Decimal), "decimal")
	m.Add("Add", Of(st.Integer, st.Integer), "integer")

	got, err := m.Resolve("Add", Of(st.Money, st.Money))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "decimal" {
		t.Errorf("Expected decimal, got %s", got)
	}
	if m.CachedResolutions() != 1 {
		t.Errorf("Expected one cached resolution, got %d", m.CachedResolutions())
	}

	m.Add("Add", Of(st.Money, st.Money), "money")
	if m.CachedResolutions() != 0 {
		t.Error("Expected adding an overload to purge the cache")
	}
	got, err = m.Resolve("Add", Of(st.Money, st.Money))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "money" {
		t.Errorf("Expected money after new overload, got %s", got)
	}

	m.Add("Add", Of(st.Money, st.Money), "money2")
	if m.Count("Add") != 3 {
		t.Errorf("Expected an equal signature to replace, got %d overloads", m.Count("Add"))
	}

	if !m.Remove("Add", Of(st.Money, st.Money)) {
		t.Fatal("Expected remove to succeed")
	}
	if _, err := m.Resolve("Add", Of(st.String, st.String)); !schemaerr.HasCode(err, schemaerr.CodeSignatureNotResolved) {
		t.Errorf("Expected SIGNATURE_NOT_RESOLVED, got %v", err)
	}
	if _, err := m.Resolve("Missing", Of()); !schemaerr.HasCode(err, schemaerr.CodeSignatureNotResolved) {
		t.Errorf("Expected SIGNATURE_NOT_RESOLVED for unknown operator, got %v", err)
	}
}
