package base

import "testing"

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{".Sales.Orders", 20, ".Sales.Orders"},
		{".Sales.Orders", 9, ".Sales..."},
		{".Sales.Orders", 2, ".S"},
		{".Sales.Orders", 0, ""},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.input, tt.width); got != tt.expected {
			t.Errorf("TruncateString(%q, %d): Expected %q, got %q", tt.input, tt.width, tt.expected, got)
		}
	}
}

func TestPadString(t *testing.T) {
	if got := PadString("DROP", 6); got != "DROP  " {
		t.Errorf("Expected %q, got %q", "DROP  ", got)
	}
	if got := PadString("CREATE TABLE", 6); got != "CREATE TABLE" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
}
