package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const oldCatalog = `
libraries:
  - name: Sales
tables:
  - name: Sales.Customers
    columns:
      - { name: ID, type: System.Integer }
      - { name: Name, type: System.String }
    keys: [[ID]]
`

const newCatalog = oldCatalog + `
  - name: Sales.Products
    columns:
      - { name: ID, type: System.Integer }
    keys: [[ID]]
operators:
  - name: Sales.Half
    operands:
      - { name: AValue, type: System.Integer }
    returns: System.Integer
    body: "AValue / 2"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEmitCommand(t *testing.T) {
	path := writeFile(t, "sales.yaml", newCatalog)

	out, err := execute(t, "emit", path)
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	for _, want := range []string{
		`SetLibrary("Sales")`,
		"create table .Sales.Customers",
		"create table .Sales.Products",
		"create operator .Sales.Half(",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "create type") {
		t.Errorf("Expected system types to be skipped, got:\n%s", out)
	}
}

func TestEmitCommandRequestedObject(t *testing.T) {
	path := writeFile(t, "sales.yaml", newCatalog)

	out, err := execute(t, "emit", path, "--object", "Products")
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if !strings.Contains(out, "create table .Sales.Products") {
		t.Errorf("Expected Products to be emitted, got:\n%s", out)
	}
	if strings.Contains(out, "Customers") {
		t.Errorf("Expected Customers to be skipped, got:\n%s", out)
	}
}

func TestEmitCommandUnknownObject(t *testing.T) {
	path := writeFile(t, "sales.yaml", newCatalog)

	if _, err := execute(t, "emit", path, "--object", "Missing"); err == nil {
		t.Error("Expected error for unknown requested object")
	}
}

func TestEmitCommandUnknownLibrary(t *testing.T) {
	path := writeFile(t, "sales.yaml", newCatalog)

	out, err := execute(t, "emit", path, "--library", "Other")
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if out != "" {
		t.Errorf("Expected empty script, got:\n%s", out)
	}
}

func TestEmitCommandInvalidMode(t *testing.T) {
	path := writeFile(t, "sales.yaml", newCatalog)

	if _, err := execute(t, "emit", path, "--mode", "bogus"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestEmitCommandMetricsFile(t *testing.T) {
	path := writeFile(t, "sales.yaml", newCatalog)
	metricsPath := filepath.Join(t.TempDir(), "emission.prom")

	if _, err := execute(t, "emit", path, "--metrics-file", metricsPath); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("Failed to read metrics file: %v", err)
	}
	if !strings.Contains(string(data), "schemacore_emitted_statements_total") {
		t.Errorf("Expected emitted statement counter in metrics, got:\n%s", data)
	}
}

func TestDropCommand(t *testing.T) {
	path := writeFile(t, "sales.yaml", oldCatalog)

	out, err := execute(t, "drop", path)
	if err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	if !strings.Contains(out, "drop table .Sales.Customers") {
		t.Errorf("Expected drop of Customers, got:\n%s", out)
	}
}

func TestDiffCommand(t *testing.T) {
	oldPath := writeFile(t, "old.yaml", oldCatalog)
	newPath := writeFile(t, "new.yaml", newCatalog)

	out, err := execute(t, "diff", oldPath, newPath)
	if err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if !strings.Contains(out, "create table .Sales.Products") {
		t.Errorf("Expected Products to be created, got:\n%s", out)
	}
	if strings.Contains(out, "Customers") {
		t.Errorf("Expected unchanged Customers to be left alone, got:\n%s", out)
	}
}

func TestResolveCommand(t *testing.T) {
	path := writeFile(t, "sales.yaml", newCatalog)

	out, err := execute(t, "resolve", path, "Sales.Half", "System.Integer")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !strings.HasPrefix(out, "create operator .Sales.Half(") {
		t.Errorf("Expected the Half operator, got:\n%s", out)
	}

	if _, err := execute(t, "resolve", path, "Sales.Half", "System.String"); err == nil {
		t.Error("Expected error resolving with a non-matching argument")
	}
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "sales.yaml", newCatalog)
	cfgPath := writeFile(t, "schemactl.yaml", "emission:\n  requested: [Customers]\n")

	out, err := execute(t, "--config", cfgPath, "emit", path)
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if !strings.Contains(out, "create table .Sales.Customers") || strings.Contains(out, "Products") {
		t.Errorf("Expected only Customers from the configured request, got:\n%s", out)
	}

	badPath := writeFile(t, "bad.yaml", "emission:\n  parallelism: 0\n")
	if _, err := execute(t, "--config", badPath, "emit", path); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestDistinctLibraries(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"none", nil, []string{""}},
		{"single", []string{"Sales"}, []string{"Sales"}},
		{"case insensitive", []string{"Sales", "sales", "Stock"}, []string{"Sales", "Stock"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, distinctLibraries(tt.input)); diff != "" {
				t.Errorf("distinctLibraries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
