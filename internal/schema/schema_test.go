package schema

import (
	"sort"
	"testing"
)

func TestLookupKnownTypes(t *testing.T) {
	for _, typ := range Types() {
		entity, err := Lookup(typ)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", typ, err)
		}
		if entity.Table == "" || entity.PK == "" {
			t.Fatalf("entity %q missing table or pk", typ)
		}
	}
}

func TestLookupUnknownType(t *testing.T) {
	if _, err := Lookup("no_such_table"); err == nil {
		t.Fatal("expected error for unknown entity type")
	}
}

func TestPrimaryKeyIsDeclaredAndDerived(t *testing.T) {
	for _, typ := range Types() {
		entity, _ := Lookup(typ)
		writable, known := entity.WritableColumn(entity.PK)
		if !known {
			t.Fatalf("%s: pk %q not among declared columns", typ, entity.PK)
		}
		if writable {
			t.Fatalf("%s: pk %q must not be client-writable", typ, entity.PK)
		}
	}
}

func TestEveryEntityHasWritableColumns(t *testing.T) {
	for _, typ := range Types() {
		entity, _ := Lookup(typ)
		any := false
		for _, c := range entity.Columns {
			if !c.Derived {
				any = true
				break
			}
		}
		if !any {
			t.Fatalf("%s: no writable columns", typ)
		}
	}
}

func TestColumnNamesUniquePerEntity(t *testing.T) {
	for _, typ := range Types() {
		entity, _ := Lookup(typ)
		seen := map[string]bool{}
		for _, name := range entity.ColumnNames() {
			if seen[name] {
				t.Fatalf("%s: duplicate column %q", typ, name)
			}
			seen[name] = true
		}
	}
}

func TestSessionCostIsDerived(t *testing.T) {
	entity, err := Lookup("charging_sessions")
	if err != nil {
		t.Fatal(err)
	}
	writable, known := entity.WritableColumn("cost")
	if !known {
		t.Fatal("charging_sessions must declare a cost column")
	}
	if writable {
		t.Fatal("cost must be derived, never client-writable")
	}
}

func TestTypesSorted(t *testing.T) {
	types := Types()
	if !sort.StringsAreSorted(types) {
		t.Fatalf("Types() not sorted: %v", types)
	}
	if len(types) != 9 {
		t.Fatalf("expected 9 entity types, got %d", len(types))
	}
}
