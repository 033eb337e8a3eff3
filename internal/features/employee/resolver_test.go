package employee

import (
	"errors"
	"testing"
)

func hierarchyFixture() []EmployeeHierarchy {
	return []EmployeeHierarchy{
		{EmployeeID: "E001", Name: "Asha", ManagerID: "M001", JobTitle: "Engineer", JobLevel: 1},
		{EmployeeID: "M001", Name: "Priya", ManagerID: "M002", JobTitle: "Manager", JobLevel: 2},
		{EmployeeID: "M002", Name: "Daniel", ManagerID: "D001", JobTitle: "Senior Manager", JobLevel: 3},
		{EmployeeID: "D001", Name: "Mei", JobTitle: "Director", JobLevel: 4},
	}
}

func TestResolveChain(t *testing.T) {
	all := hierarchyFixture()

	chain, err := ResolveChain(all[0], all)
	if err != nil {
		t.Fatalf("ResolveChain() error = %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(chain))
	}
	wantIDs := []string{"M001", "M002", "D001"}
	for i, want := range wantIDs {
		if chain[i].EmployeeID != want {
			t.Errorf("chain[%d] = %s, want %s", i, chain[i].EmployeeID, want)
		}
	}
	for i := 1; i < len(chain); i++ {
		if chain[i].JobLevel <= chain[i-1].JobLevel {
			t.Errorf("chain levels not increasing at %d", i)
		}
	}
}

func TestResolveChainTopOfHierarchy(t *testing.T) {
	all := hierarchyFixture()
	director := all[3]

	chain, err := ResolveChain(director, all)
	if err != nil {
		t.Fatalf("ResolveChain() error = %v", err)
	}
	if len(chain) != 0 {
		t.Fatalf("chain length = %d, want 0 for top of hierarchy", len(chain))
	}
}

func TestResolveChainErrors(t *testing.T) {
	tests := []struct {
		name     string
		subject  EmployeeHierarchy
		all      []EmployeeHierarchy
		wantKind HierarchyErrorKind
	}{
		{
			name:    "missing manager below top level",
			subject: EmployeeHierarchy{EmployeeID: "E001", JobLevel: 1},
			all: []EmployeeHierarchy{
				{EmployeeID: "E001", JobLevel: 1},
				{EmployeeID: "D001", JobLevel: 4},
			},
			wantKind: HierarchyBroken,
		},
		{
			name:    "dangling manager reference",
			subject: EmployeeHierarchy{EmployeeID: "E001", ManagerID: "GHOST", JobLevel: 1},
			all: []EmployeeHierarchy{
				{EmployeeID: "E001", ManagerID: "GHOST", JobLevel: 1},
			},
			wantKind: HierarchyDangling,
		},
		{
			name:    "cycle in manager chain",
			subject: EmployeeHierarchy{EmployeeID: "A", ManagerID: "B", JobLevel: 1},
			all: []EmployeeHierarchy{
				{EmployeeID: "A", ManagerID: "B", JobLevel: 1},
				{EmployeeID: "B", ManagerID: "C", JobLevel: 2},
				{EmployeeID: "C", ManagerID: "A", JobLevel: 3},
			},
			wantKind: HierarchyCycle,
		},
		{
			name:    "chain tops out at the subject's own level",
			subject: EmployeeHierarchy{EmployeeID: "E001", ManagerID: "P001", JobLevel: 2},
			all: []EmployeeHierarchy{
				{EmployeeID: "E001", ManagerID: "P001", JobLevel: 2},
				{EmployeeID: "P001", JobLevel: 2},
			},
			wantKind: HierarchyBroken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveChain(tt.subject, tt.all)
			if err == nil {
				t.Fatal("ResolveChain() expected error, got nil")
			}
			var hierr *HierarchyError
			if !errors.As(err, &hierr) {
				t.Fatalf("error type = %T, want *HierarchyError", err)
			}
			if hierr.Kind != tt.wantKind {
				t.Errorf("error kind = %s, want %s", hierr.Kind, tt.wantKind)
			}
		})
	}
}
