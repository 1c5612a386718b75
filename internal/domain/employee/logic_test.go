package employee

import (
	"errors"
	"testing"
)

func chainLookup(chain map[int64]int64) func(int64) (int64, error) {
	return func(id int64) (int64, error) {
		return chain[id], nil
	}
}

func TestCheckManagerChainAllowsAcyclic(t *testing.T) {
	// 3 -> 2 -> 1, assigning 3 as manager of 4
	chain := map[int64]int64{3: 2, 2: 1}
	if err := CheckManagerChain(4, 3, chainLookup(chain)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckManagerChainRejectsSelf(t *testing.T) {
	if err := CheckManagerChain(7, 7, chainLookup(nil)); !errors.Is(err, ErrManagerCycle) {
		t.Fatalf("expected ErrManagerCycle, got %v", err)
	}
}

func TestCheckManagerChainRejectsIndirectCycle(t *testing.T) {
	// proposed: 1 reports to 3, but 3 -> 2 -> 1
	chain := map[int64]int64{3: 2, 2: 1}
	if err := CheckManagerChain(1, 3, chainLookup(chain)); !errors.Is(err, ErrManagerCycle) {
		t.Fatalf("expected ErrManagerCycle, got %v", err)
	}
}

func TestCheckManagerChainBoundsDepth(t *testing.T) {
	// self-looping chain that never reaches the proposed employee
	chain := map[int64]int64{10: 11, 11: 10}
	if err := CheckManagerChain(1, 10, chainLookup(chain)); !errors.Is(err, ErrManagerCycle) {
		t.Fatalf("expected ErrManagerCycle for unbounded chain, got %v", err)
	}
}
