package models

import "testing"

func TestClassifyStrategyKnown(t *testing.T) {
	s := ClassifyStrategy("enhanced-500")
	if s.Level1Category != "equity" || s.Level2Category != "index-enhancement" || s.Level3Category != "enhanced-500" {
		t.Fatalf("got %+v", s)
	}
	s = ClassifyStrategy("bond-plus")
	if s.Level1Category != "fixed-income" || s.Level2Category != "enhanced-bond" {
		t.Fatalf("got %+v", s)
	}
}

func TestClassifyStrategyUnknown(t *testing.T) {
	s := ClassifyStrategy("moon-phase-trading")
	if s.Level1Category != Unclassified || s.Level2Category != Unclassified {
		t.Fatalf("got %+v", s)
	}
	if s.Level3Category != "moon-phase-trading" {
		t.Fatalf("level3 should keep the source label, got %q", s.Level3Category)
	}
}

func TestClassifyStrategyEmpty(t *testing.T) {
	s := ClassifyStrategy("")
	if s.Level3Category != Unclassified {
		t.Fatalf("got %+v", s)
	}
}

func TestHierarchyParentsConsistent(t *testing.T) {
	for level3, levels := range StrategyHierarchy {
		if levels.Level1 == "" || levels.Level2 == "" {
			t.Fatalf("%q has empty parents: %+v", level3, levels)
		}
	}
}
