package recommendation

import (
	"testing"

	"smartshop/domain"
)

func TestBuildExplanation_DefaultReason(t *testing.T) {
	ex := BuildExplanation(Boosters{}, false)
	if ex.Reason != "Recommended for you" {
		t.Errorf("unexpected default reason: %q", ex.Reason)
	}
	if len(ex.Tags) != 0 {
		t.Errorf("expected no tags, got %v", ex.Tags)
	}
}

func TestBuildExplanation_PriorityOrder(t *testing.T) {
	anchor := domain.Product{Name: "Nimbus Buds"}

	ex := BuildExplanation(Boosters{
		SimilarTo:     &anchor,
		Brand:         "Nimbus",
		Category:      "Electronics",
		PriceAffinity: true,
		Discount:      true,
	}, true)

	if ex.Reason != "Similar to Nimbus Buds" {
		t.Errorf("similarity should win the headline reason, got %q", ex.Reason)
	}

	wantTags := []string{
		"Similar to what you viewed",
		"Because you like this brand",
		"Because you browsed this category",
		"In your price range",
		"Trending now",
		"On sale",
	}
	if len(ex.Tags) != len(wantTags) {
		t.Fatalf("expected %d tags, got %v", len(wantTags), ex.Tags)
	}
	for i, tag := range wantTags {
		if ex.Tags[i] != tag {
			t.Errorf("tag[%d]: want %q got %q", i, tag, ex.Tags[i])
		}
	}
}

func TestBuildExplanation_TrendingOnly(t *testing.T) {
	ex := BuildExplanation(Boosters{}, true)
	if ex.Reason != "Popular with other shoppers right now" {
		t.Errorf("unexpected reason: %q", ex.Reason)
	}
	if len(ex.Tags) != 1 || ex.Tags[0] != "Trending now" {
		t.Errorf("unexpected tags: %v", ex.Tags)
	}
}

func TestBuildExplanation_BrandBeatsCategory(t *testing.T) {
	ex := BuildExplanation(Boosters{Brand: "Nimbus", Category: "Electronics"}, false)
	if ex.Reason != "You engaged with Nimbus" {
		t.Errorf("brand should beat category, got %q", ex.Reason)
	}
}
