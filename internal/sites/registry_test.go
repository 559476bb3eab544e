package sites

import (
	"errors"
	"testing"

	"github.com/mirepoix/souschef/internal/domain"
)

func TestResolveBuiltins(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"allrecipes", "https://www.allrecipes.com/recipe/10813/best-chocolate-chip-cookies/", "allrecipes.com"},
		{"simplyrecipes", "https://www.simplyrecipes.com/recipes/homemade_pizza/", "simplyrecipes.com"},
		{"foodnetwork", "https://www.foodnetwork.com/recipes/alton-brown/good-eats-meatloaf-recipe", "foodnetwork.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := r.Resolve(tt.url)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if cfg.Domain != tt.want {
				t.Fatalf("expected domain %s, got %s", tt.want, cfg.Domain)
			}
		})
	}
}

func TestResolveUnsupportedSite(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve("https://example.com/some-recipe")
	if !errors.Is(err, domain.ErrUnsupportedSite) {
		t.Fatalf("expected ErrUnsupportedSite, got %v", err)
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	r := &Registry{}
	r.Register(Config{Domain: "recipes.example.com", IngredientSelector: "li.narrow"})
	r.Register(Config{Domain: "example.com", IngredientSelector: "li.broad"})

	cfg, err := r.Resolve("https://recipes.example.com/cake")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.IngredientSelector != "li.narrow" {
		t.Fatalf("expected the earlier-registered config to win, got %q", cfg.IngredientSelector)
	}

	// The broader domain still matches URLs the narrow one doesn't.
	cfg, err = r.Resolve("https://example.com/cake")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.IngredientSelector != "li.broad" {
		t.Fatalf("expected the broad config, got %q", cfg.IngredientSelector)
	}
}

func TestStructured(t *testing.T) {
	if (Config{}).Structured() {
		t.Fatal("empty config should not be structured")
	}
	if !(Config{NameSelector: "span"}).Structured() {
		t.Fatal("config with a name selector should be structured")
	}
}
