// Package sites maps recipe URLs to declarative selector configurations.
// Supporting a new site means registering a new Config, not adding code
// paths: every per-site quirk (structured ingredient sub-fields, scoped
// instruction containers, loose fallback selectors) is expressed as data.
package sites

import (
	"fmt"
	"strings"

	"github.com/mirepoix/souschef/internal/domain"
)

// Config is the declarative selector bundle for one site family.
// Selectors are goquery CSS selectors.
type Config struct {
	// Domain is matched by substring containment against the input URL.
	Domain string

	// IngredientSelector locates one element per ingredient.
	IngredientSelector string

	// QuantitySelector, UnitSelector, and NameSelector extract structured
	// sub-fields within each ingredient element. When all three are empty
	// the element's full text is treated as one ingredient string.
	QuantitySelector string
	UnitSelector     string
	NameSelector     string

	// InstructionSelector locates one element per instruction.
	InstructionSelector string

	// ScopeSelector, when set, names a container the instruction search
	// is restricted to. If the container is absent the search falls back
	// to the whole document.
	ScopeSelector string

	// InstructionFallback is a looser secondary selector tried when the
	// primary instruction selector matches nothing.
	InstructionFallback string
}

// Structured reports whether the config extracts ingredient sub-fields.
func (c Config) Structured() bool {
	return c.QuantitySelector != "" || c.UnitSelector != "" || c.NameSelector != ""
}

// Registry resolves URLs to site configs. Resolution is an ordered scan
// with first-match-wins priority, so insertion order is the documented
// total order when domain substrings overlap.
type Registry struct {
	configs []Config
}

// NewRegistry creates a registry seeded with the built-in site configs.
func NewRegistry() *Registry {
	r := &Registry{}
	for _, cfg := range builtins() {
		r.Register(cfg)
	}
	return r
}

// Register appends a config to the resolution order.
func (r *Registry) Register(cfg Config) {
	r.configs = append(r.configs, cfg)
}

// Resolve returns the first config whose Domain is a substring of url.
// Fails with ErrUnsupportedSite when nothing matches.
func (r *Registry) Resolve(url string) (Config, error) {
	for _, cfg := range r.configs {
		if strings.Contains(url, cfg.Domain) {
			return cfg, nil
		}
	}
	return Config{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedSite, url)
}

// builtins returns the seeded site configs in priority order.
func builtins() []Config {
	return []Config{
		{
			Domain:              "allrecipes.com",
			IngredientSelector:  "li.mm-recipes-structured-ingredients__list-item",
			QuantitySelector:    "span[data-ingredient-quantity=true]",
			UnitSelector:        "span[data-ingredient-unit=true]",
			NameSelector:        "span[data-ingredient-name=true]",
			InstructionSelector: "p.comp.mntl-sc-block.mntl-sc-block-html",
			InstructionFallback: "p[class*=mntl-sc-block]",
		},
		{
			Domain:              "simplyrecipes.com",
			IngredientSelector:  "li.structured-ingredients__list-item",
			InstructionSelector: "p.mntl-sc-block-html",
			ScopeSelector:       "section[id*=structured-project--steps]",
			InstructionFallback: "p[class*=sc-block-html]",
		},
		{
			Domain:              "foodnetwork.com",
			IngredientSelector:  "p.o-Ingredients__a-Ingredient",
			InstructionSelector: "li.o-Method__m-Step",
			ScopeSelector:       "section[class*=o-Method]",
			InstructionFallback: "li[class*=m-Step]",
		},
	}
}
