// Package extract turns fetched recipe markup into ordered raw ingredient
// and instruction text, driven by per-site selector configs.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/logger"
	"github.com/mirepoix/souschef/internal/sites"
)

// Extractor applies a site's selector config to markup.
type Extractor struct {
	registry *sites.Registry
	fetcher  domain.Fetcher
	log      *logger.Logger
}

// New creates an extractor over the given site registry and fetcher.
func New(registry *sites.Registry, fetcher domain.Fetcher, log *logger.Logger) *Extractor {
	return &Extractor{registry: registry, fetcher: fetcher, log: log}
}

// ExtractURL fetches url and extracts its ingredients and instructions.
func (e *Extractor) ExtractURL(ctx context.Context, url string) ([]domain.Ingredient, []string, error) {
	markup, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	return e.Extract(markup, url)
}

// Extract applies the resolved site config to markup and returns raw
// ingredients and instruction strings in source document order.
func (e *Extractor) Extract(markup []byte, url string) ([]domain.Ingredient, []string, error) {
	cfg, err := e.registry.Resolve(url)
	if err != nil {
		return nil, nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing markup for %s: %w", url, err)
	}

	ingredients := e.extractIngredients(doc, cfg)
	instructions := e.extractInstructions(doc, cfg)

	if len(ingredients) == 0 || len(instructions) == 0 {
		return nil, nil, fmt.Errorf("%w: %s yielded %d ingredients, %d instructions",
			domain.ErrEmptyExtraction, url, len(ingredients), len(instructions))
	}

	e.log.Debug("extract: %s -> %d ingredients, %d instructions", url, len(ingredients), len(instructions))
	return ingredients, instructions, nil
}

// extractIngredients selects ingredient elements, retrying with the bare
// tag when the attribute-constrained selector matches nothing.
func (e *Extractor) extractIngredients(doc *goquery.Document, cfg sites.Config) []domain.Ingredient {
	items := doc.Find(cfg.IngredientSelector)
	if items.Length() == 0 {
		if tag := leadingTag(cfg.IngredientSelector); tag != "" {
			e.log.Debug("extract: ingredient selector %q empty, retrying with tag %q", cfg.IngredientSelector, tag)
			items = doc.Find(tag)
		}
	}

	var out []domain.Ingredient
	items.Each(func(_ int, item *goquery.Selection) {
		if !cfg.Structured() {
			if text := clean(item.Text()); text != "" {
				out = append(out, domain.Ingredient{Name: text})
			}
			return
		}

		quantity := clean(item.Find(cfg.QuantitySelector).First().Text())
		unit := clean(item.Find(cfg.UnitSelector).First().Text())
		name := clean(item.Find(cfg.NameSelector).First().Text())

		// Enumerated unquantified items ("salt and pepper") come through
		// as one name with no quantity; emit each half separately.
		if quantity == "" && strings.Contains(" "+name+" ", " and ") {
			for _, part := range strings.Split(name, " and ") {
				if part = clean(part); part != "" {
					out = append(out, domain.Ingredient{Name: part})
				}
			}
			return
		}

		if quantity == "" && unit == "" && name == "" {
			return
		}
		out = append(out, domain.Ingredient{Name: name, Quantity: quantity, Unit: unit})
	})
	return out
}

// extractInstructions selects instruction elements, scoping to the
// configured container when present and falling back to the looser
// secondary selector when the primary matches nothing.
func (e *Extractor) extractInstructions(doc *goquery.Document, cfg sites.Config) []string {
	scope := doc.Selection
	if cfg.ScopeSelector != "" {
		if container := doc.Find(cfg.ScopeSelector); container.Length() > 0 {
			scope = container.First()
		} else {
			e.log.Debug("extract: scope %q absent, searching whole document", cfg.ScopeSelector)
		}
	}

	items := scope.Find(cfg.InstructionSelector)
	if items.Length() == 0 && cfg.InstructionFallback != "" {
		e.log.Debug("extract: instruction selector %q empty, trying fallback %q", cfg.InstructionSelector, cfg.InstructionFallback)
		items = scope.Find(cfg.InstructionFallback)
	}

	var out []string
	items.Each(func(_ int, item *goquery.Selection) {
		if text := clean(item.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}

// leadingTag returns the bare element tag of a selector like
// "li.some-class" or "p[data-x=1]", or "" if the selector has none.
func leadingTag(selector string) string {
	for i, r := range selector {
		if r == '.' || r == '[' || r == '#' || r == ' ' || r == ':' {
			return selector[:i]
		}
	}
	return selector
}

// clean trims an extracted string and collapses internal whitespace.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
