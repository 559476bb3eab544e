package extract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/logger"
	"github.com/mirepoix/souschef/internal/sites"
)

const allrecipesURL = "https://www.allrecipes.com/recipe/1/test/"
const simplyURL = "https://www.simplyrecipes.com/recipes/test/"

const allrecipesMarkup = `<html><body>
<ul>
  <li class="mm-recipes-structured-ingredients__list-item">
    <span data-ingredient-quantity="true">2</span>
    <span data-ingredient-unit="true">cups</span>
    <span data-ingredient-name="true">all-purpose flour</span>
  </li>
  <li class="mm-recipes-structured-ingredients__list-item">
    <span data-ingredient-quantity="true">3</span>
    <span data-ingredient-name="true">large eggs</span>
  </li>
  <li class="mm-recipes-structured-ingredients__list-item">
    <span data-ingredient-name="true">salt and pepper</span>
  </li>
</ul>
<p class="comp mntl-sc-block mntl-sc-block-html">Preheat the oven to 350 degrees F.</p>
<p class="comp mntl-sc-block mntl-sc-block-html">Mix   the flour
and eggs.</p>
</body></html>`

func newTestExtractor() *Extractor {
	log := logger.New(logger.LevelOff, nil)
	return New(sites.NewRegistry(), nil, log)
}

func TestExtractStructuredIngredients(t *testing.T) {
	e := newTestExtractor()

	ingredients, instructions, err := e.Extract([]byte(allrecipesMarkup), allrecipesURL)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	// "salt and pepper" splits into two unquantified entries.
	want := []domain.Ingredient{
		{Name: "all-purpose flour", Quantity: "2", Unit: "cups"},
		{Name: "large eggs", Quantity: "3"},
		{Name: "salt"},
		{Name: "pepper"},
	}
	if len(ingredients) != len(want) {
		t.Fatalf("expected %d ingredients, got %d: %v", len(want), len(ingredients), ingredients)
	}
	for i, w := range want {
		if ingredients[i] != w {
			t.Fatalf("ingredient %d: expected %+v, got %+v", i, w, ingredients[i])
		}
	}

	// Internal whitespace collapses to single spaces.
	if len(instructions) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(instructions))
	}
	if instructions[1] != "Mix the flour and eggs." {
		t.Fatalf("unexpected instruction text: %q", instructions[1])
	}
}

func TestExtractIngredientTagFallback(t *testing.T) {
	e := newTestExtractor()

	// No structured-ingredients class anywhere; the bare li tag carries
	// the ingredient text.
	markup := `<html><body>
<ul><li>1 cup sugar</li><li>2 tablespoons butter</li></ul>
<section id="structured-project--steps_1-0">
  <p class="mntl-sc-block-html">Cream the sugar and butter.</p>
</section>
</body></html>`

	ingredients, _, err := e.Extract([]byte(markup), simplyURL)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(ingredients) != 2 {
		t.Fatalf("expected 2 ingredients via tag fallback, got %d", len(ingredients))
	}
	if ingredients[0].Name != "1 cup sugar" {
		t.Fatalf("unexpected ingredient: %+v", ingredients[0])
	}
}

func TestExtractScopeFallsBackToDocument(t *testing.T) {
	e := newTestExtractor()

	// The scoping section is absent; instructions are still found by
	// searching the whole document.
	markup := `<html><body>
<ul><li class="structured-ingredients__list-item">1 cup sugar</li></ul>
<p class="mntl-sc-block-html">Cream the sugar.</p>
</body></html>`

	_, instructions, err := e.Extract([]byte(markup), simplyURL)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(instructions) != 1 || instructions[0] != "Cream the sugar." {
		t.Fatalf("unexpected instructions: %v", instructions)
	}
}

func TestExtractInstructionFallbackSelector(t *testing.T) {
	e := newTestExtractor()

	// The primary instruction class is missing; the looser fallback
	// selector still matches.
	markup := `<html><body>
<ul><li class="structured-ingredients__list-item">1 cup sugar</li></ul>
<p class="custom-sc-block-html">Cream the sugar.</p>
</body></html>`

	_, instructions, err := e.Extract([]byte(markup), simplyURL)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(instructions) != 1 || instructions[0] != "Cream the sugar." {
		t.Fatalf("unexpected instructions: %v", instructions)
	}
}

func TestExtractEmptyPage(t *testing.T) {
	e := newTestExtractor()

	_, _, err := e.Extract([]byte("<html><body><p>Not a recipe.</p></body></html>"), allrecipesURL)
	if !errors.Is(err, domain.ErrEmptyExtraction) {
		t.Fatalf("expected ErrEmptyExtraction, got %v", err)
	}
}

func TestExtractUnsupportedSite(t *testing.T) {
	e := newTestExtractor()

	_, _, err := e.Extract([]byte(allrecipesMarkup), "https://example.com/recipe")
	if !errors.Is(err, domain.ErrUnsupportedSite) {
		t.Fatalf("expected ErrUnsupportedSite, got %v", err)
	}
}

// stubFetcher serves canned markup keyed by URL.
type stubFetcher struct {
	pages map[string][]byte
	err   error
}

func (f *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	page, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("%w: no canned page for %s", domain.ErrFetch, url)
	}
	return page, nil
}

func TestExtractURL(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	fetcher := &stubFetcher{pages: map[string][]byte{allrecipesURL: []byte(allrecipesMarkup)}}
	e := New(sites.NewRegistry(), fetcher, log)

	ingredients, instructions, err := e.ExtractURL(context.Background(), allrecipesURL)
	if err != nil {
		t.Fatalf("extract url: %v", err)
	}
	if len(ingredients) == 0 || len(instructions) == 0 {
		t.Fatalf("expected content, got %d ingredients, %d instructions", len(ingredients), len(instructions))
	}
}

func TestExtractURLFetchFailure(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	fetcher := &stubFetcher{err: fmt.Errorf("%w: connection refused", domain.ErrFetch)}
	e := New(sites.NewRegistry(), fetcher, log)

	_, _, err := e.ExtractURL(context.Background(), allrecipesURL)
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}
