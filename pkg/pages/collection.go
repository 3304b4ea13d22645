package pages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/anubrata/bluebella-e2e/pkg/config"
)

// ErrProductNotFound is returned when a product tile cannot be located
// in the collection grid.
var ErrProductNotFound = errors.New("product not found")

// Lazy-loading scroll parameters. The grid loads tiles as the viewport
// approaches them, so product search scrolls in small steps.
const (
	scrollStep      = 400
	maxScrolls      = 100
	bottomThreshold = 500
)

// CollectionPage drives a product collection listing: sorting and
// locating products in the lazy-loaded grid.
type CollectionPage struct {
	*BasePage
}

// NewCollectionPage creates a collection page object.
func NewCollectionPage(page playwright.Page, cfg *config.Config) *CollectionPage {
	return &CollectionPage{BasePage: NewBasePage(page, cfg)}
}

// OpenSortMenu clicks the sort-by dropdown header.
func (p *CollectionPage) OpenSortMenu() error {
	p.log.Infof("opening sort menu")
	return p.Click(sortByButton)
}

// SortBy opens the sort menu and selects the option with the given
// text, then waits for the grid to repopulate.
func (p *CollectionPage) SortBy(sortText string) error {
	p.log.Infof("sorting collection by %s", sortText)

	if err := p.OpenSortMenu(); err != nil {
		return err
	}
	if _, err := p.WaitVisible(sortOptionButtons, p.cfg.ShortTimeout); err != nil {
		return err
	}
	if err := p.Click(sortOptionButton(sortText)); err != nil {
		return err
	}

	// Grid reloads after sorting
	if _, err := p.WaitForAll(productGridItems, 1); err != nil {
		return fmt.Errorf("collection grid empty after sorting: %w", err)
	}
	return nil
}

// FindProduct locates a product tile by its exact title, scrolling
// through the lazy-loaded grid in increments until it appears or the
// page bottom is reached.
func (p *CollectionPage) FindProduct(productName string) (playwright.ElementHandle, error) {
	p.log.Infof("searching collection for %q", productName)

	offset := 0
	for i := 0; i < maxScrolls; i++ {
		tile, err := p.matchTile(productName)
		if err != nil {
			return nil, err
		}
		if tile != nil {
			p.log.Infof("found product %q after %d scrolls", productName, i)
			if err := p.ScrollIntoView(tile); err != nil {
				return nil, err
			}
			return tile, nil
		}

		offset += scrollStep
		if err := p.ScrollTo(offset); err != nil {
			return nil, err
		}

		height, err := p.ScrollHeight()
		if err != nil {
			return nil, err
		}
		position, err := p.ScrollOffset()
		if err != nil {
			return nil, err
		}
		if position+bottomThreshold >= height {
			p.log.Debugf("reached page bottom at offset %d", position)
			break
		}
	}

	// Final pass from the top in case tiles shifted while loading
	if err := p.ScrollTo(0); err != nil {
		return nil, err
	}
	if _, err := p.WaitForAll(productGridItems, 1, p.cfg.ShortTimeout); err != nil {
		return nil, fmt.Errorf("collection grid empty: %w", err)
	}
	tile, err := p.matchTile(productName)
	if err != nil {
		return nil, err
	}
	if tile != nil {
		return tile, nil
	}

	return nil, fmt.Errorf("product %q: %w", productName, ErrProductNotFound)
}

// matchTile scans the currently loaded tiles for an exact title match.
func (p *CollectionPage) matchTile(productName string) (playwright.ElementHandle, error) {
	tiles, err := p.page.QuerySelectorAll(productGridItems)
	if err != nil {
		return nil, fmt.Errorf("failed to query product grid: %w", err)
	}

	for _, tile := range tiles {
		title, err := tile.QuerySelector(productTileTitle)
		if err != nil || title == nil {
			continue
		}
		text, err := title.TextContent()
		if err != nil {
			// Tile went stale while the grid reloaded; skip it
			continue
		}
		if strings.TrimSpace(text) == productName {
			return tile, nil
		}
	}
	return nil, nil
}

// OpenProduct finds a product by name and clicks through to its detail
// page, retrying once if the tile goes stale under the click.
func (p *CollectionPage) OpenProduct(productName string) error {
	p.log.Infof("opening product %q", productName)

	if err := p.clickProductAnchor(productName); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return err
		}
		p.log.Warnf("click on %q failed (%v), retrying once", productName, err)
		return p.clickProductAnchor(productName)
	}
	return nil
}

func (p *CollectionPage) clickProductAnchor(productName string) error {
	tile, err := p.FindProduct(productName)
	if err != nil {
		return err
	}

	anchor, err := tile.QuerySelector(productTileAnchor)
	if err != nil || anchor == nil {
		return fmt.Errorf("product %q has no clickable anchor", productName)
	}
	if err := p.ScrollIntoView(anchor); err != nil {
		return err
	}
	if err := anchor.Click(); err != nil {
		return fmt.Errorf("click on product %q failed: %w", productName, err)
	}
	return nil
}
