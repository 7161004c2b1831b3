package panels

import (
	"fmt"
	"image/color"
	"sync"

	"keychain-studio/internal/catalog"
	"keychain-studio/internal/design"
	"keychain-studio/internal/render"
	"keychain-studio/pkg/colorutil"
)

// noneOption is the empty entry in the slot selectors.
const noneOption = "(none)"

// swatchSet lazily computes average-color swatches for catalog entries,
// keyed by image path. Loading happens off the UI goroutine; rows show a
// neutral chip until their swatch arrives.
type swatchSet struct {
	mu     sync.Mutex
	colors map[string]color.NRGBA
}

func newSwatchSet() *swatchSet {
	return &swatchSet{colors: make(map[string]color.NRGBA)}
}

// at returns the swatch for a path, or the neutral placeholder while the
// real one is still loading.
func (s *swatchSet) at(path string) color.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.colors[path]; ok {
		return c
	}
	return colorutil.Slate
}

// load computes swatches for the entries in the background and calls
// onDone once every entry has been attempted.
func (s *swatchSet) load(cache *render.ImageCache, entries []catalog.Entry, onDone func()) {
	go func() {
		for _, e := range entries {
			img, err := cache.Resolve(e.Path)
			if err != nil {
				continue
			}
			c := catalog.Swatch(img)
			s.mu.Lock()
			s.colors[e.Path] = c
			s.mu.Unlock()
		}
		if onDone != nil {
			onDone()
		}
	}()
}

// entryLabel is the list row text for a priced catalog entry.
func entryLabel(e catalog.Entry, shop catalog.ShopInfo) string {
	return fmt.Sprintf("%s  %s", e.Name, shop.FormatPrice(e.Price))
}

// optionIndex maps a slot selector option back to its charm index,
// design.SlotEmpty for the none entry.
func optionIndex(options []string, chosen string) int {
	for i, o := range options {
		if o == chosen {
			return i - 1
		}
	}
	return design.SlotEmpty
}
