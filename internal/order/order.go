// Package order turns a finished design into an order: a priced summary,
// a pre-filled message, and the WhatsApp deep link used for handoff.
//
// The handoff is deliberately manual: the link opens a chat with the shop
// and the shopper attaches the exported image themselves. No API
// integration, nothing transmitted automatically.
package order

import (
	"fmt"
	"net/url"
	"strings"

	"keychain-studio/internal/catalog"
	"keychain-studio/internal/design"
)

// Line is one priced row of the order summary.
type Line struct {
	Name  string
	Price float64
}

// Summary itemizes a design against the catalog.
type Summary struct {
	Base   Line
	Charms []Line
	Total  float64
}

// Summarize prices a design: the base plus every placed charm. Fixed mode
// lists populated slots in bottom/middle/top order, manual mode lists items
// in placement order.
func Summarize(d design.Design, cat *catalog.Catalog) Summary {
	base := cat.Base(d.BaseIndex)
	s := Summary{
		Base:  Line{Name: base.Name, Price: base.Price},
		Total: base.Price,
	}

	add := func(e catalog.Entry) {
		s.Charms = append(s.Charms, Line{Name: e.Name, Price: e.Price})
		s.Total += e.Price
	}

	switch d.Mode {
	case design.ModeFixed:
		for _, slot := range d.PopulatedSlots() {
			add(cat.Charm(d.Slots[slot]))
		}
	case design.ModeManual:
		for _, item := range d.ManualItems {
			add(cat.Charm(item.CharmIndex))
		}
	}
	return s
}

// Message renders the pre-filled order text for the chat handoff.
func Message(s Summary, shop catalog.ShopInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s! I'd like to order a custom keychain.\n\n", shop.Name)
	fmt.Fprintf(&b, "Base: %s (%s)\n", s.Base.Name, shop.FormatPrice(s.Base.Price))
	if len(s.Charms) > 0 {
		b.WriteString("Charms:\n")
		for _, c := range s.Charms {
			fmt.Fprintf(&b, "- %s (%s)\n", c.Name, shop.FormatPrice(c.Price))
		}
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", shop.FormatPrice(s.Total))
	b.WriteString("\nI'll attach the exported design image to this chat.")
	return b.String()
}

// PhoneDigits reduces a phone number to bare digits, the only form wa.me
// accepts.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink builds the wa.me deep link with the message pre-filled.
// WhatsApp shows '+' literally in the text parameter, so spaces must be
// escaped as %20.
func WhatsAppLink(phone, message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", PhoneDigits(phone), text)
}
