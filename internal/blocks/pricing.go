// internal/blocks/pricing.go
//
// Pricing table: `tiers` is an array of {name, price, period, features[],
// ctaLabel, ctaHref, highlighted}.  Tiers missing a name are skipped.

package blocks

import (
	"strings"

	"github.com/tidwall/gjson"
)

func init() { Register(pricingBlock{}) }

type pricingBlock struct{}

func (pricingBlock) Type() string { return "pricing" }

func (pricingBlock) Render(data gjson.Result) string {
	tiers := data.Get("tiers")
	if !tiers.IsArray() {
		return ""
	}

	var cards strings.Builder
	for _, tier := range tiers.Array() {
		name := str(tier, "name")
		if name == "" {
			continue
		}
		class := "tier"
		if tier.Get("highlighted").Bool() {
			class += " tier-highlighted"
		}
		cards.WriteString(`<div class="` + class + `">`)
		cards.WriteString(heading("h3", "tier-name", name))
		if p := str(tier, "price"); p != "" {
			cards.WriteString(`<div class="tier-price">` + esc(p))
			if per := str(tier, "period"); per != "" {
				cards.WriteString(`<span class="tier-period">/` + esc(per) + `</span>`)
			}
			cards.WriteString(`</div>`)
		}
		if feats := tier.Get("features"); feats.IsArray() && len(feats.Array()) > 0 {
			cards.WriteString(`<ul class="tier-features">`)
			for _, f := range feats.Array() {
				if f.String() != "" {
					cards.WriteString(`<li>` + esc(f.String()) + `</li>`)
				}
			}
			cards.WriteString(`</ul>`)
		}
		if label := str(tier, "ctaLabel"); label != "" {
			href := str(tier, "ctaHref")
			if href == "" {
				href = "#contact"
			}
			cards.WriteString(`<a class="button" href="` + esc(href) + `">` + esc(label) + `</a>`)
		}
		cards.WriteString(`</div>`)
	}
	if cards.Len() == 0 {
		return ""
	}

	inner := heading("h2", "pricing-heading", str(data, "heading")) +
		`<div class="pricing">` + cards.String() + `</div>`
	return section("pricing", data, inner)
}
