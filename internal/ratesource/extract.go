package ratesource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/model"
)

// Strategy names, reported with every successful extraction.
const (
	StrategyJSON    = "json"
	StrategyPrimary = "primary_tab"
	StrategyLegacy  = "legacy_tab"
	StrategyHidden  = "hidden_fields"
)

// perUnitQuoteThreshold separates per-unit from per-nominal quotes for
// currencies published per 100 units. A JPY quote below it is a per-yen
// price and gets scaled up to the per-hundred convention.
const perUnitQuoteThreshold = 5.0

// Layout names the markers the HTML strategies look for.
type Layout struct {
	// PrimaryTab is the data-tab value of the current rate table section.
	PrimaryTab string
	// LegacyTab is the data-tab value of the older rate table section.
	LegacyTab string
}

// DefaultLayout matches the markup the provider currently serves.
func DefaultLayout() Layout {
	return Layout{
		PrimaryTab: "online",
		LegacyTab:  "offices",
	}
}

// Result is a complete set of per-unit factors and the strategy that found them.
type Result struct {
	Rates    map[model.Currency]float64
	Strategy string
}

// document is the source body shared by all strategies. The HTML tree is
// parsed once, on first use.
type document struct {
	raw    []byte
	html   *goquery.Document
	parsed bool
}

func (d *document) dom() *goquery.Document {
	if !d.parsed {
		d.parsed = true
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(d.raw))
		if err == nil {
			d.html = doc
		}
	}
	return d.html
}

type strategy struct {
	name    string
	extract func(*document) map[model.Currency]float64
}

// Extractor runs the ordered strategy chain over a source document.
type Extractor struct {
	strategies []strategy
}

// NewExtractor builds the chain: JSON value/nominal, primary tab, legacy tab,
// hidden fields. The first strategy yielding all four currencies wins.
func NewExtractor(layout Layout) *Extractor {
	return &Extractor{
		strategies: []strategy{
			{name: StrategyJSON, extract: jsonRates},
			{name: StrategyPrimary, extract: func(d *document) map[model.Currency]float64 {
				return tabRates(d, layout.PrimaryTab)
			}},
			{name: StrategyLegacy, extract: func(d *document) map[model.Currency]float64 {
				return tabRates(d, layout.LegacyTab)
			}},
			{name: StrategyHidden, extract: hiddenRates},
		},
	}
}

// NewJSONExtractor builds a chain that only understands the JSON document
// shape, for sources that never serve HTML.
func NewJSONExtractor() *Extractor {
	return &Extractor{
		strategies: []strategy{{name: StrategyJSON, extract: jsonRates}},
	}
}

// Extract returns the first complete result. It fails with ErrParseFailed
// when every strategy comes back incomplete.
func (e *Extractor) Extract(body []byte) (Result, error) {
	doc := &document{raw: body}
	for _, s := range e.strategies {
		rates := s.extract(doc)
		if complete(rates) {
			return Result{Rates: rates, Strategy: s.name}, nil
		}
	}
	return Result{}, fmt.Errorf("%w: no strategy produced all of %v", apperrors.ErrParseFailed, model.SupportedCurrencies)
}

func complete(rates map[model.Currency]float64) bool {
	snap := model.RateSnapshot{Rates: rates}
	return snap.IsComplete()
}

// normalizeQuote brings a quote to the provider's per-nominal convention.
// Scaling only ever goes up: a per-unit JPY price becomes a per-hundred one.
func normalizeQuote(c model.Currency, quote float64) float64 {
	n := c.Nominal()
	if n > 1 && quote < perUnitQuoteThreshold {
		return quote * n
	}
	return quote
}

// perUnit converts a published quote into the factor stored in a snapshot.
func perUnit(c model.Currency, quote float64) float64 {
	return normalizeQuote(c, quote) / c.Nominal()
}

// jsonRates handles the code-keyed value/nominal document shape.
func jsonRates(d *document) map[model.Currency]float64 {
	trimmed := bytes.TrimSpace(d.raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var payload struct {
		Valute map[string]struct {
			Value   float64 `json:"Value"`
			Nominal float64 `json:"Nominal"`
		} `json:"Valute"`
	}
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil
	}

	rates := make(map[model.Currency]float64, len(model.SupportedCurrencies))
	for _, c := range model.SupportedCurrencies {
		entry, ok := payload.Valute[string(c)]
		if !ok || entry.Nominal <= 0 {
			continue
		}
		rates[c] = entry.Value / entry.Nominal
	}
	return rates
}

// tabRates searches every element tagged with the tab label and keeps the
// occurrence that yields the most currencies. The label also appears on the
// tab buttons themselves, so sections without a table are skipped.
func tabRates(d *document, tab string) map[model.Currency]float64 {
	dom := d.dom()
	if dom == nil || tab == "" {
		return nil
	}

	var best map[model.Currency]float64
	dom.Find(fmt.Sprintf(`[data-tab=%q]`, tab)).Each(func(_ int, section *goquery.Selection) {
		if section.Find("table").Length() == 0 {
			return
		}
		rates := sectionRates(section)
		if len(rates) > len(best) {
			best = rates
		}
	})
	return best
}

func sectionRates(section *goquery.Selection) map[model.Currency]float64 {
	rates := make(map[model.Currency]float64, len(model.SupportedCurrencies))
	section.Find("tr").Each(func(_ int, row *goquery.Selection) {
		code, ok := rowCurrency(row)
		if !ok {
			return
		}
		if _, seen := rates[code]; seen {
			return
		}
		_, sell, ok := buySell(row)
		if !ok {
			return
		}
		if r := perUnit(code, sell); model.ValidRate(r) {
			rates[code] = r
		}
	})
	return rates
}

// rowCurrency finds the supported code a table row is about, either from a
// data-currency attribute or from the first word of one of its cells.
func rowCurrency(row *goquery.Selection) (model.Currency, bool) {
	if attr, ok := row.Attr("data-currency"); ok {
		c := model.Currency(strings.ToUpper(strings.TrimSpace(attr)))
		return c, c.IsSupported()
	}

	var found model.Currency
	row.Find("td,th").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		fields := strings.Fields(cell.Text())
		if len(fields) == 0 {
			return true
		}
		c := model.Currency(strings.ToUpper(fields[0]))
		if c.IsSupported() {
			found = c
			return false
		}
		return true
	})
	return found, found != ""
}

// buySell reads the quoted buy and sell values of a row. The data-buy and
// data-sell attributes take precedence over cell text.
func buySell(row *goquery.Selection) (float64, float64, bool) {
	buyAttr, hasBuy := row.Attr("data-buy")
	sellAttr, hasSell := row.Attr("data-sell")
	if hasBuy && hasSell {
		buy, errBuy := ParseDecimal(buyAttr)
		sell, errSell := ParseDecimal(sellAttr)
		if errBuy == nil && errSell == nil {
			return buy, sell, true
		}
	}

	var values []float64
	row.Find("td").Each(func(_ int, cell *goquery.Selection) {
		if v, err := ParseDecimal(cell.Text()); err == nil {
			values = append(values, v)
		}
	})
	if len(values) < 2 {
		return 0, 0, false
	}
	return values[0], values[1], true
}

// hiddenFieldNames lists the candidate input names per currency, least
// preferred first.
func hiddenFieldNames(c model.Currency) [2]string {
	code := strings.ToLower(string(c))
	return [2]string{code + "_rate", code + "_sell"}
}

// hiddenQuote returns the normalized quote for one currency from the hidden
// input fields, preferring the second candidate name.
func hiddenQuote(fields map[string]string, c model.Currency) (float64, bool) {
	names := hiddenFieldNames(c)
	for i := len(names) - 1; i >= 0; i-- {
		raw, ok := fields[names[i]]
		if !ok {
			continue
		}
		v, err := ParseDecimal(raw)
		if err != nil || v <= 0 {
			continue
		}
		return normalizeQuote(c, v), true
	}
	return 0, false
}

func hiddenRates(d *document) map[model.Currency]float64 {
	dom := d.dom()
	if dom == nil {
		return nil
	}

	fields := make(map[string]string)
	dom.Find(`input[type="hidden"]`).Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok {
			return
		}
		value, _ := input.Attr("value")
		fields[strings.ToLower(strings.TrimSpace(name))] = value
	})

	rates := make(map[model.Currency]float64, len(model.SupportedCurrencies))
	for _, c := range model.SupportedCurrencies {
		if q, ok := hiddenQuote(fields, c); ok {
			rates[c] = q / c.Nominal()
		}
	}
	return rates
}
