package testutil

import (
	"fmt"
	"strings"

	"github.com/ndewijer/import-cost-engine/internal/model"
)

// Quote is one published buy/sell pair, in the provider's convention
// (JPY per 100 yen).
type Quote struct {
	Buy  string
	Sell string
}

// DefaultQuotes returns quotes for all four currencies.
func DefaultQuotes() map[model.Currency]Quote {
	return map[model.Currency]Quote{
		model.USD: {Buy: "80,10", Sell: "82,50"},
		model.EUR: {Buy: "88,00", Sell: "90,00"},
		model.JPY: {Buy: "51,00", Sell: "53,20"},
		model.CNY: {Buy: "10,90", Sell: "11,40"},
	}
}

// DefaultRates returns the per-unit factors DefaultQuotes extracts to.
func DefaultRates() map[model.Currency]float64 {
	return map[model.Currency]float64{
		model.USD: 82.5,
		model.EUR: 90,
		model.JPY: 0.532,
		model.CNY: 11.4,
	}
}

// RateSection renders a tab section with one row per quote, the way the
// provider lays out its rate tables. Codes are emitted in a stable order.
func RateSection(tab string, quotes map[model.Currency]Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="rates" data-tab="%s"><table>`, tab)
	b.WriteString(`<tr><th>Currency</th><th>Buy</th><th>Sell</th></tr>`)
	for _, c := range model.SupportedCurrencies {
		q, ok := quotes[c]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, `<tr><td>%s <span>name</span></td><td>%s</td><td>%s</td></tr>`, c, q.Buy, q.Sell)
	}
	b.WriteString(`</table></div>`)
	return b.String()
}

// TabButton renders the clickable tab label that shares the data-tab marker
// with its section but holds no table.
func TabButton(tab string) string {
	return fmt.Sprintf(`<button data-tab="%s">%s</button>`, tab, tab)
}

// HTMLPage wraps fragments in a minimal page.
func HTMLPage(fragments ...string) []byte {
	return []byte("<html><head><title>Rates</title></head><body>" +
		strings.Join(fragments, "\n") +
		"</body></html>")
}

// RateDocument renders a page whose "online" tab carries the quotes.
func RateDocument(quotes map[model.Currency]Quote) []byte {
	return HTMLPage(TabButton("online"), RateSection("online", quotes))
}

// HiddenFields renders hidden inputs keyed by field name.
func HiddenFields(fields map[string]string) string {
	var b strings.Builder
	b.WriteString("<form>")
	for name, value := range fields {
		fmt.Fprintf(&b, `<input type="hidden" name="%s" value="%s">`, name, value)
	}
	b.WriteString("</form>")
	return b.String()
}

// RateJSON renders the code-keyed value/nominal document shape.
func RateJSON(values map[model.Currency]float64) []byte {
	var entries []string
	for _, c := range model.SupportedCurrencies {
		v, ok := values[c]
		if !ok {
			continue
		}
		entries = append(entries, fmt.Sprintf(`"%s":{"CharCode":"%s","Nominal":%g,"Value":%g}`, c, c, c.Nominal(), v))
	}
	return []byte(`{"Date":"2026-10-18T11:30:00+03:00","Valute":{` + strings.Join(entries, ",") + `}}`)
}
