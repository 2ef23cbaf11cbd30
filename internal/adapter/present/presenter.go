package present

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

// Amount is a monetary value in both machine and display form
type Amount struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

type HoldingView struct {
	Name      string `json:"name"`
	Principal Amount `json:"principal"`
	Valuation Amount `json:"valuation"`
	ReturnPct string `json:"return_pct"`
	Return    string `json:"return_display"`
}

type HistoryPointView struct {
	Date      string `json:"date"`
	Holding   string `json:"holding"`
	ReturnPct string `json:"return_pct"`
}

type BucketView struct {
	Label string `json:"label"`
	Total Amount `json:"total"`
}

type AccountView struct {
	Account string `json:"account"`
	Amount  Amount `json:"amount"`
}

type GrowthPointView struct {
	Date  string `json:"date"`
	Total Amount `json:"total"`
}

type GoalView struct {
	Current   Amount  `json:"current"`
	Target    Amount  `json:"target"`
	Remaining Amount  `json:"remaining"`
	Ratio     float64 `json:"ratio"`
	Percent   string  `json:"percent"`
}

// TableView is the cleaned table with dates in ISO form
type TableView struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// View is the dashboard as served to clients.
// Slices are never nil so that they encode as [] rather than null.
type View struct {
	HasData  bool               `json:"has_data"`
	Date     string             `json:"date,omitempty"`
	Currency string             `json:"currency"`
	Total    Amount             `json:"total"`
	Holdings []HoldingView      `json:"holdings"`
	History  []HistoryPointView `json:"history"`
	Buckets  []BucketView       `json:"buckets"`
	Accounts []AccountView      `json:"accounts"`
	Growth   []GrowthPointView  `json:"growth"`
	Goal     GoalView           `json:"goal"`
	Table    TableView          `json:"table"`
}

// Presenter turns a domain.Dashboard into a View
type Presenter struct {
	currency *money.Currency
}

// NewPresenter creates a presenter formatting amounts in the ISO 4217 currency code
func NewPresenter(code string) (*Presenter, error) {
	cur := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code)))
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", code)
	}
	return &Presenter{currency: cur}, nil
}

// Currency returns the ISO code amounts are formatted in
func (p *Presenter) Currency() string {
	return p.currency.Code
}

// FormatMoney renders amount with the currency symbol and separators,
// rounded to the currency's minor unit
func (p *Presenter) FormatMoney(amount decimal.Decimal) string {
	minor := amount.Shift(int32(p.currency.Fraction)).Round(0)
	return p.currency.Formatter().Format(minor.IntPart())
}

// FormatPercent renders a percentage with two decimals, e.g. "12.50%"
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

func (p *Presenter) amount(d decimal.Decimal) Amount {
	return Amount{Value: d.String(), Display: p.FormatMoney(d)}
}

// Present builds the view of d. A nil dashboard yields an empty view.
func (p *Presenter) Present(d *domain.Dashboard) *View {
	view := &View{
		Currency: p.currency.Code,
		Total:    p.amount(decimal.Zero),
		Holdings: []HoldingView{},
		History:  []HistoryPointView{},
		Buckets:  []BucketView{},
		Accounts: []AccountView{},
		Growth:   []GrowthPointView{},
		Table:    TableView{Columns: []string{}, Rows: [][]string{}},
	}
	if d == nil {
		view.Goal = p.goal(domain.GoalProgress{})
		return view
	}

	view.HasData = d.HasData()
	view.Goal = p.goal(d.Goal)
	view.Total = p.amount(d.Goal.Current)

	if d.Snapshot != nil {
		view.Date = d.Snapshot.Date.Format(domain.DateFormat)
	}

	for _, h := range d.Holdings {
		view.Holdings = append(view.Holdings, HoldingView{
			Name:      h.Name,
			Principal: p.amount(h.Principal),
			Valuation: p.amount(h.Valuation),
			ReturnPct: h.ReturnPct.StringFixed(2),
			Return:    FormatPercent(h.ReturnPct),
		})
	}

	for _, h := range d.History {
		view.History = append(view.History, HistoryPointView{
			Date:      h.Date.Format(domain.DateFormat),
			Holding:   h.Holding,
			ReturnPct: h.ReturnPct.StringFixed(2),
		})
	}

	for _, b := range d.Buckets {
		view.Buckets = append(view.Buckets, BucketView{Label: b.Label, Total: p.amount(b.Total)})
	}

	for _, a := range d.Accounts {
		view.Accounts = append(view.Accounts, AccountView{Account: a.Account, Amount: p.amount(a.Amount)})
	}

	for _, g := range d.Growth {
		view.Growth = append(view.Growth, GrowthPointView{
			Date:  g.Date.Format(domain.DateFormat),
			Total: p.amount(g.Total),
		})
	}

	if d.Table != nil {
		raw := d.Table.Raw()
		if len(raw.Records) > 0 {
			view.Table.Columns = raw.Records[0]
			view.Table.Rows = append(view.Table.Rows, raw.Records[1:]...)
		}
	}

	return view
}

func (p *Presenter) goal(g domain.GoalProgress) GoalView {
	return GoalView{
		Current:   p.amount(g.Current),
		Target:    p.amount(g.Target),
		Remaining: p.amount(g.Remaining),
		Ratio:     g.Ratio,
		Percent:   FormatPercent(decimal.NewFromFloat(g.Ratio * 100)),
	}
}
