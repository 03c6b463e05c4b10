// Package classify assigns a direction and a category to a transaction
// sentence by keyword matching.
package classify

import (
	"strings"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// Rule maps keywords to a category. A rule matches when any keyword is a
// substring of the lowercased text.
type Rule struct {
	Category transaction.Category
	Keywords []string
}

var defaultExpense = []string{
	"beli", "bayar", "jajan", "makan", "minum", "ongkir", "parkir", "pulsa", "listrik", "token",
	"internet", "sewa", "tagihan", "topup", "top up", "bbm", "gojek", "grab", "game",
}

var defaultIncome = []string{
	"gaji", "bonus", "refund", "masuk", "dapet", "dapat", "jualan", "transfer masuk", "komisi", "tip",
}

var defaultRules = []Rule{
	{Category: transaction.CategoryFood, Keywords: []string{"makan", "minum", "kopi", "teh", "nasi", "ayam", "jajan", "snack"}},
	{Category: transaction.CategoryTransport, Keywords: []string{"bbm", "parkir", "tol", "gojek", "grab", "bus", "kereta", "angkot", "ojek"}},
	{Category: transaction.CategoryBills, Keywords: []string{"listrik", "token", "internet", "wifi", "pulsa", "paket data", "pdam", "sewa", "tagihan"}},
	{Category: transaction.CategoryEntertainment, Keywords: []string{"game", "netflix", "spotify", "ml", "mobile legends", "steam"}},
	{Category: transaction.CategoryShopping, Keywords: []string{"beli", "belanja", "shopee", "tokopedia", "toko"}},
	{Category: transaction.CategoryOther},
}

type Classifier struct {
	expense []string
	income  []string
	rules   []Rule
}

// New returns a Classifier with the built-in keyword sets.
func New() *Classifier {
	return &Classifier{
		expense: defaultExpense,
		income:  defaultIncome,
		rules:   defaultRules,
	}
}

func (c *Classifier) Classify(text string) (transaction.Type, transaction.Category) {
	lower := strings.ToLower(text)
	return c.direction(lower), c.category(lower)
}

// Expense keywords are checked first, so "refund beli" is an expense.
func (c *Classifier) direction(lower string) transaction.Type {
	if containsAny(lower, c.expense) {
		return transaction.TypeExpense
	}

	if containsAny(lower, c.income) {
		return transaction.TypeIncome
	}

	return transaction.TypeExpense
}

func (c *Classifier) category(lower string) transaction.Category {
	for _, r := range c.rules {
		if len(r.Keywords) == 0 || containsAny(lower, r.Keywords) {
			return r.Category
		}
	}

	return transaction.CategoryOther
}

// Rules returns a copy of the category rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}

	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}

	return false
}
