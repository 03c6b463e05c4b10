package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// ruleFile is the YAML layout accepted by LoadRules:
//
//	expense: [beli, bayar]
//	income: [gaji]
//	categories:
//	  - name: Transport
//	    keywords: [bbm, parkir]
//
// Omitted sections keep the built-in defaults.
type ruleFile struct {
	Expense    []string      `yaml:"expense"`
	Income     []string      `yaml:"income"`
	Categories []categoryDef `yaml:"categories"`
}

type categoryDef struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// LoadRules reads a YAML rule file and builds a Classifier from it.
func LoadRules(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}

	return ParseRules(data)
}

func ParseRules(data []byte) (*Classifier, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding rules: %w", err)
	}

	c := New()

	if len(f.Expense) > 0 {
		c.expense = normalize(f.Expense)
	}

	if len(f.Income) > 0 {
		c.income = normalize(f.Income)
	}

	if len(f.Categories) > 0 {
		rules, err := buildRules(f.Categories)
		if err != nil {
			return nil, err
		}

		c.rules = rules
	}

	return c, nil
}

// buildRules keeps the file order, then appends Other without keywords so
// every text still gets a category.
func buildRules(defs []categoryDef) ([]Rule, error) {
	seen := make(map[transaction.Category]bool, len(defs))
	rules := make([]Rule, 0, len(defs)+1)

	for _, d := range defs {
		cat, err := transaction.ParseCategory(d.Name)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", d.Name, err)
		}

		if seen[cat] {
			return nil, fmt.Errorf("rule %q: duplicate category", d.Name)
		}

		seen[cat] = true

		if cat == transaction.CategoryOther {
			continue
		}

		keywords := normalize(d.Keywords)
		if len(keywords) == 0 {
			return nil, fmt.Errorf("rule %q: no keywords", d.Name)
		}

		rules = append(rules, Rule{Category: cat, Keywords: keywords})
	}

	return append(rules, Rule{Category: transaction.CategoryOther}), nil
}

func normalize(keywords []string) []string {
	out := make([]string, 0, len(keywords))

	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}

	return out
}
