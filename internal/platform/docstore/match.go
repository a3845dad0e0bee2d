package docstore

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// value resolves a field of d; reserved names read metadata
func value(d Doc, field string) (any, bool) {
	switch field {
	case FieldID:
		return d.ID, true
	case FieldCreatedAt:
		return d.CreatedAt, true
	case FieldUpdatedAt:
		return d.UpdatedAt, true
	}
	return lookup(d.Data, fieldPath(field))
}

// compare orders two canonical values of the same type; ok is false across types
func compare(a, b any) (int, bool) {
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return cmp.Compare(x, y), ok
	case string:
		y, ok := b.(string)
		return strings.Compare(x, y), ok
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	case time.Time:
		y, ok := b.(time.Time)
		return x.Compare(y), ok
	}
	return 0, false
}

// matches reports whether d satisfies every filter; filter values are canonical
func matches(d Doc, filters []Filter) bool {
	for _, f := range filters {
		got, ok := value(d, f.Field)
		if !ok {
			return false
		}
		if !test(got, f.Op, f.Value) {
			return false
		}
	}
	return true
}

func test(got any, op Op, want any) bool {
	if op == In {
		for _, w := range listOf(want) {
			if c, ok := compare(got, w); ok && c == 0 {
				return true
			}
		}
		return false
	}
	c, ok := compare(got, want)
	if !ok {
		return false
	}
	switch op {
	case Eq:
		return c == 0
	case Lt:
		return c < 0
	case Lte:
		return c <= 0
	case Gt:
		return c > 0
	case Gte:
		return c >= 0
	}
	return false
}

func listOf(v any) []any {
	switch xs := v.(type) {
	case []any:
		return xs
	case []time.Time:
		out := make([]any, len(xs))
		for i := range xs {
			out[i] = xs[i]
		}
		return out
	}
	return nil
}

// canonFilters prepares caller supplied filter values for compare
func canonFilters(in []Filter) ([]Filter, error) {
	out := make([]Filter, len(in))
	for i, f := range in {
		out[i] = f
		if isTimeField(f.Field) {
			continue
		}
		c, err := canon(f.Value)
		if err != nil {
			return nil, err
		}
		out[i].Value = c
	}
	return out, nil
}

// sortDocs orders by q.OrderBy with missing values lowest, then createdAt, then id
func sortDocs(docs []Doc, field string, desc bool) {
	slices.SortStableFunc(docs, func(a, b Doc) int {
		c := 0
		if field != "" {
			c = orderValues(a, b, field)
		}
		if c == 0 {
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		if desc {
			return -c
		}
		return c
	})
}

func orderValues(a, b Doc, field string) int {
	av, aok := value(a, field)
	bv, bok := value(b, field)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	c, _ := compare(av, bv)
	return c
}

// sumField adds the numeric values of field; other types are skipped
func sumField(docs []Doc, field string) decimal.Decimal {
	total := decimal.Zero
	for _, d := range docs {
		if v, ok := value(d, field); ok {
			if n, isNum := v.(float64); isNum {
				total = total.Add(decimal.NewFromFloat(n))
			}
		}
	}
	return total
}
