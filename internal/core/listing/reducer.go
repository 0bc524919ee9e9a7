package listing

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold приводит строку к виду для сравнения: нижний регистр, без диакритики ("Guéliz" -> "gueliz")
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Reduce возвращает новый срез записей, прошедших все фильтры запроса,
// упорядоченный по q.Sort. Входной срез не меняется.
// Пустой q.Sort сохраняет исходный порядок.
func Reduce[T any](records []T, d Descriptor[T], q Query) []T {
	match := matcher(d, q)

	out := make([]T, 0, len(records))
	for _, r := range records {
		if match(r) {
			out = append(out, r)
		}
	}

	if compare := comparator(d, q); compare != nil {
		slices.SortStableFunc(out, compare)
	}
	return out
}

func matcher[T any](d Descriptor[T], q Query) func(T) bool {
	var preds []func(T) bool

	if needle := Fold(strings.TrimSpace(q.Search)); needle != "" && d.Search != nil {
		preds = append(preds, func(r T) bool {
			for _, field := range d.Search(r) {
				if strings.Contains(Fold(field), needle) {
					return true
				}
			}
			return false
		})
	}
	preds = appendEquals(preds, d.Type, q.Type)
	preds = appendEquals(preds, d.Kind, q.Kind)
	preds = appendEquals(preds, d.City, q.City)
	preds = appendEquals(preds, d.District, q.District)

	if d.Price != nil {
		if q.PriceMin != nil {
			lo := *q.PriceMin
			preds = append(preds, func(r T) bool { return d.Price(r).GreaterThanOrEqual(lo) })
		}
		if q.PriceMax != nil {
			hi := *q.PriceMax
			preds = append(preds, func(r T) bool { return d.Price(r).LessThanOrEqual(hi) })
		}
	}
	if d.Surface != nil {
		if q.SurfaceMin != nil {
			lo := *q.SurfaceMin
			preds = append(preds, func(r T) bool { return d.Surface(r) >= lo })
		}
		if q.SurfaceMax != nil {
			hi := *q.SurfaceMax
			preds = append(preds, func(r T) bool { return d.Surface(r) <= hi })
		}
	}

	return func(r T) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

func appendEquals[T any](preds []func(T) bool, field func(T) string, want string) []func(T) bool {
	if field == nil || IsAll(want) {
		return preds
	}
	want = Fold(strings.TrimSpace(want))
	return append(preds, func(r T) bool {
		return Fold(strings.TrimSpace(field(r))) == want
	})
}

func comparator[T any](d Descriptor[T], q Query) func(a, b T) int {
	var base func(a, b T) int

	switch q.Sort {
	case SortPrice:
		if d.Price != nil {
			base = func(a, b T) int { return d.Price(a).Cmp(d.Price(b)) }
		}
	case SortSurface:
		if d.Surface != nil {
			base = func(a, b T) int { return cmp.Compare(d.Surface(a), d.Surface(b)) }
		}
	case SortCreatedAt:
		if d.CreatedAt != nil {
			base = func(a, b T) int { return d.CreatedAt(a).Compare(d.CreatedAt(b)) }
		}
	}

	if base == nil || !q.Desc {
		return base
	}
	return func(a, b T) int { return base(b, a) }
}
