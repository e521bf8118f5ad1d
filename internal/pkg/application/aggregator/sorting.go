package aggregator

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/diwise/catalog-aggregator/pkg/catalog/errors"
	"github.com/diwise/catalog-aggregator/pkg/catalog/types"
)

type SortField int

const (
	SortByName SortField = iota + 1
	SortByHeight
	SortByMass
)

var AllSortFields = []SortField{SortByName, SortByHeight, SortByMass}

func (f SortField) String() string {
	switch f {
	case SortByName:
		return types.FieldName
	case SortByHeight:
		return types.FieldHeight
	case SortByMass:
		return types.FieldMass
	}
	return fmt.Sprintf("SortField(%d)", int(f))
}

// ParseSortField matches a field name case insensitively against the known sort fields
func ParseSortField(name string) (SortField, bool) {
	switch strings.ToLower(name) {
	case types.FieldName:
		return SortByName, true
	case types.FieldHeight:
		return SortByHeight, true
	case types.FieldMass:
		return SortByMass, true
	}
	return 0, false
}

func ParseSortFields(names []string) ([]SortField, error) {
	fields := make([]SortField, 0, len(names))
	for _, n := range names {
		f, ok := ParseSortField(n)
		if !ok {
			return nil, fmt.Errorf("unknown sort field \"%s\"", n)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// FieldSortSpec holds the set of fields that people may be sorted by
type FieldSortSpec struct {
	allowed map[SortField]struct{}
}

// NewFieldSortSpec allows sorting by the supplied fields, or by every known
// field if none are supplied.
func NewFieldSortSpec(fields ...SortField) *FieldSortSpec {
	if len(fields) == 0 {
		fields = AllSortFields
	}

	spec := &FieldSortSpec{allowed: map[SortField]struct{}{}}
	for _, f := range fields {
		spec.allowed[f] = struct{}{}
	}

	return spec
}

func (s *FieldSortSpec) field(name string) (SortField, bool) {
	f, ok := ParseSortField(name)
	if !ok {
		return 0, false
	}

	_, allowed := s.allowed[f]
	return f, allowed
}

func (s *FieldSortSpec) Sortable(name string) bool {
	_, ok := s.field(name)
	return ok
}

// SortBy returns a stably sorted copy of the collection in ascending order of the
// requested field. Entities whose numeric value can not be parsed are placed
// after all others, in fetch order.
func (s *FieldSortSpec) SortBy(collection types.Collection, name string) (types.Collection, error) {
	f, ok := s.field(name)
	if !ok {
		return nil, errors.NewNotSortableError(name)
	}

	keyed := make([]keyedEntity, 0, len(collection))
	for _, e := range collection {
		keyed = append(keyed, keyedEntity{entity: e, key: f.keyOf(e)})
	}

	slices.SortStableFunc(keyed, func(a, b keyedEntity) int {
		return a.key.compare(b.key)
	})

	sorted := make(types.Collection, 0, len(keyed))
	for _, k := range keyed {
		sorted = append(sorted, k.entity)
	}

	return sorted, nil
}

type keyedEntity struct {
	entity types.Entity
	key    sortKey
}

type sortKey struct {
	numeric bool
	known   bool
	text    string
	number  float64
}

func (f SortField) keyOf(e types.Entity) sortKey {
	switch f {
	case SortByName:
		return sortKey{known: true, text: e.Name()}
	case SortByHeight:
		v, _ := e.Field(types.FieldHeight)
		n, ok := parseNumber(v, "")
		return sortKey{numeric: true, known: ok, number: n}
	case SortByMass:
		v, _ := e.Field(types.FieldMass)
		n, ok := parseNumber(v, ",")
		return sortKey{numeric: true, known: ok, number: n}
	}
	panic(fmt.Sprintf("no sort key for %s", f))
}

func (k sortKey) compare(other sortKey) int {
	if !k.numeric {
		return strings.Compare(k.text, other.text)
	}

	switch {
	case k.known && other.known:
		return cmp.Compare(k.number, other.number)
	case k.known:
		return -1
	case other.known:
		return 1
	}

	return 0
}

func parseNumber(v any, separator string) (float64, bool) {
	var n float64
	var err error

	switch val := v.(type) {
	case json.Number:
		n, err = val.Float64()
	case float64:
		n = val
	case string:
		if separator != "" {
			val = strings.ReplaceAll(val, separator, "")
		}
		n, err = strconv.ParseFloat(strings.TrimSpace(val), 64)
	default:
		return 0, false
	}

	if err != nil || math.IsNaN(n) {
		return 0, false
	}

	return n, true
}
