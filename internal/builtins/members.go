package builtins

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/text/width"

	"github.com/cwbudde/flame/internal/interp"
)

// callAbs implements Int.abs/Float.abs (spec §4.5 registry
// "Int.abs() -> Int", "Float.abs() -> Float").
func callAbs(self interp.Value) (interp.Value, *interp.Exception) {
	switch v := self.(type) {
	case interp.IntValue:
		if v < 0 {
			return -v, nil
		}
		return v, nil
	case interp.FloatValue:
		if v < 0 {
			return -v, nil
		}
		return v, nil
	}
	return nil, interp.NewException("TypeError", "abs() is not defined for "+self.Type())
}

// callLength implements String/Vector/Dict.length() (spec §4.5 registry).
// String length counts runes, not bytes, matching the teacher's runeLength
// convention (internal/interp/string_helpers.go).
func callLength(self interp.Value) (interp.Value, *interp.Exception) {
	switch v := self.(type) {
	case interp.StringValue:
		return interp.IntValue(len([]rune(string(v)))), nil
	case *interp.VectorValue:
		return interp.IntValue(len(v.Elements)), nil
	case *interp.DictValue:
		return interp.IntValue(v.Len()), nil
	}
	return nil, interp.NewException("TypeError", "length() is not defined for "+self.Type())
}

func callUpper(self interp.Value) (interp.Value, *interp.Exception) {
	s, ok := self.(interp.StringValue)
	if !ok {
		return nil, interp.NewException("TypeError", "upper() is not defined for "+self.Type())
	}
	return interp.StringValue(strings.ToUpper(string(s))), nil
}

func callLower(self interp.Value) (interp.Value, *interp.Exception) {
	s, ok := self.(interp.StringValue)
	if !ok {
		return nil, interp.NewException("TypeError", "lower() is not defined for "+self.Type())
	}
	return interp.StringValue(strings.ToLower(string(s))), nil
}

// callDisplayWidth implements String.display_width(), the East-Asian-width
// aware length enrichment named in SPEC_FULL's domain stack table: a
// full-width or wide rune (common in CJK text) counts as two display
// columns, unlike the plain rune count length() returns.
func callDisplayWidth(self interp.Value) (interp.Value, *interp.Exception) {
	s, ok := self.(interp.StringValue)
	if !ok {
		return nil, interp.NewException("TypeError", "display_width() is not defined for "+self.Type())
	}
	total := 0
	for _, r := range string(s) {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			total += 2
		default:
			total++
		}
	}
	return interp.IntValue(total), nil
}

// callSort implements Vector.sort(): ordinal order for Int/Float/Char, and
// human ("natural") order for String elements — numeric substrings compare
// by value, so "item2" sorts before "item10" — matching the
// maruel/natural package's intended use case. Sorts in place and returns
// None, matching the registry's declared `Vector.sort() -> None` return
// type.
func callSort(self interp.Value) (interp.Value, *interp.Exception) {
	v, ok := self.(*interp.VectorValue)
	if !ok {
		return nil, interp.NewException("TypeError", "sort() is not defined for "+self.Type())
	}
	if len(v.Elements) == 0 {
		return interp.NoneValue{}, nil
	}
	if _, isStr := v.Elements[0].(interp.StringValue); isStr {
		strs := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			s, ok := e.(interp.StringValue)
			if !ok {
				return nil, interp.NewException("TypeError", "sort() requires a homogeneous Vector")
			}
			strs[i] = string(s)
		}
		sort.Sort(natural.StringSlice(strs))
		for i, s := range strs {
			v.Elements[i] = interp.StringValue(s)
		}
		return interp.NoneValue{}, nil
	}
	var sortErr *interp.Exception
	sort.SliceStable(v.Elements, func(i, j int) bool {
		less, err := lessOrdinal(v.Elements[i], v.Elements[j])
		if err != nil {
			sortErr = err
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return interp.NoneValue{}, nil
}

func lessOrdinal(a, b interp.Value) (bool, *interp.Exception) {
	switch av := a.(type) {
	case interp.IntValue:
		bv, ok := b.(interp.IntValue)
		if !ok {
			return false, interp.NewException("TypeError", "sort() requires a homogeneous Vector")
		}
		return av < bv, nil
	case interp.FloatValue:
		bv, ok := b.(interp.FloatValue)
		if !ok {
			return false, interp.NewException("TypeError", "sort() requires a homogeneous Vector")
		}
		return av < bv, nil
	case interp.CharValue:
		bv, ok := b.(interp.CharValue)
		if !ok {
			return false, interp.NewException("TypeError", "sort() requires a homogeneous Vector")
		}
		return av < bv, nil
	}
	return false, interp.NewException("TypeError", "sort() is not defined for element type "+a.Type())
}
