package builtins

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/flame/internal/interp"
)

// jsonEncode implements `@json_encode(value, ...)` (spec §4.5 registry
// "@json_encode: (...) -> Str"), grounded on the teacher's ToJSON
// (internal/builtins/json.go) but built from sjson.SetRaw calls instead of
// a bespoke internal/jsonvalue tree, since this front end's Value model
// already has everything sjson needs (ordered Dict entries, typed
// primitives). A single argument encodes that value; more than one encodes
// a JSON array of them.
func jsonEncode(args []interp.Value) (interp.Value, *interp.Exception) {
	if len(args) == 1 {
		raw, err := encodeValue(args[0])
		if err != nil {
			return nil, interp.NewException("TypeError", err.Error())
		}
		return interp.StringValue(raw), nil
	}
	doc := "[]"
	for i, a := range args {
		raw, err := encodeValue(a)
		if err != nil {
			return nil, interp.NewException("TypeError", err.Error())
		}
		var serr error
		doc, serr = sjson.SetRaw(doc, strconv.Itoa(i), raw)
		if serr != nil {
			return nil, interp.NewException("TypeError", serr.Error())
		}
	}
	return interp.StringValue(doc), nil
}

func encodeValue(v interp.Value) (string, error) {
	switch tv := v.(type) {
	case interp.NoneValue:
		return "null", nil
	case interp.BoolValue:
		if bool(tv) {
			return "true", nil
		}
		return "false", nil
	case interp.IntValue:
		return strconv.FormatInt(int64(tv), 10), nil
	case interp.FloatValue:
		return strconv.FormatFloat(float64(tv), 'g', -1, 64), nil
	case interp.CharValue:
		return strconv.Quote(string(rune(tv))), nil
	case interp.StringValue:
		return strconv.Quote(string(tv)), nil
	case *interp.VectorValue:
		doc := "[]"
		for i, elem := range tv.Elements {
			raw, err := encodeValue(elem)
			if err != nil {
				return "", err
			}
			var err2 error
			doc, err2 = sjson.SetRaw(doc, strconv.Itoa(i), raw)
			if err2 != nil {
				return "", err2
			}
		}
		return doc, nil
	case *interp.DictValue:
		doc := "{}"
		for _, k := range tv.Keys() {
			val, _ := tv.Get(k)
			raw, err := encodeValue(val)
			if err != nil {
				return "", err
			}
			var err2 error
			doc, err2 = sjson.SetRaw(doc, k.String(), raw)
			if err2 != nil {
				return "", err2
			}
		}
		return doc, nil
	}
	// Enums, instances, functions, and modules have no JSON representation
	// (matching the teacher's ToJSON, which converts them to null).
	return "null", nil
}

// jsonDecode implements `@json_decode(s)` (spec §4.5 registry
// "@json_decode: (Str) -> Unknown"), parsed via gjson instead of
// encoding/json so no Go struct shape has to stand in for flame's dynamic
// Vector/Dict/primitive result.
func jsonDecode(args []interp.Value) (interp.Value, *interp.Exception) {
	if len(args) != 1 {
		return nil, interp.NewException("InternalError", "@json_decode expects exactly one argument")
	}
	s, ok := args[0].(interp.StringValue)
	if !ok {
		return nil, interp.NewException("TypeError", "@json_decode expects a String argument")
	}
	if !gjson.Valid(string(s)) {
		return nil, interp.NewException("TypeError", "invalid JSON input")
	}
	return decodeResult(gjson.Parse(string(s))), nil
}

func decodeResult(r gjson.Result) interp.Value {
	switch r.Type {
	case gjson.Null:
		return interp.NoneValue{}
	case gjson.False:
		return interp.BoolValue(false)
	case gjson.True:
		return interp.BoolValue(true)
	case gjson.String:
		return interp.StringValue(r.String())
	case gjson.Number:
		if strings.ContainsAny(r.Raw, ".eE") {
			return interp.FloatValue(r.Float())
		}
		return interp.IntValue(r.Int())
	case gjson.JSON:
		if r.IsArray() {
			var elems []interp.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, decodeResult(v))
				return true
			})
			return interp.NewVector(elems)
		}
		dict := interp.NewDict()
		r.ForEach(func(k, v gjson.Result) bool {
			dict.Set(interp.StringValue(k.String()), decodeResult(v))
			return true
		})
		return dict
	}
	return interp.NoneValue{}
}
