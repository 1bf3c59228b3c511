// Package interp tree-walks a post-sema AST (spec §4.6). It evaluates
// statements and expressions directly against the scope-slot addressing the
// analyzer already computed, rather than re-resolving names at run time.
package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/flame/internal/ast"
)

// Value is anything the evaluator can produce or bind to a slot. Every
// concrete Value is comparable for deep structural equality via Equal, which
// the `==`/`!=` binary operators delegate to (spec §4.6 "Equality is deep
// structural for composite kinds").
type Value interface {
	Type() string
	String() string
}

// IntValue is a 64-bit signed integer (spec §6 "Int is 64-bit signed two's
// complement").
type IntValue int64

func (IntValue) Type() string        { return "Int" }
func (v IntValue) String() string    { return strconv.FormatInt(int64(v), 10) }

// FloatValue is an IEEE-754 binary64 value.
type FloatValue float64

func (FloatValue) Type() string     { return "Float" }
func (v FloatValue) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// BoolValue is a boolean.
type BoolValue bool

func (BoolValue) Type() string     { return "Bool" }
func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }

// CharValue is a single UTF-16 code unit (spec §6).
type CharValue uint16

func (CharValue) Type() string     { return "Char" }
func (v CharValue) String() string { return string(rune(v)) }

// StringValue is an immutable UTF-8 string.
type StringValue string

func (StringValue) Type() string     { return "String" }
func (v StringValue) String() string { return string(v) }

// NoneValue is the single value of type None, returned by statements and
// functions with no declared return type.
type NoneValue struct{}

func (NoneValue) Type() string   { return "None" }
func (NoneValue) String() string { return "none" }

// VectorValue is an ordered, growable sequence sharing Go slice value
// semantics at the Go level but copy semantics at the language level:
// `Vector + T` always returns a new VectorValue (spec §4.6).
type VectorValue struct {
	Elements []Value
}

func NewVector(elems []Value) *VectorValue { return &VectorValue{Elements: elems} }

func (*VectorValue) Type() string { return "Vector" }
func (v *VectorValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// dictEntry is one key/value pair of a DictValue, kept in insertion order.
type dictEntry struct {
	Key   Value
	Value Value
}

// DictValue is an insertion-ordered association list. Flame scripts are not
// expected to hold enough entries for linear lookup to matter, so there is
// no hash-table layer to keep correct under arbitrary key types.
type DictValue struct {
	entries []dictEntry
}

func NewDict() *DictValue { return &DictValue{} }

func (*DictValue) Type() string { return "Dict" }

func (d *DictValue) String() string {
	parts := make([]string, len(d.entries))
	for i, e := range d.entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (d *DictValue) Get(key Value) (Value, bool) {
	for _, e := range d.entries {
		if Equal(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

func (d *DictValue) Set(key, val Value) {
	for i, e := range d.entries {
		if Equal(e.Key, key) {
			d.entries[i].Value = val
			return
		}
	}
	d.entries = append(d.entries, dictEntry{Key: key, Value: val})
}

func (d *DictValue) Len() int { return len(d.entries) }

// Keys returns every key currently in the dict, in insertion order, for a
// Builtins implementation outside this package that needs to iterate entries
// (e.g. JSON encoding) without reaching into the unexported entries slice.
func (d *DictValue) Keys() []Value {
	keys := make([]Value, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}
	return keys
}

// EnumValue is one constructed enumerator, optionally carrying field values
// (spec §3 "enum ... Some(int)").
type EnumValue struct {
	Enum   *ast.Enum
	Ctor   *ast.EnumCtor
	Fields []Value
}

func (*EnumValue) Type() string { return "Enumerator" }
func (e *EnumValue) String() string {
	if len(e.Fields) == 0 {
		return e.Enum.Name + "::" + e.Ctor.Name
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return e.Enum.Name + "::" + e.Ctor.Name + "(" + strings.Join(parts, ", ") + ")"
}

// InstanceValue is a live class instance: one Go slice slot per declared
// field, in declaration order (spec §4.6 "Constructor calls ... allocate one
// slot per declared field").
type InstanceValue struct {
	Class  *ast.Class
	Fields []Value
}

func (*InstanceValue) Type() string { return "Instance" }
func (i *InstanceValue) String() string {
	return fmt.Sprintf("%s@%p", i.Class.Name, i)
}

// FunctionValue is a callable closure over a user function or lambda.
// Closure is the frame stack snapshot captured at definition time so a
// lambda can read its enclosing locals after the defining block returns;
// Self is non-nil when the value is a bound member function
// (spec §C "Member-function-as-value").
type FunctionValue struct {
	Decl    *ast.Function
	Lambda  *ast.LambdaFunc // set instead of Decl for a `lambda` literal
	Closure []*Frame
	Self    Value
}

func (*FunctionValue) Type() string { return "Function" }
func (f *FunctionValue) String() string {
	if f.Decl != nil {
		return "<function " + f.Decl.Name + ">"
	}
	return "<lambda>"
}

// BuiltinValue is a built-in free function bound as a first-class value
// (e.g. passed as a callback) without being called.
type BuiltinValue struct {
	Name string
}

func (*BuiltinValue) Type() string     { return "Function" }
func (b *BuiltinValue) String() string { return "<builtin " + b.Name + ">" }

// ModuleValue is the result of `@import`: the imported unit's top-level
// declarations, exposed under the local name bound by the import statement
// (spec §6 "Import").
type ModuleValue struct {
	Name    string
	Exports map[string]Value
}

func (*ModuleValue) Type() string     { return "Module" }
func (m *ModuleValue) String() string { return "<module " + m.Name + ">" }

// Equal implements the deep-structural equality rule of spec §4.6.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && av == bv
	case FloatValue:
		bv, ok := b.(FloatValue)
		return ok && av == bv
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av == bv
	case CharValue:
		bv, ok := b.(CharValue)
		return ok && av == bv
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av == bv
	case NoneValue:
		_, ok := b.(NoneValue)
		return ok
	case *VectorValue:
		bv, ok := b.(*VectorValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *EnumValue:
		bv, ok := b.(*EnumValue)
		if !ok || av.Ctor != bv.Ctor || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if !Equal(av.Fields[i], bv.Fields[i]) {
				return false
			}
		}
		return true
	case *DictValue:
		bv, ok := b.(*DictValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, e := range av.entries {
			v, found := bv.Get(e.Key)
			if !found || !Equal(e.Value, v) {
				return false
			}
		}
		return true
	case *InstanceValue:
		bv, ok := b.(*InstanceValue)
		return ok && av == bv // reference identity for class instances
	}
	return false
}

// Truthy coerces a Value used as a condition: only BoolValue(true) counts
// as true, and any non-Bool value counts as false. sema.checkBinary rejects
// non-Bool operands of `&&`/`||`; `if`/`while` conditions are not
// type-checked, so they may reach here as non-Bool values.
func Truthy(v Value) bool {
	b, _ := v.(BoolValue)
	return bool(b)
}
