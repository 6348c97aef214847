package literal

// Value is a sealed interface over the literal node types.
// Only Int, Float, Str, Bool, None, List, Tuple and Dict implement it.
type Value interface {
	literalValue() // Sealed - only these types implement it
}

// Int is an integer literal. Literals outside int64 are rejected.
type Int int64

func (Int) literalValue() {}

// Float is a floating-point literal.
type Float float64

func (Float) literalValue() {}

// Str is a quoted string literal with escapes resolved.
type Str string

func (Str) literalValue() {}

// Bool is True or False.
type Bool bool

func (Bool) literalValue() {}

// None is the None literal.
type None struct{}

func (None) literalValue() {}

// List is a bracketed sequence.
type List []Value

func (List) literalValue() {}

// Tuple is a parenthesized sequence. (x) is not a tuple; (x,) is.
type Tuple []Value

func (Tuple) literalValue() {}

// Dict is a braced mapping in source order.
type Dict []DictEntry

func (Dict) literalValue() {}

// DictEntry is one key: value pair of a Dict.
type DictEntry struct {
	Key   Value
	Value Value
}

// Lookup returns the value stored under the string key, if present.
func (d Dict) Lookup(key string) (Value, bool) {
	for _, e := range d {
		if k, ok := e.Key.(Str); ok && string(k) == key {
			return e.Value, true
		}
	}
	return nil, false
}

// items returns the elements of a List or Tuple.
func items(v Value) ([]Value, bool) {
	switch s := v.(type) {
	case List:
		return s, true
	case Tuple:
		return s, true
	}
	return nil, false
}
