package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindNumber
	KindText
	KindList
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the only type that crosses the boundary between the host and the
// script interpreter. The zero Value is Undefined, the absent sentinel used
// for timeouts and exhausted scans; it is distinct from Null and from NaN.
type Value struct {
	kind   Kind
	num    float64
	text   string
	list   []Value
	record map[string]Value
}

var (
	Undefined = Value{}
	Null      = Value{kind: KindNull}
)

func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

func Text(s string) Value { return Value{kind: KindText, text: s} }

func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

func Record(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindRecord, record: fields}
}

// TextOrNull maps a nullable string field to Text or Null.
func TextOrNull(s *string) Value {
	if s == nil {
		return Null
	}
	return Text(*s)
}

// ValueOf converts plain Go data into a Value. Unsupported types are
// rendered with fmt and become Text.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null
	case Value:
		return v
	case bool:
		if v {
			return Number(1)
		}
		return Number(0)
	case int:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case uint:
		return Number(float64(v))
	case uint32:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case float32:
		return Number(float64(v))
	case float64:
		return Number(v)
	case string:
		return Text(v)
	case []byte:
		return Bytes(v)
	case []string:
		items := make([]Value, 0, len(v))
		for _, s := range v {
			items = append(items, Text(s))
		}
		return List(items...)
	case []Value:
		return List(v...)
	case []any:
		items := make([]Value, 0, len(v))
		for _, item := range v {
			items = append(items, ValueOf(item))
		}
		return List(items...)
	case map[string]Value:
		return Record(v)
	case map[string]any:
		fields := make(map[string]Value, len(v))
		for k, item := range v {
			fields[k] = ValueOf(item)
		}
		return Record(fields)
	case map[string]string:
		fields := make(map[string]Value, len(v))
		for k, item := range v {
			fields[k] = Text(item)
		}
		return Record(fields)
	default:
		return Text(fmt.Sprint(v))
	}
}

// Bytes encodes raw bytes as a list of numbers in 0..255.
func Bytes(data []byte) Value {
	items := make([]Value, len(data))
	for i, b := range data {
		items[i] = Number(float64(b))
	}
	return List(items...)
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

func (v Value) IsNull() bool { return v.kind == KindNull }

// IsAbsent reports whether v is Undefined or Null.
func (v Value) IsAbsent() bool { return v.kind == KindUndefined || v.kind == KindNull }

func (v Value) IsNaN() bool { return v.kind == KindNumber && math.IsNaN(v.num) }

func (v Value) Number() (float64, bool) { return v.num, v.kind == KindNumber }

func (v Value) Text() (string, bool) { return v.text, v.kind == KindText }

func (v Value) List() ([]Value, bool) { return v.list, v.kind == KindList }

func (v Value) Record() (map[string]Value, bool) { return v.record, v.kind == KindRecord }

// Truthy follows dynamic-language truthiness: undefined, null, 0, NaN and ""
// are false; lists and records are always true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindText:
		return v.text != ""
	case KindList, KindRecord:
		return true
	default:
		return false
	}
}

// Int coerces numbers and numeric text to an int.
func (v Value) Int() (int, bool) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return 0, false
		}
		return int(v.num), true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

// Bytes decodes a list of numbers or a text value into raw bytes.
func (v Value) Bytes() ([]byte, bool) {
	switch v.kind {
	case KindText:
		return []byte(v.text), true
	case KindList:
		out := make([]byte, 0, len(v.list))
		for _, item := range v.list {
			n, ok := item.Int()
			if !ok {
				return nil, false
			}
			out = append(out, byte(n))
		}
		return out, true
	default:
		return nil, false
	}
}

// Strings flattens a scalar or a list of scalars into their display strings.
// Absent values yield nil.
func (v Value) Strings() []string {
	switch v.kind {
	case KindUndefined, KindNull:
		return nil
	case KindList:
		out := make([]string, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.String())
		}
		return out
	default:
		return []string{v.String()}
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindNumber:
		return formatNumber(v.num)
	case KindText:
		return v.text
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, item := range v.list {
			parts = append(parts, item.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindRecord:
		keys := make([]string, 0, len(v.record))
		for k := range v.record {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+v.record[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}
