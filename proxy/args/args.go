package args

import (
	"strconv"
	"time"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTimestamp
	KindFile
	KindList
)

// Value is a single call argument. The set of variants is closed:
// scalars (string, int, float, bool, timestamp), a file reference,
// or a flat list of the former. Construct values with the package
// functions; the zero Value is Null.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
	ts   time.Time
	file *FileRef
	list []Value
}

// FileRef names a byte source for a file-valued argument.
type FileRef struct {
	Name   string
	Source Source
}

// Null returns the absent value. Null arguments are dropped from
// every encoded form, never emitted as an empty string.
func Null() Value { return Value{} }

// String returns a string-valued argument.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer-valued argument.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float-valued argument.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean-valued argument.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time returns a timestamp-valued argument. Timestamps encode as the
// integer count of milliseconds since the Unix epoch.
func Time(t time.Time) Value { return Value{kind: KindTimestamp, ts: t} }

// File returns a file-valued argument backed by src. name is the
// display name used as the multipart filename.
func File(name string, src Source) Value {
	return Value{kind: KindFile, file: &FileRef{Name: name, Source: src}}
}

// List returns a multi-valued argument. Elements must be scalars or
// files; passing a nested list is a programming error and panics.
func List(elems ...Value) Value {
	for _, e := range elems {
		if e.kind == KindList {
			panic("args: lists must not nest")
		}
	}
	return Value{kind: KindList, list: elems}
}

// Strings returns a list argument from plain strings.
func Strings(ss ...string) Value {
	elems := make([]Value, len(ss))
	for i, s := range ss {
		elems[i] = String(s)
	}
	return Value{kind: KindList, list: elems}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the absent value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// File returns the file reference held by v, or nil for other kinds.
func (v Value) File() *FileRef {
	return v.file
}

// Elems returns the elements of a list value, or nil for other kinds.
func (v Value) Elems() []Value {
	return v.list
}

// String returns the wire text of a scalar occurrence: the raw string,
// the decimal integer or float, "true"/"false", the millisecond epoch
// count for timestamps, or the display name for files. Null and list
// values stringify empty; both are handled before stringification by
// every encoder.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTimestamp:
		return strconv.FormatInt(v.ts.UnixMilli(), 10)
	case KindFile:
		return v.file.Name
	}
	return ""
}
