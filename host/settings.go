// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// settings are the monitor variables changed with the set command. Struct
// tags describe each variable:
//
//	doc      one-line description shown by set
//	min/max  inclusive bounds of a numeric variable
//	choices  comma-separated values of a string variable; set accepts any
//	         unambiguous prefix
type settings struct {
	Arch            string `doc:"CPU architecture" choices:"nmos,rp2a03"`
	HexMode         bool   `doc:"hexadecimal input mode"`
	TraceCycles     bool   `doc:"display bus activity while stepping"`
	MemDumpBytes    int    `doc:"default number of memory bytes to dump" min:"1" max:"65536"`
	DisasmLines     int    `doc:"default number of lines to disassemble" min:"1" max:"1000"`
	MaxStepLines    int    `doc:"max lines to disassemble when stepping" min:"0"`
	ResetCycles     int    `doc:"max cycles to wait for the reset sequence" min:"8"`
	NextDisasmAddr  uint16 `doc:"address of next disassembly"`
	NextMemDumpAddr uint16 `doc:"address of next memory dump"`
}

func newSettings() *settings {
	return &settings{
		Arch:            "nmos",
		HexMode:         false,
		TraceCycles:     false,
		MemDumpBytes:    64,
		DisasmLines:     10,
		MaxStepLines:    20,
		ResetCycles:     16,
		NextDisasmAddr:  0,
		NextMemDumpAddr: 0,
	}
}

type settingsField struct {
	name    string
	index   int
	kind    reflect.Kind
	typ     reflect.Type
	doc     string
	min     *int64
	max     *int64
	choices []string
	lookup  *prefixtree.Tree[string]
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

var (
	errInvalidType = errors.New("invalid type")
	errOutOfRange  = errors.New("value out of range")
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := range settingsFields {
		f := settingsType.Field(i)
		sf := &settingsFields[i]
		*sf = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   f.Tag.Get("doc"),
			min:   intTag(f.Tag, "min"),
			max:   intTag(f.Tag, "max"),
		}
		if c, ok := f.Tag.Lookup("choices"); ok {
			sf.choices = strings.Split(c, ",")
			sf.lookup = prefixtree.New[string]()
			for _, choice := range sf.choices {
				sf.lookup.Add(choice, choice)
			}
		}
		settingsTree.Add(strings.ToLower(f.Name), sf)
	}
}

func intTag(tag reflect.StructTag, key string) *int64 {
	s, ok := tag.Lookup(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		panic(fmt.Sprintf("settings: bad %s tag %q", key, s))
	}
	return &v
}

// Display writes every setting, its value and its description to w.
func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var line string
		switch f.kind {
		case reflect.String:
			line = fmt.Sprintf("    %-16s \"%s\"", f.name, v.String())
		case reflect.Uint16:
			line = fmt.Sprintf("    %-16s $%04X", f.name, uint16(v.Uint()))
		default:
			line = fmt.Sprintf("    %-16s %v", f.name, v)
		}

		doc := f.doc
		if f.choices != nil {
			doc += ": " + strings.Join(f.choices, ", ")
		}
		fmt.Fprintf(w, "%-28s (%s)\n", line, doc)
	}
}

// Kind returns the kind of the setting matching the key prefix, or
// reflect.Invalid if no setting matches unambiguously.
func (s *settings) Kind(key string) reflect.Kind {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return f.kind
}

// Set assigns value to the setting matching the key prefix and returns the
// setting's full name. Numeric values are checked against the setting's
// bounds, and string values are completed to one of its choices.
func (s *settings) Set(key string, value any) (string, error) {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return key, fmt.Errorf("setting '%s' not found", key)
	}

	vIn := reflect.ValueOf(value)
	if (f.kind == reflect.String) != (vIn.Kind() == reflect.String) ||
		!vIn.Type().ConvertibleTo(f.typ) {
		return f.name, errInvalidType
	}

	switch {
	case f.lookup != nil:
		choice, err := f.lookup.FindValue(strings.ToLower(vIn.String()))
		if err != nil {
			return f.name, fmt.Errorf("%s must be one of %s", f.name, strings.Join(f.choices, ", "))
		}
		vIn = reflect.ValueOf(choice)

	case vIn.CanInt():
		if !f.inRange(vIn.Int()) {
			return f.name, f.rangeError()
		}

	case vIn.CanUint():
		if vIn.Uint() > 1<<62 || !f.inRange(int64(vIn.Uint())) {
			return f.name, f.rangeError()
		}
	}

	reflect.ValueOf(s).Elem().Field(f.index).Set(vIn.Convert(f.typ))
	return f.name, nil
}

func (f *settingsField) inRange(v int64) bool {
	return (f.min == nil || v >= *f.min) && (f.max == nil || v <= *f.max)
}

func (f *settingsField) rangeError() error {
	switch {
	case f.min != nil && f.max != nil:
		return fmt.Errorf("%w: %s must be between %d and %d", errOutOfRange, f.name, *f.min, *f.max)
	case f.min != nil:
		return fmt.Errorf("%w: %s must be at least %d", errOutOfRange, f.name, *f.min)
	default:
		return fmt.Errorf("%w: %s must be at most %d", errOutOfRange, f.name, *f.max)
	}
}
