// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// Field represents a struct field in a configuration object.
// It is passed around in flag parsing functions, but it should
// not typically be used by end-user code going through the
// standard Run/SetFromArgs API.
type Field struct {

	// Field is the reflect struct field object for this field.
	Field reflect.StructField

	// Value is the reflect value of this field, which is settable.
	Value reflect.Value

	// Name is the fully qualified, nested name of this field (eg: A.B.C).
	// It is as it appears in code, and is NOT transformed to kebab-case.
	Name string

	// Names contains all of the possible end-user names for this field as a flag,
	// in kebab-case. It defaults to the name of the field, but custom names can be
	// specified via the flag struct tag. Nested fields can also be accessed through
	// their fully qualified kebab-case name.
	Names []string

	// PosArg is the index of the positional argument that sets this field,
	// from the posarg struct tag, or -1 if it is not a positional argument.
	PosArg int
}

// AllCmds, when passed as the command to [Fields], indicates
// to add all fields, regardless of their command association.
const AllCmds = "*"

// Fields returns all of the configurable fields of the given config
// object, which must be a pointer to a struct, in the context of the
// given command name. Fields with a cmd struct tag are only included
// for the commands it lists; [AllCmds] includes every field.
func Fields(cfg any, cmd string) ([]*Field, error) {
	val := reflect.ValueOf(cfg)
	if val.Kind() != reflect.Pointer || val.IsNil() || val.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("cli: config object must be a non-nil pointer to a struct, not %T", cfg)
	}
	var fields []*Field
	used := map[string]*Field{}
	err := addFields(val.Elem(), "", cmd, used, &fields)
	return fields, err
}

// addFields adds the fields of the given struct value to fields.
// used is keyed by the kebab-case names that have already been taken,
// and is used to detect naming conflicts.
func addFields(val reflect.Value, path, cmd string, used map[string]*Field, fields *[]*Field) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		if !hasCmd(f, cmd) {
			continue
		}
		fv := val.Field(i)
		name := f.Name
		if path != "" {
			name = path + "." + name
		}
		if f.Type.Kind() == reflect.Struct && !isLeafType(f.Type) {
			if err := addFields(fv, name, cmd, used, fields); err != nil {
				return err
			}
			continue
		}

		nf := &Field{Field: f, Value: fv, Name: name, PosArg: -1}
		if tag, ok := f.Tag.Lookup("flag"); ok {
			for _, nm := range strings.Split(tag, ",") {
				if nm = strings.TrimSpace(nm); nm != "" {
					nf.Names = append(nf.Names, strcase.ToKebab(nm))
				}
			}
			if len(nf.Names) == 0 {
				return fmt.Errorf("programmer error: expected at least one name in flag struct tag of field %q", name)
			}
		} else {
			nf.Names = []string{strcase.ToKebab(f.Name)}
		}
		if path != "" {
			qn := strcase.ToKebab(name)
			if !slices.Contains(nf.Names, qn) {
				nf.Names = append(nf.Names, qn)
			}
		}
		if tag, ok := f.Tag.Lookup("posarg"); ok {
			idx, err := strconv.Atoi(tag)
			if err != nil || idx < 0 {
				return fmt.Errorf("programmer error: invalid posarg struct tag %q on field %q", tag, name)
			}
			nf.PosArg = idx
		}
		for _, nm := range nf.Names {
			if of, has := used[nm]; has {
				return fmt.Errorf("programmer error: fields %q and %q were both assigned the same name (%q)", of.Name, nf.Name, nm)
			}
			used[nm] = nf
		}
		*fields = append(*fields, nf)
	}
	return nil
}

// hasCmd returns whether the given field is associated with the given
// command, based on its cmd struct tag.
func hasCmd(f reflect.StructField, cmd string) bool {
	tag, ok := f.Tag.Lookup("cmd")
	if !ok || cmd == AllCmds {
		return true
	}
	for _, c := range strings.Split(tag, ",") {
		if strings.TrimSpace(c) == cmd {
			return true
		}
	}
	return false
}

// lookupField returns the field with the given user-supplied flag name,
// which is matched in kebab-case, or nil if there is none.
func lookupField(fields []*Field, name string) *Field {
	key := strcase.ToKebab(name)
	for _, f := range fields {
		if slices.Contains(f.Names, key) {
			return f
		}
	}
	return nil
}

// posArgFields returns the positional argument fields in index order.
func posArgFields(fields []*Field) []*Field {
	var res []*Field
	for _, f := range fields {
		if f.PosArg >= 0 {
			res = append(res, f)
		}
	}
	slices.SortFunc(res, func(a, b *Field) int { return a.PosArg - b.PosArg })
	return res
}
