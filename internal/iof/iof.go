// Package iof maps IOF XML documents returned by the Eventor API into
// typed records.
//
// Every record type supplies a decode function with the shape
// func(*etree.Element) (T, error). Decoding is fail-fast: a required
// field that is absent or unparseable aborts the record with an error
// wrapping ErrMissingField and naming the field path, and a failing
// child inside a repeated extraction aborts the whole list. There is no
// partial success.
package iof

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

var (
	// ErrMissingField marks a required document field that is absent or
	// malformed.
	ErrMissingField = errors.New("missing or malformed field")

	// ErrUnknownRace marks a race id that is not present in the event's
	// race list.
	ErrUnknownRace = errors.New("unknown race id")
)

// Children decodes every direct child of el with the given tag, in
// document order. The first child that fails to decode aborts the whole
// list; no partial slice is returned.
func Children[T any](el *etree.Element, tag string, decode func(*etree.Element) (T, error)) ([]T, error) {
	var out []T
	for _, child := range el.ChildElements() {
		if child.Tag != tag {
			continue
		}
		v, err := decode(child)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Date is a calendar date as a YYYYMMDD integer, the form Eventor uses
// for race dates.
type Date uint64

// DecodeDate reads an Eventor timestamp element: a Date child holding
// "YYYY-MM-DD". Dashes are stripped; non-numeric content fails.
func DecodeDate(el *etree.Element) (Date, error) {
	s, ok := childText(el, "Date")
	if !ok {
		return 0, fieldErr(el, "Date")
	}
	v, err := strconv.ParseUint(strings.ReplaceAll(s, "-", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s/Date: bad date %q: %w", el.GetPath(), s, ErrMissingField)
	}
	return Date(v), nil
}

// YearFromDate extracts the year from the leading four digits of a
// "YYYY-MM-DD" string.
func YearFromDate(s string) (uint64, bool) {
	if len(s) < 4 {
		return 0, false
	}
	year, err := strconv.ParseUint(s[:4], 10, 64)
	if err != nil {
		return 0, false
	}
	return year, true
}

func childText(el *etree.Element, name string) (string, bool) {
	child := el.SelectElement(name)
	if child == nil {
		return "", false
	}
	return strings.TrimSpace(child.Text()), true
}

func childUint(el *etree.Element, name string) (uint64, bool) {
	s, ok := childText(el, name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func childFloat(el *etree.Element, name string) (float64, bool) {
	s, ok := childText(el, name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func requireText(el *etree.Element, name string) (string, error) {
	s, ok := childText(el, name)
	if !ok {
		return "", fieldErr(el, name)
	}
	return s, nil
}

func requireUint(el *etree.Element, name string) (uint64, error) {
	v, ok := childUint(el, name)
	if !ok {
		return 0, fieldErr(el, name)
	}
	return v, nil
}

func fieldErr(el *etree.Element, name string) error {
	return fmt.Errorf("%s/%s: %w", el.GetPath(), name, ErrMissingField)
}
