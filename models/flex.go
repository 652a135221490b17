package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt is an optional integer that the mapping client may send as a JSON
// number, a numeric string, an empty string or null. Empty and null leave the
// value unset.
type FlexInt struct {
	Value int64
	Set   bool
}

func NewFlexInt(v int64) FlexInt {
	return FlexInt{Value: v, Set: true}
}

// Present reports whether the value is set and non-zero. Year fields use it:
// the client sends 0 for "no year selected".
func (f FlexInt) Present() bool {
	return f.Set && f.Value != 0
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = FlexInt{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Accept integral floats such as 2021.0.
		fv, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || fv != float64(int64(fv)) {
			return fmt.Errorf("%q is not an integer", raw)
		}
		v = int64(fv)
	}
	*f = NewFlexInt(v)
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// FlexIntList accepts either a JSON array of FlexInt values or a single value.
type FlexIntList []FlexInt

func (l *FlexIntList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []FlexInt
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var one FlexInt
	if err := one.UnmarshalJSON(data); err != nil {
		return err
	}
	if one.Set {
		*l = FlexIntList{one}
	} else {
		*l = nil
	}
	return nil
}

// Values returns the set entries, skipping absent ones.
func (l FlexIntList) Values() []int64 {
	out := make([]int64, 0, len(l))
	for _, v := range l {
		if v.Set {
			out = append(out, v.Value)
		}
	}
	return out
}

// FlexID is an identifier sent either as a JSON number or a string. The text
// form is what appears as a key in projection results.
type FlexID struct {
	Value string
	Set   bool
}

func NewFlexID(v string) FlexID {
	return FlexID{Value: v, Set: v != ""}
}

func (f *FlexID) UnmarshalJSON(data []byte) error {
	*f = FlexID{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = NewFlexID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or a string: %w", err)
	}
	*f = NewFlexID(n.String())
	return nil
}

func (f FlexID) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
