package models

import (
	"bytes"
	"fmt"
	"strconv"
)

// The upstream variants endpoint serialises numeric fields as strings
// ("1499.00", "12"), while other endpoints use plain numbers. FlexFloat
// and FlexInt accept both forms and marshal back as numbers.

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(b), `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("models: parse float %q: %w", s, err)
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(f), 'f', -1, 64)), nil
}

func (f FlexFloat) Float64() float64 { return float64(f) }

type FlexInt int

func (i *FlexInt) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(b), `"`))
	if s == "" || s == "null" {
		*i = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// tolerate "12.0" style payloads
		fv, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("models: parse int %q: %w", s, err)
		}
		v = int(fv)
	}
	*i = FlexInt(v)
	return nil
}

func (i FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(i))), nil
}

func (i FlexInt) Int() int { return int(i) }
