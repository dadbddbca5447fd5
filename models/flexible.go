package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// FlexibleString absorbs provider fields that arrive as either JSON strings
// or bare numbers.
type FlexibleString string

func (fs *FlexibleString) UnmarshalJSON(data []byte) error {
	var s string
	var i int64
	var f float64

	if err := json.Unmarshal(data, &s); err == nil {
		*fs = FlexibleString(s)
		return nil
	}

	if err := json.Unmarshal(data, &i); err == nil {
		*fs = FlexibleString(fmt.Sprintf("%d", i))
		return nil
	}

	if err := json.Unmarshal(data, &f); err == nil {
		*fs = FlexibleString(fmt.Sprintf("%g", f))
		return nil
	}

	return fmt.Errorf("unable to parse %s as FlexibleString", string(data))
}

func (fs FlexibleString) ToDecimal() (decimal.Decimal, error) {
	if fs == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(string(fs))
}
