package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Snapshot is a stack recorded bottom to top. Its JSON form is an array in
// which finite values are numbers and +Inf, -Inf and NaN are the strings
// "+Inf", "-Inf" and "NaN".
type Snapshot []float64

// MarshalJSON implements json.Marshaler.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 2+len(s)*8)
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			buf = strconv.AppendQuote(buf, strconv.FormatFloat(v, 'g', -1, 64))
			continue
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}
	return append(buf, ']'), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts numbers and any
// string strconv.ParseFloat understands.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Snapshot, 0, len(raw))
	for i, r := range raw {
		if bytes.HasPrefix(r, []byte{'"'}) {
			var text string
			if err := json.Unmarshal(r, &text); err != nil {
				return err
			}
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return fmt.Errorf("snapshot value %d: %w", i, err)
			}
			out = append(out, v)
			continue
		}
		var v float64
		if err := json.Unmarshal(r, &v); err != nil {
			return fmt.Errorf("snapshot value %d: %w", i, err)
		}
		out = append(out, v)
	}
	*s = out
	return nil
}
