package fixedpoint

import (
	"encoding/json"

	"github.com/pkg/errors"
)

func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var a interface{}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	switch d := a.(type) {
	case float64:
		*v = NewFromFloat(d)

	case string:
		nv, err := NewFromString(d)
		if err != nil {
			return err
		}
		*v = nv

	default:
		return errors.Errorf("fixedpoint: unsupported type %T for %v", d, d)
	}

	return nil
}
