// internal/pricing/queries/decode.go
package queries

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

var timeType = reflect.TypeOf(time.Time{})

// dateHook renders warehouse DATE and TIMESTAMP values as YYYY-MM-DD strings.
func dateHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from != timeType || to.Kind() != reflect.String {
		return data, nil
	}
	return data.(time.Time).Format(dateLayout), nil
}

func decodeRecords[T any](records []map[string]interface{}, label func(*T)) ([]T, error) {
	out := make([]T, 0, len(records))
	for i, rec := range records {
		var row T
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.DecodeHookFuncType(dateHook),
			WeaklyTypedInput: true,
			Result:           &row,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if err := decoder.Decode(rec); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrDecode, i, err)
		}
		label(&row)
		out = append(out, row)
	}
	return out, nil
}

func pick(raw *float64, display float64) float64 {
	if raw != nil {
		return *raw
	}
	return display
}
