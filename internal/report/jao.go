package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jaoDay is one day record in the auctions payload. Result records keep
// arbitrary fields, so they stay raw and are decoded field by field to
// preserve the document's column order.
type jaoDay struct {
	MarketPeriodStart string            `json:"marketPeriodStart"`
	Results           []json.RawMessage `json:"results"`
}

// NormalizeJAO flattens a raw JAO auctions JSON file into a table with one
// row per auction result. Each row carries the result's original fields plus
// a derived datetime key: the day's date (first 10 characters of
// marketPeriodStart) combined with the result's starting hour (first 5
// characters of productHour).
func NormalizeJAO(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var days []jaoDay
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, parseErrorf("jao", "decode %s: %v", path, err)
	}

	t := &Table{Columns: []string{DatetimeColumn}}
	seen := map[string]bool{DatetimeColumn: true}

	for i, day := range days {
		if len(day.MarketPeriodStart) < 10 {
			return nil, parseErrorf("jao", "day %d: missing or short marketPeriodStart %q", i, day.MarketPeriodStart)
		}
		date := day.MarketPeriodStart[:10]
		for j, res := range day.Results {
			keys, cells, err := decodeOrderedObject(res)
			if err != nil {
				return nil, parseErrorf("jao", "day %d result %d: %v", i, j, err)
			}
			hour, ok := cells["productHour"]
			if !ok || len(hour) < 5 {
				return nil, parseErrorf("jao", "day %d result %d: missing or short productHour %q", i, j, hour)
			}
			derived := date + " " + hour[:5]
			ts, err := time.Parse(DatetimeLayout, derived)
			if err != nil {
				return nil, parseErrorf("jao", "day %d result %d: derived datetime %q: %v", i, j, derived, err)
			}

			row := Row{DatetimeColumn: ts.Format(DatetimeLayout)}
			for _, k := range keys {
				row[k] = cells[k]
				if !seen[k] {
					seen[k] = true
					t.Columns = append(t.Columns, k)
				}
			}
			t.Rows = append(t.Rows, row)
		}
	}
	return t, nil
}

// decodeOrderedObject decodes a flat JSON object keeping key order.
// Numbers keep their source literal so re-rendering never changes precision.
func decodeOrderedObject(raw json.RawMessage) ([]string, map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	cells := map[string]string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)
		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		cells[key] = renderScalar(val)
	}
	return keys, cells, nil
}

func renderScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", x)
	}
}
