package receipt

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONWarnings adapts []ValidationWarning to gorm's jsonb column type.
type JSONWarnings []ValidationWarning

func (w JSONWarnings) Value() (driver.Value, error) {
	if w == nil {
		return "[]", nil
	}
	return json.Marshal([]ValidationWarning(w))
}

func (w *JSONWarnings) Scan(src any) error {
	if src == nil {
		*w = nil
		return nil
	}
	bytes, ok := src.([]byte)
	if !ok {
		if s, okStr := src.(string); okStr {
			bytes = []byte(s)
		} else {
			return errors.New("receipt: JSONWarnings.Scan: unsupported source type")
		}
	}
	var warnings []ValidationWarning
	if err := json.Unmarshal(bytes, &warnings); err != nil {
		return err
	}
	*w = warnings
	return nil
}

func (b BoundingBox) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *BoundingBox) Scan(src any) error {
	if src == nil {
		return nil
	}
	bytes, ok := src.([]byte)
	if !ok {
		if s, okStr := src.(string); okStr {
			bytes = []byte(s)
		} else {
			return errors.New("receipt: BoundingBox.Scan: unsupported source type")
		}
	}
	return json.Unmarshal(bytes, b)
}
