package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yeremiapane/bike-reservation/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// NaiveTime adalah timestamp yang disimpan dan ditampilkan tanpa offset zona.
// Offset dari client dibuang lewat utils.StripOffset.
type NaiveTime struct {
	time.Time
}

func NewNaiveTime(t time.Time) NaiveTime {
	return NaiveTime{Time: utils.StripOffset(t)}
}

func (t NaiveTime) String() string {
	return utils.FormatNaive(t.Time)
}

func (t NaiveTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(utils.FormatNaive(t.Time))
}

func (t *NaiveTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := utils.ParseNaive(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t NaiveTime) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return utils.StripOffset(t.Time), nil
}

func (t *NaiveTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = utils.StripOffset(v)
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into NaiveTime", value)
	}
	return nil
}

func (t *NaiveTime) scanString(v string) error {
	parsed, err := utils.ParseNaive(v)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (NaiveTime) GormDataType() string {
	return string(schema.Time)
}

// GormDBDataType memilih tipe kolom tanpa zona waktu per dialect.
func (NaiveTime) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "timestamp"
	default:
		return "datetime"
	}
}
