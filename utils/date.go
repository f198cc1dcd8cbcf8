package utils

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// CustomDate chỉ lưu ngày (không giờ)
type CustomDate struct {
	time.Time
}

func NewCustomDate(t time.Time) CustomDate {
	return CustomDate{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseCustomDate(s string) (CustomDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return CustomDate{}, fmt.Errorf("invalid date format: %s", s)
	}
	return CustomDate{t}, nil
}

// === JSON: nhận và trả về "YYYY-MM-DD" ===
func (d *CustomDate) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == `null` || str == `""` {
		*d = CustomDate{}
		return nil
	}
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	// chấp nhận cả ISO datetime từ date picker
	if len(str) > len(DateLayout) {
		if t, err := time.Parse(time.RFC3339, str); err == nil {
			*d = NewCustomDate(t)
			return nil
		}
	}
	parsed, err := ParseCustomDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d CustomDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// === DB ===
func (d CustomDate) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time.Format(DateLayout), nil
}

func (d *CustomDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = CustomDate{}
		return nil
	case time.Time:
		*d = NewCustomDate(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("unsupported scan type for CustomDate: %T", value)
	}
}

func (d *CustomDate) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("cannot parse date: %v", err)
	}
	*d = CustomDate{t}
	return nil
}

func (d CustomDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MonthKey trả về "YYYY-MM" dùng để group báo cáo
func (d CustomDate) MonthKey() string {
	return d.Format("2006-01")
}

// Today là ngày hiện tại dạng chuỗi để so sánh với cột date
func Today() string {
	return time.Now().Format(DateLayout)
}
