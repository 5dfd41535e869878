package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/projecthub/utils"
)

// Date is a request timestamp accepting RFC 3339 or YYYY-MM-DD.
// An empty string decodes to the zero date, which stands for no date.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

// IsEmpty reports whether the date was sent as an empty string
func (d Date) IsEmpty() bool {
	return d.Time.IsZero()
}

// TimePtr returns nil for a nil or empty date
func (d *Date) TimePtr() *time.Time {
	if d == nil || d.IsEmpty() {
		return nil
	}
	t := d.Time
	return &t
}
