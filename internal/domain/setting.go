package domain

import (
	"encoding/json"
	"time"
)

// Setting is a free-form JSON value stored under a key.
type Setting struct {
	Key       string
	Value     json.RawMessage
	UpdatedAt time.Time
}

// SettingNotificationsEnabled gates the notification worker when set to false.
const SettingNotificationsEnabled = "notifications_enabled"

// Bool decodes the value as a JSON boolean.
func (s *Setting) Bool() (bool, bool) {
	var b bool
	if err := json.Unmarshal(s.Value, &b); err != nil {
		return false, false
	}
	return b, true
}
