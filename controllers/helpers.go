package controllers

import (
	"time"

	"github.com/yeremiapane/cafe-ordering/utils"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// parseDate -> terima RFC3339 atau tanggal polos (zona cafe)
func parseDate(field, value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, utils.Validation(field, field+" is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, utils.Validation(field, "Invalid date "+value)
}
