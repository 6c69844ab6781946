package schema

import (
	"fmt"
	"strconv"
	"time"

	"loan-booklet-be/pkg/booklet"
)

func requireScalar(d *booklet.Draft, field, label string) []string {
	if d.Scalars[field] == "" {
		return []string{fmt.Sprintf("%s is required", label)}
	}
	return nil
}

const dateLayout = "2006-01-02"

// sanctionWindow checks that the sanction date is not before the application
// date and at most 15 days ahead of today. Unparseable dates are left to the
// per-field checks.
func sanctionWindow(d *booklet.Draft, appField, sanField string, now time.Time) []string {
	app, errA := time.Parse(dateLayout, d.Scalars[appField])
	san, errS := time.Parse(dateLayout, d.Scalars[sanField])
	if errS != nil {
		return nil
	}
	var msgs []string
	if errA == nil && san.Before(app) {
		msgs = append(msgs, "Sanction Date cannot be earlier than Application Date")
	}
	limit := now.AddDate(0, 0, 15)
	if san.After(limit) {
		msgs = append(msgs, "Sanction Date cannot be more than 15 days after today")
	}
	return msgs
}

func parseAmount(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
