package slots

import (
	"regexp"
	"strconv"
	"time"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/domain"
)

const (
	// Daily booking window: 09:00 local, 30-minute cadence, 16 slots
	// (last start 16:30 local).
	windowStartHour = 9
	slotMinutes     = 30
	slotsPerDay     = 16
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SlotDuration is the fixed length of every slot.
const SlotDuration = slotMinutes * time.Minute

// ParseDate validates a YYYY-MM-DD calendar date before any core logic
// runs. The returned components are not yet bound to a timezone.
func ParseDate(date string) (year int, month time.Month, day int, err error) {
	if !dateRe.MatchString(date) {
		return 0, 0, 0, domain.NewValidationError("invalid date format, use YYYY-MM-DD")
	}
	y, _ := strconv.Atoi(date[0:4])
	m, _ := strconv.Atoi(date[5:7])
	d, _ := strconv.Atoi(date[8:10])
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return 0, 0, 0, domain.NewValidationError("invalid date format, use YYYY-MM-DD")
	}
	return y, time.Month(m), d, nil
}

// Generate returns the ordered candidate slot starts for a calendar date
// as UTC instants. Each local wall-clock start goes through the zone's
// full rules, so DST transitions land on the right instant. Pure and
// deterministic: the same date and zone always yield the same sequence.
func Generate(date string, loc *time.Location) ([]time.Time, error) {
	year, month, day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	starts := make([]time.Time, 0, slotsPerDay)
	for i := 0; i < slotsPerDay; i++ {
		minutes := i * slotMinutes
		local := time.Date(year, month, day, windowStartHour+minutes/60, minutes%60, 0, 0, loc)
		starts = append(starts, local.UTC())
	}
	return starts, nil
}
