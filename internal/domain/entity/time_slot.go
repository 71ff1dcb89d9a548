package entity

// TimeSlots is the fixed set of bookable half-hour windows. A slot string is
// the start of the window in 24h HH:MM form; the unit of scheduling
// granularity is exactly one of these values.
var TimeSlots = []string{
	"09:00", "09:30",
	"10:00", "10:30",
	"11:00", "11:30",
	"12:00", "12:30",
	"14:00", "14:30",
	"15:00", "15:30",
	"16:00", "16:30",
	"17:00", "17:30",
}

// IsValidTimeSlot checks membership in the fixed slot set
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
