package service

// showTimeChoices is the number of show times the selection prompt offers.
const showTimeChoices = 3

// SelectShowTime validates a 1-based show-time choice. Choices outside 1..3
// fall back to the first show time and report defaulted=true. The bound does
// not follow len(options).
func SelectShowTime(options []string, choice int) (index int, defaulted bool) {
	if choice < 1 || choice > showTimeChoices {
		return 1, true
	}
	return choice, false
}
