package task

import (
	"fmt"
	"strconv"
	"strings"
)

// DeadlineKey converts a "DD.MM.YYYY" deadline into a YYYYMMDD integer
// used solely for ordering. Single-digit day and month are zero-padded.
// No calendar validation happens here: "31.02.2024" orders fine, but a
// string that does not split into three numeric parts is an error.
func DeadlineKey(deadline string) (int, error) {
	parts := strings.Split(deadline, ".")
	if len(parts) != 3 {
		return 0, fmt.Errorf("deadline %q: want DD.MM.YYYY", deadline)
	}
	day, month, year := parts[0], parts[1], parts[2]
	if len(day) == 1 {
		day = "0" + day
	}
	if len(month) == 1 {
		month = "0" + month
	}
	key, err := strconv.Atoi(year + month + day)
	if err != nil {
		return 0, fmt.Errorf("deadline %q: non-numeric component", deadline)
	}
	return key, nil
}
