package commands

import "strconv"

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
