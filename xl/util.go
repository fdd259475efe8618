package xl

import "strconv"

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func atoi(s string) (int, error) { return strconv.Atoi(s) }

func atof(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
