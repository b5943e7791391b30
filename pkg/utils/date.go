package utils

import "time"

// FirstDayOfMonth retorna o primeiro dia do mês da data informada, à meia-noite
func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// LastDayOfMonth retorna o último dia do mês da data informada, à meia-noite
func LastDayOfMonth(date time.Time) time.Time {
	return FirstDayOfMonth(date).AddDate(0, 1, -1)
}
