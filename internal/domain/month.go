package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/vfg2006/sales-pipeline-api/pkg/utils"
)

// MonthLayout é o formato canônico de um mês (yyyy-mm)
const MonthLayout = "2006-01"

// Month identifica um mês do calendário, independente de dia e fuso
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth normaliza uma data para o mês a que pertence
func NewMonth(date time.Time) Month {
	return Month{Year: date.Year(), Month: date.Month()}
}

// ParseMonth aceita yyyy-mm ou yyyy-mm-dd
func ParseMonth(value string) (Month, error) {
	for _, layout := range []string{MonthLayout, time.DateOnly} {
		if date, err := time.Parse(layout, value); err == nil {
			return NewMonth(date), nil
		}
	}

	return Month{}, fmt.Errorf("mês inválido %q: use o formato yyyy-mm", value)
}

// Start retorna o primeiro dia do mês em UTC
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End retorna o último dia do mês em UTC
func (m Month) End() time.Time {
	return utils.LastDayOfMonth(m.Start())
}

// Contains indica se a data cai entre o primeiro e o último dia do mês, inclusive
func (m Month) Contains(date time.Time) bool {
	return date.Year() == m.Year && date.Month() == m.Month
}

func (m Month) AddMonths(n int) Month {
	return NewMonth(m.Start().AddDate(0, n, 0))
}

func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

func (m *Month) UnmarshalJSON(data []byte) error {
	value, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("mês inválido: %w", err)
	}

	parsed, err := ParseMonth(value)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}
