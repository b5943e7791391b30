package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Month
		wantErr bool
	}{
		{name: "Formato yyyy-mm", input: "2024-06", want: Month{Year: 2024, Month: time.June}},
		{name: "Formato yyyy-mm-dd normaliza para o mês", input: "2024-06-17", want: Month{Year: 2024, Month: time.June}},
		{name: "Mês inexistente", input: "2024-13", wantErr: true},
		{name: "Formato brasileiro não é aceito", input: "06-2024", wantErr: true},
		{name: "Vazio", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonth_Boundaries(t *testing.T) {
	feb := Month{Year: 2024, Month: time.February}

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), feb.Start())
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), feb.End())

	assert.True(t, feb.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, feb.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))
	assert.False(t, feb.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, feb.Contains(time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC)))
}

func TestMonth_AddMonthsAndBefore(t *testing.T) {
	jan := Month{Year: 2024, Month: time.January}

	assert.Equal(t, Month{Year: 2023, Month: time.August}, jan.AddMonths(-5))
	assert.Equal(t, Month{Year: 2025, Month: time.January}, jan.AddMonths(12))
	assert.True(t, jan.AddMonths(-1).Before(jan))
	assert.False(t, jan.Before(jan))
	assert.True(t, Month{Year: 2023, Month: time.December}.Before(jan))
}

func TestMonth_JSON(t *testing.T) {
	month := Month{Year: 2024, Month: time.June}

	data, err := json.Marshal(month)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06"`, string(data))

	var decoded Month
	require.NoError(t, json.Unmarshal([]byte(`"2024-06-01"`), &decoded))
	assert.Equal(t, month, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"junho"`), &decoded))
}
