package dtos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleResolve(t *testing.T) {
	current := time.Date(2025, 4, 29, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      Schedule
		current *time.Time
		want    time.Time
		wantErr bool
	}{
		{name: "date_time layout", in: Schedule{DateTime: "2025-05-01 09:30"}, want: time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)},
		{name: "rfc3339 normalized to utc", in: Schedule{DateTime: "2025-05-01T11:30:00+02:00"}, want: time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)},
		{name: "date and time", in: Schedule{Date: "2025-04-30", Time: "15:00"}, want: time.Date(2025, 4, 30, 15, 0, 0, 0, time.UTC)},
		{name: "date only defaults to midnight", in: Schedule{Date: "2025-04-30"}, want: time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)},
		{name: "date only keeps current clock", in: Schedule{Date: "2025-04-30"}, current: &current, want: time.Date(2025, 4, 30, 14, 0, 0, 0, time.UTC)},
		{name: "time only keeps current date", in: Schedule{Time: "16:45"}, current: &current, want: time.Date(2025, 4, 29, 16, 45, 0, 0, time.UTC)},
		{name: "empty keeps current", in: Schedule{}, current: &current, want: current},
		{name: "empty without current", in: Schedule{}, wantErr: true},
		{name: "time only without current", in: Schedule{Time: "10:00"}, wantErr: true},
		{name: "bad date_time", in: Schedule{DateTime: "tomorrow"}, wantErr: true},
		{name: "bad date", in: Schedule{Date: "29/04/2025", Time: "10:00"}, wantErr: true},
		{name: "bad time", in: Schedule{Date: "2025-04-29", Time: "10am"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Resolve(tt.current)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}
