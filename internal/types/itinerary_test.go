package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      TripParameters
		want    TripParameters
		wantErr bool
	}{
		{
			name: "trims and defaults travelers",
			in:   TripParameters{Destination: "  京都 ", Duration: 2, Budget: " luxury ", Interests: []string{" 美食", "", "  "}},
			want: TripParameters{Destination: "京都", Duration: 2, Travelers: 1, Budget: "luxury", Interests: []string{"美食"}},
		},
		{
			name: "duration from dates",
			in:   TripParameters{Destination: "京都", StartDate: "2025-03-30", EndDate: "2025-04-02", Travelers: 3},
			want: TripParameters{Destination: "京都", Duration: 4, Travelers: 3, Interests: []string{}, StartDate: "2025-03-30", EndDate: "2025-04-02"},
		},
		{
			name: "explicit duration wins over dates",
			in:   TripParameters{Destination: "京都", Duration: 2, StartDate: "2025-04-01", EndDate: "2025-04-05"},
			want: TripParameters{Destination: "京都", Duration: 2, Travelers: 1, Interests: []string{}, StartDate: "2025-04-01", EndDate: "2025-04-05"},
		},
		{name: "missing destination", in: TripParameters{Destination: " ", Duration: 1}, wantErr: true},
		{name: "zero duration", in: TripParameters{Destination: "京都"}, wantErr: true},
		{name: "start after end", in: TripParameters{Destination: "京都", StartDate: "2025-04-05", EndDate: "2025-04-01"}, wantErr: true},
		{name: "start without end", in: TripParameters{Destination: "京都", Duration: 1, StartDate: "2025-04-05"}, wantErr: true},
		{name: "duration over the limit", in: TripParameters{Destination: "京都", Duration: MaxTripDays + 1}, wantErr: true},
		{name: "dates over the limit", in: TripParameters{Destination: "京都", StartDate: "2025-01-01", EndDate: "2025-02-15"}, wantErr: true},
		{
			name: "longest trip",
			in:   TripParameters{Destination: "京都", Duration: MaxTripDays},
			want: TripParameters{Destination: "京都", Duration: MaxTripDays, Travelers: 1, Interests: []string{}},
		},
		{name: "bad date", in: TripParameters{Destination: "京都", StartDate: "05/04/2025", EndDate: "2025-04-06"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			err := got.Normalize()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTripParameters)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDoesNotAliasInterests(t *testing.T) {
	interests := []string{" 购物 ", "历史"}
	p := TripParameters{Destination: "上海", Duration: 1, Interests: interests}
	require.NoError(t, p.Normalize())

	assert.Equal(t, " 购物 ", interests[0])
	assert.Equal(t, []string{"购物", "历史"}, p.Interests)
}

func TestDayCount(t *testing.T) {
	assert.Equal(t, 1, TripParameters{}.DayCount())
	assert.Equal(t, 5, TripParameters{Duration: 5}.DayCount())
}
