package businesstime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuwaiq_relay/internal/domain/entities"
)

func TestProject(t *testing.T) {
	// Tuesday 10:00 UTC is Tuesday 13:00 in the business timezone.
	at := time.Date(2030, time.January, 1, 10, 0, 0, 0, time.UTC)

	got := Project(at)

	assert.Equal(t, "2030-01-01T10:00:00.000Z", got.UTC)
	assert.Equal(t, "2030-01-01 13:00 (+03:00)", got.Display)
	assert.Equal(t, "2030-01-01", got.Date)
	assert.Equal(t, "13:00", got.Time)
	assert.True(t, got.Resolved)
}

func TestProject_CrossesMidnight(t *testing.T) {
	at := time.Date(2030, time.January, 1, 22, 15, 0, 0, time.UTC)

	got := Project(at)

	assert.Equal(t, "2030-01-02", got.Date)
	assert.Equal(t, "01:15", got.Time)
}

func TestIsRestDay(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"thursday afternoon", time.Date(2030, time.January, 3, 12, 0, 0, 0, time.UTC), false},
		{"thursday 21:00 UTC is friday locally", time.Date(2030, time.January, 3, 21, 0, 0, 0, time.UTC), true},
		{"friday", time.Date(2030, time.January, 4, 9, 0, 0, 0, time.UTC), true},
		{"saturday", time.Date(2030, time.January, 5, 9, 0, 0, 0, time.UTC), true},
		{"saturday 21:00 UTC is sunday locally", time.Date(2030, time.January, 5, 21, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2030, time.January, 6, 9, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRestDay(tt.at))
		})
	}
}

func TestParseInstant(t *testing.T) {
	want := time.Date(2030, time.January, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"rfc3339 utc", "2030-01-01T10:00:00Z", want, true},
		{"rfc3339 millis", "2030-01-01T10:00:00.000Z", want, true},
		{"rfc3339 offset", "2030-01-01T13:00:00+03:00", want, true},
		{"iso minutes zulu", "2030-01-01T10:00Z", want, true},
		{"iso minutes offset", "2030-01-01T13:00+03:00", want, true},
		{"iso compact offset", "2030-01-01T13:00:00.000+0300", want, true},
		{"iso minutes compact offset", "2030-01-01T13:00+0300", want, true},
		{"iso local is utc", "2030-01-01T10:00:00", want, true},
		{"iso local minutes", "2030-01-01T10:00", want, true},
		{"date only", "2030-01-01", time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"display with suffix", "2030-01-01 13:00 (+03:00)", want, true},
		{"display without suffix", "2030-01-01 13:00", want, true},
		{"display with seconds", "2030-01-01 13:00:00", want, true},
		{"display other offset", "2030-01-01 12:00 (+02:00)", want, true},
		{"display negative offset", "2030-01-01 05:00 (-05:00)", want, true},
		{"display compact offset", "2030-01-01 13:00 (+0300)", want, true},
		{"empty", "", time.Time{}, false},
		{"garbage", "next tuesday", time.Time{}, false},
		{"bad hour", "2030-01-01 25:00", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInstant(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
			}
		})
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	start := time.Date(2030, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 96; i++ {
		at := start.Add(time.Duration(i) * 37 * time.Minute)

		parsed, ok := ParseInstant(Project(at).Display)

		require.True(t, ok)
		assert.True(t, at.Equal(parsed), "round trip of %s gave %s", at, parsed)
	}
}

func TestFromParts(t *testing.T) {
	got, ok := FromParts([]int{2024, 3, 10, 12, 30, 0})
	require.True(t, ok)
	assert.Equal(t, "2024-03-10T12:30:00.000Z", FormatUTC(got))

	got, ok = FromParts([]int{2024, 3, 10, 12, 30, 0, 500000000})
	require.True(t, ok)
	assert.Equal(t, "2024-03-10T12:30:00.500Z", FormatUTC(got))

	_, ok = FromParts([]int{2024, 3, 10})
	assert.False(t, ok)

	_, ok = FromParts([]int{2024, 13, 10, 0, 0, 0})
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	canonical := entities.ConsultationTime{
		UTC:      "2030-01-01T10:00:00.000Z",
		Display:  "2030-01-01 13:00 (+03:00)",
		Date:     "2030-01-01",
		Time:     "13:00",
		Resolved: true,
	}

	t.Run("utc field wins", func(t *testing.T) {
		got := Resolve(entities.ConsultationTime{UTC: "2030-01-01T10:00:00Z", Display: "2031-05-05 09:00"})
		assert.Equal(t, canonical, got)
	})

	t.Run("display field", func(t *testing.T) {
		got := Resolve(entities.ConsultationTime{UTC: "not a time", Display: "2030-01-01 13:00 (+03:00)"})
		assert.Equal(t, canonical, got)
	})

	t.Run("date and time pair", func(t *testing.T) {
		got := Resolve(entities.ConsultationTime{Date: "2030-01-01", Time: "13:00"})
		assert.Equal(t, canonical, got)
	})

	t.Run("nothing parses keeps raw strings", func(t *testing.T) {
		raw := entities.ConsultationTime{Display: "tomorrow morning", Date: "soon"}
		got := Resolve(raw)
		assert.Equal(t, raw, got)
		assert.False(t, got.Resolved)
	})
}
