package availability_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkeenan750/snapcourse/internal/availability"
)

type translator struct{}

func (translator) T(id string, data map[string]any) string {
	switch id {
	case availability.MsgAvailableFrom:
		return "Available from " + data["Date"].(string)
	case availability.MsgAvailableUntil:
		return "Available until " + data["Date"].(string)
	case availability.MsgJoinAnd:
		return " and "
	case availability.MsgJoinOr:
		return " or "
	}

	return id
}

var (
	may1 = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	jun1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

func tree(op string, show string, conds ...string) string {
	c := ""
	for i, cond := range conds {
		if i > 0 {
			c += ","
		}
		c += cond
	}

	if show != "" {
		return fmt.Sprintf(`{"op":%q,"show":%s,"c":[%s]}`, op, show, c)
	}

	return fmt.Sprintf(`{"op":%q,"c":[%s]}`, op, c)
}

func from(t time.Time) string  { return fmt.Sprintf(`{"type":"date","d":">=","t":%d}`, t.Unix()) }
func until(t time.Time) string { return fmt.Sprintf(`{"type":"date","d":"<","t":%d}`, t.Unix()) }

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		now             time.Time
		wantConditional bool
		wantAvailable   bool
		wantInfo        string
	}{
		{
			name:          "empty",
			raw:           "",
			now:           may1,
			wantAvailable: true,
		},
		{
			name:          "no conditions",
			raw:           `{"op":"&","c":[]}`,
			now:           may1,
			wantAvailable: true,
		},
		{
			name:            "before from date",
			raw:             tree("&", "", from(jun1)),
			now:             may1,
			wantConditional: true,
			wantInfo:        "Available from 1 June 2024, 00:00",
		},
		{
			name:            "after from date",
			raw:             tree("&", "", from(may1)),
			now:             jun1,
			wantConditional: true,
			wantAvailable:   true,
		},
		{
			name:            "hidden restriction",
			raw:             tree("&", "false", from(jun1)),
			now:             may1,
			wantConditional: true,
		},
		{
			name:            "and both failing",
			raw:             tree("&", "true", from(jun1), until(may1)),
			now:             may1.AddDate(0, 0, 2),
			wantConditional: true,
			wantInfo:        "Available from 1 June 2024, 00:00 and Available until 1 May 2024, 00:00",
		},
		{
			name:            "or one met",
			raw:             tree("|", "", from(jun1), until(jun1)),
			now:             may1,
			wantConditional: true,
			wantAvailable:   true,
		},
		{
			name:            "unknown type never blocks",
			raw:             `{"op":"&","c":[{"type":"grade"}]}`,
			now:             may1,
			wantConditional: true,
			wantAvailable:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := availability.Evaluate(tt.raw, tt.now, translator{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantConditional, res.Conditional)
			assert.Equal(t, tt.wantAvailable, res.Available)
			assert.Equal(t, tt.wantInfo, res.Info)
		})
	}
}

func TestEvaluate_Invalid(t *testing.T) {
	res, err := availability.Evaluate("{not json", may1, translator{})
	require.Error(t, err)
	assert.True(t, res.Available)

	_, err = availability.Evaluate(`{"op":"!","c":[]}`, may1, translator{})
	require.ErrorIs(t, err, availability.ErrUnknownOperator)
}
