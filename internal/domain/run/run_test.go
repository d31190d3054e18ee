package run_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohammadpnp/appraisal-import/internal/domain/run"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		expected   int
		successful int
		want       run.Status
	}{
		{"nothing to do", 0, 0, run.StatusCompleted},
		{"all succeeded", 5, 5, run.StatusCompleted},
		{"partial", 5, 3, run.StatusCompletedWithErrors},
		{"none succeeded", 5, 0, run.StatusFailed},
		{"some left unwritten", 5, 4, run.StatusCompletedWithErrors},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, run.StatusFor(tc.expected, tc.successful))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, run.StatusRunning.Terminal())
	assert.True(t, run.StatusFailed.Terminal())
}
