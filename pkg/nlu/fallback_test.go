package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackIntent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "affirmation",
			message: "Yes, let's try that",
			want:    IntentAffirm,
		},
		{
			name:    "denial",
			message: "not really, I don't think so",
			want:    IntentDeny,
		},
		{
			name:    "work stress",
			message: "My deadline is killing me",
			want:    IntentWorkStress,
		},
		{
			name:    "study anxiety",
			message: "I have an exam tomorrow and I'm anxious",
			want:    IntentStudyAnxiety,
		},
		{
			name:    "feeling depressed",
			message: "I feel so lonely lately",
			want:    IntentFeelingDepressed,
		},
		{
			name:    "default greeting",
			message: "Hi there",
			want:    IntentGeneralGreeting,
		},
		{
			name:    "affirmation beats domain keywords",
			message: "ok, the exam can wait",
			want:    IntentAffirm,
		},
		{
			name:    "case insensitive",
			message: "MY JOB IS STRESSFUL",
			want:    IntentWorkStress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackIntent(tt.message))
		})
	}
}

func TestFallbackIntentDeterministic(t *testing.T) {
	message := "I have an exam tomorrow and I'm anxious"
	first := FallbackIntent(message)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, FallbackIntent(message))
	}
}
