package nlu

import "strings"

// Intent labels used by the keyword fallback and the context table.
const (
	IntentAffirm           = "affirm"
	IntentDeny             = "deny"
	IntentWorkStress       = "work_stress"
	IntentStudyAnxiety     = "study_anxiety"
	IntentFeelingDepressed = "feeling_depressed"
	IntentGeneralGreeting  = "general_greeting"
)

// keywordGroups are checked in order; the first group with a hit wins.
// Affirmation/denial come before the domain intents so a short "yes" in a
// longer sentence does not get re-routed by a later domain keyword.
var keywordGroups = []struct {
	intent   string
	keywords []string
}{
	{IntentAffirm, []string{"yes", "ok", "sure"}},
	{IntentDeny, []string{"no", "not really"}},
	{IntentWorkStress, []string{"job", "deadline", "work"}},
	{IntentStudyAnxiety, []string{"exam", "study"}},
	{IntentFeelingDepressed, []string{"sad", "lonely"}},
}

// FallbackIntent deterministically maps a message to an intent label.
// Used whenever the hosted classifier is unreachable or errors out.
func FallbackIntent(message string) string {
	lower := strings.ToLower(message)
	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.intent
			}
		}
	}
	return IntentGeneralGreeting
}
