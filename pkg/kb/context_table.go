package kb

import "luma-chat-be/pkg/nlu"

// contextTable maps intent labels to curated advisory texts. It backs the
// retrieval step whenever the vector index is empty or the embedding call
// fails, so a chat turn always carries some steering context.
var contextTable = map[string]string{
	nlu.IntentWorkStress:       "Retrieved technique: 'The 5-4-3-2-1 grounding technique. Focus on five things you see, four things you feel, three things you hear, two things you smell, and one thing you taste. This helps anchor you to the present moment.'",
	nlu.IntentStudyAnxiety:     "Retrieved technique: 'The Pomodoro Technique. Break your study time into 25-minute focused intervals, followed by a 5-minute break. This makes the task less daunting.'",
	nlu.IntentFeelingDepressed: "Retrieved affirmation: 'It's okay to not be okay. Your feelings are valid. Remind the user to be kind to themselves and that this feeling will pass.'",
	nlu.IntentGeneralGreeting:  "Retrieved context: 'User is starting the conversation. Be warm and welcoming. Ask an open-ended question about how they are feeling today.'",
	nlu.IntentAffirm:           "Retrieved context: 'The user has agreed to a suggestion. Be encouraging and proceed with the next step.'",
	nlu.IntentDeny:             "Retrieved context: 'The user has declined a suggestion. Be gentle, validate their choice, and offer an alternative, like just talking.'",
}

const defaultContext = "Retrieved context: 'Acknowledge the user's statement and ask a gentle, clarifying question.'"

// StaticContext returns the curated text for an intent label.
func StaticContext(intent string) string {
	if text, ok := contextTable[intent]; ok {
		return text
	}
	return defaultContext
}
