package llm

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
)

// ProviderScript names replies produced by the keyword script.
const ProviderScript = "script"

var crisisKeywords = []string{
	"suicide", "suicidal", "kill myself", "end my life", "want to die",
	"self-harm", "self harm", "hurt myself", "no reason to live",
}

const crisisReply = "I'm really sorry you're feeling this way, and I'm glad you told me. " +
	"You deserve support right now from someone who can help. " +
	"If you are in immediate danger, please call your local emergency number. " +
	"In the US you can call or text 988 to reach the Suicide & Crisis Lifeline, any time. " +
	"Would you be willing to reach out to someone you trust while we keep talking?"

var topicReplies = map[string]string{
	"anxiety": "Anxiety can feel overwhelming. Try slowing your breathing for a moment: in for four counts, hold for four, out for six. " +
		"What do you notice in your body right now?",
	"depression": "Thank you for sharing that. Low days are heavy, and reaching out takes effort. " +
		"Is there one small thing that felt even slightly manageable today?",
	"stress": "It sounds like a lot is on your plate. Sometimes naming the single most pressing thing makes the rest feel lighter. " +
		"What's weighing on you most?",
	"sleep": "Sleep affects everything else. A steady wind-down routine and a consistent wake time often help. " +
		"How have your nights been lately?",
	"work": "Work can take up a lot of headspace. " +
		"What part of it has been hardest for you this week?",
	"relationships": "The people around us shape how we feel. " +
		"Would you like to talk through what happened?",
	"medication": "Keeping track of medication matters, and any side effects or concerns are worth raising with your prescriber. " +
		"How have you been feeling on it?",
	"therapy": "It's great that therapy is part of your support. " +
		"Is there something from a recent session you'd like to reflect on?",
}

var greetings = []string{"hello", "hi", "hey", "good morning", "good evening"}

const greetingReply = "Hi, it's good to hear from you. How are you feeling today?"

const defaultReply = "Thank you for sharing that with me. " +
	"I'm here to listen. Can you tell me a bit more about how that has been affecting you?"

// Script answers from fixed replies. It never fails.
type Script struct{}

func NewScript() *Script { return &Script{} }

func (s *Script) Name() string { return ProviderScript }

// Respond checks crisis keywords first, then the first detected topic with a
// scripted reply, then greetings.
func (s *Script) Respond(_ context.Context, prompt Prompt) (string, error) {
	if IsCrisis(prompt.Message) {
		return crisisReply, nil
	}
	for _, topic := range prompt.Topics {
		if reply, ok := topicReplies[topic]; ok {
			return reply, nil
		}
	}

	folded := strings.TrimSpace(cases.Fold().String(prompt.Message))
	for _, g := range greetings {
		if folded == g || strings.HasPrefix(folded, g+" ") || strings.HasPrefix(folded, g+",") || strings.HasPrefix(folded, g+"!") {
			return greetingReply, nil
		}
	}
	return defaultReply, nil
}

// IsCrisis reports whether message mentions self-harm or suicide. Such
// messages always get the scripted crisis reply.
func IsCrisis(message string) bool {
	folded := cases.Fold().String(message)
	for _, k := range crisisKeywords {
		if strings.Contains(folded, k) {
			return true
		}
	}
	return false
}
