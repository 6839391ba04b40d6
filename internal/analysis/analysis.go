// Package analysis classifies free-text chat messages with fixed keyword
// lists. Matching is by case-folded substring.
package analysis

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	TopicAnxiety       = "anxiety"
	TopicDepression    = "depression"
	TopicStress        = "stress"
	TopicSleep         = "sleep"
	TopicWork          = "work"
	TopicRelationships = "relationships"
	TopicMedication    = "medication"
	TopicTherapy       = "therapy"
)

const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

type topicKeywords struct {
	topic    string
	keywords []string
}

// topics is ordered; ExtractTopics reports matches in this order.
var topics = []topicKeywords{
	{TopicAnxiety, []string{"anxious", "anxiety", "panic", "worried", "worry", "nervous"}},
	{TopicDepression, []string{"depressed", "depression", "hopeless", "empty", "worthless"}},
	{TopicStress, []string{"stress", "overwhelmed", "pressure", "burnout", "burned out"}},
	{TopicSleep, []string{"sleep", "insomnia", "tired", "exhausted", "nightmare"}},
	{TopicWork, []string{"work", "job", "boss", "career", "deadline", "office"}},
	{TopicRelationships, []string{"relationship", "partner", "friend", "family", "lonely", "breakup"}},
	{TopicMedication, []string{"medication", "meds", "pill", "dose", "prescription"}},
	{TopicTherapy, []string{"therapy", "therapist", "counselor", "counseling", "psychiatrist"}},
}

var positiveWords = []string{
	"good", "great", "happy", "better", "calm", "grateful", "hopeful",
	"excited", "relaxed", "proud", "love", "joy", "peaceful", "okay",
}

var negativeWords = []string{
	"bad", "sad", "anxious", "angry", "tired", "stressed", "worse", "lonely",
	"hopeless", "scared", "upset", "depressed", "awful", "terrible",
}

// ExtractTopics returns each topic with at least one keyword in text.
func ExtractTopics(text string) []string {
	folded := fold(text)

	found := []string{}
	for _, t := range topics {
		if containsAny(folded, t.keywords) {
			found = append(found, t.topic)
		}
	}
	return found
}

// ClassifySentiment compares how many positive and negative words occur in
// text. Ties, including no matches, are neutral.
func ClassifySentiment(text string) string {
	folded := fold(text)

	positive := countMatches(folded, positiveWords)
	negative := countMatches(folded, negativeWords)

	switch {
	case positive > negative:
		return Positive
	case negative > positive:
		return Negative
	default:
		return Neutral
	}
}

func fold(s string) string {
	return cases.Fold().String(s)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func countMatches(s string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(s, w) {
			n++
		}
	}
	return n
}
