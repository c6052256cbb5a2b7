package personality

import "strings"

// GoalType groups habits for tailored prompts.
type GoalType string

const (
	GoalFitness     GoalType = "fitness"
	GoalReading     GoalType = "reading"
	GoalMindfulness GoalType = "mindfulness"
	GoalWriting     GoalType = "writing"
	GoalGeneral     GoalType = "general"
)

var goalKeywords = []struct {
	goal  GoalType
	words []string
}{
	{GoalFitness, []string{"work", "exercise", "gym", "lift", "run", "cardio"}},
	{GoalReading, []string{"read", "book", "study"}},
	{GoalMindfulness, []string{"meditate", "mindful"}},
	{GoalWriting, []string{"write", "journal"}},
}

// ClassifyGoal picks the first goal whose keyword appears in text.
func ClassifyGoal(text string) GoalType {
	lower := strings.ToLower(text)
	for _, g := range goalKeywords {
		for _, w := range g.words {
			if strings.Contains(lower, w) {
				return g.goal
			}
		}
	}
	return GoalGeneral
}

var emojiKeywords = []struct {
	emoji string
	words []string
}{
	{"🏋️", []string{"work", "exercise", "gym", "lift"}},
	{"📚", []string{"read", "book", "study"}},
	{"🧘", []string{"meditate", "mindful"}},
	{"🏃", []string{"run", "jog", "cardio"}},
	{"✍️", []string{"write", "journal"}},
}

// Emoji decorates a task name in previews and lists.
func Emoji(task string) string {
	lower := strings.ToLower(task)
	for _, e := range emojiKeywords {
		for _, w := range e.words {
			if strings.Contains(lower, w) {
				return e.emoji
			}
		}
	}
	return "🎯"
}

var basicNames = map[string]bool{
	"john": true, "mike": true, "alex": true, "chris": true, "sam": true,
}

// IsBasicName reports whether a name earns a tease.
func IsBasicName(name string) bool {
	return basicNames[strings.ToLower(strings.TrimSpace(name))]
}
