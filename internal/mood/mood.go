// Package mood defines the emotion vocabulary, label normalization, and
// the tag metadata attached to each mood.
package mood

// Mood is a canonical emotion label.
type Mood string

// The fixed vocabulary. Classifier output is normalized into this set.
const (
	Angry    Mood = "angry"
	Disgust  Mood = "disgust"
	Fear     Mood = "fear"
	Happy    Mood = "happy"
	Sad      Mood = "sad"
	Surprise Mood = "surprise"
	Neutral  Mood = "neutral"
)

// Fallback is the mood reported when no usable face or signal exists.
const Fallback = Neutral

// All returns the vocabulary in stable display order.
func All() []Mood {
	return []Mood{Happy, Sad, Angry, Surprise, Fear, Disgust, Neutral}
}

// IsValid reports whether m is a canonical label.
func IsValid(m Mood) bool {
	switch m {
	case Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (m Mood) String() string { return string(m) }

// DisplayName returns the human-readable name.
func (m Mood) DisplayName() string {
	if name, ok := displayNames[m]; ok {
		return name
	}
	return string(m)
}

// Emoji returns the emoji shown next to the mood in the UI.
func (m Mood) Emoji() string {
	if e, ok := emojis[m]; ok {
		return e
	}
	return "😐"
}

// RelatedTags returns the catalog tags associated with a mood. They feed
// seeding, display, and playlist keywords; recommendation matching compares
// the label itself against product tags.
func (m Mood) RelatedTags() []string {
	tags, ok := relatedTags[m]
	if !ok {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

var displayNames = map[Mood]string{
	Angry:    "Angry",
	Disgust:  "Disgust",
	Fear:     "Fear",
	Happy:    "Happy",
	Sad:      "Sad",
	Surprise: "Surprise",
	Neutral:  "Neutral",
}

var emojis = map[Mood]string{
	Angry:    "😠",
	Disgust:  "🤢",
	Fear:     "😨",
	Happy:    "😊",
	Sad:      "😢",
	Surprise: "😲",
	Neutral:  "😐",
}

var relatedTags = map[Mood][]string{
	Happy:    {"entertainment", "social", "celebration", "joy", "fun", "colorful"},
	Sad:      {"comfort", "cozy", "self-care", "healing", "soft", "warm"},
	Angry:    {"stress-relief", "physical", "intense", "powerful", "bold"},
	Surprise: {"unique", "innovative", "exciting", "novel", "creative"},
	Fear:     {"safety", "security", "protective", "calming", "reassuring"},
	Disgust:  {"cleansing", "fresh", "pure", "minimal", "detox"},
	Neutral:  {"practical", "everyday", "basic", "functional", "versatile"},
}
