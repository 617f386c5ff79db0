package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAll_CoversVocabulary(t *testing.T) {
	all := All()
	assert.Len(t, all, 7)
	for _, m := range all {
		assert.True(t, IsValid(m), "mood %s", m)
		assert.NotEmpty(t, m.DisplayName())
		assert.NotEmpty(t, m.Emoji())
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(Happy))
	assert.True(t, IsValid(Neutral))
	assert.False(t, IsValid(Mood("bored")))
	assert.False(t, IsValid(Mood("")))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		label string
		want  Mood
		known bool
	}{
		{"happy", Happy, true},
		{"Happy", Happy, true},
		{"HAPPINESS", Happy, true},
		{"joy", Happy, true},
		{"anger", Angry, true},
		{"surprised", Surprise, true},
		{"fearful", Fear, true},
		{"Sadness", Sad, true},
		{"contempt", Disgust, true},
		{"calm", Neutral, true},
		{"neutral", Neutral, true},
		{"bored", Fallback, false},
		{"", Fallback, false},
		{"!!!", Fallback, false},
	}

	for _, tt := range tests {
		got, known := Normalize(tt.label)
		assert.Equal(t, tt.want, got, "Normalize(%q)", tt.label)
		assert.Equal(t, tt.known, known, "Normalize(%q) known", tt.label)
	}
}

func TestRelatedTags_ReturnsCopy(t *testing.T) {
	tags := Happy.RelatedTags()
	assert.Contains(t, tags, "joy")

	tags[0] = "mutated"
	assert.NotContains(t, Happy.RelatedTags(), "mutated")
}

func TestRelatedTags_UnknownMoodIsNil(t *testing.T) {
	assert.Nil(t, Mood("bored").RelatedTags())
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Stress Relief", "stress-relief"},
		{"Self_Care", "self-care"},
		{"  Cozy!  ", "cozy"},
		{"Café", "cafe"},
		{"UPPER", "upper"},
		{"a--b", "a-b"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTag(tt.in), "NormalizeTag(%q)", tt.in)
	}
}

func TestNormalizeTags_DedupesPreservingOrder(t *testing.T) {
	got := NormalizeTags([]string{"Cozy", "comfort", "cozy", "", "Comfort", "warm"})
	assert.Equal(t, []string{"cozy", "comfort", "warm"}, got)
}

func TestConfidenceLevel(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{0.95, "Very High"},
		{0.9, "Very High"},
		{0.75, "High"},
		{0.5, "Medium"},
		{0.3, "Low"},
		{0.1, "Very Low"},
		{0, "Very Low"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceLevel(tt.confidence), "confidence %v", tt.confidence)
	}
}
