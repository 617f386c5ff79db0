package mood

// aliases maps label variants produced by classifiers and user input to
// canonical moods. Keys are normalized slugs.
var aliases = map[string]Mood{
	"happiness": Happy,
	"joy":       Happy,
	"joyful":    Happy,
	"smile":     Happy,
	"anger":     Angry,
	"mad":       Angry,
	"rage":      Angry,
	"sadness":   Sad,
	"unhappy":   Sad,
	"sorrow":    Sad,
	"surprised": Surprise,
	"shock":     Surprise,
	"shocked":   Surprise,
	"fearful":   Fear,
	"afraid":    Fear,
	"scared":    Fear,
	"anxious":   Fear,
	"disgusted": Disgust,
	"contempt":  Disgust,
	"calm":      Neutral,
	"none":      Neutral,
}

// Normalize resolves a raw label to a canonical mood. The second return
// reports whether the label was recognized; unrecognized labels come back
// as the fallback mood.
func Normalize(label string) (Mood, bool) {
	slug := NormalizeTag(label)
	if slug == "" {
		return Fallback, false
	}
	if m := Mood(slug); IsValid(m) {
		return m, true
	}
	if m, ok := aliases[slug]; ok {
		return m, true
	}
	return Fallback, false
}
