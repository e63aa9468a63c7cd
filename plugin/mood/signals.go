package mood

// moodSignal pairs a mood key with the substrings that select it. Keeping the
// heuristics as data rather than inline conditionals makes them testable and
// easy to localize.
type moodSignal struct {
	Mood  Mood
	Terms []string
}

// Scan order matters: first match wins, cozy is the fallback.
var moodSignals = []moodSignal{
	{MoodQuiet, []string{"quiet", "calm", "peaceful", "silent", "тихий", "спокойн", "медленн"}},
	{MoodGothic, []string{"gothic", "dark", "moody", "мрачн", "готик"}},
	{MoodEnergetic, []string{"energetic", "active", "hype", "fast", "бодр", "энерг"}},
	{MoodWeird, []string{"weird", "quirky", "odd", "strange", "странн", "необыч"}},
}

var weatherTerms = []string{
	"sunny", "rain", "rainy", "cloud", "cloudy", "snow", "wind", "weather",
	"дожд", "снег", "ветер", "погод", "солнеч", "пасмур",
}

var crowdTerms = []string{
	"crowd", "crowds", "busy", "quiet street", "low crowd",
	"толп", "людно", "безлюд", "мало людей", "тихо",
}

var budgetTerms = []string{
	"budget", "usd", "cheap", "free", "expensive",
	"дорог", "бюджет", "дешев", "бесплат", "недорог",
}

var routeIntentTerms = []string{
	"route", "walk", "city", "place", "trip", "mood",
	"маршрут", "прогул", "город", "места", "вайб",
}
