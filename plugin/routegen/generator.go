// Package routegen composes deterministic mock walk recommendations from the
// route template library, the city knowledge base and the mood extractor. It
// is the reply path when no live model credential is configured and the
// fallback after a live-call failure.
package routegen

import (
	"fmt"
	"strings"

	"github.com/moodroute/moodroute/plugin/cityknow"
	"github.com/moodroute/moodroute/plugin/mood"
)

// FollowUpInvite is the fixed one-line invitation appended to every reply.
const FollowUpInvite = "MoodRoute follow-up: share city + time + vibe, and I will build 3 city options for you."

// DefaultCityLabel is substituted when no city could be resolved at all.
const DefaultCityLabel = "your city"

// Input carries everything the generator needs. It is a pure function of
// these fields: same input, byte-identical output.
type Input struct {
	Message string
	// City is the resolved knowledge record, nil when no grounding exists.
	City *cityknow.CityRecord
	// DefaultCity is the user's profile fallback city, "" when unset.
	DefaultCity string
	// HasAttachment is set when the request carried an image attachment.
	HasAttachment bool
}

type cannedAnswer struct {
	Terms  []string
	Answer string
}

var cannedAnswers = []cannedAnswer{
	{
		Terms:  []string{"hello", "hi", "привет", "здравств"},
		Answer: "Hi. I can chat on general topics and keep it short and useful.",
	},
	{
		Terms:  []string{"how are you", "как дела"},
		Answer: "I am ready to help and currently focused on practical, fast answers.",
	},
	{
		Terms:  []string{"thanks", "thank you", "спасибо"},
		Answer: "You are welcome.",
	},
	{
		Terms:  []string{"weather", "погод"},
		Answer: "For precise weather I recommend checking a live weather service for your city and time window.",
	},
	{
		Terms:  []string{"movie", "film", "book", "music", "фильм", "книга", "музык"},
		Answer: "I can suggest options based on your mood if you tell me genre and energy level.",
	},
}

const genericDeflection = "I can answer non-city questions briefly, and then switch back to route planning whenever you want."

// BuildMockReply produces either a clarification request or a 3-option walk
// recommendation, entirely deterministically.
func BuildMockReply(in Input) string {
	city := resolveCityName(in)
	routeIntent := mood.IsLikelyRouteIntent(in.Message) || in.HasAttachment
	detected := mood.DetectMood(in.Message)
	missing := missingWithProfile(in)

	if !routeIntent {
		return appendInvite(generalAnswer(in.Message))
	}

	if len(missing) >= 2 {
		return appendInvite(buildClarification(in))
	}

	durationHint := mood.ExtractDuration(in.Message)
	seed := HashSeed(strings.ToLower(in.Message) + "|" + city + "|" + string(detected))
	options := PickRoutes(TemplatesFor(detected), seed)
	anchors := PickAnchors(in.City, seed)

	lines := []string{
		fmt.Sprintf("MoodRoute draft for %s (%s vibe):", city, detected),
		"",
	}
	for i, option := range options {
		duration := option.Duration
		if durationHint != "" && i == 0 {
			duration = durationHint + " target"
		}
		lines = append(lines,
			fmt.Sprintf("Option %d: %s", i+1, option.Title),
			"- Duration: "+duration,
			"- Vibe tags: "+strings.Join(option.Tags, ", "),
			"- Route summary: "+strings.ReplaceAll(option.Summary, "{city}", city),
		)
		if i < len(anchors) {
			lines = append(lines, fmt.Sprintf("- Suggested local anchor: %s (%s)", anchors[i].Name, anchors[i].Kind))
		}
		lines = append(lines, "- Bonus tip: "+option.Bonus, "")
	}

	if len(missing) == 1 {
		lines = append(lines, fmt.Sprintf("Assumption used: missing %q. Tell me that detail and I will refine all 3 options.", missing[0]))
	} else {
		lines = append(lines, "Tell me weather + budget, and I will optimize one option into a precise step-by-step route.")
	}

	if in.HasAttachment {
		lines = append(lines, "Photo note: in mock mode image analysis is limited. With live OpenAI mode I can analyze the photo directly.")
	}

	return appendInvite(strings.Join(lines, "\n"))
}

func resolveCityName(in Input) string {
	if in.City != nil {
		return in.City.City
	}
	if extracted := mood.ExtractCity(in.Message); extracted != "" {
		return extracted
	}
	if city := strings.TrimSpace(in.DefaultCity); city != "" {
		return city
	}
	return DefaultCityLabel
}

// missingWithProfile drops "city" from the missing list when the profile
// provides a default city, since the generator can fall back to it.
func missingWithProfile(in Input) []string {
	missing := mood.MissingConstraints(in.Message)
	if strings.TrimSpace(in.DefaultCity) == "" {
		return missing
	}
	filtered := missing[:0]
	for _, item := range missing {
		if item != mood.ConstraintCity {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func buildClarification(in Input) string {
	currentCity := mood.ExtractCity(in.Message)
	if currentCity == "" {
		currentCity = strings.TrimSpace(in.DefaultCity)
	}
	if currentCity == "" {
		currentCity = "not provided"
	}
	currentDuration := mood.ExtractDuration(in.Message)
	if currentDuration == "" {
		currentDuration = "not provided"
	}

	lines := []string{
		"Before I lock the route, I need a few details:",
		fmt.Sprintf("1) City (currently: %s)", currentCity),
		fmt.Sprintf("2) Time available (currently: %s)", currentDuration),
		"3) Weather preference (sun/rain/indoor-friendly)",
		"4) Crowd tolerance (quiet / medium / lively)",
		"5) Budget (free / low / flexible)",
		"",
		`Reply in one line, for example: "Seattle, 2 hours, light rain okay, low crowds, under $20, cozy vibe."`,
	}
	if in.HasAttachment {
		lines = append(lines,
			"",
			"I see an attached photo. In mock mode I cannot inspect pixels deeply, but I can still use your description.",
		)
	}
	return strings.Join(lines, "\n")
}

func generalAnswer(message string) string {
	text := strings.ToLower(message)
	for _, canned := range cannedAnswers {
		for _, term := range canned.Terms {
			if strings.Contains(text, term) {
				return canned.Answer
			}
		}
	}
	return genericDeflection
}

func appendInvite(text string) string {
	return text + "\n\n" + FollowUpInvite
}
