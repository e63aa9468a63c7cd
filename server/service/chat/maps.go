package chat

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/moodroute/moodroute/plugin/cityknow"
	"github.com/moodroute/moodroute/plugin/mood"
	"github.com/moodroute/moodroute/plugin/routegen"
	"github.com/moodroute/moodroute/store"
)

// MapSuggestion is one assistant-suggested destination with ready-to-open
// Google Maps links.
type MapSuggestion struct {
	Title    string `json:"title"`
	PlaceURL string `json:"placeUrl"`
	RouteURL string `json:"routeUrl"`
}

var (
	markdownLinkPattern = regexp.MustCompile(`\[([^\]\n]{1,160})\]\((https?://[^\s)]+)\)`)
	rawURLPattern       = regexp.MustCompile(`(?i)https?://[^\s<>"')]+`)
	multiSpacePattern   = regexp.MustCompile(`\s{2,}`)
	optionTitlePattern  = regexp.MustCompile(`(?i)Option\s+\d+\s*:\s*(.+)`)
	optionOnePattern    = regexp.MustCompile(`(?i)\bOption 1\b`)
)

// StripRawURLs removes every URL from the assistant text: markdown links
// collapse to their label and bare URLs are cut out. Lines left empty are
// dropped. The result contains no URLs, so applying it twice is a no-op.
func StripRawURLs(reply string) string {
	text := strings.TrimSpace(reply)
	if text == "" {
		return ""
	}

	text = markdownLinkPattern.ReplaceAllString(text, "$1")

	lines := []string{}
	for _, line := range regexp.MustCompile(`\r?\n`).Split(text, -1) {
		line = rawURLPattern.ReplaceAllString(line, "")
		line = multiSpacePattern.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// BuildMapsSearchURL returns a Google Maps place search link.
func BuildMapsSearchURL(query string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(strings.TrimSpace(query))
}

// BuildMapsWalkingURL returns a Google Maps walking-directions link from
// origin to destination with up to three waypoints.
func BuildMapsWalkingURL(origin, destination string, waypoints []string) string {
	params := url.Values{}
	params.Set("api", "1")
	params.Set("origin", strings.TrimSpace(origin))
	params.Set("destination", strings.TrimSpace(destination))
	params.Set("travelmode", "walking")

	clean := []string{}
	for _, waypoint := range waypoints {
		if waypoint = strings.TrimSpace(waypoint); waypoint != "" {
			clean = append(clean, waypoint)
		}
		if len(clean) == 3 {
			break
		}
	}
	if len(clean) > 0 {
		params.Set("waypoints", strings.Join(clean, "|"))
	}

	return "https://www.google.com/maps/dir/?" + params.Encode()
}

// anchorsMentionedInReply returns known places whose names occur in the
// reply text, at most three.
func anchorsMentionedInReply(reply string, record *cityknow.CityRecord) []cityknow.PlaceRecord {
	if record == nil || len(record.Places) == 0 {
		return nil
	}
	normalizedReply := strings.ToLower(reply)
	if normalizedReply == "" {
		return nil
	}

	anchors := []cityknow.PlaceRecord{}
	for _, place := range record.Places {
		if strings.Contains(normalizedReply, strings.ToLower(place.Name)) {
			anchors = append(anchors, place)
			if len(anchors) == 3 {
				break
			}
		}
	}
	return anchors
}

// optionTitlesFromReply extracts up to three "Option N: title" headings.
func optionTitlesFromReply(reply string) []string {
	titles := []string{}
	for _, match := range optionTitlePattern.FindAllStringSubmatch(reply, -1) {
		if title := strings.TrimSpace(match[1]); title != "" {
			titles = append(titles, title)
			if len(titles) == 3 {
				break
			}
		}
	}
	return titles
}

// BuildMapsSuggestions derives map links for a reply. Grounded city anchors
// win; when the reply names none, seeded anchors are used; without any city
// knowledge the option titles themselves become search queries. Replies with
// no route intent and no resolvable city produce nothing.
func BuildMapsSuggestions(message, reply string, record *cityknow.CityRecord, userProfile *store.UserProfile) []MapSuggestion {
	routeIntent := mood.IsLikelyRouteIntent(message) || optionOnePattern.MatchString(reply)
	if !routeIntent {
		return nil
	}

	city := ""
	if record != nil {
		city = record.City
	} else if extracted := mood.ExtractCity(message); extracted != "" {
		city = extracted
	} else if userProfile != nil {
		city = strings.TrimSpace(userProfile.DefaultCity)
	}
	if city == "" {
		return nil
	}

	anchors := anchorsMentionedInReply(reply, record)
	if len(anchors) == 0 && record != nil {
		seed := routegen.HashSeed(city + "|" + strings.ToLower(message))
		anchors = routegen.PickAnchors(record, seed)
	}
	if len(anchors) > 0 {
		if len(anchors) > 3 {
			anchors = anchors[:3]
		}
		suggestions := make([]MapSuggestion, 0, len(anchors))
		for i, place := range anchors {
			placeQuery := fmt.Sprintf("%s, %s, Norway", place.Name, city)
			routeOrigin := city + " city center"
			if i > 0 {
				routeOrigin = fmt.Sprintf("%s, %s, Norway", anchors[i-1].Name, city)
			}
			suggestions = append(suggestions, MapSuggestion{
				Title:    fmt.Sprintf("%s (%s)", place.Name, place.Kind),
				PlaceURL: BuildMapsSearchURL(placeQuery),
				RouteURL: BuildMapsWalkingURL(routeOrigin, placeQuery, nil),
			})
		}
		return suggestions
	}

	titles := optionTitlesFromReply(reply)
	if len(titles) == 0 {
		return nil
	}
	suggestions := make([]MapSuggestion, 0, len(titles))
	for _, title := range titles {
		placeQuery := title + ", " + city
		suggestions = append(suggestions, MapSuggestion{
			Title:    title,
			PlaceURL: BuildMapsSearchURL(placeQuery),
			RouteURL: BuildMapsWalkingURL(city+" city center", placeQuery, nil),
		})
	}
	return suggestions
}

// AppendMapsLinks attaches a "Google Maps links:" section to the reply,
// keeping the total within three times the per-message limit. When the full
// section does not fit it degrades to a single walking-route link, and as a
// last resort hard-truncates the reply.
func AppendMapsLinks(reply string, suggestions []MapSuggestion, maxMessageLength int) string {
	baseReply := strings.TrimSpace(reply)
	if baseReply == "" {
		return ""
	}
	if len(suggestions) == 0 {
		return baseReply
	}

	lines := []string{"", "Google Maps links:"}
	for i, suggestion := range suggestions {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, suggestion.Title))
		lines = append(lines, fmt.Sprintf("- [Open place](%s)", suggestion.PlaceURL))
		lines = append(lines, fmt.Sprintf("- [Open walking route](%s)", suggestion.RouteURL))
	}

	enriched := baseReply + "\n" + strings.Join(lines, "\n")
	safeLimit := maxMessageLength * 3
	if utf8.RuneCountInString(enriched) <= safeLimit {
		return enriched
	}

	fallback := fmt.Sprintf("%s\n\nGoogle Maps:\n- [Open walking route](%s)", baseReply, suggestions[0].RouteURL)
	if utf8.RuneCountInString(fallback) <= safeLimit {
		return fallback
	}

	return truncateRunes(baseReply, safeLimit)
}
