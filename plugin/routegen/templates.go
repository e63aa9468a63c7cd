package routegen

import "github.com/moodroute/moodroute/plugin/mood"

// RouteTemplate is a parameterized narrative walk template. Summary always
// contains a literal {city} placeholder that the generator substitutes.
type RouteTemplate struct {
	Title    string
	Duration string
	Tags     []string
	Summary  string
	Bonus    string
}

// routeLibrary groups five templates per mood key.
var routeLibrary = map[mood.Mood][]RouteTemplate{
	mood.MoodQuiet: {
		{
			Title:    "Riverside Slow Loop",
			Duration: "75-100 min",
			Tags:     []string{"quiet", "green", "reset"},
			Summary:  "Start from a calm street in {city}, walk toward the nearest river/canal embankment, then return through tree-lined backstreets.",
			Bonus:    "Bring a warm drink and do a 5-minute bench pause halfway.",
		},
		{
			Title:    "Library Courtyard Circuit",
			Duration: "60-85 min",
			Tags:     []string{"quiet", "bookish", "low-crowd"},
			Summary:  "Walk from a central library or old reading hall in {city} toward inner courtyards and side lanes with minimal traffic.",
			Bonus:    "Pick one place to read a single page and continue.",
		},
		{
			Title:    "Morning Market Edges",
			Duration: "55-75 min",
			Tags:     []string{"soft", "local", "observational"},
			Summary:  "Skirt the quieter outer edges of a neighborhood market in {city} instead of its center, then move into residential alleys.",
			Bonus:    "Grab one seasonal fruit as your route marker.",
		},
		{
			Title:    "Park-to-Park Breather",
			Duration: "80-110 min",
			Tags:     []string{"nature", "gentle", "decompress"},
			Summary:  "Connect two small parks in {city} using the least busy streets, with one viewpoint stop between them.",
			Bonus:    "Take 3 photos of textures (stone, leaves, windows).",
		},
		{
			Title:    "Canal Bench Sequence",
			Duration: "65-90 min",
			Tags:     []string{"minimal", "still", "mindful"},
			Summary:  "Build a route in {city} around a canal or long boulevard with three planned bench stops and low social friction.",
			Bonus:    "Use a 4-7-8 breathing cycle during the second stop.",
		},
	},
	mood.MoodGothic: {
		{
			Title:    "Old Stone Shadows",
			Duration: "80-110 min",
			Tags:     []string{"gothic", "historic", "dramatic"},
			Summary:  "Start at an old church or civic building in {city}, then trace narrow streets with arches, ironwork, and weathered facades.",
			Bonus:    "Time it for late afternoon to catch long shadows.",
		},
		{
			Title:    "Lantern Alley Trail",
			Duration: "70-95 min",
			Tags:     []string{"moody", "noir", "atmospheric"},
			Summary:  "Move through older alley networks in {city}, prioritizing routes with stone walls, lantern lighting, and hidden courtyards.",
			Bonus:    "Listen to one instrumental track per segment.",
		},
		{
			Title:    "Cathedral to Clocktower",
			Duration: "90-120 min",
			Tags:     []string{"architecture", "cinematic", "brooding"},
			Summary:  "Connect two iconic historic landmarks in {city}, walking the oldest streets between them rather than the fastest roads.",
			Bonus:    "Pause at a high point for a skyline contrast shot.",
		},
		{
			Title:    "Rainy Brick Loop",
			Duration: "65-90 min",
			Tags:     []string{"gothic", "cozy-dark", "reflective"},
			Summary:  "Take a short loop through brick-heavy districts in {city} and stop at an old-fashioned cafe with dim interior light.",
			Bonus:    "Bring a dark umbrella for weather-proof mood continuity.",
		},
		{
			Title:    "Museum Quarter Twilight",
			Duration: "85-105 min",
			Tags:     []string{"cultural", "shadowy", "slow"},
			Summary:  "Walk around a museum quarter in {city} at twilight, using side streets with statues, stone stairways, and quiet squares.",
			Bonus:    "End near a bookstore that stays open late.",
		},
	},
	mood.MoodEnergetic: {
		{
			Title:    "Street Beats Sprint-Walk",
			Duration: "50-70 min",
			Tags:     []string{"energetic", "urban", "fast"},
			Summary:  "Create a brisk zig-zag route across lively blocks in {city}, mixing plazas, murals, and short uphill bursts.",
			Bonus:    "Use 3 x 5-minute power-walk intervals.",
		},
		{
			Title:    "Bridge and Viewpoint Push",
			Duration: "75-100 min",
			Tags:     []string{"active", "views", "challenge"},
			Summary:  "Cross at least one bridge in {city}, then climb to a viewpoint using stairs instead of flat roads.",
			Bonus:    "Finish with a cold sparkling drink and stretch.",
		},
		{
			Title:    "Park Circuit Intervals",
			Duration: "60-85 min",
			Tags:     []string{"fitness", "open-air", "momentum"},
			Summary:  "Link two busy parks in {city}, alternating relaxed walking and high-tempo segments every 10 minutes.",
			Bonus:    "Track step count and beat your weekly average.",
		},
		{
			Title:    "Cafe-Hopper Dash",
			Duration: "65-90 min",
			Tags:     []string{"social", "trendy", "moving"},
			Summary:  "Route through 3 compact cafe zones in {city}, spending no more than 8 minutes per stop to keep the flow high.",
			Bonus:    "Try one new drink style you never order.",
		},
		{
			Title:    "Market Pulse Route",
			Duration: "70-95 min",
			Tags:     []string{"busy", "colorful", "high-energy"},
			Summary:  "Pass through a high-activity market area in {city}, then cut through adjacent art streets and transit hubs.",
			Bonus:    "Shoot a 30-second route recap video at the end.",
		},
	},
	mood.MoodCozy: {
		{
			Title:    "Warm Lights Meander",
			Duration: "65-90 min",
			Tags:     []string{"cozy", "warm", "slow"},
			Summary:  "Start from a neighborhood bakery in {city}, walk low-traffic streets with soft evening lighting, and end at a tea spot.",
			Bonus:    "Choose one window-lit street for a slower final 10 minutes.",
		},
		{
			Title:    "Bookstore and Bakery Loop",
			Duration: "55-80 min",
			Tags:     []string{"soft", "comfort", "casual"},
			Summary:  "Connect an indie bookstore and a bakery in {city}, prioritizing side streets and small plazas over avenues.",
			Bonus:    "Bring a tote bag and pick one snack for the walk.",
		},
		{
			Title:    "Rain-Friendly Cozy Circuit",
			Duration: "60-85 min",
			Tags:     []string{"cozy", "rain-safe", "indoors-breaks"},
			Summary:  "Alternate short outside segments in {city} with indoor pauses in arcades, cafes, or covered passages.",
			Bonus:    "Use waterproof shoes and keep route segments under 12 minutes.",
		},
		{
			Title:    "Lantern Courtyard Drift",
			Duration: "70-95 min",
			Tags:     []string{"intimate", "evening", "gentle"},
			Summary:  "Wander between older courtyard blocks in {city}, taking the most human-scale streets with less car noise.",
			Bonus:    "End at a cafe with visible kitchen or pastry counter.",
		},
		{
			Title:    "Canal Cafe Pairing",
			Duration: "75-105 min",
			Tags:     []string{"cozy", "waterfront", "calm"},
			Summary:  "Walk a canal-side route in {city} with one midpoint cocoa/coffee stop and a seated sunset finish.",
			Bonus:    "Pack a light scarf to stay comfortable after dusk.",
		},
	},
	mood.MoodWeird: {
		{
			Title:    "Oddities and Alley Art",
			Duration: "70-95 min",
			Tags:     []string{"weird", "creative", "unexpected"},
			Summary:  "Build a route in {city} that hits eccentric storefronts, murals, tiny museums, and unusual side alleys.",
			Bonus:    "Collect 3 'strangest thing I saw' notes on your phone.",
		},
		{
			Title:    "Curio Hunt Walk",
			Duration: "65-90 min",
			Tags:     []string{"quirky", "playful", "discovery"},
			Summary:  "Start near a flea/antique zone in {city}, then detour to unusual architecture details and novelty shops.",
			Bonus:    "Set a tiny budget challenge: find one item under $10.",
		},
		{
			Title:    "Neon Backstreet Drift",
			Duration: "75-100 min",
			Tags:     []string{"night", "experimental", "visual"},
			Summary:  "In {city}, move through mixed-use blocks with neon signage, retro bars, and hidden passageways.",
			Bonus:    "Photograph one reflection and one strange shadow.",
		},
		{
			Title:    "Micro-Museum Chain",
			Duration: "80-110 min",
			Tags:     []string{"offbeat", "curious", "cultural"},
			Summary:  "Connect 2-3 niche galleries or micro-museums in {city}, using routes that avoid mainstream boulevards.",
			Bonus:    "Ask one staff member for a local odd-spot recommendation.",
		},
		{
			Title:    "Urban Myth Route",
			Duration: "85-120 min",
			Tags:     []string{"story-driven", "mysterious", "quirky"},
			Summary:  "Trace places in {city} tied to local legends, unusual statues, or odd historical anecdotes.",
			Bonus:    "End with a themed drink and write your own mini-urban myth.",
		},
	},
}

// TemplatesFor returns the template set for a mood, falling back to cozy so
// the generator stays total even for an unknown key.
func TemplatesFor(m mood.Mood) []RouteTemplate {
	if templates, ok := routeLibrary[m]; ok {
		return templates
	}
	return routeLibrary[mood.MoodCozy]
}
