package cityknow

// Curated walkable anchors for the Norwegian cities the assistant knows.
var norwayCities = []*CityRecord{
	{
		City:    "Hamar",
		County:  "Innlandet",
		Aliases: []string{"hamar"},
		Places: []PlaceRecord{
			{Name: "Domkirkeodden", Kind: "open-air museum and cathedral ruins"},
			{Name: "Mjosa lakeside promenade", Kind: "waterfront walking route"},
			{Name: "Koigen", Kind: "lakefront park and event space"},
			{Name: "Ankerskogen", Kind: "recreation and wellness complex"},
			{Name: "Hamar kulturhus", Kind: "culture house and performance venue"},
		},
	},
	{
		City:    "Oslo",
		County:  "Oslo",
		Aliases: []string{"oslo"},
		Places: []PlaceRecord{
			{Name: "Akershus Fortress", Kind: "historic fortress area"},
			{Name: "Oslo Opera House", Kind: "waterfront architecture landmark"},
			{Name: "Vigeland Park", Kind: "sculpture park"},
			{Name: "Aker Brygge", Kind: "harbor promenade and cafes"},
			{Name: "Ekebergparken", Kind: "hillside sculpture park and viewpoints"},
		},
	},
	{
		City:    "Bergen",
		County:  "Vestland",
		Aliases: []string{"bergen"},
		Places: []PlaceRecord{
			{Name: "Bryggen", Kind: "historic hanseatic wharf district"},
			{Name: "Floyen", Kind: "hill viewpoint and walking zone"},
			{Name: "Fish Market", Kind: "central harbor market area"},
			{Name: "Nordnes Park", Kind: "coastal neighborhood park"},
			{Name: "KODE museums area", Kind: "art and culture district"},
		},
	},
	{
		City:    "Trondheim",
		County:  "Trondelag",
		Aliases: []string{"trondheim"},
		Places: []PlaceRecord{
			{Name: "Nidaros Cathedral", Kind: "major gothic cathedral"},
			{Name: "Bakklandet", Kind: "historic riverside neighborhood"},
			{Name: "Kristiansten Fortress", Kind: "hilltop fortress viewpoint"},
			{Name: "Nidelva riverside paths", Kind: "walkable river loop"},
			{Name: "Rockheim district", Kind: "music museum and harbor area"},
		},
	},
	{
		City:    "Stavanger",
		County:  "Rogaland",
		Aliases: []string{"stavanger"},
		Places: []PlaceRecord{
			{Name: "Gamle Stavanger", Kind: "old town with wooden houses"},
			{Name: "Ovre Holmegate", Kind: "colorful street and cafes"},
			{Name: "Vagen harbor", Kind: "waterfront walk zone"},
			{Name: "Mosvatnet", Kind: "urban lake loop"},
			{Name: "Norwegian Petroleum Museum", Kind: "harbor museum stop"},
		},
	},
	{
		City:    "Tromso",
		County:  "Troms",
		Aliases: []string{"tromso", "tromsoe"},
		Places: []PlaceRecord{
			{Name: "Arctic Cathedral", Kind: "iconic modern church"},
			{Name: "Fjellheisen cable car area", Kind: "panoramic viewpoint"},
			{Name: "Polaria", Kind: "arctic-themed science center"},
			{Name: "Telegrafbukta", Kind: "coastal beach and walking area"},
			{Name: "Prestvannet", Kind: "nature reserve loop"},
		},
	},
	{
		City:    "Kristiansand",
		County:  "Agder",
		Aliases: []string{"kristiansand"},
		Places: []PlaceRecord{
			{Name: "Posebyen", Kind: "old wooden-house quarter"},
			{Name: "Bystranda", Kind: "city beach promenade"},
			{Name: "Fiskebrygga", Kind: "harbor food and walk zone"},
			{Name: "Ravnedalen Park", Kind: "green valley park"},
			{Name: "Odderoya", Kind: "coastal peninsula with trails"},
		},
	},
	{
		City:    "Alesund",
		County:  "More og Romsdal",
		Aliases: []string{"alesund", "aalesund"},
		Places: []PlaceRecord{
			{Name: "Aksla viewpoint", Kind: "city panorama point"},
			{Name: "Brosundet", Kind: "canal and art nouveau facades"},
			{Name: "Jugendstilsenteret", Kind: "art nouveau museum area"},
			{Name: "Atlanterhavsparken", Kind: "aquarium and coastal zone"},
			{Name: "Molja lighthouse area", Kind: "harbor walk landmark"},
		},
	},
	{
		City:    "Drammen",
		County:  "Buskerud",
		Aliases: []string{"drammen"},
		Places: []PlaceRecord{
			{Name: "Ypsilon bridge", Kind: "modern pedestrian bridge"},
			{Name: "Bragernes Torg", Kind: "city square and cafe area"},
			{Name: "Spiralen viewpoint", Kind: "hill route with views"},
			{Name: "Drammenselva promenade", Kind: "riverfront walking line"},
			{Name: "Papirbredden", Kind: "riverside culture and campus zone"},
		},
	},
	{
		City:    "Fredrikstad",
		County:  "Ostfold",
		Aliases: []string{"fredrikstad"},
		Places: []PlaceRecord{
			{Name: "Gamlebyen", Kind: "fortified old town"},
			{Name: "Isegran", Kind: "historic island fort area"},
			{Name: "Glomma riverside", Kind: "waterfront path network"},
			{Name: "Voldportbroa area", Kind: "old-town access bridge zone"},
			{Name: "Stortorvet", Kind: "central square and social hub"},
		},
	},
	{
		City:    "Lillehammer",
		County:  "Innlandet",
		Aliases: []string{"lillehammer"},
		Places: []PlaceRecord{
			{Name: "Maihaugen", Kind: "open-air museum and heritage park"},
			{Name: "Storgata", Kind: "pedestrian main street"},
			{Name: "Lysgardsbakken", Kind: "olympic ski jump viewpoint"},
			{Name: "Mesna riverside trails", Kind: "calmer walking paths"},
			{Name: "Sondre Park", Kind: "central green city stop"},
		},
	},
	{
		City:    "Bodo",
		County:  "Nordland",
		Aliases: []string{"bodo", "boedo"},
		Places: []PlaceRecord{
			{Name: "Stormen Library district", Kind: "waterfront culture quarter"},
			{Name: "Bodo harbor promenade", Kind: "sea-facing route"},
			{Name: "Norwegian Aviation Museum", Kind: "specialty museum"},
			{Name: "Rensasen Park", Kind: "central hill park"},
			{Name: "Moloen", Kind: "breakwater walk with sea views"},
		},
	},
}
