package enrich

// tools is the fixed equipment vocabulary. Matching is by substring
// against lower-cased step text; entries are sorted longest-first at
// init so multi-word tools win over their single-word suffixes.
var tools = []string{
	"baking dish",
	"baking sheet",
	"baking pan",
	"cake pan",
	"casserole dish",
	"cast iron skillet",
	"cookie sheet",
	"cutting board",
	"dutch oven",
	"food processor",
	"frying pan",
	"loaf pan",
	"measuring cup",
	"measuring spoon",
	"mixing bowl",
	"muffin tin",
	"parchment paper",
	"pastry brush",
	"rolling pin",
	"slow cooker",
	"slotted spoon",
	"stand mixer",
	"wire rack",
	"wooden spoon",
	"aluminum foil",
	"blender",
	"bowl",
	"colander",
	"foil",
	"grater",
	"griddle",
	"knife",
	"ladle",
	"microwave",
	"oven",
	"pan",
	"peeler",
	"pot",
	"saucepan",
	"skewer",
	"skillet",
	"spatula",
	"stockpot",
	"strainer",
	"thermometer",
	"tongs",
	"whisk",
	"wok",
	"zester",
}

// methods is the fixed cooking-action lemma vocabulary. Matched two ways:
// against verb-token lemmas, and by word-boundary regex against the raw
// text to catch verbs the tagger missed.
var methods = []string{
	"add",
	"bake",
	"baste",
	"beat",
	"blanch",
	"blend",
	"boil",
	"braise",
	"broil",
	"brown",
	"brush",
	"chill",
	"chop",
	"coat",
	"combine",
	"cook",
	"cool",
	"cover",
	"cream",
	"cut",
	"dice",
	"drain",
	"drizzle",
	"flip",
	"fold",
	"fry",
	"garnish",
	"glaze",
	"grate",
	"grease",
	"grill",
	"heat",
	"julienne",
	"knead",
	"layer",
	"marinate",
	"mash",
	"melt",
	"mince",
	"mix",
	"peel",
	"pour",
	"preheat",
	"puree",
	"reduce",
	"roast",
	"sauté",
	"saute",
	"scramble",
	"sear",
	"season",
	"serve",
	"shred",
	"sift",
	"simmer",
	"slice",
	"soak",
	"sprinkle",
	"steam",
	"stir",
	"strain",
	"stuff",
	"toast",
	"toss",
	"whip",
	"whisk",
	"zest",
}

// MethodVocabulary returns a copy of the cooking-action lemmas, used as
// verb hints for the NL analyzer.
func MethodVocabulary() []string {
	out := make([]string, len(methods))
	copy(out, methods)
	return out
}
