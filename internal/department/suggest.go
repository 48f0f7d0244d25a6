package department

import (
	"strings"

	"github.com/dukerupert/shoplisl/internal/names"
)

// Suggest returns a department id for an article name. It performs
// matching on the normalized name: exact match first, then substring match.
// Falls back to Misc if no match is found.
func Suggest(articleName string) string {
	name := names.Normalize(articleName)
	if name == "" {
		return Misc
	}

	if id, ok := exactMatch[name]; ok {
		return id
	}

	// Ordered longer/more-specific first
	for _, entry := range substringMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.department
		}
	}

	return Misc
}

var exactMatch = map[string]string{
	// Bread
	"brot":     "bread",
	"toast":    "bread",
	"zopf":     "bread",
	"brötchen": "bread",
	"buns":     "bread",
	"baguette": "bread",

	// Fruit & vegetables
	"äpfel":       "fruit-vegetables",
	"apfel":       "fruit-vegetables",
	"bananen":     "fruit-vegetables",
	"birne":       "fruit-vegetables",
	"zitrone":     "fruit-vegetables",
	"zitronen":    "fruit-vegetables",
	"limette":     "fruit-vegetables",
	"avocado":     "fruit-vegetables",
	"tomaten":     "fruit-vegetables",
	"kartoffeln":  "fruit-vegetables",
	"zwiebel":     "fruit-vegetables",
	"knoblauch":   "fruit-vegetables",
	"karotten":    "fruit-vegetables",
	"zucchini":    "fruit-vegetables",
	"gurken":      "fruit-vegetables",
	"rucola":      "fruit-vegetables",
	"basilikum":   "fruit-vegetables",
	"petersilie":  "fruit-vegetables",
	"ingwer":      "fruit-vegetables",
	"erdbeeren":   "fruit-vegetables",
	"kiwi":        "fruit-vegetables",
	"mandarinen":  "fruit-vegetables",
	"melone":      "fruit-vegetables",
	"spargel":     "fruit-vegetables",
	"pilze":       "fruit-vegetables",
	"wirsing":     "fruit-vegetables",
	"kohl":        "fruit-vegetables",
	"aubergine":   "fruit-vegetables",
	"auberginen":  "fruit-vegetables",
	"artischocke": "fruit-vegetables",

	// Counter
	"salami":     "sausage-cheese-counter",
	"schinken":   "sausage-cheese-counter",
	"mortadella": "sausage-cheese-counter",
	"chorizo":    "sausage-cheese-counter",
	"speck":      "sausage-cheese-counter",
	"bresaola":   "sausage-cheese-counter",

	// Fridge & meat
	"hackfleisch": "fridge-meat",
	"huhn":        "fridge-meat",
	"rind":        "fridge-meat",
	"schwein":     "fridge-meat",
	"wienerle":    "fridge-meat",
	"tofu":        "fridge-meat",

	// Fish
	"lachs":         "fish",
	"thunfisch":     "fish",
	"fischstäbchen": "frozen-goods",

	// Dairy
	"milch":         "dairy-products",
	"butter":        "dairy-products",
	"rahm":          "dairy-products",
	"sauerrahm":     "dairy-products",
	"joghurt":       "dairy-products",
	"käse":          "dairy-products",
	"mozzarella":    "dairy-products",
	"parmesan":      "dairy-products",
	"feta":          "dairy-products",
	"mascarpone":    "dairy-products",
	"ricotta":       "dairy-products",
	"creme fraiche": "dairy-products",
	"eier":          "dairy-products",

	// Spices & oils
	"salz":        "spices-oils",
	"pfeffer":     "spices-oils",
	"olivenöl":    "spices-oils",
	"essig":       "spices-oils",
	"currypulver": "spices-oils",

	// Noodles & rice
	"nudeln":    "noodles-rice",
	"reis":      "noodles-rice",
	"spaghetti": "noodles-rice",
	"basmati":   "noodles-rice",

	// Tins & jars
	"kichererbsen": "tins-jars",
	"kokosmilch":   "tins-jars",
	"oliven":       "tins-jars",
	"kapern":       "tins-jars",
	"mais":         "tins-jars",
	"honig":        "tins-jars",

	// Pastries / baking
	"mehl":       "pastries",
	"hefe":       "pastries",
	"backpulver": "pastries",
	"zucker":     "pastries",

	// Beverages
	"cola":     "beverages-alcohol",
	"bier":     "beverages-alcohol",
	"wein":     "beverages-alcohol",
	"tonic":    "beverages-alcohol",
	"prosecco": "beverages-alcohol",
	"wasser":   "beverages-alcohol",
	"saft":     "beverages-alcohol",

	// Frozen
	"eis":    "frozen-goods",
	"pommes": "frozen-goods",
	"erbsen": "frozen-goods",

	// Sweet & salty
	"schokolade": "sweet-salty",
	"chips":      "sweet-salty",
	"nachos":     "sweet-salty",
	"pistazien":  "sweet-salty",
	"grissini":   "sweet-salty",

	// Breakfast
	"haferflocken": "breakfast",
	"cornflakes":   "breakfast",
	"müsli":        "breakfast",
	"marmelade":    "breakfast",

	// Household
	"klopapier":   "household-goods",
	"küchenrolle": "household-goods",
	"müllsäcke":   "household-goods",
	"anzünder":    "household-goods",

	// Cleaning
	"spülmittel":    "cleaning-agents",
	"essigreiniger": "cleaning-agents",
	"schwämme":      "cleaning-agents",

	// Body care
	"shampoo":    "body-care",
	"zahnpasta":  "body-care",
	"duschgel":   "body-care",
	"deo":        "body-care",
	"zahnbürste": "body-care",
}

type substringEntry struct {
	keyword    string
	department string
}

// substringMatches is ordered so longer/more-specific keywords come first.
var substringMatches = []substringEntry{
	// Multi-word / specific first
	{"tk ", "frozen-goods"},
	{"tiefkühl", "frozen-goods"},
	{"fischstäbchen", "frozen-goods"},
	{"pommes", "frozen-goods"},
	{"geschirrspül", "cleaning-agents"},
	{"reiniger", "cleaning-agents"},
	{"zahnpasta", "body-care"},
	{"duschgel", "body-care"},
	{"klopapier", "household-goods"},
	{"küchenrolle", "household-goods"},
	{"hafer drink", "dairy-products"},
	{"haferdrink", "dairy-products"},
	{"dinkeldrink", "dairy-products"},
	{"frischkäse", "dairy-products"},
	{"hackfleisch", "fridge-meat"},
	{"würst", "fridge-meat"},
	{"schnitzel", "fridge-meat"},
	{"filet", "fridge-meat"},
	{"lachs", "fish"},
	{"thunfisch", "fish"},
	{"marmelade", "breakfast"},
	{"müsli", "breakfast"},
	{"schokolade", "sweet-salty"},
	{"riegel", "sweet-salty"},
	{"kekse", "sweet-salty"},

	// Single-word broader matches
	{"käse", "dairy-products"},
	{"milch", "dairy-products"},
	{"joghurt", "dairy-products"},
	{"butter", "dairy-products"},
	{"rahm", "dairy-products"},
	{"brot", "bread"},
	{"brötchen", "bread"},
	{"nudeln", "noodles-rice"},
	{"reis", "noodles-rice"},
	{"tomaten", "fruit-vegetables"},
	{"salat", "fruit-vegetables"},
	{"kartoffel", "fruit-vegetables"},
	{"zitrone", "fruit-vegetables"},
	{"beeren", "fruit-vegetables"},
	{"bohnen", "tins-jars"},
	{"linsen", "tins-jars"},
	{"öl", "spices-oils"},
	{"pulver", "spices-oils"},
	{"bier", "beverages-alcohol"},
	{"wein", "beverages-alcohol"},
	{"saft", "beverages-alcohol"},
	{"limo", "beverages-alcohol"},
	{"eis", "frozen-goods"},
}
