// Package department holds the fixed table of store departments and the
// rules for grouping list items by a list's department order.
package department

import "github.com/dukerupert/shoplisl/internal/model"

// Misc is where items without a known department end up.
const Misc = "miscellaneous"

const iconDir = "/icons/"

var departments = []model.Department{
	{ID: "bread", NameGerman: "Brot", NameEnglish: "Bread", Icon: "Baguette--Streamline-Core-Remix.png"},
	{ID: "fruit-vegetables", NameGerman: "Obst & Gemüse", NameEnglish: "Fruit and Vegetables", Icon: "Nutrition-Fruit-Orange--Streamline-Core-Remix.png"},
	{ID: "sausage-cheese-counter", NameGerman: "Wurst & Käse Theke", NameEnglish: "Sausage & Cheese Counter", Icon: "Sausage-Processed-Food--Streamline-Core-Remix.png"},
	{ID: "fridge-meat", NameGerman: "Kühlschrank inkl. Fleisch etc.", NameEnglish: "Fridge incl. meat etc", Icon: "Refrigerator--Streamline-Core.png"},
	{ID: "fish", NameGerman: "Fisch", NameEnglish: "Fish", Icon: "Allergens-Fish--Streamline-Core-Remix.png"},
	{ID: "dairy-products", NameGerman: "Milchprodukte", NameEnglish: "Dairy products", Icon: "Milk--Streamline-Core-Remix.png"},
	{ID: "spices-oils", NameGerman: "Gewürze & Öle", NameEnglish: "Spices & Oils", Icon: "Pepper-Bottle--Streamline-Core-Remix.png"},
	{ID: "noodles-rice", NameGerman: "Nudeln & Reis", NameEnglish: "Noodles & Rice", Icon: "Ramen-Dining--Streamline-Core-Remix.png"},
	{ID: "tins-jars", NameGerman: "Konserven & Gläser (Bohnen, Mais, Oliven)", NameEnglish: "Tins & jars", Icon: "Honey-Pot--Streamline-Core-Remix.png"},
	{ID: "pastries", NameGerman: "Backwaren", NameEnglish: "Pastries", Icon: "Pie--Streamline-Core-Remix.png"},
	{ID: "beverages-alcohol", NameGerman: "Getränke & Alkohol", NameEnglish: "Beverages & Alcohol", Icon: "Juice--Streamline-Core-Remix.png"},
	{ID: "frozen-goods", NameGerman: "Tiefkühlwaren", NameEnglish: "Frozen goods", Icon: "Snow-Flake--Streamline-Core-Remix.png"},
	{ID: "sweet-salty", NameGerman: "Süßes & Salziges", NameEnglish: "Sweet & Salty", Icon: "Candy--Streamline-Core-Remix.png"},
	{ID: "international", NameGerman: "International", NameEnglish: "International", Icon: "Earth-2--Streamline-Core-Remix.png"},
	{ID: "body-care", NameGerman: "Körperpflege (Shampoo, Zahnbürsten)", NameEnglish: "Body Care", Icon: "Pen-Types--Streamline-Core-Remix.png"},
	{ID: "cleaning-agents", NameGerman: "Reinigungsmittel (Spülmittel)", NameEnglish: "Cleaning Agents", Icon: "Hotel-Laundry--Streamline-Core-Remix.png"},
	{ID: "household-goods", NameGerman: "Haushaltswaren (Klopapier, Küchenrolle)", NameEnglish: "Household Goods", Icon: "Toilet-Paper--Streamline-Core-Remix.png"},
	{ID: "stationery", NameGerman: "Schreibwaren (Stife, Hefte)", NameEnglish: "Stationery", Icon: "Pencil-Square--Streamline-Core-Remix.png"},
	{ID: "breakfast", NameGerman: "Frühstück", NameEnglish: "Breakfast", Icon: "Croissant--Streamline-Core-Remix.png"},
	{ID: "baby", NameGerman: "Baby", NameEnglish: "Baby", Icon: "Face-Baby--Streamline-Core-Remix.png"},
	{ID: "pet-supplies", NameGerman: "Tierbedarf", NameEnglish: "Pet Supplies", Icon: "Cat-1--Streamline-Core-Remix.png"},
	{ID: Misc, NameGerman: "Sonstiges", NameEnglish: "Miscellaneous", Icon: "Help-Chat-2--Streamline-Core-Remix.png"},
	{ID: "season", NameGerman: "Saison", NameEnglish: "Season", Icon: "Brightness-4--Streamline-Core-Remix.png"},
	{ID: "medicine", NameGerman: "Medizin", NameEnglish: "Medicine", Icon: "Tablet-Capsule--Streamline-Core-Remix.png"},
	{ID: "drugstore", NameGerman: "Drogerie", NameEnglish: "Drugstore", Icon: "Ink-Bottle--Streamline-Core-Remix.png"},
}

var byID = func() map[string]model.Department {
	m := make(map[string]model.Department, len(departments))
	for _, d := range departments {
		m[d.ID] = d
	}
	return m
}()

// All returns a copy of the department table in its default order.
func All() []model.Department {
	return append([]model.Department(nil), departments...)
}

// Lookup returns the department with the given id.
func Lookup(id string) (model.Department, bool) {
	d, ok := byID[id]
	return d, ok
}

// IconPath returns the icon URL path for a department, or "" if unknown.
func IconPath(id string) string {
	d, ok := byID[id]
	if !ok {
		return ""
	}
	return iconDir + d.Icon
}

// Name returns the display name in the given language ("de" or "en").
// Unknown ids yield "".
func Name(id, lang string) string {
	d, ok := byID[id]
	if !ok {
		return ""
	}
	if lang == "en" {
		return d.NameEnglish
	}
	return d.NameGerman
}

// DefaultOrder is the walk-through order used by lists without their own.
func DefaultOrder() []string {
	order := make([]string, len(departments))
	for i, d := range departments {
		order[i] = d.ID
	}
	return order
}
