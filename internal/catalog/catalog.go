// Package catalog holds the static registry of calculators and the search over it.
package catalog

import "path"

// Item is one calculator entry.
type Item struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Route       string   `json:"route"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
}

// Slug is the last route segment; it names the calculator in the API.
func (i Item) Slug() string {
	return path.Base(i.Route)
}

// Category groups items for browsing.
type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Items       []Item `json:"calculators"`
}

func item(category, title, description, route string, keywords ...string) Item {
	return Item{Title: title, Description: description, Route: route, Category: category, Keywords: keywords}
}

var registry = []Category{
	{
		ID:          "basic",
		Title:       "Basic Calculators",
		Description: "Quick everyday math, done instantly.",
		Icon:        "Calculator",
		Items: []Item{
			item("basic", "Simple Calculator", "Basic arithmetic operations", "/calculators/basic/simple", "add", "subtract", "multiply", "divide", "math"),
			item("basic", "Percentage Calculator", "Calculate percentages easily", "/calculators/basic/percentage", "percent", "ratio", "fraction"),
			item("basic", "Discount Calculator", "Find discounted prices", "/calculators/basic/discount", "sale", "price", "savings"),
			item("basic", "Average Calculator", "Calculate mean, median, mode", "/calculators/basic/average", "mean", "median", "mode", "statistics"),
			item("basic", "Fraction Calculator", "Add, subtract, multiply fractions", "/calculators/basic/fraction", "numerator", "denominator"),
			item("basic", "Random Number Generator", "Generate random numbers", "/calculators/basic/random", "random", "dice", "lottery"),
		},
	},
	{
		ID:          "finance",
		Title:       "Finance Calculators",
		Description: "Smart financial tools for planning and decisions.",
		Icon:        "PiggyBank",
		Items: []Item{
			item("finance", "EMI Calculator", "Calculate loan EMIs instantly", "/calculators/finance/emi", "loan", "mortgage", "payment", "interest"),
			item("finance", "GST Calculator", "Calculate GST amounts", "/calculators/finance/gst", "tax", "india", "goods", "services"),
			item("finance", "SIP Calculator", "Plan your SIP investments", "/calculators/finance/sip", "mutual fund", "investment", "monthly"),
			item("finance", "Compound Interest", "Calculate compound interest", "/calculators/finance/compound-interest", "interest", "principal", "rate"),
			item("finance", "Simple Interest", "Calculate simple interest", "/calculators/finance/simple-interest", "interest", "principal", "rate"),
		},
	},
	{
		ID:          "health",
		Title:       "Health Calculators",
		Description: "Health calculations made simple.",
		Icon:        "Heart",
		Items: []Item{
			item("health", "BMI Calculator", "Calculate Body Mass Index", "/calculators/health/bmi", "weight", "height", "body", "mass"),
			item("health", "BMR Calculator", "Calculate Basal Metabolic Rate", "/calculators/health/bmr", "metabolism", "calories", "energy"),
			item("health", "Calorie Calculator", "Daily calorie needs", "/calculators/health/calories", "food", "diet", "energy", "tdee"),
			item("health", "Ideal Weight Calculator", "Find your ideal weight", "/calculators/health/ideal-weight", "weight", "height", "healthy"),
			item("health", "Body Fat Calculator", "Estimate body fat percentage", "/calculators/health/body-fat", "fat", "lean", "mass"),
		},
	},
	{
		ID:          "datetime",
		Title:       "Date & Time Calculators",
		Description: "Precise time and date utilities.",
		Icon:        "Calendar",
		Items: []Item{
			item("datetime", "Age Calculator", "Calculate exact age from DOB", "/calculators/datetime/age", "birthday", "years", "months", "days"),
			item("datetime", "Days Between Dates", "Count days between two dates", "/calculators/datetime/days-between", "duration", "difference", "count"),
			item("datetime", "Add/Subtract Days", "Add or subtract days from a date", "/calculators/datetime/add-days", "future", "past", "deadline"),
			item("datetime", "Time Duration Calculator", "Calculate time duration", "/calculators/datetime/time-duration", "hours", "minutes", "seconds"),
		},
	},
	{
		ID:          "units",
		Title:       "Unit Converters",
		Description: "Convert anything, instantly.",
		Icon:        "ArrowLeftRight",
		Items: []Item{
			item("units", "Length Converter", "Convert length units", "/calculators/units/length", "meter", "feet", "inch", "cm", "km", "mile"),
			item("units", "Weight Converter", "Convert weight units", "/calculators/units/weight", "kg", "pound", "ounce", "gram"),
			item("units", "Temperature Converter", "Convert temperature units", "/calculators/units/temperature", "celsius", "fahrenheit", "kelvin"),
			item("units", "Data Units Converter", "Convert digital storage units", "/calculators/units/data", "byte", "kb", "mb", "gb", "tb"),
			item("units", "Area Converter", "Convert area units", "/calculators/units/area", "sqft", "sqm", "acre", "hectare"),
			item("units", "Volume Converter", "Convert volume units", "/calculators/units/volume", "liter", "gallon", "ml", "cup"),
			item("units", "Speed Converter", "Convert speed units", "/calculators/units/speed", "kmph", "mph", "knot"),
		},
	},
	{
		ID:          "api",
		Title:       "API Utilities",
		Description: "Lookup services for India.",
		Icon:        "Wrench",
		Items: []Item{
			item("api", "PIN Code Lookup", "Get details for any Indian PIN", "/calculators/api/pin-lookup", "postal", "pincode", "india", "address"),
			item("api", "IFSC Code Lookup", "Get bank details from IFSC", "/calculators/api/ifsc-lookup", "bank", "branch", "neft", "rtgs"),
		},
	},
	{
		ID:          "tools",
		Title:       "Misc Tools",
		Description: "Handy tools for everyday use.",
		Icon:        "Wrench",
		Items: []Item{
			item("tools", "QR Code Generator", "Generate QR codes instantly", "/tools/qr-code", "qr", "barcode", "scan"),
			item("tools", "Password Generator", "Generate secure passwords", "/tools/password", "password", "security", "random"),
		},
	},
}

// Categories returns copies of all categories in declaration order.
func Categories() []Category {
	out := make([]Category, len(registry))
	for i, c := range registry {
		c.Items = copyItems(c.Items)
		out[i] = c
	}
	return out
}

// All returns every item, category by category.
func All() []Item {
	var out []Item
	for _, c := range registry {
		out = append(out, copyItems(c.Items)...)
	}
	return out
}

// CategoryByID returns the category with the given id.
func CategoryByID(id string) (Category, bool) {
	for _, c := range registry {
		if c.ID == id {
			c.Items = copyItems(c.Items)
			return c, true
		}
	}
	return Category{}, false
}

// ItemByRoute returns the item registered under route.
func ItemByRoute(route string) (Item, bool) {
	for _, c := range registry {
		for _, it := range c.Items {
			if it.Route == route {
				return copyItem(it), true
			}
		}
	}
	return Item{}, false
}

// ItemBySlug returns the first item whose slug matches. Slugs are unique
// across the registry.
func ItemBySlug(slug string) (Item, bool) {
	for _, c := range registry {
		for _, it := range c.Items {
			if it.Slug() == slug {
				return copyItem(it), true
			}
		}
	}
	return Item{}, false
}

func copyItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = copyItem(it)
	}
	return out
}

func copyItem(it Item) Item {
	it.Keywords = append([]string(nil), it.Keywords...)
	return it
}
