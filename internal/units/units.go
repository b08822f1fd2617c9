// Package units provides the unit tables and the conversion engine.
package units

// CategoryID identifies a unit category.
type CategoryID string

const (
	Length      CategoryID = "length"
	Weight      CategoryID = "weight"
	Temperature CategoryID = "temperature"
	Area        CategoryID = "area"
	Volume      CategoryID = "volume"
	Speed       CategoryID = "speed"
	Data        CategoryID = "data"
)

// Temperature unit codes.
const (
	Celsius    = "celsius"
	Fahrenheit = "fahrenheit"
	Kelvin     = "kelvin"
)

// Unit is one unit of a category. Factor is the number of base units in one
// of this unit (km = 1000 for length). It is unused for affine categories.
type Unit struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Factor float64 `json:"factor,omitempty"`
}

// Category is an ordered table of units sharing one base unit.
type Category struct {
	ID     CategoryID `json:"id"`
	Name   string     `json:"name"`
	Base   string     `json:"base"`
	Affine bool       `json:"affine,omitempty"`
	Units  []Unit     `json:"units"`
}

// Unit returns the unit with the given code.
func (c Category) Unit(code string) (Unit, bool) {
	for _, u := range c.Units {
		if u.Code == code {
			return u, true
		}
	}
	return Unit{}, false
}

var categories = []Category{
	{
		ID:   Length,
		Name: "Length",
		Base: "m",
		Units: []Unit{
			{Code: "mm", Name: "Millimeter", Factor: 0.001},
			{Code: "cm", Name: "Centimeter", Factor: 0.01},
			{Code: "m", Name: "Meter", Factor: 1},
			{Code: "km", Name: "Kilometer", Factor: 1000},
			{Code: "inch", Name: "Inch", Factor: 0.0254},
			{Code: "ft", Name: "Foot", Factor: 0.3048},
			{Code: "yd", Name: "Yard", Factor: 0.9144},
			{Code: "mi", Name: "Mile", Factor: 1609.344},
		},
	},
	{
		ID:   Weight,
		Name: "Weight",
		Base: "kg",
		Units: []Unit{
			{Code: "kg", Name: "Kilograms", Factor: 1},
			{Code: "g", Name: "Grams", Factor: 0.001},
			{Code: "mg", Name: "Milligrams", Factor: 0.000001},
			{Code: "lb", Name: "Pounds", Factor: 0.45359237},
			{Code: "oz", Name: "Ounces", Factor: 0.028349523125},
			{Code: "ton", Name: "Metric Tons", Factor: 1000},
			{Code: "stone", Name: "Stones", Factor: 6.35029318},
		},
	},
	{
		ID:     Temperature,
		Name:   "Temperature",
		Base:   Celsius,
		Affine: true,
		Units: []Unit{
			{Code: Celsius, Name: "Celsius (°C)"},
			{Code: Fahrenheit, Name: "Fahrenheit (°F)"},
			{Code: Kelvin, Name: "Kelvin (K)"},
		},
	},
	{
		ID:   Area,
		Name: "Area",
		Base: "sqm",
		Units: []Unit{
			{Code: "sqm", Name: "Square Meters (m²)", Factor: 1},
			{Code: "sqkm", Name: "Square Kilometers (km²)", Factor: 1e6},
			{Code: "sqft", Name: "Square Feet (ft²)", Factor: 0.09290304},
			{Code: "sqyd", Name: "Square Yards (yd²)", Factor: 0.83612736},
			{Code: "sqmi", Name: "Square Miles (mi²)", Factor: 2589988.110336},
			{Code: "acre", Name: "Acres", Factor: 4046.8564224},
			{Code: "hectare", Name: "Hectares (ha)", Factor: 10000},
			{Code: "sqin", Name: "Square Inches (in²)", Factor: 0.00064516},
			{Code: "sqcm", Name: "Square Centimeters (cm²)", Factor: 0.0001},
			{Code: "sqmm", Name: "Square Millimeters (mm²)", Factor: 0.000001},
		},
	},
	{
		ID:   Volume,
		Name: "Volume",
		Base: "liter",
		Units: []Unit{
			{Code: "liter", Name: "Liters (L)", Factor: 1},
			{Code: "ml", Name: "Milliliters (mL)", Factor: 0.001},
			{Code: "cubicm", Name: "Cubic Meters (m³)", Factor: 1000},
			{Code: "cubiccm", Name: "Cubic Centimeters (cm³)", Factor: 0.001},
			{Code: "cubicin", Name: "Cubic Inches (in³)", Factor: 0.016387064},
			{Code: "cubicft", Name: "Cubic Feet (ft³)", Factor: 28.316846592},
			{Code: "gallon_us", Name: "US Gallons", Factor: 3.785411784},
			{Code: "gallon_uk", Name: "UK Gallons", Factor: 4.54609},
			{Code: "quart_us", Name: "US Quarts", Factor: 0.946352946},
			{Code: "pint_us", Name: "US Pints", Factor: 0.473176473},
			{Code: "cup_us", Name: "US Cups", Factor: 0.2365882365},
			{Code: "floz_us", Name: "US Fluid Ounces", Factor: 0.0295735295625},
			{Code: "tablespoon", Name: "Tablespoons", Factor: 0.01478676478125},
			{Code: "teaspoon", Name: "Teaspoons", Factor: 0.00492892159375},
		},
	},
	{
		ID:   Speed,
		Name: "Speed",
		Base: "mps",
		Units: []Unit{
			{Code: "mps", Name: "Meters per second (m/s)", Factor: 1},
			{Code: "kmph", Name: "Kilometers per hour (km/h)", Factor: 1000.0 / 3600.0},
			{Code: "mph", Name: "Miles per hour (mph)", Factor: 0.44704},
			{Code: "fps", Name: "Feet per second (ft/s)", Factor: 0.3048},
			{Code: "knot", Name: "Knots (kn)", Factor: 1852.0 / 3600.0},
			{Code: "mach", Name: "Mach (at sea level)", Factor: 343},
			{Code: "lightspeed", Name: "Speed of Light (c)", Factor: 299792458},
		},
	},
	{
		ID:   Data,
		Name: "Data",
		Base: "bit",
		Units: []Unit{
			{Code: "bit", Name: "Bits (b)", Factor: 1},
			{Code: "byte", Name: "Bytes (B)", Factor: 8},
			{Code: "kilobit", Name: "Kilobits (Kb)", Factor: 1e3},
			{Code: "kilobyte", Name: "Kilobytes (KB)", Factor: 8e3},
			{Code: "kibibyte", Name: "Kibibytes (KiB)", Factor: 8 * 1024},
			{Code: "megabit", Name: "Megabits (Mb)", Factor: 1e6},
			{Code: "megabyte", Name: "Megabytes (MB)", Factor: 8e6},
			{Code: "mebibyte", Name: "Mebibytes (MiB)", Factor: 8 * 1024 * 1024},
			{Code: "gigabit", Name: "Gigabits (Gb)", Factor: 1e9},
			{Code: "gigabyte", Name: "Gigabytes (GB)", Factor: 8e9},
			{Code: "gibibyte", Name: "Gibibytes (GiB)", Factor: 8 * 1024 * 1024 * 1024},
			{Code: "terabit", Name: "Terabits (Tb)", Factor: 1e12},
			{Code: "terabyte", Name: "Terabytes (TB)", Factor: 8e12},
			{Code: "tebibyte", Name: "Tebibytes (TiB)", Factor: 8 * 1024 * 1024 * 1024 * 1024},
			{Code: "petabyte", Name: "Petabytes (PB)", Factor: 8e15},
		},
	},
}

// Categories returns every unit category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		c.Units = append([]Unit(nil), c.Units...)
		out[i] = c
	}
	return out
}

// Lookup returns the category with the given id.
func Lookup(id CategoryID) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
