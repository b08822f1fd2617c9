package formula

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"
)

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEMI(t *testing.T) {
	got, err := EMI(EMIInput{Principal: 1_000_000, AnnualRate: 10, Months: 12})
	if err != nil {
		t.Fatal(err)
	}
	if got.EMI != 87915.89 {
		t.Errorf("EMI = %v, want 87915.89", got.EMI)
	}
	if !approx(got.TotalPayment, 1_054_990.66, 0.02) {
		t.Errorf("TotalPayment = %v", got.TotalPayment)
	}
	if !approx(got.TotalInterest, got.TotalPayment-1_000_000, 0.01) {
		t.Errorf("TotalInterest = %v", got.TotalInterest)
	}
}

func TestEMI_Invalid(t *testing.T) {
	tests := []EMIInput{
		{Principal: 0, AnnualRate: 10, Months: 12},
		{Principal: -5, AnnualRate: 10, Months: 12},
		{Principal: 1000, AnnualRate: 0, Months: 12},
		{Principal: 1000, AnnualRate: 10, Months: 0},
		{Principal: math.NaN(), AnnualRate: 10, Months: 12},
		{Principal: 1000, AnnualRate: 10, Months: MaxMonths + 1},
		{Principal: 1000, AnnualRate: 1e6, Months: MaxMonths},
	}
	for _, in := range tests {
		if _, err := EMI(in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("EMI(%+v) err = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestAmortization_TenureCap(t *testing.T) {
	if _, err := Amortization(EMIInput{Principal: 1000, AnnualRate: 10, Months: 2_000_000_000}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Amortization with huge tenure err = %v, want ErrInvalidInput", err)
	}
	rows, err := Amortization(EMIInput{Principal: 1000, AnnualRate: 10, Months: MaxMonths})
	if err != nil || len(rows) != MaxMonths {
		t.Fatalf("Amortization(MaxMonths) = %d rows, %v", len(rows), err)
	}
}

func TestOverflowIsInvalid(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
	}{
		{"arithmetic", func() error { _, err := Arithmetic(1e308, "*", 10); return err }},
		{"arithmetic sum", func() error { _, err := Arithmetic(1.7e308, "+", 1.7e308); return err }},
		{"percentage", func() error { _, err := Percentage(PercentageInput{Value: 1e308, Percent: 0.5}); return err }},
		{"average", func() error { _, err := Average([]float64{1.7e308, 1.7e308}); return err }},
		{"simple interest", func() error {
			_, err := SimpleInterest(SimpleInterestInput{Principal: 1e307, Rate: 100, Years: 1e10})
			return err
		}},
		{"compound interest", func() error {
			_, err := CompoundInterest(CompoundInterestInput{Principal: 1000, Rate: 100, Years: 2000, PerYear: 1})
			return err
		}},
		{"sip", func() error { _, err := SIP(SIPInput{Monthly: 1000, AnnualReturn: 1e6, Years: 100}); return err }},
		{"gst", func() error { _, err := GST(GSTInput{Amount: 1e308, Rate: 1e10}); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestAmortization(t *testing.T) {
	in := EMIInput{Principal: 500_000, AnnualRate: 9, Months: 24}
	rows, err := Amortization(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 24 {
		t.Fatalf("rows = %d, want 24", len(rows))
	}
	if rows[0].Opening != 500_000 || rows[0].Interest != 3750 {
		t.Errorf("first row = %+v", rows[0])
	}
	if rows[23].Closing != 0 {
		t.Errorf("final closing = %v, want 0", rows[23].Closing)
	}
	var principal float64
	for i, r := range rows {
		principal += r.Principal
		if r.Month != i+1 {
			t.Errorf("row %d month = %d", i, r.Month)
		}
	}
	if !approx(principal, 500_000, 0.5) {
		t.Errorf("sum of principal = %v", principal)
	}
}

func TestInterest(t *testing.T) {
	si, err := SimpleInterest(SimpleInterestInput{Principal: 10000, Rate: 8, Years: 3})
	if err != nil {
		t.Fatal(err)
	}
	if si.Interest != 2400 || si.Amount != 12400 {
		t.Errorf("SimpleInterest = %+v, want 2400/12400", si)
	}
	ci, err := CompoundInterest(CompoundInterestInput{Principal: 10000, Rate: 10, Years: 2, PerYear: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !approx(ci.Amount, 12100, 1e-6) || !approx(ci.Interest, 2100, 1e-6) {
		t.Errorf("CompoundInterest = %+v", ci)
	}
	if _, err := SimpleInterest(SimpleInterestInput{Principal: 100, Rate: 101, Years: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("rate > 100 accepted: %v", err)
	}
}

func TestSIP(t *testing.T) {
	got, err := SIP(SIPInput{Monthly: 1000, AnnualReturn: 12, Years: 1})
	if err != nil {
		t.Fatal(err)
	}
	if got.Invested != 12000 || !approx(got.TotalValue, 12809.33, 0.01) {
		t.Errorf("SIP = %+v", got)
	}
}

func TestGST(t *testing.T) {
	ex, err := GST(GSTInput{Amount: 1000, Rate: 18})
	if err != nil {
		t.Fatal(err)
	}
	if ex.GST != 180 || ex.CGST != 90 || ex.SGST != 90 || ex.Total != 1180 {
		t.Errorf("exclusive = %+v", ex)
	}
	in, err := GST(GSTInput{Amount: 1180, Rate: 18, Inclusive: true})
	if err != nil {
		t.Fatal(err)
	}
	if !approx(in.Net, 1000, 1e-9) || !approx(in.GST, 180, 1e-9) || in.Total != 1180 {
		t.Errorf("inclusive = %+v", in)
	}
}

func TestBasic(t *testing.T) {
	p, err := Percentage(PercentageInput{Value: 50, Percent: 20})
	if err != nil {
		t.Fatal(err)
	}
	if p.OfValue != 10 || p.ValueIsPercentOf == nil || *p.ValueIsPercentOf != 250 {
		t.Errorf("Percentage = %+v", p)
	}
	if p, _ := Percentage(PercentageInput{Value: 50}); p.ValueIsPercentOf != nil {
		t.Error("ValueIsPercentOf should be omitted for 0%")
	}

	d, err := Discount(DiscountInput{Price: 200, Percent: 25})
	if err != nil || d.Discount != 50 || d.Final != 150 {
		t.Errorf("Discount = %+v, %v", d, err)
	}
	if _, err := Discount(DiscountInput{Price: 200, Percent: 120}); !errors.Is(err, ErrInvalidInput) {
		t.Error("discount over 100% accepted")
	}
}

func TestAverage(t *testing.T) {
	got, err := Average([]float64{3, 1, 2, 2})
	if err != nil {
		t.Fatal(err)
	}
	if got.Mean != 2 || got.Median != 2 || got.Sum != 8 || got.Count != 4 {
		t.Errorf("Average = %+v", got)
	}
	if len(got.Modes) != 1 || got.Modes[0] != 2 {
		t.Errorf("Modes = %v, want [2]", got.Modes)
	}

	got, err = Average([]float64{5, 1, 3})
	if err != nil {
		t.Fatal(err)
	}
	if got.Median != 3 || got.Modes == nil || len(got.Modes) != 0 {
		t.Errorf("unique values: %+v", got)
	}
	if _, err := Average([]float64{1}); !errors.Is(err, ErrInvalidInput) {
		t.Error("single value accepted")
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		in   FractionInput
		want Frac
	}{
		{FractionInput{A: Frac{1, 2}, B: Frac{1, 3}, Op: FracAdd}, Frac{5, 6}},
		{FractionInput{A: Frac{1, 2}, B: Frac{1, 3}, Op: FracSubtract}, Frac{1, 6}},
		{FractionInput{A: Frac{2, 3}, B: Frac{3, 4}, Op: FracMultiply}, Frac{1, 2}},
		{FractionInput{A: Frac{1, 2}, B: Frac{-1, 4}, Op: FracDivide}, Frac{-2, 1}},
		{FractionInput{A: Frac{1, -3}, B: Frac{0, 5}, Op: FracAdd}, Frac{-1, 3}},
	}
	for _, tt := range tests {
		got, err := Fraction(tt.in)
		if err != nil {
			t.Errorf("Fraction(%+v): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Fraction(%+v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	bad := []FractionInput{
		{A: Frac{1, 0}, B: Frac{1, 2}, Op: FracAdd},
		{A: Frac{1, 2}, B: Frac{0, 2}, Op: FracDivide},
		{A: Frac{1, 2}, B: Frac{1, 2}, Op: "modulo"},
	}
	for _, in := range bad {
		if _, err := Fraction(in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Fraction(%+v) err = %v", in, err)
		}
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		a    float64
		op   string
		b    float64
		want float64
	}{
		{2, "+", 3, 5},
		{2, "−", 3, -1},
		{4, "×", 2.5, 10},
		{9, "÷", 3, 3},
	}
	for _, tt := range tests {
		got, err := Arithmetic(tt.a, tt.op, tt.b)
		if err != nil || got != tt.want {
			t.Errorf("%v %s %v = %v, %v; want %v", tt.a, tt.op, tt.b, got, err, tt.want)
		}
	}
	if _, err := Arithmetic(1, "/", 0); !errors.Is(err, ErrInvalidInput) {
		t.Error("division by zero accepted")
	}
}

func TestRandomInts(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	got, err := RandomInts(RandomInput{Min: -3, Max: 3, Count: 100}, rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 100 {
		t.Fatalf("len = %d", len(got))
	}
	for _, v := range got {
		if v < -3 || v > 3 {
			t.Errorf("%d out of [-3, 3]", v)
		}
	}
	one, err := RandomInts(RandomInput{Min: 7, Max: 7, Count: 1}, nil)
	if err != nil || one[0] != 7 {
		t.Errorf("degenerate range = %v, %v", one, err)
	}
	for _, in := range []RandomInput{{Min: 5, Max: 1, Count: 1}, {Max: 10, Count: 0}, {Max: 10, Count: 101}} {
		if _, err := RandomInts(in, rng); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("RandomInts(%+v) err = %v", in, err)
		}
	}
}

func TestBMI(t *testing.T) {
	got, err := BMI(BMIInput{HeightCM: 170, WeightKG: 70})
	if err != nil {
		t.Fatal(err)
	}
	if got.BMI != 24.2 || got.Category != NormalWeight {
		t.Errorf("BMI = %+v, want 24.2 Normal weight", got)
	}
	tests := []struct {
		bmi  float64
		want string
	}{
		{18.4, Underweight}, {18.5, NormalWeight}, {24.99, NormalWeight},
		{25, Overweight}, {29.9, Overweight}, {30, Obese},
	}
	for _, tt := range tests {
		if c := bmiCategory(tt.bmi); c != tt.want {
			t.Errorf("bmiCategory(%v) = %q, want %q", tt.bmi, c, tt.want)
		}
	}
	if _, err := BMI(BMIInput{HeightCM: 0, WeightKG: 70}); !errors.Is(err, ErrInvalidInput) {
		t.Error("zero height accepted")
	}
}

func TestBMRAndCalories(t *testing.T) {
	in := BMRInput{WeightKG: 70, HeightCM: 175, Age: 25, Sex: Male}
	got, err := BMR(in)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(got.BMR, 1673.75, 1e-9) || !approx(got.TDEE, 1673.75*Moderate, 1e-9) {
		t.Errorf("BMR = %+v", got)
	}
	female, _ := BMR(BMRInput{WeightKG: 70, HeightCM: 175, Age: 25, Sex: Female, Activity: Sedentary})
	if !approx(female.BMR, 1507.75, 1e-9) {
		t.Errorf("female BMR = %v", female.BMR)
	}

	cal, err := Calories(in)
	if err != nil {
		t.Fatal(err)
	}
	want := CaloriesResult{BMR: 1674, Maintenance: 2594, MildLoss: 2335, WeightLoss: 2075, MildGain: 2853, WeightGain: 3113}
	if cal != want {
		t.Errorf("Calories = %+v, want %+v", cal, want)
	}

	for _, bad := range []BMRInput{
		{WeightKG: 5, HeightCM: 175, Age: 25, Sex: Male},
		{WeightKG: 70, HeightCM: 300, Age: 25, Sex: Male},
		{WeightKG: 70, HeightCM: 175, Age: 25, Sex: "other"},
		{WeightKG: 70, HeightCM: 175, Age: 25, Sex: Male, Activity: 3},
	} {
		if _, err := BMR(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("BMR(%+v) err = %v", bad, err)
		}
	}
}

func TestBodyFat(t *testing.T) {
	got, err := BodyFat(BodyFatInput{Sex: Male, HeightCM: 178, NeckCM: 38, WaistCM: 85, WeightKG: 80})
	if err != nil {
		t.Fatal(err)
	}
	if got.BodyFat < 10 || got.BodyFat > 25 {
		t.Errorf("male body fat = %v, want a plausible percentage", got.BodyFat)
	}
	if !approx(got.FatMass+got.LeanMass, 80, 0.11) {
		t.Errorf("fat %v + lean %v != weight", got.FatMass, got.LeanMass)
	}
	if _, err := BodyFat(BodyFatInput{Sex: Female, HeightCM: 165, NeckCM: 32, WaistCM: 70, WeightKG: 60}); !errors.Is(err, ErrInvalidInput) {
		t.Error("female without hip accepted")
	}
	if c := bodyFatCategory(20, Female); c != "Fitness" {
		t.Errorf("female 20%% = %q", c)
	}
	if c := bodyFatCategory(20, Male); c != "Average" {
		t.Errorf("male 20%% = %q", c)
	}
}

func TestIdealWeight(t *testing.T) {
	got, err := IdealWeight(IdealWeightInput{HeightCM: 180, Sex: Male})
	if err != nil {
		t.Fatal(err)
	}
	if !approx(got.Devine, 75.0, 0.05) || !approx(got.Average, 74.1, 0.05) {
		t.Errorf("IdealWeight = %+v", got)
	}
	short, _ := IdealWeight(IdealWeightInput{HeightCM: 150, Sex: Female})
	if short.Devine != 45.5 {
		t.Errorf("below 5 ft Devine = %v, want base 45.5", short.Devine)
	}
}

func TestAge(t *testing.T) {
	got, err := Age(date("2000-06-01"), date("2024-06-01"))
	if err != nil {
		t.Fatal(err)
	}
	want := AgeResult{Years: 24, TotalDays: 8766, TotalWeeks: 1252, DaysToBirthday: 365}
	if got != want {
		t.Errorf("Age = %+v, want %+v", got, want)
	}

	got, _ = Age(date("2000-01-15"), date("2024-03-10"))
	if got.Years != 24 || got.Months != 1 || got.Days != 24 {
		t.Errorf("borrowing from February: %+v", got)
	}

	if _, err := Age(date("2030-01-01"), date("2024-01-01")); !errors.Is(err, ErrInvalidInput) {
		t.Error("future birth date accepted")
	}
}

func TestDaysBetween(t *testing.T) {
	a, b := date("2024-01-01"), date("2024-12-31")
	got := DaysBetween(a, b)
	if got.Days != 365 || DaysBetween(b, a).Days != 365 {
		t.Errorf("DaysBetween = %+v", got)
	}
	if !approx(got.Years, 365/DaysPerYear, 1e-12) || !approx(got.Months, 365/DaysPerMonth, 1e-12) {
		t.Errorf("fractional parts = %+v", got)
	}
}

func TestShiftDate(t *testing.T) {
	tests := []struct {
		in      ShiftDateInput
		date    string
		weekday string
	}{
		{ShiftDateInput{Start: date("2024-01-31"), Months: 1}, "2024-02-29", "Thursday"},
		{ShiftDateInput{Start: date("2024-03-01"), Days: 1, Subtract: true}, "2024-02-29", "Thursday"},
		{ShiftDateInput{Start: date("2024-02-29"), Years: 1}, "2025-02-28", "Friday"},
		{ShiftDateInput{Start: date("2024-01-01"), Weeks: 2, Days: 3}, "2024-01-18", "Thursday"},
	}
	for _, tt := range tests {
		got, err := ShiftDate(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got.Date != tt.date || got.Weekday != tt.weekday {
			t.Errorf("ShiftDate(%+v) = %+v, want %s %s", tt.in, got, tt.date, tt.weekday)
		}
	}
	if _, err := ShiftDate(ShiftDateInput{Start: date("2024-01-01"), Days: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Error("negative amount accepted")
	}
}

func TestDuration(t *testing.T) {
	got, err := Duration("09:00", "17:30")
	if err != nil {
		t.Fatal(err)
	}
	if got.Hours != 8 || got.Minutes != 30 || got.TotalMinutes != 510 || got.TotalHours != 8.5 {
		t.Errorf("Duration = %+v", got)
	}
	got, _ = Duration("23:00", "01:15")
	if got.Hours != 2 || got.Minutes != 15 {
		t.Errorf("overnight = %+v", got)
	}
	for _, bad := range []string{"", "25:00", "12", "ab:cd"} {
		if _, err := Duration(bad, "10:00"); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Duration(%q) accepted", bad)
		}
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-03-10", "March 10, 2024", "2024-03-10T15:04:05Z"} {
		got, err := ParseDate(s)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", s, err)
			continue
		}
		if got.Format(DateLayout) != "2024-03-10" {
			t.Errorf("ParseDate(%q) = %v", s, got)
		}
	}
	if _, err := ParseDate("not a date"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("garbage accepted: %v", err)
	}
}

func TestPassword(t *testing.T) {
	got, err := Password(PasswordInput{Length: 24, Lower: true, Digits: true, ExcludeAmbiguous: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Password) != 24 {
		t.Errorf("len = %d", len(got.Password))
	}
	if strings.ContainsAny(got.Password, AmbiguousChars+UpperChars+SymbolChars) {
		t.Errorf("password %q has excluded characters", got.Password)
	}
	for _, bad := range []PasswordInput{{Length: 3, Lower: true}, {Length: 129, Lower: true}, {Length: 12}} {
		if _, err := Password(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Password(%+v) err = %v", bad, err)
		}
	}
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		pwd  string
		want string
	}{
		{"abc", Weak},
		{"abcdefgh", Weak},
		{"Abcdefgh", Fair},
		{"Abcdefgh1!", Good},
		{"Abcdefgh1!Abcdefgh", Strong},
	}
	for _, tt := range tests {
		if got := PasswordStrength(tt.pwd); got != tt.want {
			t.Errorf("PasswordStrength(%q) = %q, want %q", tt.pwd, got, tt.want)
		}
	}
}
