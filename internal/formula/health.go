package formula

import "math"

// Sex selects the sex-specific constants of the health formulas.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

func (s Sex) valid() bool { return s == Male || s == Female }

// BMI categories.
const (
	Underweight  = "Underweight"
	NormalWeight = "Normal weight"
	Overweight   = "Overweight"
	Obese        = "Obese"
)

// BMIInput is height in centimeters and weight in kilograms.
type BMIInput struct {
	HeightCM float64 `json:"height_cm"`
	WeightKG float64 `json:"weight_kg"`
}

// BMIResult is the body mass index rounded to one decimal and its category.
type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// BMI computes weight / height².
func BMI(in BMIInput) (BMIResult, error) {
	if !finite(in.HeightCM, in.WeightKG) || in.HeightCM <= 0 {
		return BMIResult{}, invalid("height_cm", "must be greater than 0")
	}
	if in.WeightKG <= 0 {
		return BMIResult{}, invalid("weight_kg", "must be greater than 0")
	}
	h := in.HeightCM / 100
	bmi := in.WeightKG / (h * h)
	return BMIResult{BMI: round(bmi, 1), Category: bmiCategory(bmi)}, nil
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return NormalWeight
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// Activity multipliers for TDEE.
const (
	Sedentary  = 1.2
	Light      = 1.375
	Moderate   = 1.55
	Active     = 1.725
	VeryActive = 1.9
)

// BMRInput feeds the Mifflin-St Jeor equation. Activity is a TDEE
// multiplier; zero selects Moderate.
type BMRInput struct {
	WeightKG float64 `json:"weight_kg"`
	HeightCM float64 `json:"height_cm"`
	Age      float64 `json:"age"`
	Sex      Sex     `json:"sex"`
	Activity float64 `json:"activity"`
}

// BMRResult is basal metabolic rate and total daily energy expenditure in kcal.
type BMRResult struct {
	BMR  float64 `json:"bmr"`
	TDEE float64 `json:"tdee"`
}

func mifflinStJeor(w, h, age float64, sex Sex) float64 {
	bmr := 10*w + 6.25*h - 5*age
	if sex == Male {
		return bmr + 5
	}
	return bmr - 161
}

// BMR computes the Mifflin-St Jeor basal metabolic rate.
func BMR(in BMRInput) (BMRResult, error) {
	if !finite(in.WeightKG, in.HeightCM, in.Age, in.Activity) || in.WeightKG < 10 || in.WeightKG > 300 {
		return BMRResult{}, invalid("weight_kg", "must be between 10 and 300")
	}
	if in.HeightCM < 50 || in.HeightCM > 250 {
		return BMRResult{}, invalid("height_cm", "must be between 50 and 250")
	}
	if in.Age < 0 || in.Age > 120 {
		return BMRResult{}, invalid("age", "must be between 0 and 120")
	}
	if !in.Sex.valid() {
		return BMRResult{}, invalid("sex", "must be male or female")
	}
	activity, err := activityOrDefault(in.Activity)
	if err != nil {
		return BMRResult{}, err
	}
	bmr := mifflinStJeor(in.WeightKG, in.HeightCM, in.Age, in.Sex)
	return BMRResult{BMR: bmr, TDEE: bmr * activity}, nil
}

func activityOrDefault(a float64) (float64, error) {
	if a == 0 {
		return Moderate, nil
	}
	if a < Sedentary || a > VeryActive {
		return 0, invalid("activity", "must be between %.1f and %.1f", Sedentary, VeryActive)
	}
	return a, nil
}

// CaloriesResult holds daily calorie targets in whole kcal.
type CaloriesResult struct {
	BMR         float64 `json:"bmr"`
	Maintenance float64 `json:"maintenance"`
	MildLoss    float64 `json:"mild_loss"`
	WeightLoss  float64 `json:"weight_loss"`
	MildGain    float64 `json:"mild_gain"`
	WeightGain  float64 `json:"weight_gain"`
}

// Calories derives maintenance calories and ±10 % / ±20 % targets.
func Calories(in BMRInput) (CaloriesResult, error) {
	if !finite(in.WeightKG, in.HeightCM, in.Age, in.Activity) || in.Age < 1 || in.Age > 120 {
		return CaloriesResult{}, invalid("age", "must be between 1 and 120")
	}
	if in.WeightKG < 10 || in.WeightKG > 500 {
		return CaloriesResult{}, invalid("weight_kg", "must be between 10 and 500")
	}
	if in.HeightCM < 50 || in.HeightCM > 300 {
		return CaloriesResult{}, invalid("height_cm", "must be between 50 and 300")
	}
	if !in.Sex.valid() {
		return CaloriesResult{}, invalid("sex", "must be male or female")
	}
	activity, err := activityOrDefault(in.Activity)
	if err != nil {
		return CaloriesResult{}, err
	}
	bmr := mifflinStJeor(in.WeightKG, in.HeightCM, in.Age, in.Sex)
	m := math.Round(bmr * activity)
	return CaloriesResult{
		BMR:         math.Round(bmr),
		Maintenance: m,
		MildLoss:    math.Round(m * 0.9),
		WeightLoss:  math.Round(m * 0.8),
		MildGain:    math.Round(m * 1.1),
		WeightGain:  math.Round(m * 1.2),
	}, nil
}

// BodyFatInput holds circumference measurements in centimeters. Hip is
// required for females only.
type BodyFatInput struct {
	Sex      Sex     `json:"sex"`
	HeightCM float64 `json:"height_cm"`
	NeckCM   float64 `json:"neck_cm"`
	WaistCM  float64 `json:"waist_cm"`
	HipCM    float64 `json:"hip_cm"`
	WeightKG float64 `json:"weight_kg"`
}

// BodyFatResult values are rounded to one decimal.
type BodyFatResult struct {
	BodyFat  float64 `json:"body_fat"`
	Category string  `json:"category"`
	FatMass  float64 `json:"fat_mass"`
	LeanMass float64 `json:"lean_mass"`
}

// BodyFat estimates body fat percentage with the US Navy formula.
func BodyFat(in BodyFatInput) (BodyFatResult, error) {
	if !finite(in.HeightCM, in.NeckCM, in.WaistCM, in.HipCM, in.WeightKG) || in.HeightCM < 50 {
		return BodyFatResult{}, invalid("height_cm", "must be at least 50")
	}
	if in.NeckCM < 20 {
		return BodyFatResult{}, invalid("neck_cm", "must be at least 20")
	}
	if in.WaistCM < 40 {
		return BodyFatResult{}, invalid("waist_cm", "must be at least 40")
	}
	if in.WeightKG <= 0 {
		return BodyFatResult{}, invalid("weight_kg", "must be greater than 0")
	}
	if !in.Sex.valid() {
		return BodyFatResult{}, invalid("sex", "must be male or female")
	}

	var bf float64
	if in.Sex == Male {
		if in.WaistCM <= in.NeckCM {
			return BodyFatResult{}, invalid("waist_cm", "must be greater than neck")
		}
		bf = 495/(1.0324-0.19077*math.Log10(in.WaistCM-in.NeckCM)+0.15456*math.Log10(in.HeightCM)) - 450
	} else {
		if in.HipCM < 50 {
			return BodyFatResult{}, invalid("hip_cm", "must be at least 50")
		}
		bf = 495/(1.29579-0.35004*math.Log10(in.WaistCM+in.HipCM-in.NeckCM)+0.221*math.Log10(in.HeightCM)) - 450
	}
	bf = math.Max(0, math.Min(100, bf))
	fat := bf / 100 * in.WeightKG
	return BodyFatResult{
		BodyFat:  round(bf, 1),
		Category: bodyFatCategory(bf, in.Sex),
		FatMass:  round(fat, 1),
		LeanMass: round(in.WeightKG-fat, 1),
	}, nil
}

func bodyFatCategory(bf float64, sex Sex) string {
	limits := [4]float64{6, 14, 18, 25}
	if sex == Female {
		limits = [4]float64{14, 21, 25, 32}
	}
	switch {
	case bf < limits[0]:
		return "Essential Fat"
	case bf < limits[1]:
		return "Athletes"
	case bf < limits[2]:
		return "Fitness"
	case bf < limits[3]:
		return "Average"
	default:
		return Obese
	}
}

// IdealWeightInput is height in centimeters.
type IdealWeightInput struct {
	HeightCM float64 `json:"height_cm"`
	Sex      Sex     `json:"sex"`
}

// IdealWeightResult holds kilograms per formula, rounded to one decimal.
type IdealWeightResult struct {
	Robinson float64 `json:"robinson"`
	Miller   float64 `json:"miller"`
	Devine   float64 `json:"devine"`
	Hamwi    float64 `json:"hamwi"`
	Average  float64 `json:"average"`
}

// IdealWeight applies the Robinson, Miller, Devine and Hamwi formulas.
func IdealWeight(in IdealWeightInput) (IdealWeightResult, error) {
	if !finite(in.HeightCM) || in.HeightCM < 50 || in.HeightCM > 250 {
		return IdealWeightResult{}, invalid("height_cm", "must be between 50 and 250")
	}
	if !in.Sex.valid() {
		return IdealWeightResult{}, invalid("sex", "must be male or female")
	}
	over := math.Max(0, in.HeightCM/2.54-60)
	var r IdealWeightResult
	if in.Sex == Male {
		r = IdealWeightResult{
			Robinson: 52 + 1.9*over,
			Miller:   56.2 + 1.41*over,
			Devine:   50 + 2.3*over,
			Hamwi:    48 + 2.7*over,
		}
	} else {
		r = IdealWeightResult{
			Robinson: 49 + 1.7*over,
			Miller:   53.1 + 1.36*over,
			Devine:   45.5 + 2.3*over,
			Hamwi:    45.5 + 2.2*over,
		}
	}
	r.Robinson = round(r.Robinson, 1)
	r.Miller = round(r.Miller, 1)
	r.Devine = round(r.Devine, 1)
	r.Hamwi = round(r.Hamwi, 1)
	r.Average = round((r.Robinson+r.Miller+r.Devine+r.Hamwi)/4, 1)
	return r, nil
}
