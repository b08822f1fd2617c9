// Package models defines the request and response bodies of the HTTP API.
package models

import "github.com/hyperjump/hitung/internal/formula"

// ConvertRequest is the body of POST /api/v1/convert. Value is a pointer so
// a missing value is distinguishable from zero.
type ConvertRequest struct {
	Value    *float64 `json:"value" validate:"required"`
	From     string   `json:"from" validate:"required"`
	To       string   `json:"to" validate:"required"`
	Category string   `json:"category" validate:"required"`
}

// UnitConvertRequest is the body of a unit converter run through
// /api/v1/calculate/{slug}; the category comes from the slug.
type UnitConvertRequest struct {
	Value *float64 `json:"value" validate:"required"`
	From  string   `json:"from" validate:"required"`
	To    string   `json:"to" validate:"required"`
}

// ArithmeticRequest is the simple calculator body.
type ArithmeticRequest struct {
	A  float64 `json:"a"`
	Op string  `json:"op" validate:"required,oneof=+ - − * × x / ÷"`
	B  float64 `json:"b"`
}

// EMIRequest is the EMI calculator body. Schedule adds the amortization
// rows to the response.
type EMIRequest struct {
	formula.EMIInput
	Schedule bool `json:"schedule,omitempty"`
}

// AverageRequest is the average calculator body.
type AverageRequest struct {
	Values []float64 `json:"values" validate:"required,min=2"`
}

// AgeRequest is the age calculator body. Today defaults to the current date.
type AgeRequest struct {
	BirthDate string `json:"birth_date" validate:"required"`
	Today     string `json:"today,omitempty"`
}

// DaysBetweenRequest is the days-between calculator body.
type DaysBetweenRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// ShiftDateRequest is the add/subtract days calculator body.
type ShiftDateRequest struct {
	Start     string `json:"start" validate:"required"`
	Operation string `json:"operation,omitempty" validate:"omitempty,oneof=add subtract"`
	Years     int    `json:"years" validate:"min=0"`
	Months    int    `json:"months" validate:"min=0"`
	Weeks     int    `json:"weeks" validate:"min=0"`
	Days      int    `json:"days" validate:"min=0"`
}

// DurationRequest is the time duration calculator body.
type DurationRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// QRRequest holds the query parameters of GET /api/v1/qr.
type QRRequest struct {
	Data string `validate:"required,max=2048"`
	Size int    `validate:"min=50,max=1000"`
}

// ScheduleRequest holds the query parameters of the amortization export.
type ScheduleRequest struct {
	Principal  float64 `validate:"gt=0"`
	AnnualRate float64 `validate:"gt=0"`
	Months     int     `validate:"gt=0,max=1200"`
}
