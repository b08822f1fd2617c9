package models

import (
	"time"

	"github.com/hyperjump/hitung/internal/formula"
	"github.com/hyperjump/hitung/internal/lookup"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ConvertResponse is the result of a unit conversion.
type ConvertResponse struct {
	Value     float64 `json:"value"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Category  string  `json:"category"`
	Result    float64 `json:"result"`
	Formatted string  `json:"formatted"`
}

// CalculateResponse wraps the result of a formula run by slug.
type CalculateResponse struct {
	Calculator string `json:"calculator"`
	Result     any    `json:"result"`
}

// ArithmeticResponse is the simple calculator result.
type ArithmeticResponse struct {
	Result    float64 `json:"result"`
	Formatted string  `json:"formatted"`
}

// EMIResponse is the EMI result with the optional schedule.
type EMIResponse struct {
	formula.EMIResult
	Schedule []formula.AmortizationRow `json:"schedule,omitempty"`
}

// PostOfficesResponse is the result of a PIN or area lookup.
type PostOfficesResponse struct {
	Query       string              `json:"query"`
	Count       int                 `json:"count"`
	PostOffices []lookup.PostOffice `json:"post_offices"`
}

// LookupResult is the latest accepted lookup of a session.
type LookupResult struct {
	Ticket    uint64    `json:"ticket"`
	Kind      string    `json:"kind"`
	Query     string    `json:"query"`
	Result    any       `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
	Completed time.Time `json:"completed"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string            `json:"status"`
	Version     string            `json:"version,omitempty"`
	Calculators int               `json:"calculators"`
	Breakers    map[string]string `json:"breakers,omitempty"`
}
