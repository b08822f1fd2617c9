package formula

import "math"

const (
	// MonthsPerYear is used to turn annual rates into monthly ones.
	MonthsPerYear = 12
	// MaxMonths bounds a loan tenure, and with it the schedule length.
	MaxMonths = 1200
)

// EMIInput is a loan for the EMI calculator. AnnualRate is a percentage.
type EMIInput struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	Months     int     `json:"months"`
}

// EMIResult holds the monthly instalment and totals, rounded to 2 decimals.
type EMIResult struct {
	EMI           float64 `json:"emi"`
	TotalInterest float64 `json:"total_interest"`
	TotalPayment  float64 `json:"total_payment"`
}

func (in EMIInput) validate() error {
	if !finite(in.Principal, in.AnnualRate) || in.Principal <= 0 {
		return invalid("principal", "must be greater than 0")
	}
	if in.AnnualRate <= 0 {
		return invalid("annual_rate", "must be greater than 0")
	}
	if in.Months <= 0 {
		return invalid("months", "must be greater than 0")
	}
	if in.Months > MaxMonths {
		return invalid("months", "must be at most %d", MaxMonths)
	}
	if !finite(in.monthlyEMI() * float64(in.Months)) {
		return errTooLarge
	}
	return nil
}

// monthlyEMI is the unrounded instalment P*R*(1+R)^N / ((1+R)^N - 1).
func (in EMIInput) monthlyEMI() float64 {
	r := in.AnnualRate / MonthsPerYear / 100
	g := math.Pow(1+r, float64(in.Months))
	return in.Principal * r * g / (g - 1)
}

// EMI computes the equated monthly instalment of a loan.
func EMI(in EMIInput) (EMIResult, error) {
	if err := in.validate(); err != nil {
		return EMIResult{}, err
	}
	emi := in.monthlyEMI()
	total := emi * float64(in.Months)
	return EMIResult{
		EMI:           round(emi, 2),
		TotalInterest: round(total-in.Principal, 2),
		TotalPayment:  round(total, 2),
	}, nil
}

// AmortizationRow is one month of a repayment schedule.
type AmortizationRow struct {
	Month     int     `json:"month"`
	Opening   float64 `json:"opening"`
	EMI       float64 `json:"emi"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Closing   float64 `json:"closing"`
}

// Amortization returns the month-by-month schedule for the loan. Amounts
// are rounded to 2 decimals; the last row absorbs the rounding remainder so
// the closing balance ends at zero.
func Amortization(in EMIInput) ([]AmortizationRow, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	r := in.AnnualRate / MonthsPerYear / 100
	emi := in.monthlyEMI()
	balance := in.Principal
	rows := make([]AmortizationRow, in.Months)
	for m := 1; m <= in.Months; m++ {
		interest := balance * r
		principal := emi - interest
		if m == in.Months {
			principal = balance
		}
		closing := balance - principal
		rows[m-1] = AmortizationRow{
			Month:     m,
			Opening:   round(balance, 2),
			EMI:       round(principal+interest, 2),
			Interest:  round(interest, 2),
			Principal: round(principal, 2),
			Closing:   round(closing, 2),
		}
		balance = closing
	}
	return rows, nil
}

// SimpleInterestInput uses a percentage rate and a term in years.
type SimpleInterestInput struct {
	Principal float64 `json:"principal"`
	Rate      float64 `json:"rate"`
	Years     float64 `json:"years"`
}

// InterestResult is the interest earned and the final amount.
type InterestResult struct {
	Interest float64 `json:"interest"`
	Amount   float64 `json:"amount"`
}

// SimpleInterest computes P*R*T/100.
func SimpleInterest(in SimpleInterestInput) (InterestResult, error) {
	if !finite(in.Principal, in.Rate, in.Years) || in.Principal <= 0 {
		return InterestResult{}, invalid("principal", "must be greater than 0")
	}
	if in.Rate < 0 || in.Rate > 100 {
		return InterestResult{}, invalid("rate", "must be between 0 and 100")
	}
	if in.Years <= 0 {
		return InterestResult{}, invalid("years", "must be greater than 0")
	}
	interest := in.Principal * in.Rate * in.Years / 100
	if !finite(in.Principal + interest) {
		return InterestResult{}, errTooLarge
	}
	return InterestResult{Interest: interest, Amount: in.Principal + interest}, nil
}

// CompoundInterestInput compounds PerYear times a year at Rate percent.
type CompoundInterestInput struct {
	Principal float64 `json:"principal"`
	Rate      float64 `json:"rate"`
	Years     float64 `json:"years"`
	PerYear   float64 `json:"per_year"`
}

// CompoundInterest computes A = P(1 + r/n)^(nt).
func CompoundInterest(in CompoundInterestInput) (InterestResult, error) {
	if !finite(in.Principal, in.Rate, in.Years, in.PerYear) || in.Principal <= 0 {
		return InterestResult{}, invalid("principal", "must be greater than 0")
	}
	if in.Rate < 0 || in.Rate > 100 {
		return InterestResult{}, invalid("rate", "must be between 0 and 100")
	}
	if in.Years <= 0 {
		return InterestResult{}, invalid("years", "must be greater than 0")
	}
	if in.PerYear <= 0 {
		return InterestResult{}, invalid("per_year", "must be greater than 0")
	}
	r := in.Rate / 100
	amount := in.Principal * math.Pow(1+r/in.PerYear, in.PerYear*in.Years)
	if !finite(amount) {
		return InterestResult{}, errTooLarge
	}
	return InterestResult{Interest: amount - in.Principal, Amount: amount}, nil
}

// SIPInput is a monthly investment plan with an expected annual return in percent.
type SIPInput struct {
	Monthly      float64 `json:"monthly"`
	AnnualReturn float64 `json:"annual_return"`
	Years        float64 `json:"years"`
}

// SIPResult is the amount invested, the gain and the maturity value.
type SIPResult struct {
	Invested   float64 `json:"invested"`
	Returns    float64 `json:"returns"`
	TotalValue float64 `json:"total_value"`
}

// SIP computes the future value of a monthly annuity due:
// P * ((1+r)^n - 1)/r * (1+r).
func SIP(in SIPInput) (SIPResult, error) {
	if !finite(in.Monthly, in.AnnualReturn, in.Years) || in.Monthly <= 0 {
		return SIPResult{}, invalid("monthly", "must be greater than 0")
	}
	if in.AnnualReturn <= 0 {
		return SIPResult{}, invalid("annual_return", "must be greater than 0")
	}
	if in.Years <= 0 {
		return SIPResult{}, invalid("years", "must be greater than 0")
	}
	r := in.AnnualReturn / MonthsPerYear / 100
	n := in.Years * MonthsPerYear
	total := in.Monthly * ((math.Pow(1+r, n) - 1) / r) * (1 + r)
	invested := in.Monthly * n
	if !finite(total, invested) {
		return SIPResult{}, errTooLarge
	}
	return SIPResult{Invested: invested, Returns: total - invested, TotalValue: total}, nil
}

// GSTInput is an amount and GST rate in percent. Inclusive means Amount
// already contains the tax.
type GSTInput struct {
	Amount    float64 `json:"amount"`
	Rate      float64 `json:"rate"`
	Inclusive bool    `json:"inclusive"`
}

// GSTResult splits the tax equally into central and state parts.
type GSTResult struct {
	Net   float64 `json:"net"`
	GST   float64 `json:"gst"`
	CGST  float64 `json:"cgst"`
	SGST  float64 `json:"sgst"`
	Total float64 `json:"total"`
}

// GST adds tax to, or extracts it from, an amount.
func GST(in GSTInput) (GSTResult, error) {
	if !finite(in.Amount, in.Rate) || in.Amount <= 0 {
		return GSTResult{}, invalid("amount", "must be greater than 0")
	}
	if in.Rate < 0 {
		return GSTResult{}, invalid("rate", "must not be negative")
	}
	var net, tax, total float64
	if in.Inclusive {
		net = in.Amount * 100 / (100 + in.Rate)
		tax = in.Amount - net
		total = in.Amount
	} else {
		net = in.Amount
		tax = in.Amount * in.Rate / 100
		total = in.Amount + tax
	}
	if !finite(net, tax, total) {
		return GSTResult{}, errTooLarge
	}
	return GSTResult{Net: net, GST: tax, CGST: tax / 2, SGST: tax / 2, Total: total}, nil
}
