package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// IFSCLength is the length of every IFSC code.
const IFSCLength = 11

var ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

// Bank is a branch record from the IFSC service.
type Bank struct {
	Bank     string `json:"BANK"`
	IFSC     string `json:"IFSC"`
	Branch   string `json:"BRANCH"`
	Address  string `json:"ADDRESS"`
	City     string `json:"CITY"`
	State    string `json:"STATE"`
	District string `json:"DISTRICT"`
	Centre   string `json:"CENTRE"`
	Contact  string `json:"CONTACT"`
	IMPS     bool   `json:"IMPS"`
	RTGS     bool   `json:"RTGS"`
	NEFT     bool   `json:"NEFT"`
	UPI      bool   `json:"UPI"`
}

// NormalizeIFSC upper-cases and trims code.
func NormalizeIFSC(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateIFSC returns a user-facing reason code is not a valid IFSC, or
// nil. code must already be normalized.
func ValidateIFSC(code string) error {
	if len(code) != IFSCLength {
		return fmt.Errorf("%w: IFSC must be exactly %d characters", ErrInvalidInput, IFSCLength)
	}
	if !ifscPattern.MatchString(code) {
		return fmt.Errorf("%w: invalid IFSC format (e.g., SBIN0001234)", ErrInvalidInput)
	}
	return nil
}

// IFSCLookup returns the branch identified by code. Any non-2xx answer from
// the service is reported as ErrNotFound.
func (c *Client) IFSCLookup(ctx context.Context, code string) (Bank, error) {
	code = NormalizeIFSC(code)
	if err := ValidateIFSC(code); err != nil {
		return Bank{}, err
	}
	body, err := c.get(ctx, c.ifsc, c.opts.IFSCBaseURL+"/"+code)
	if answered(err) {
		return Bank{}, fmt.Errorf("%w: IFSC %s", ErrNotFound, code)
	}
	if err != nil {
		return Bank{}, err
	}
	var b Bank
	if err := json.Unmarshal(body, &b); err != nil {
		return Bank{}, fmt.Errorf("%w: ifsc: decode: %w", ErrUpstream, err)
	}
	return b, nil
}
