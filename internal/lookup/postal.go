package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// MinAreaLength is the shortest area name accepted by AreaLookup.
const MinAreaLength = 3

var pinPattern = regexp.MustCompile(`^\d{6}$`)

// PostOffice is one office returned by the postal service. Fields the area
// search does not return are left empty.
type PostOffice struct {
	Name           string `json:"Name"`
	Description    string `json:"Description,omitempty"`
	BranchType     string `json:"BranchType,omitempty"`
	DeliveryStatus string `json:"DeliveryStatus,omitempty"`
	Circle         string `json:"Circle,omitempty"`
	District       string `json:"District"`
	Division       string `json:"Division,omitempty"`
	Region         string `json:"Region,omitempty"`
	State          string `json:"State"`
	Country        string `json:"Country,omitempty"`
	Pincode        string `json:"Pincode,omitempty"`
}

type postalResponse struct {
	Message    string       `json:"Message"`
	Status     string       `json:"Status"`
	PostOffice []PostOffice `json:"PostOffice"`
}

// ValidPIN reports whether pin is exactly six ASCII digits.
func ValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}

// PINLookup returns the post offices serving a six-digit PIN code.
func (c *Client) PINLookup(ctx context.Context, pin string) ([]PostOffice, error) {
	if !ValidPIN(pin) {
		return nil, fmt.Errorf("%w: PIN must be exactly 6 digits", ErrInvalidInput)
	}
	return c.postOffices(ctx, c.opts.PostalBaseURL+"/pincode/"+pin)
}

// AreaLookup returns post offices, with their PIN codes, whose name matches area.
func (c *Client) AreaLookup(ctx context.Context, area string) ([]PostOffice, error) {
	area = strings.TrimSpace(area)
	if len([]rune(area)) < MinAreaLength {
		return nil, fmt.Errorf("%w: area must be at least %d characters", ErrInvalidInput, MinAreaLength)
	}
	return c.postOffices(ctx, c.opts.PostalBaseURL+"/postoffice/"+url.PathEscape(area))
}

func (c *Client) postOffices(ctx context.Context, u string) ([]PostOffice, error) {
	body, err := c.get(ctx, c.postal, u)
	if err != nil {
		return nil, err
	}
	var resp []postalResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: postal: decode: %w", ErrUpstream, err)
	}
	if len(resp) == 0 || resp[0].Status != "Success" || resp[0].PostOffice == nil {
		return nil, ErrNotFound
	}
	return resp[0].PostOffice, nil
}
