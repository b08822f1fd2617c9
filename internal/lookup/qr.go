package lookup

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// QR image size bounds in pixels.
const (
	MinQRSize     = 50
	MaxQRSize     = 1000
	DefaultQRSize = 256
)

// QRURL builds the image URL for data rendered at size x size pixels.
func (c *Client) QRURL(data string, size int) (string, error) {
	if data == "" {
		return "", fmt.Errorf("%w: QR data is required", ErrInvalidInput)
	}
	if size < MinQRSize || size > MaxQRSize {
		return "", fmt.Errorf("%w: QR size must be between %d and %d", ErrInvalidInput, MinQRSize, MaxQRSize)
	}
	s := strconv.Itoa(size)
	q := url.Values{}
	q.Set("size", s+"x"+s)
	q.Set("data", data)
	return c.opts.QRBaseURL + "?" + q.Encode(), nil
}

// FetchQR downloads the PNG for data.
func (c *Client) FetchQR(ctx context.Context, data string, size int) ([]byte, error) {
	u, err := c.QRURL(data, size)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, c.qr, u)
}
