package config

import "time"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.CORSOrigins == nil {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 60 * time.Second
	}
	if cfg.Server.MaxSessions == 0 {
		cfg.Server.MaxSessions = 10000
	}
	if cfg.Lookup.PostalBaseURL == "" {
		cfg.Lookup.PostalBaseURL = "https://api.postalpincode.in"
	}
	if cfg.Lookup.IFSCBaseURL == "" {
		cfg.Lookup.IFSCBaseURL = "https://ifsc.razorpay.com"
	}
	if cfg.Lookup.QRBaseURL == "" {
		cfg.Lookup.QRBaseURL = "https://api.qrserver.com/v1/create-qr-code/"
	}
	if cfg.Lookup.Timeout == 0 {
		cfg.Lookup.Timeout = 10 * time.Second
	}
	b := &cfg.Lookup.Breaker
	if b.MaxRequests == 0 {
		b.MaxRequests = 1
	}
	if b.Interval == 0 {
		b.Interval = 60 * time.Second
	}
	if b.Timeout == 0 {
		b.Timeout = 30 * time.Second
	}
	if b.MinRequests == 0 {
		b.MinRequests = 5
	}
	if b.FailureRatio == 0 {
		b.FailureRatio = 0.6
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 8
	}
	if cfg.Search.Fuzziness == 0 {
		cfg.Search.Fuzziness = 2
	}
	if cfg.Search.MaxSuggestions == 0 {
		cfg.Search.MaxSuggestions = 3
	}
	// Fuzzy defaults to true when unset (nil).
	if cfg.Search.Fuzzy == nil {
		t := true
		cfg.Search.Fuzzy = &t
	}
}
