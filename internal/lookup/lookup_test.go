package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

const pinBody = `[{"Message":"Number of pincode(s) found:2","Status":"Success","PostOffice":[
{"Name":"Connaught Place","BranchType":"Sub Post Office","DeliveryStatus":"Non-Delivery","District":"New Delhi","State":"Delhi","Country":"India"},
{"Name":"Janpath","BranchType":"Sub Post Office","DeliveryStatus":"Delivery","District":"New Delhi","State":"Delhi","Country":"India"}]}]`

const bankBody = `{"BANK":"State Bank of India","IFSC":"SBIN0000001","BRANCH":"Kolkata Main","CITY":"Kolkata","STATE":"West Bengal","NEFT":true,"RTGS":true,"IMPS":true,"UPI":false}`

type fakeUpstream struct {
	*httptest.Server
	hits  atomic.Int32
	paths chan string
}

func newFake(t *testing.T, h http.HandlerFunc) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{paths: make(chan string, 64)}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.paths <- r.URL.EscapedPath() + "?" + r.URL.RawQuery
		h(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func TestPINLookup(t *testing.T) {
	f := newFake(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pincode/110001" {
			w.Write([]byte(pinBody))
			return
		}
		w.Write([]byte(`[{"Message":"No records found","Status":"Error","PostOffice":null}]`))
	})
	c := NewClient(Options{PostalBaseURL: f.URL})
	ctx := context.Background()

	offices, err := c.PINLookup(ctx, "110001")
	if err != nil {
		t.Fatal(err)
	}
	if len(offices) != 2 || offices[0].Name != "Connaught Place" || offices[1].DeliveryStatus != "Delivery" {
		t.Errorf("offices = %+v", offices)
	}

	if _, err := c.PINLookup(ctx, "999999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown PIN err = %v, want ErrNotFound", err)
	}
}

func TestPINLookup_ValidatesBeforeRequest(t *testing.T) {
	f := newFake(t, func(w http.ResponseWriter, r *http.Request) {})
	c := NewClient(Options{PostalBaseURL: f.URL})
	for _, pin := range []string{"", "12345", "1234567", "12a456", "١٢٣٤٥٦"} {
		if _, err := c.PINLookup(context.Background(), pin); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("PINLookup(%q) err = %v, want ErrInvalidInput", pin, err)
		}
	}
	if n := f.hits.Load(); n != 0 {
		t.Errorf("upstream called %d times for invalid input", n)
	}
}

func TestAreaLookup(t *testing.T) {
	f := newFake(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"Status":"Success","PostOffice":[{"Name":"Andheri East","District":"Mumbai","State":"Maharashtra","Pincode":"400069"}]}]`))
	})
	c := NewClient(Options{PostalBaseURL: f.URL})

	got, err := c.AreaLookup(context.Background(), "  Andheri East ")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Pincode != "400069" {
		t.Errorf("AreaLookup = %+v", got)
	}
	if p := <-f.paths; p != "/postoffice/Andheri%20East?" {
		t.Errorf("request path = %q", p)
	}
	if _, err := c.AreaLookup(context.Background(), " ab "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("short area err = %v", err)
	}
}

func TestPostal_MalformedPayload(t *testing.T) {
	f := newFake(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	})
	c := NewClient(Options{PostalBaseURL: f.URL})
	if _, err := c.PINLookup(context.Background(), "110001"); !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
}

func TestIFSCLookup(t *testing.T) {
	f := newFake(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/SBIN0000001" {
			w.Write([]byte(bankBody))
			return
		}
		http.Error(w, `"Not Found"`, http.StatusNotFound)
	})
	c := NewClient(Options{IFSCBaseURL: f.URL})
	ctx := context.Background()

	b, err := c.IFSCLookup(ctx, " sbin0000001 ")
	if err != nil {
		t.Fatal(err)
	}
	if b.Bank != "State Bank of India" || !b.NEFT || b.UPI {
		t.Errorf("bank = %+v", b)
	}

	if _, err := c.IFSCLookup(ctx, "HDFC0000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown IFSC err = %v, want ErrNotFound", err)
	}

	before := f.hits.Load()
	for _, code := range []string{"", "SBIN000000", "SBIN1000001", "SBI00000001", "SBIN0000001X"} {
		if _, err := c.IFSCLookup(ctx, code); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("IFSCLookup(%q) err = %v, want ErrInvalidInput", code, err)
		}
	}
	if f.hits.Load() != before {
		t.Error("invalid IFSC reached the upstream")
	}
}

func TestQRURL(t *testing.T) {
	c := NewClient(Options{})
	got, err := c.QRURL("hello world&x=1", 200)
	if err != nil {
		t.Fatal(err)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, DefaultQRBaseURL+"?") {
		t.Errorf("url = %q", got)
	}
	if u.Query().Get("size") != "200x200" || u.Query().Get("data") != "hello world&x=1" {
		t.Errorf("query = %v", u.Query())
	}
	for _, tt := range []struct {
		data string
		size int
	}{{"", 200}, {"x", 49}, {"x", 1001}} {
		if _, err := c.QRURL(tt.data, tt.size); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("QRURL(%q, %d) err = %v", tt.data, tt.size, err)
		}
	}
}

func TestFetchQR(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n")
	f := newFake(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	})
	c := NewClient(Options{QRBaseURL: f.URL + "/", CacheSize: 4})
	for i := 0; i < 2; i++ {
		got, err := c.FetchQR(context.Background(), "otp", 100)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != string(png) {
			t.Errorf("body = %q", got)
		}
	}
	if n := f.hits.Load(); n != 1 {
		t.Errorf("upstream hits = %d, want 1 with cache", n)
	}
}

func TestBreakerOpensOnFailures(t *testing.T) {
	f := newFake(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c := NewClient(Options{
		PostalBaseURL: f.URL,
		Breaker: BreakerSettings{
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			MinRequests:  2,
			FailureRatio: 0.5,
		},
	})
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := c.PINLookup(ctx, "110001"); !errors.Is(err, ErrUpstream) {
			t.Fatalf("attempt %d err = %v", i, err)
		}
	}
	if st, _ := c.BreakerState("postal"); st != gobreaker.StateOpen {
		t.Fatalf("breaker state = %v, want open", st)
	}
	if _, err := c.PINLookup(ctx, "110001"); !errors.Is(err, ErrUpstream) {
		t.Errorf("open breaker err = %v", err)
	}
	if n := f.hits.Load(); n != 2 {
		t.Errorf("upstream hits = %d, want 2 (third call rejected)", n)
	}
	if st, _ := c.BreakerState("ifsc"); st != gobreaker.StateClosed {
		t.Errorf("ifsc breaker = %v, want closed", st)
	}
}

func TestCache_LRU(t *testing.T) {
	c := NewCache[int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("a = %v, %v", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d", c.Len())
	}

	off := NewCache[int](0)
	off.Set("a", 1)
	if _, ok := off.Get("a"); ok {
		t.Error("disabled cache stored a value")
	}
	calls := 0
	mk := func() int { calls++; return calls }
	off.GetOrAdd("k", mk)
	off.GetOrAdd("k", mk)
	if calls != 2 {
		t.Errorf("create calls = %d, want 2 when disabled", calls)
	}
}

func TestSlot_DropsStaleResponses(t *testing.T) {
	var seq Sequencer
	var slot Slot[string]

	older := seq.Next()
	newer := seq.Next()
	if !slot.Store(newer, "fast") {
		t.Fatal("first store rejected")
	}
	if slot.Store(older, "slow") {
		t.Error("stale response overwrote newer result")
	}
	v, ticket, ok := slot.Load()
	if !ok || v != "fast" || ticket != newer {
		t.Errorf("Load = %q, %d, %v", v, ticket, ok)
	}
}

func TestSequencer_Concurrent(t *testing.T) {
	var seq Sequencer
	var slot Slot[uint64]
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := seq.Next()
			slot.Store(n, n)
		}()
	}
	wg.Wait()
	v, ticket, _ := slot.Load()
	if ticket != 50 || v != 50 {
		t.Errorf("final = %d (ticket %d), want 50", v, ticket)
	}
}
