package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/period"
)

// DefaultHolidayAPI serves Japanese public holidays as {"YYYY-MM-DD": "name"}.
const DefaultHolidayAPI = "https://holidays-jp.github.io/api/v1/date.json"

// Set is a static holiday calendar keyed by YYYY-MM-DD.
type Set map[string]string

// NewSet builds a Set from YYYY-MM-DD strings.
func NewSet(dates ...string) Set {
	s := make(Set, len(dates))
	for _, d := range dates {
		s[d] = ""
	}
	return s
}

func (s Set) IsHoliday(date time.Time) bool {
	_, ok := s[date.Format(period.DateLayout)]
	return ok
}

// Remote fetches the holiday list from an HTTP JSON endpoint and answers
// from memory afterwards. Until a fetch succeeds the calendar is empty, so
// only weekends are highlighted; failed fetches are retried after Retry.
type Remote struct {
	URL    string
	Client *http.Client
	Retry  time.Duration

	fetching sync.Mutex
	mu       sync.RWMutex
	dates    Set
	loaded   bool
	next     time.Time
}

// DefaultHolidayRetry is how long a failed fetch waits before the next try.
const DefaultHolidayRetry = 5 * time.Minute

// NewRemote returns a Remote for url, or DefaultHolidayAPI when url is empty.
func NewRemote(url string) *Remote {
	if url == "" {
		url = DefaultHolidayAPI
	}
	return &Remote{URL: url, Client: &http.Client{Timeout: 10 * time.Second}, Retry: DefaultHolidayRetry}
}

// Load fetches the calendar unless it is cached, another fetch is running, or
// the last failure is still backing off. Servers call it at startup.
func (r *Remote) Load(ctx context.Context) error {
	if !r.due() || !r.fetching.TryLock() {
		return nil
	}
	defer r.fetching.Unlock()
	if !r.due() {
		return nil
	}

	dates, err := r.fetch(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.next = time.Now().Add(r.Retry)
		log.Printf("holiday calendar unavailable, retrying in %s: %v", r.Retry, err)
		return err
	}
	r.dates = dates
	r.loaded = true
	log.Printf("cached %d holidays", len(dates))
	return nil
}

func (r *Remote) due() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.loaded && !time.Now().Before(r.next)
}

func (r *Remote) fetch(ctx context.Context) (Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d", resp.StatusCode)
	}

	var dates Set
	if err := json.NewDecoder(resp.Body).Decode(&dates); err != nil {
		return nil, fmt.Errorf("decode holidays: %w", err)
	}
	return dates, nil
}

// IsHoliday answers from memory. A missing calendar is fetched in the
// background so requests never wait on the holiday API.
func (r *Remote) IsHoliday(date time.Time) bool {
	if r.due() {
		go r.Load(context.Background())
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dates.IsHoliday(date)
}
