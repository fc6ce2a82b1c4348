package gazetteer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/roach88/yearspans/internal/span"
)

// Entry is one label of one PeriodO period.
type Entry struct {
	Authority string
	URI       string
	Label     string
	Language  string
	Span      span.YearSpan
}

type periodoDocument struct {
	ID          string                     `json:"id"`
	Periods     map[string]periodoPeriod   `json:"periods"`
	Authorities map[string]periodoDocument `json:"authorities"`
}

type periodoPeriod struct {
	ID              string              `json:"id"`
	Label           string              `json:"label"`
	LanguageTag     string              `json:"languageTag"`
	LocalizedLabels map[string][]string `json:"localizedLabels"`
	Start           periodoTerminus     `json:"start"`
	Stop            periodoTerminus     `json:"stop"`
}

type periodoTerminus struct {
	In struct {
		Year         periodoYear `json:"year"`
		EarliestYear periodoYear `json:"earliestYear"`
		LatestYear   periodoYear `json:"latestYear"`
	} `json:"in"`
}

// periodoYear is an ISO 8601 year that PeriodO writes either as a string
// ("-0799") or a number.
type periodoYear struct {
	value int
	set   bool
}

func (y *periodoYear) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := span.ParseCanonicalYear(s)
	if err != nil {
		return err
	}
	y.value, y.set = v, true
	return nil
}

// earliest is the first year a terminus may denote.
func (t periodoTerminus) earliest() (int, bool) {
	if t.In.Year.set {
		return t.In.Year.value, true
	}
	if t.In.EarliestYear.set {
		return t.In.EarliestYear.value, true
	}
	return t.In.LatestYear.value, t.In.LatestYear.set
}

// latest is the last year a terminus may denote.
func (t periodoTerminus) latest() (int, bool) {
	if t.In.Year.set {
		return t.In.Year.value, true
	}
	if t.In.LatestYear.set {
		return t.In.LatestYear.value, true
	}
	return t.In.EarliestYear.value, t.In.EarliestYear.set
}

// ParsePeriodO decodes a PeriodO authority document, or a full dataset with
// an "authorities" map, into one entry per period label. Periods without a
// usable start or stop year are left out. Entries are sorted by authority,
// label and language.
func ParsePeriodO(r io.Reader) ([]Entry, error) {
	var doc periodoDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode PeriodO document")
	}

	var entries []Entry
	if doc.Periods != nil {
		entries = append(entries, authorityEntries(doc.ID, doc.Periods)...)
	}
	for id, auth := range doc.Authorities {
		if auth.ID == "" {
			auth.ID = id
		}
		entries = append(entries, authorityEntries(auth.ID, auth.Periods)...)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Authority != b.Authority {
			return a.Authority < b.Authority
		}
		if a.Label != b.Label {
			return a.Label < b.Label
		}
		return a.Language < b.Language
	})
	return entries, nil
}

func authorityEntries(authority string, periods map[string]periodoPeriod) []Entry {
	var entries []Entry
	for id, p := range periods {
		if p.ID == "" {
			p.ID = id
		}
		lo, ok := p.Start.earliest()
		if !ok {
			continue
		}
		hi, ok := p.Stop.latest()
		if !ok {
			continue
		}
		s := span.New(lo, hi)
		uri := DefaultPeriodOBaseURL + p.ID

		seen := make(map[string]bool)
		add := func(label, lang string) {
			lang = baseLanguage(lang)
			k := lang + "\x00" + Key(label)
			if Key(label) == "" || seen[k] {
				return
			}
			seen[k] = true
			entries = append(entries, Entry{
				Authority: authority,
				URI:       uri,
				Label:     label,
				Language:  lang,
				Span:      s,
			})
		}
		add(p.Label, p.LanguageTag)
		for tag, labels := range p.LocalizedLabels {
			for _, label := range labels {
				add(label, tag)
			}
		}
	}
	return entries
}

// baseLanguage reduces a BCP 47 tag such as "en-latn" to its base language.
// Unparseable tags are kept lowercased.
func baseLanguage(tag string) string {
	if tag == "" {
		return ""
	}
	t, err := language.Parse(tag)
	if err != nil {
		return strings.ToLower(tag)
	}
	base, _ := t.Base()
	return base.String()
}

// PeriodO is a Gazetteer backed by PeriodO authority documents fetched over
// HTTP. Each authority is downloaded once and kept for the life of the
// client; concurrent first lookups share one request.
//
// A download is not bound to the lookup that started it. A caller whose
// context ends stops waiting, while the download runs on under the client's
// fetch timeout and serves later lookups.
type PeriodO struct {
	opts    options
	limiter *rate.Limiter

	mu          sync.RWMutex
	authorities map[string]map[string]span.YearSpan
	group       singleflight.Group
}

// NewPeriodO creates a PeriodO client.
func NewPeriodO(opts ...Option) *PeriodO {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	limit := rate.Inf
	if o.rate > 0 {
		limit = rate.Limit(o.rate)
	}
	return &PeriodO{
		opts:        o,
		limiter:     rate.NewLimiter(limit, 1),
		authorities: make(map[string]map[string]span.YearSpan),
	}
}

// Lookup implements Gazetteer.
func (p *PeriodO) Lookup(ctx context.Context, label, authority string) (span.YearSpan, error) {
	if authority == "" {
		return span.Unresolved(), notFound(label, authority)
	}
	periods, err := p.authority(ctx, authority)
	if err != nil {
		return span.Unresolved(), err
	}
	if s, ok := periods[Key(label)]; ok {
		return s, nil
	}
	return span.Unresolved(), notFound(label, authority)
}

func (p *PeriodO) cached(id string) (map[string]span.YearSpan, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	periods, ok := p.authorities[id]
	return periods, ok
}

func (p *PeriodO) authority(ctx context.Context, id string) (map[string]span.YearSpan, error) {
	if periods, ok := p.cached(id); ok {
		return periods, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(err, "PeriodO authority %s", id)
	}

	ch := p.group.DoChan(id, func() (any, error) {
		if periods, ok := p.cached(id); ok {
			return periods, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.opts.fetchTimeout)
		defer cancel()
		entries, err := p.fetch(fetchCtx, id)
		if err != nil {
			return nil, err
		}
		periods := make(map[string]span.YearSpan, len(entries))
		for _, e := range entries {
			if p.opts.language != "" && e.Language != p.opts.language {
				continue
			}
			k := Key(e.Label)
			if _, dup := periods[k]; !dup {
				periods[k] = e.Span
			}
		}

		p.mu.Lock()
		p.authorities[id] = periods
		p.mu.Unlock()
		p.opts.logger.Debug("PeriodO authority loaded",
			"authority", id,
			"labels", len(periods),
		)
		return periods, nil
	})

	select {
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "wait for PeriodO authority %s", id)
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(map[string]span.YearSpan), nil
	}
}

func (p *PeriodO) fetch(ctx context.Context, id string) ([]Entry, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "wait for PeriodO rate limit")
	}

	url := fmt.Sprintf("%s%s.json", p.opts.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.opts.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch PeriodO authority %s", id)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.Wrapf(ErrNotFound, "PeriodO authority %s", id)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("PeriodO returned status %d for %s: %s", resp.StatusCode, id, string(body))
	}

	entries, err := ParsePeriodO(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "PeriodO authority %s", id)
	}
	for i := range entries {
		if entries[i].Authority == "" {
			entries[i].Authority = id
		}
	}
	return entries, nil
}
