package gazetteer

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultPeriodOBaseURL is where PeriodO authority documents are resolved.
const DefaultPeriodOBaseURL = "https://n2t.net/ark:/99152/"

// DefaultPeriodORate is the default request rate to PeriodO, per second.
const DefaultPeriodORate = 2.0

// DefaultFetchTimeout bounds one PeriodO authority download.
const DefaultFetchTimeout = 30 * time.Second

type options struct {
	logger       *slog.Logger
	baseURL      string
	httpClient   *http.Client
	rate         float64
	language     string
	fetchTimeout time.Duration
}

func defaultOptions() options {
	return options{
		logger:       slog.Default(),
		baseURL:      DefaultPeriodOBaseURL,
		httpClient:   &http.Client{Timeout: DefaultFetchTimeout},
		rate:         DefaultPeriodORate,
		fetchTimeout: DefaultFetchTimeout,
	}
}

// Option configures a PeriodO client or a Memo.
type Option func(*options)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBaseURL sets the URL authority ids are appended to.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

// WithHTTPClient sets the HTTP client used for PeriodO requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithRate limits PeriodO requests per second. Zero or negative removes the
// limit.
func WithRate(perSecond float64) Option {
	return func(o *options) {
		o.rate = perSecond
	}
}

// WithLanguage restricts PeriodO labels to one language. Empty accepts
// labels in every language.
func WithLanguage(lang string) Option {
	return func(o *options) {
		o.language = lang
	}
}

// WithFetchTimeout bounds each PeriodO authority download, independently of
// the lookups waiting for it. Zero or negative keeps the default.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.fetchTimeout = d
		}
	}
}
