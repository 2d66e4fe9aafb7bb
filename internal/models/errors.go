package models

// ErrorKind partitions scrape failures by what the caller should do
// about them: re-check the link, try again later, or report that the
// marketplace changed its page layout.
type ErrorKind string

const (
	// ErrValidation means the input URL was missing or did not match
	// any supported platform pattern. Never retried.
	ErrValidation ErrorKind = "validation"
	// ErrFetch means a network failure or non-success HTTP status from
	// the upstream marketplace.
	ErrFetch ErrorKind = "fetch"
	// ErrParse means the upstream responded successfully but the
	// expected data shape was absent. A strong signal the marketplace
	// changed its page structure.
	ErrParse ErrorKind = "parse"
)

// ScrapeError is the terminal error of a scrape call. All three kinds
// end the call; there is no automatic cross-call retry.
type ScrapeError struct {
	Kind    ErrorKind
	Message string
	// URL is the attempted fetch target, logged for diagnosis. Empty
	// for validation errors.
	URL string
	Err error
}

func (e *ScrapeError) Error() string {
	return e.Message
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewValidationError reports an unusable input URL.
func NewValidationError(message string) *ScrapeError {
	return &ScrapeError{Kind: ErrValidation, Message: message}
}

// NewFetchError reports an upstream network or HTTP status failure.
func NewFetchError(message, url string, err error) *ScrapeError {
	return &ScrapeError{Kind: ErrFetch, Message: message, URL: url, Err: err}
}

// NewParseError reports a successful response with an unusable shape.
func NewParseError(message, url string) *ScrapeError {
	return &ScrapeError{Kind: ErrParse, Message: message, URL: url}
}

// WrapParse attaches a cause to a parse error.
func WrapParse(message, url string, err error) *ScrapeError {
	return &ScrapeError{Kind: ErrParse, Message: message, URL: url, Err: err}
}

// Canonical user-facing messages, pinned by the HTTP contract.
const (
	MsgURLRequired         = "URL parameter is required"
	MsgUnsupportedPlatform = "Unsupported platform. Only Shopee and Tokopedia are supported."
	MsgInvalidShopeeURL    = "Invalid Shopee URL format"
	MsgInvalidTokopediaURL = "Invalid Tokopedia URL format"
	MsgShopeeFetchFailed   = "Failed to fetch from Shopee"
	MsgTokopediaParse      = "Could not parse Tokopedia product"
)
