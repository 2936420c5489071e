package apiscout

// Keywords maps a category name to its case-insensitive keyword list.
// The fixed categories are "general", "ais", "pis", "caf", and
// "technical"; unknown categories are scanned but never influence
// classification.
type Keywords map[string][]string

// Keyword category names.
const (
	CategoryGeneral   = "general"
	CategoryAIS       = "ais"
	CategoryPIS       = "pis"
	CategoryCAF       = "caf"
	CategoryTechnical = "technical"
)

// DefaultKeywords returns the built-in PSD2 keyword taxonomy.
// This is a deliberately simple, auditable substring heuristic; the
// confidence thresholds in the scorer are validated against these
// exact lists.
func DefaultKeywords() Keywords {
	return Keywords{
		CategoryGeneral: {
			"psd2", "open banking", "openbanking", "api portal", "developer portal",
			"api documentation", "api sandbox", "tpp", "third party provider",
			"berlin group", "nextgenpsd2", "stet", "open bank project",
			"oauth", "oauth2", "openid connect", "client credentials",
			"xs2a", "access to account",
		},
		CategoryAIS: {
			"account information", "ais api", "account access", "balance",
			"transaction history", "account list", "aisp",
			"account information service", "read account", "get accounts",
			"/accounts", "/balances", "/transactions",
		},
		CategoryPIS: {
			"payment initiation", "pis api", "pisp", "initiate payment",
			"payment service", "sepa payment", "instant payment", "bulk payment",
			"payment submission", "/payments", "/payment-initiations",
			"domestic payment", "international payment",
		},
		CategoryCAF: {
			"confirmation of funds", "caf api", "funds confirmation",
			"piis", "card based payment", "fundsconfirmation",
			"/funds-confirmations", "available funds",
		},
		CategoryTechnical: {
			"swagger", "openapi", "api specification", "rest api", "json api",
			"postman", "api reference", "api explorer", "try it out",
			"sandbox environment", "test environment", "production api",
		},
	}
}

// Analysis holds the scoring outcome for a single page.
// It is transient: produced and consumed within one crawl step.
type Analysis struct {
	URL   string
	Title string

	// Keywords are "category:keyword" tags, each keyword listed once,
	// in taxonomy order.
	Keywords []string

	// Matches counts keyword hits per category.
	Matches map[string]int

	// Relevance is the confidence score in [0,1].
	Relevance float64

	// APIRelated reports whether the page qualifies for record
	// extraction (Relevance above the scorer's published threshold).
	APIRelated bool

	// Types are the API types evidenced on the page, in AIS, PIS, CAF
	// order, or a single generic/unknown classification.
	Types []APIType
}

// Analyzer scores a page against the PSD2 keyword taxonomy and
// classifies the APIs it describes. Implementations must be
// deterministic: the same (text, url, title) input always yields the
// same analysis.
type Analyzer interface {
	Analyze(text, url, title string) *Analysis
}
