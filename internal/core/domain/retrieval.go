package domain

// UnknownPage is the page number used when the backend returns none.
const UnknownPage = "unknown"

// Citation is a reference returned by the retrieval backend.
type Citation struct {
	// URI is the document link, or its resource name when no link exists.
	URI string `json:"uri"`

	// Title is the document title.
	Title string `json:"title"`

	// PageNumber is best effort; UnknownPage when absent.
	PageNumber string `json:"page_number"`
}

// RetrievalResult is the guidance retrieved for one audit run.
// It is created fresh per run and never cached.
type RetrievalResult struct {
	// Context is the backend's generated summary, or an error description.
	Context string `json:"context"`

	// Citations is ordered as returned by the backend.
	Citations []Citation `json:"citations"`
}
