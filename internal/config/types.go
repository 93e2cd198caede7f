package config

import "git.home.luguber.info/inful/rf24docs/internal/foundation"

// DocumentClass is the LaTeX document class of a LaTeX document.
type DocumentClass string

const (
	DocumentClassManual DocumentClass = "manual"
	DocumentClassHowto  DocumentClass = "howto"
)

var documentClassNormalizer = foundation.NewNormalizer(map[string]DocumentClass{
	"manual": DocumentClassManual,
	"howto":  DocumentClassHowto,
})

// NormalizeDocumentClass returns the canonical class or an error.
func NormalizeDocumentClass(raw string) (DocumentClass, error) {
	return documentClassNormalizer.NormalizeWithError(raw)
}

// MemberOrder is the order autodoc lists members in.
type MemberOrder string

const (
	MemberOrderAlphabetical MemberOrder = "alphabetical"
	MemberOrderGroupwise    MemberOrder = "groupwise"
	MemberOrderBySource     MemberOrder = "bysource"
)

var memberOrderNormalizer = foundation.NewNormalizer(map[string]MemberOrder{
	"alphabetical": MemberOrderAlphabetical,
	"alpha":        MemberOrderAlphabetical,
	"groupwise":    MemberOrderGroupwise,
	"bysource":     MemberOrderBySource,
	"by_source":    MemberOrderBySource,
})

// NormalizeMemberOrder returns the canonical member order or an error.
func NormalizeMemberOrder(raw string) (MemberOrder, error) {
	return memberOrderNormalizer.NormalizeWithError(raw)
}

// RetryBackoffMode selects how retry delays grow.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

var retryBackoffNormalizer = foundation.NewNormalizer(map[string]RetryBackoffMode{
	"fixed":       RetryBackoffFixed,
	"linear":      RetryBackoffLinear,
	"exponential": RetryBackoffExponential,
})

// NormalizeRetryBackoffMode returns the canonical mode or an error.
func NormalizeRetryBackoffMode(raw string) (RetryBackoffMode, error) {
	return retryBackoffNormalizer.NormalizeWithError(raw)
}
