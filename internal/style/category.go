package style

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/alecthomas/chroma/v2"
)

var (
	categoryOnce  sync.Once
	categoryIndex map[string]chroma.TokenType
)

func buildCategoryIndex() {
	categoryIndex = make(map[string]chroma.TokenType, len(chroma.StandardTypes))
	for t := range chroma.StandardTypes {
		categoryIndex[strings.ToLower(t.String())] = t
	}
}

// ParseCategory maps a dotted token category such as "Comment.Single",
// "String.Escape" or "Name.Builtin.Pseudo" onto a chroma token type.
// "String" and "Number" are accepted as shorthand for "Literal.String" and
// "Literal.Number".
func ParseCategory(name string) (chroma.TokenType, error) {
	categoryOnce.Do(buildCategoryIndex)

	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), ".", ""))
	if t, ok := categoryIndex[key]; ok {
		return t, nil
	}
	if strings.HasPrefix(key, "string") || strings.HasPrefix(key, "number") {
		if t, ok := categoryIndex["literal"+key]; ok {
			return t, nil
		}
	}
	return chroma.None, fmt.Errorf("unknown token category %q", name)
}

// CategoryName renders a token type in dotted form, e.g. CommentSingle -> "Comment.Single".
func CategoryName(t chroma.TokenType) string {
	raw := t.String()
	var b strings.Builder
	prevLower := false
	for _, r := range raw {
		if unicode.IsUpper(r) && prevLower {
			b.WriteByte('.')
		}
		b.WriteRune(r)
		prevLower = unicode.IsLower(r)
	}
	return b.String()
}

// Categories returns every standard token type in ascending order.
func Categories() []chroma.TokenType {
	types := make([]chroma.TokenType, 0, len(chroma.StandardTypes))
	for t := range chroma.StandardTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
