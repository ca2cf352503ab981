package vanilla

import (
	"strconv"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	helperPolicyOnce sync.Once
	helperPolicy     *bluemonday.Policy
)

// helperHTML sanitises helper text from field documents. Inline formatting
// survives; anything else (scripts, handlers, links) is stripped.
func helperHTML(text string) string {
	helperPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("em", "strong", "b", "i", "sub", "sup", "abbr", "code")
		policy.AllowAttrs("title").OnElements("abbr")
		helperPolicy = policy
	})
	return helperPolicy.Sanitize(text)
}

func gridClass(columns int) string {
	if columns <= 0 {
		columns = 2
	}
	switch columns {
	case 1:
		return "grid-one-col"
	case 2:
		return "grid-two-col"
	case 3:
		return "grid-three-col"
	default:
		return "grid-cols-" + strconv.Itoa(columns)
	}
}
