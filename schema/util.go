package schema

import (
	"fmt"
	"sort"
)

func sortStrings(s []string) {
	sort.Strings(s)
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
