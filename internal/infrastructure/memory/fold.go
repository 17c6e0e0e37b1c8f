package memory

import (
	"strings"

	"golang.org/x/text/cases"
)

// caser plegado Unicode para comparaciones sin distinguir mayúsculas (equivale a ILIKE / regex "i").
var caser = cases.Fold()

func fold(s string) string {
	return caser.String(s)
}

func containsFold(s, sub string) bool {
	return strings.Contains(fold(s), fold(sub))
}

func equalFold(a, b string) bool {
	return fold(a) == fold(b)
}
