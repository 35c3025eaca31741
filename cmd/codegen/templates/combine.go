package templates

import (
	"strings"

	qt "github.com/valyala/quicktemplate"
)

// CombineGen emits the CombineN helper family for arities 2..maxArity.
func CombineGen(maxArity int) string {
	sb := &strings.Builder{}
	qw := qt.AcquireWriter(sb)
	defer qt.ReleaseWriter(qw)
	w := qw.N()

	w.S("package glimmer\n")
	for n := 2; n <= maxArity; n++ {
		typeParams := prefixedStrings("T", n)

		w.S("\nfunc Combine")
		w.D(n)
		w.S("[")
		w.S(typeParams)
		w.S(", O comparable](\n")
		w.S("\tt *Tracker,\n")
		for i := 0; i < n; i++ {
			w.S("\ts")
			w.D(i)
			w.S(" *Signal[T")
			w.D(i)
			w.S("],\n")
		}
		w.S("\tfn func(")
		w.S(typeParams)
		w.S(") O,\n")
		w.S(") *Computed[O] {\n")
		w.S("\tif ")
		for i := 0; i < n; i++ {
			if i > 0 {
				w.S(" || ")
			}
			w.S("s")
			w.D(i)
			w.S(" == nil")
		}
		w.S(" {\n")
		w.S("\t\tpanic(\"glimmer: Combine")
		w.D(n)
		w.S(" called with a nil signal\")\n")
		w.S("\t}\n")
		w.S("\treturn NewComputed(t, func(oldValue O) (O, error) {\n")
		w.S("\t\treturn fn(\n")
		for i := 0; i < n; i++ {
			w.S("\t\t\ts")
			w.D(i)
			w.S(".Value(),\n")
		}
		w.S("\t\t), nil\n")
		w.S("\t})\n")
		w.S("}\n")
	}

	return sb.String()
}
