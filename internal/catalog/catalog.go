package catalog

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/Yuri05/OSPSuite.FuncParser/pkg/funcerr"
)

// EvalFunc computes a catalogue entry's value from its already-evaluated
// arguments. tol is the comparison tolerance in effect for the call site;
// entries that don't need it (everything but the comparison category)
// ignore it.
type EvalFunc func(args []float64, tol float64) (float64, error)

// Entry is one immutable catalogue record: a name, its arity, its numeric
// evaluator, and a human-readable category shown by String for diagnostics.
//
// Entries never mutate after registerAll runs; the same *Entry is safe to
// share across every ParsedFunction and every goroutine.
type Entry struct {
	Name     string
	Arity    int
	Category string
	Eval     EvalFunc
}

var (
	once    sync.Once
	entries map[string]*Entry
)

// init triggers the one-time build eagerly, so the first Lookup call never
// pays the registration cost: callers evaluate expressions at high
// frequency, and the catalogue build must not be on that path.
func init() {
	build()
}

func build() {
	once.Do(func() {
		entries = make(map[string]*Entry, 48)
		for _, e := range registerAll() {
			entries[e.Name] = e
		}
	})
}

// Lookup finds a catalogue entry by name. When caseSensitive is false, name
// is folded to uppercase before matching the catalogue's canonical
// uppercase keys (so "sin", "Sin", "SIN" all resolve); when caseSensitive
// is true, name must match a canonical key verbatim, so "sin(x)" is an
// UnknownFunction unless spelled "SIN(x)".
func Lookup(name string, caseSensitive bool) (*Entry, bool) {
	if caseSensitive {
		e, ok := entries[name]

		return e, ok
	}
	e, ok := entries[strings.ToUpper(name)]

	return e, ok
}

// Names returns the catalogue's entry names, sorted is not guaranteed; used
// by diagnostics and tests that enumerate the full function set.
func Names() []string {
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}

	return names
}

func registerAll() []*Entry {
	var all []*Entry
	all = append(all, unaryEntries()...)
	all = append(all, binaryEntries()...)
	all = append(all, comparisonEntries()...)

	return all
}

func unary(name string, category string, f func(x float64) (float64, error)) *Entry {
	return &Entry{
		Name:     name,
		Arity:    1,
		Category: category,
		Eval: func(args []float64, _ float64) (float64, error) {
			return f(args[0])
		},
	}
}

func binary(name string, category string, f func(a, b float64) (float64, error)) *Entry {
	return &Entry{
		Name:     name,
		Arity:    2,
		Category: category,
		Eval: func(args []float64, _ float64) (float64, error) {
			return f(args[0], args[1])
		},
	}
}

func comparison(name string, f func(a, b, tol float64) bool) *Entry {
	return &Entry{
		Name:     name,
		Arity:    2,
		Category: "comparison",
		Eval: func(args []float64, tol float64) (float64, error) {
			if f(args[0], args[1], tol) {
				return 1.0, nil
			}

			return 0.0, nil
		},
	}
}

func domainErr(fn string, args ...float64) error {
	return funcerr.Domainf("%s: argument(s) %v out of domain", fn, args)
}

func unaryEntries() []*Entry {
	return []*Entry{
		unary("SIN", "trigonometric", func(x float64) (float64, error) { return math.Sin(x), nil }),
		unary("COS", "trigonometric", func(x float64) (float64, error) { return math.Cos(x), nil }),
		unary("TAN", "trigonometric", func(x float64) (float64, error) { return math.Tan(x), nil }),
		unary("ASIN", "trigonometric", func(x float64) (float64, error) {
			if x < -1 || x > 1 {
				return 0, domainErr("ASIN", x)
			}

			return math.Asin(x), nil
		}),
		unary("ACOS", "trigonometric", func(x float64) (float64, error) {
			if x < -1 || x > 1 {
				return 0, domainErr("ACOS", x)
			}

			return math.Acos(x), nil
		}),
		unary("ATAN", "trigonometric", func(x float64) (float64, error) { return math.Atan(x), nil }),
		unary("SINH", "hyperbolic", func(x float64) (float64, error) { return math.Sinh(x), nil }),
		unary("COSH", "hyperbolic", func(x float64) (float64, error) { return math.Cosh(x), nil }),
		unary("TANH", "hyperbolic", func(x float64) (float64, error) { return math.Tanh(x), nil }),
		unary("EXP", "exponential", func(x float64) (float64, error) { return math.Exp(x), nil }),
		unary("LN", "exponential", func(x float64) (float64, error) {
			if x <= 0 {
				return 0, domainErr("LN", x)
			}

			return math.Log(x), nil
		}),
		unary("LOG", "exponential", func(x float64) (float64, error) {
			if x <= 0 {
				return 0, domainErr("LOG", x)
			}

			return math.Log(x), nil
		}),
		unary("LOG10", "exponential", func(x float64) (float64, error) {
			if x <= 0 {
				return 0, domainErr("LOG10", x)
			}

			return math.Log10(x), nil
		}),
		unary("SQRT", "exponential", func(x float64) (float64, error) {
			if x < 0 {
				return 0, domainErr("SQRT", x)
			}

			return math.Sqrt(x), nil
		}),
		unary("ABS", "rounding", func(x float64) (float64, error) { return math.Abs(x), nil }),
		unary("CEILING", "rounding", func(x float64) (float64, error) { return math.Ceil(x), nil }),
		unary("FLOOR", "rounding", func(x float64) (float64, error) { return math.Floor(x), nil }),
		unary("INT", "rounding", func(x float64) (float64, error) { return math.Trunc(x), nil }),
		unary("UMINUS", "sign", func(x float64) (float64, error) { return -x, nil }),
		unary("UPLUS", "sign", func(x float64) (float64, error) { return x, nil }),
	}
}

func binaryEntries() []*Entry {
	return []*Entry{
		binary("+", "arithmetic", func(a, b float64) (float64, error) { return a + b, nil }),
		binary("-", "arithmetic", func(a, b float64) (float64, error) { return a - b, nil }),
		binary("*", "arithmetic", func(a, b float64) (float64, error) { return a * b, nil }),
		binary("/", "arithmetic", func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, domainErr("/", a, b)
			}

			return a / b, nil
		}),
		binary("^", "arithmetic", evalPow),
		binary("MIN", "arithmetic", func(a, b float64) (float64, error) { return math.Min(a, b), nil }),
		binary("MAX", "arithmetic", func(a, b float64) (float64, error) { return math.Max(a, b), nil }),
		binary("MOD", "arithmetic", func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, domainErr("MOD", a, b)
			}

			return math.Mod(a, b), nil
		}),
	}
}

// evalPow implements ^ with the spec's explicit open-question resolution:
// 0^0 = 1, and 0^negative is a domain error (division by zero in disguise).
func evalPow(a, b float64) (float64, error) {
	if a == 0 {
		switch {
		case b == 0:
			return 1, nil
		case b < 0:
			return 0, domainErr("^", a, b)
		}
	}

	return math.Pow(a, b), nil
}

func comparisonEntries() []*Entry {
	return []*Entry{
		comparison("=", func(a, b, tol float64) bool { return math.Abs(a-b) <= tol }),
		comparison("<>", func(a, b, tol float64) bool { return math.Abs(a-b) > tol }),
		comparison("<", func(a, b, tol float64) bool { return a < b-tol }),
		comparison("<=", func(a, b, tol float64) bool { return a <= b+tol }),
		comparison(">", func(a, b, tol float64) bool { return a > b+tol }),
		comparison(">=", func(a, b, tol float64) bool { return a >= b-tol }),
	}
}

// String renders an entry for debug dumps.
func (e *Entry) String() string {
	return fmt.Sprintf("%s/%d[%s]", e.Name, e.Arity, e.Category)
}
