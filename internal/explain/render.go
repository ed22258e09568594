package explain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MathRenderer turns a LaTeX expression into display text. display is true
// for block math and equation sets.
type MathRenderer interface {
	RenderMath(expr string, display bool) (string, error)
}

// MathRendererFunc adapts a function to MathRenderer.
type MathRendererFunc func(expr string, display bool) (string, error)

// RenderMath calls f.
func (f MathRendererFunc) RenderMath(expr string, display bool) (string, error) {
	return f(expr, display)
}

// Rendered is the display result for one span. Lines holds one entry per
// expression for math sets and a single entry otherwise. Fallback is set when
// at least one expression could not be rendered; Err keeps the first failure.
type Rendered struct {
	Span     Span     `json:"span"`
	Lines    []string `json:"lines"`
	Fallback bool     `json:"fallback"`
	Err      error    `json:"-"`
}

// Text joins the rendered lines.
func (r Rendered) Text() string {
	return strings.Join(r.Lines, "\n")
}

// Render resolves every span to display text. Text spans pass through. A
// failing expression is replaced by its dictionary fallback or, failing
// that, its raw payload. A nil renderer uses PlainRenderer.
func Render(spans []Span, renderer MathRenderer) []Rendered {
	if renderer == nil {
		renderer = PlainRenderer{}
	}
	out := make([]Rendered, 0, len(spans))
	for _, span := range spans {
		result := Rendered{Span: span}
		switch span.Kind {
		case SpanInlineMath, SpanBlockMath:
			line, err := renderExpr(renderer, span.Expr, span.Kind == SpanBlockMath)
			result.Lines = []string{line}
			if err != nil {
				result.Fallback = true
				result.Err = err
			}
		case SpanMathSet:
			for _, expr := range span.Exprs {
				line, err := renderExpr(renderer, expr, true)
				result.Lines = append(result.Lines, line)
				if err != nil && result.Err == nil {
					result.Fallback = true
					result.Err = err
				}
			}
		default:
			result.Lines = []string{span.Fallback()}
		}
		out = append(out, result)
	}
	return out
}

func renderExpr(renderer MathRenderer, expr string, display bool) (string, error) {
	line, err := renderer.RenderMath(expr, display)
	if err != nil {
		return FallbackExpression(expr), fmt.Errorf("render %q: %w", expr, err)
	}
	return line, nil
}

var (
	// ErrUnbalancedBraces reports mismatched { } groups.
	ErrUnbalancedBraces = errors.New("unbalanced braces")
	// ErrUnbalancedDelimiters reports mismatched \left / \right pairs.
	ErrUnbalancedDelimiters = errors.New("unbalanced \\left/\\right")
)

// PlainRenderer approximates LaTeX with Unicode for terminals. It rejects
// expressions with unbalanced groups and leaves unknown commands in place.
type PlainRenderer struct{}

var (
	fracPattern  = regexp.MustCompile(`\\frac\{([^{}]*)\}\{([^{}]*)\}`)
	sqrtPattern  = regexp.MustCompile(`\\sqrt\{([^{}]*)\}`)
	textPattern  = regexp.MustCompile(`\\(?:text|mathrm|mathbf)\{([^{}]*)\}`)
	supPattern   = regexp.MustCompile(`\^\{([^{}]*)\}`)
	subPattern   = regexp.MustCompile(`_\{([^{}]*)\}`)
	leftPattern  = regexp.MustCompile(`\\left\b`)
	rightPattern = regexp.MustCompile(`\\right\b`)
)

var superscripts = map[string]string{
	"0": "⁰", "1": "¹", "2": "²", "3": "³", "4": "⁴",
	"5": "⁵", "6": "⁶", "7": "⁷", "8": "⁸", "9": "⁹",
}

// Longer commands precede their prefixes (\int before \in).
var symbolReplacer = strings.NewReplacer(
	`\varepsilon`, "ε", `\epsilon`, "ε",
	`\alpha`, "α", `\beta`, "β", `\gamma`, "γ", `\Gamma`, "Γ",
	`\delta`, "δ", `\Delta`, "Δ", `\theta`, "θ", `\lambda`, "λ",
	`\mu`, "μ", `\nu`, "ν", `\pi`, "π", `\rho`, "ρ",
	`\sigma`, "σ", `\Sigma`, "Σ", `\tau`, "τ", `\phi`, "φ",
	`\Phi`, "Φ", `\psi`, "ψ", `\Psi`, "Ψ", `\omega`, "ω", `\Omega`, "Ω",
	`\hbar`, "ħ", `\nabla`, "∇", `\partial`, "∂",
	`\cdots`, "⋯", `\cdot`, "·", `\times`, "×", `\pm`, "±", `\mp`, "∓",
	`\geq`, "≥", `\leq`, "≤", `\neq`, "≠", `\approx`, "≈", `\propto`, "∝",
	`\infty`, "∞", `\int`, "∫", `\in`, "∈", `\to`, "→", `\rightarrow`, "→",
	`\sum`, "Σ",
	`\sin`, "sin", `\cos`, "cos", `\tan`, "tan", `\ln`, "ln", `\log`, "log",
	`\left`, "", `\right`, "", `\,`, " ", `\;`, " ",
)

// RenderMath implements MathRenderer.
func (PlainRenderer) RenderMath(expr string, _ bool) (string, error) {
	if !bracesBalanced(expr) {
		return "", ErrUnbalancedBraces
	}
	if len(leftPattern.FindAllStringIndex(expr, -1)) != len(rightPattern.FindAllStringIndex(expr, -1)) {
		return "", ErrUnbalancedDelimiters
	}
	out := expr
	for range 8 {
		next := fracPattern.ReplaceAllStringFunc(out, func(m string) string {
			parts := fracPattern.FindStringSubmatch(m)
			return group(parts[1]) + "/" + group(parts[2])
		})
		next = sqrtPattern.ReplaceAllString(next, "√($1)")
		next = textPattern.ReplaceAllString(next, "$1")
		if next == out {
			break
		}
		out = next
	}
	out = supPattern.ReplaceAllStringFunc(out, func(m string) string {
		inner := supPattern.FindStringSubmatch(m)[1]
		if s, ok := superscripts[inner]; ok {
			return s
		}
		return "^(" + inner + ")"
	})
	out = subPattern.ReplaceAllString(out, "_$1")
	for digit, sup := range superscripts {
		out = strings.ReplaceAll(out, "^"+digit, sup)
	}
	return strings.TrimSpace(symbolReplacer.Replace(out)), nil
}

func group(s string) string {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " +-/") {
		return "(" + s + ")"
	}
	return s
}

func bracesBalanced(expr string) bool {
	depth := 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
