package explain

import (
	"regexp"
	"sort"
	"strings"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/textutil"
)

// Equation is a named formula or formula set.
type Equation struct {
	Name  string   `json:"name"`
	Exprs []string `json:"expressions"`
	Set   bool     `json:"set"`
}

// Fallback joins the expressions for plain-text display.
func (e Equation) Fallback() string {
	return strings.Join(e.Exprs, ", ")
}

func single(name, expr string) Equation {
	return Equation{Name: name, Exprs: []string{expr}}
}

func set(name string, exprs ...string) Equation {
	return Equation{Name: name, Exprs: exprs, Set: true}
}

// commonEquations is the built-in dictionary in declaration order. Order is
// the tie-break for equal-length names and the scan order for
// FallbackExpression.
var commonEquations = []Equation{
	single("newton's second law", `F = ma`),
	single("einstein's mass-energy equivalence", `E = mc^2`),
	single("gravitational force", `F = G\frac{m_1m_2}{r^2}`),
	single("kinetic energy", `E = \frac{1}{2}mv^2`),
	single("momentum", `p = mv`),
	single("wave equation", `v = f\lambda`),
	single("doppler effect", `f' = f\frac{v \pm v_o}{v \mp v_s}`),
	single("special relativity time dilation", `t' = \frac{t}{\sqrt{1-\frac{v^2}{c^2}}}`),
	single("lorentz factor", `\gamma = \frac{1}{\sqrt{1-\frac{v^2}{c^2}}}`),
	single("schrodinger equation", `i\hbar\frac{\partial\Psi}{\partial t} = -\frac{\hbar^2}{2m} \nabla^2\Psi + V\Psi`),
	single("heisenberg uncertainty", `\Delta x \Delta p \geq \frac{\hbar}{2}`),
	single("planck's equation", `E = hf`),
	single("de broglie wavelength", `\lambda = \frac{h}{p}`),
	single("coulomb's law", `F = k\frac{q_1q_2}{r^2}`),
	single("ohm's law", `V = IR`),
	single("power", `P = IV`),
	single("capacitance", `C = \frac{Q}{V}`),
	single("inductance", `V = L\frac{dI}{dt}`),
	set("maxwell's equations",
		`\nabla \cdot E = \frac{\rho}{\varepsilon_0}`,
		`\nabla \cdot B = 0`,
		`\nabla \times E = -\frac{\partial B}{\partial t}`,
		`\nabla \times B = \mu_0 J + \mu_0 \varepsilon_0 \frac{\partial E}{\partial t}`,
	),
	single("ideal gas law", `PV = nRT`),
	single("thermodynamic entropy", `\Delta S = \frac{Q}{T}`),
	single("bernoulli's equation", `P + \frac{1}{2}\rho v^2 + \rho gh = \text{constant}`),
	single("conservation of energy", `\Delta E = Q - W`),
	single("conservation of momentum", `m_1v_1 + m_2v_2 = m_1v_1' + m_2v_2'`),
	single("angular momentum", `L = I\omega`),
	single("torque", `\tau = r \times F`),
	single("centripetal force", `F = \frac{mv^2}{r}`),
	single("universal gravitation", `F = G\frac{m_1m_2}{r^2}`),
	single("escape velocity", `v = \sqrt{\frac{2GM}{r}}`),
	single("relativistic energy", `E = \gamma mc^2`),
	single("relativistic momentum", `p = \gamma mv`),
	single("photoelectric effect", `E = hf - \phi`),
	single("black body radiation", `E = \frac{hf}{e^{\frac{hf}{kT}} - 1}`),
	single("stefan-boltzmann law", `P = \sigma AT^4`),
	single("wien's displacement law", `\lambda_{max}T = b`),
	single("bohr model", `E = -\frac{13.6\text{eV}}{n^2}`),
	single("nuclear binding energy", `E = \Delta mc^2`),
	single("radioactive decay", `N = N_0e^{-\lambda t}`),
	single("half-life", `t_{1/2} = \frac{\ln(2)}{\lambda}`),
	single("compton effect", `\Delta \lambda = \frac{h}{mc}(1-\cos\theta)`),
	single("snell's law", `n_1\sin\theta_1 = n_2\sin\theta_2`),
	single("lens equation", `\frac{1}{f} = \frac{1}{d_o} + \frac{1}{d_i}`),
	single("magnification", `M = -\frac{d_i}{d_o}`),
	single("diffraction", `d\sin\theta = m\lambda`),
	single("doppler shift", `\frac{\Delta f}{f} = \frac{v}{c}`),
	single("relativistic doppler effect", `f' = f\sqrt{\frac{1-\frac{v}{c}}{1+\frac{v}{c}}}`),
}

// Dictionary maps case-insensitive equation names to expressions and finds
// those names in running text.
type Dictionary struct {
	entries []Equation
	index   map[string]int
	pattern *regexp.Regexp
}

var defaultDictionary = NewDictionary(commonEquations)

// Default returns the built-in dictionary.
func Default() *Dictionary {
	return defaultDictionary
}

// NewDictionary builds a dictionary from entries. Names are folded to lower
// case; when two entries fold to the same name the first wins. Entries with
// an empty name or no expressions are ignored.
func NewDictionary(entries []Equation) *Dictionary {
	d := &Dictionary{index: make(map[string]int, len(entries))}
	for _, entry := range entries {
		key := normalizeName(entry.Name)
		if key == "" || len(entry.Exprs) == 0 {
			continue
		}
		if _, exists := d.index[key]; exists {
			continue
		}
		entry.Name = key
		entry.Exprs = append([]string(nil), entry.Exprs...)
		d.index[key] = len(d.entries)
		d.entries = append(d.entries, entry)
	}
	d.pattern = compileNamePattern(d.entries)
	return d
}

// Entries returns a copy of the dictionary in declaration order.
func (d *Dictionary) Entries() []Equation {
	out := make([]Equation, len(d.entries))
	for i, entry := range d.entries {
		entry.Exprs = append([]string(nil), entry.Exprs...)
		out[i] = entry
	}
	return out
}

// Len reports the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Lookup finds an equation by name, ignoring case, curly apostrophes and
// runs of whitespace.
func (d *Dictionary) Lookup(name string) (Equation, bool) {
	idx, ok := d.index[normalizeName(name)]
	if !ok {
		return Equation{}, false
	}
	entry := d.entries[idx]
	entry.Exprs = append([]string(nil), entry.Exprs...)
	return entry, true
}

// FallbackExpression returns the joined expressions of the first entry, in
// declaration order, whose name occurs in expr. Without a match the input is
// returned unchanged.
func (d *Dictionary) FallbackExpression(expr string) string {
	lower := normalizeName(expr)
	for _, entry := range d.entries {
		if strings.Contains(lower, entry.Name) {
			return entry.Fallback()
		}
	}
	return expr
}

// FallbackExpression applies the default dictionary.
func FallbackExpression(expr string) string {
	return defaultDictionary.FallbackExpression(expr)
}

func (d *Dictionary) findNames(text string) [][]int {
	if d.pattern == nil {
		return nil
	}
	return d.pattern.FindAllStringIndex(text, -1)
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(textutil.Fold(name)), " ")
}

// compileNamePattern builds one alternation with longer names first so the
// leftmost match is also the longest name starting there. Equal lengths keep
// declaration order.
func compileNamePattern(entries []Equation) *regexp.Regexp {
	if len(entries) == 0 {
		return nil
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})
	alternatives := make([]string, len(names))
	for i, name := range names {
		alternatives[i] = namePattern(name)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alternatives, "|") + `)\b`)
}

func namePattern(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		quoted := regexp.QuoteMeta(word)
		words[i] = strings.ReplaceAll(quoted, "'", `['’]`)
	}
	return strings.Join(words, `\s+`)
}
