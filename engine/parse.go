package engine

import "fmt"

// RandomVarFactory builds a RandomVar from a parameter list, the
// createInstance(vector<string>) factory contract.
type RandomVarFactory func(par []string) (RandomVar, error)

// randomVarCatalog is the registry of built-in RandomVar classes, keyed
// by the name used in scripted construction (scenario YAML, see
// config.go).
var randomVarCatalog = map[string]RandomVarFactory{
	"Delta":       CreateDeltaVar,
	"Uniform":     CreateUniformVar,
	"Exponential": CreateExponentialVar,
	"Pareto":      CreateParetoVar,
	"Normal":      CreateNormalVar,
	"Poisson":     CreatePoissonVar,
	"Det":         CreateDetVar,
}

// CreateRandomVar looks up class in the catalog and invokes its factory
// with par. An unknown class or a factory arity mismatch both surface as
// ErrParse.
func CreateRandomVar(class string, par []string) (RandomVar, error) {
	factory, ok := randomVarCatalog[class]
	if !ok {
		return nil, fmt.Errorf("%w: unknown RandomVar class %q", ErrParse, class)
	}
	return factory(par)
}

// RegisterRandomVar lets client code extend the catalog with its own
// RandomVar classes, the same way the original's createInstance factories
// are registered per subclass.
func RegisterRandomVar(class string, factory RandomVarFactory) {
	randomVarCatalog[class] = factory
}
