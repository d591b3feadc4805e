package sim

import (
	"fmt"
	"math"
)

// Model names a speciation engine.
type Model string

const (
	ModelPointMutation Model = "point-mutation"
	ModelProtracted    Model = "protracted"
	ModelVectorized    Model = "vectorized"
)

// validModels maps accepted model strings.
var validModels = map[Model]bool{
	ModelPointMutation: true,
	ModelProtracted:    true,
	ModelVectorized:    true,
}

// IsValidModel returns true if the given string names a known engine.
func IsValidModel(name string) bool {
	return validModels[Model(name)]
}

// SimConfig groups the parameters of a single simulation run.
type SimConfig struct {
	Model       Model   // engine selection
	Theta       float64 // speciation intensity (> 0)
	Individuals int     // metacommunity size J (>= 1)
	Tau         float64 // minimum speciation-completion time, protracted only (>= 0)
	Lambda      float64 // per-lineage speciation rate, vectorized only (> 0; 0 = Theta/2)
}

// EffectiveLambda returns Lambda, or Theta/2 when Lambda is unset.
// Theta/2 per lineage against the C(k,2) coalescence clock reproduces the
// point-mutation speciation probability theta/(theta+k-1).
func (c SimConfig) EffectiveLambda() float64 {
	if c.Lambda == 0 {
		return c.Theta / 2
	}
	return c.Lambda
}

// Validate checks every parameter the selected model reads.
func (c SimConfig) Validate() error {
	if !validModels[c.Model] {
		return fmt.Errorf("%w: unknown model %q; valid: point-mutation, protracted, vectorized", ErrInvalidParameter, c.Model)
	}
	if err := validateTheta(c.Theta); err != nil {
		return err
	}
	if err := validateIndividuals(c.Individuals); err != nil {
		return err
	}
	switch c.Model {
	case ModelProtracted:
		return validateTau(c.Tau)
	case ModelVectorized:
		if c.Lambda != 0 {
			return ValidateLambda(c.Lambda)
		}
	}
	return nil
}

func validateTheta(theta float64) error {
	if math.IsNaN(theta) || math.IsInf(theta, 0) || theta <= 0 {
		return fmt.Errorf("%w: theta must be a finite positive number, got %v", ErrInvalidParameter, theta)
	}
	return nil
}

func validateIndividuals(j int) error {
	if j < 1 {
		return fmt.Errorf("%w: J must be at least 1, got %d", ErrInvalidParameter, j)
	}
	return nil
}

func validateTau(tau float64) error {
	if math.IsNaN(tau) || math.IsInf(tau, 0) || tau < 0 {
		return fmt.Errorf("%w: tau must be a finite non-negative number, got %v", ErrInvalidParameter, tau)
	}
	return nil
}

// ValidateLambda rejects a lambda that is not finite and positive. Callers
// that let users set lambda explicitly use it before folding the value into
// SimConfig, where 0 means Theta/2.
func ValidateLambda(lambda float64) error {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda <= 0 {
		return fmt.Errorf("%w: lambda must be a finite positive number, got %v", ErrInvalidParameter, lambda)
	}
	return nil
}
