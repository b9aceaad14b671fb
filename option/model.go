package option

// Model prices a European option and reports its sensitivities. Implementations
// are immutable; Greek calls never change what Price returns.
type Model interface {
	Price(kind Kind) float64
	Delta(kind Kind) float64 // ∂price/∂spot
	Gamma(kind Kind) float64 // ∂²price/∂spot²
	Theta(kind Kind) float64 // sensitivity to a decrease in remaining maturity
	Vega(kind Kind) float64  // ∂price/∂volatility
	Rho(kind Kind) float64   // ∂price/∂rate
}

// Greeks is a snapshot of one model evaluated for one kind.
type Greeks struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// Evaluate prices m for kind and computes all five Greeks.
func Evaluate(m Model, kind Kind) Greeks {
	return Greeks{
		Price: m.Price(kind),
		Delta: m.Delta(kind),
		Gamma: m.Gamma(kind),
		Theta: m.Theta(kind),
		Vega:  m.Vega(kind),
		Rho:   m.Rho(kind),
	}
}
