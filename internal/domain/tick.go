package domain

// Tick es una observación de precio bid/ask en un instante.
// Inmutable: el loader la produce una vez y todos los workers la comparten
// en modo solo-lectura.
type Tick struct {
	Timestamp int64
	Bid       float64
	Ask       float64
}

// Mid devuelve el precio medio entre bid y ask.
func (t Tick) Mid() float64 {
	return (t.Bid + t.Ask) / 2
}

// Spread devuelve ask menos bid.
func (t Tick) Spread() float64 {
	return t.Ask - t.Bid
}

// Valid devuelve true si ambos lados tienen precio utilizable.
func (t Tick) Valid() bool {
	return t.Bid > 0 && t.Ask > 0
}

// Series es una secuencia de ticks ordenada por tiempo para un instrumento.
type Series []Tick
