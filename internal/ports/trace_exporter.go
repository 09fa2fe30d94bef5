package ports

import "github.com/alejandrodnm/gridbot/internal/domain"

// TraceExporter vuelca la traza tick a tick de la mejor combinación a un
// destino externo (ficheros CSV en la implementación de consola).
type TraceExporter interface {
	Export(trace *domain.Trace) error
}
