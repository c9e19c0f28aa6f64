package audit

import (
	"github.com/RealMSClassic/Tactica-Sheet/internal/application/stock"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
	"github.com/RealMSClassic/Tactica-Sheet/pkg/logger"
)

var _ stock.AuditLogger = (*StoreLogger)(nil)

// StoreLogger escribe el registro de actividad en la tabla de actividad del almacén.
// Fire-and-forget: un fallo del almacén se registra en el log estructurado y se
// descarta, nunca aborta la operación que lo disparó.
type StoreLogger struct {
	repo repository.ActividadRepository
	log  *logger.Logger
}

// NewStoreLogger construye el logger de actividad.
func NewStoreLogger(repo repository.ActividadRepository, log *logger.Logger) *StoreLogger {
	if log == nil {
		log = logger.Nop()
	}
	return &StoreLogger{repo: repo, log: log}
}

// Append agrega una entrada al registro de actividad.
func (l *StoreLogger) Append(mensaje string) {
	if err := l.repo.Append(mensaje); err != nil {
		l.log.Warn().Err(err).Str("mensaje", mensaje).Msg("registro de actividad falló")
	}
}
