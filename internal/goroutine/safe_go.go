package goroutine

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswapper-backend/internal/logger"
)

// Runner запускает фоновую задачу. Сервисы принимают Runner, чтобы тесты могли
// выполнять побочные эффекты синхронно.
type Runner func(fn func())

// RecoveryHandler обрабатывает panic в горутинах
type RecoveryHandler struct {
	log logrus.FieldLogger
}

// NewRecoveryHandler создает новый обработчик
func NewRecoveryHandler(log logrus.FieldLogger) *RecoveryHandler {
	return &RecoveryHandler{log: log}
}

// SafeGo запускает горутину с обработкой panic
func (rh *RecoveryHandler) SafeGo(fn func()) {
	go func() {
		defer rh.recover()
		fn()
	}()
}

func (rh *RecoveryHandler) recover() {
	if r := recover(); r != nil {
		rh.logger().WithFields(logrus.Fields{
			"panic": r,
			"stack": string(debug.Stack()),
		}).Error("panic в горутине")
	}
}

func (rh *RecoveryHandler) logger() logrus.FieldLogger {
	if rh.log != nil {
		return rh.log
	}
	return logger.L()
}

// DefaultRecoveryHandler глобальный обработчик, пишет в общий логгер приложения.
var DefaultRecoveryHandler = NewRecoveryHandler(nil)

// SafeGo - упрощенная функция для запуска безопасной горутины
func SafeGo(fn func()) {
	DefaultRecoveryHandler.SafeGo(fn)
}

// Sync выполняет задачу в текущей горутине, с тем же перехватом panic.
func Sync(fn func()) {
	defer DefaultRecoveryHandler.recover()
	fn()
}
