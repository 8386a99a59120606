package service

import "sync"

// Acknowledgment подтверждение доставки одного конкретного сообщения
type Acknowledgment interface {
	Acknowledge()
}

// AckFunc адаптер функции к Acknowledgment
type AckFunc func()

// Acknowledge вызывает f
func (f AckFunc) Acknowledge() {
	f()
}

// OnceAck возвращает Acknowledgment, который выполняет fn не более одного раза
func OnceAck(fn func()) Acknowledgment {
	var once sync.Once
	return AckFunc(func() {
		once.Do(fn)
	})
}
