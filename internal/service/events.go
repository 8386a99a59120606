package service

import (
	"github.com/shopspring/decimal"
)

// PaymentEvent событие завершённой оплаты заказа (топик PAYMENT_COMPLETED)
type PaymentEvent struct {
	OrderID string          `json:"orderId"`
	UserID  string          `json:"userId"`
	Amount  decimal.Decimal `json:"amount"`
}

// OrderReadyForDeliveryEvent событие готовности заказа к доставке (топик ORDER_READY_FOR_DELIVER)
type OrderReadyForDeliveryEvent struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
	Address string `json:"address"`
	Item    string `json:"item"`
	Message string `json:"message"`
}

// OrderDeliveredEvent событие доставки заказа (топик ORDER_DELIVERED).
// Формат полностью совпадает с OrderReadyForDeliveryEvent.
type OrderDeliveredEvent OrderReadyForDeliveryEvent

// Topics имена топиков, на которые подписан сервис
type Topics struct {
	PaymentCompleted      string
	OrderReadyForDelivery string
	OrderDelivered        string
}

// DefaultTopics возвращает имена топиков, которые публикуют payment и order сервисы
func DefaultTopics() Topics {
	return Topics{
		PaymentCompleted:      "PAYMENT_COMPLETED",
		OrderReadyForDelivery: "ORDER_READY_FOR_DELIVER",
		OrderDelivered:        "ORDER_DELIVERED",
	}
}
