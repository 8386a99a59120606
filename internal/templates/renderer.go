package templates

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed files/*.tmpl
var files embed.FS

const (
	paymentCompletedTemplate      = "payment_completed.tmpl"
	orderReadyForDeliveryTemplate = "order_ready_for_delivery.tmpl"
	orderDeliveredTemplate        = "order_delivered.tmpl"
)

// Renderer рендерит текст уведомлений
type Renderer struct {
	logger    *zap.Logger
	templates *template.Template
}

// NewRenderer создаёт новый renderer и загружает встроенные шаблоны
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	tmpl, err := template.New("notifications").
		Funcs(template.FuncMap{"money": FormatMoney}).
		Option("missingkey=error").
		ParseFS(files, "files/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse notification templates: %w", err)
	}

	for _, name := range []string{paymentCompletedTemplate, orderReadyForDeliveryTemplate, orderDeliveredTemplate} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("notification template %s not found", name)
		}
	}

	logger.Debug("notification templates loaded", zap.String("templates", tmpl.DefinedTemplates()))

	return &Renderer{
		logger:    logger,
		templates: tmpl,
	}, nil
}

// RenderPaymentCompleted рендерит уведомление об оплате заказа
func (r *Renderer) RenderPaymentCompleted(data interface{}) (string, error) {
	return r.render(paymentCompletedTemplate, data)
}

// RenderOrderReadyForDelivery рендерит уведомление о готовности заказа к доставке
func (r *Renderer) RenderOrderReadyForDelivery(data interface{}) (string, error) {
	return r.render(orderReadyForDeliveryTemplate, data)
}

// RenderOrderDelivered рендерит уведомление о доставке заказа
func (r *Renderer) RenderOrderDelivered(data interface{}) (string, error) {
	return r.render(orderDeliveredTemplate, data)
}

func (r *Renderer) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

// FormatMoney форматирует сумму минимум с двумя знаками после точки (42.5 -> 42.50).
// Значащие знаки не отбрасываются: 1.999 остаётся 1.999.
func FormatMoney(d decimal.Decimal) string {
	places := int32(2)
	if e := -d.Exponent(); e > places {
		places = e
	}
	return d.StringFixed(places)
}
