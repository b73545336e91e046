package notify

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Construção de link de notificação via WhatsApp. O core não envia
// mensagem nenhuma: devolve o link wa.me pronto e quem atende decide
// abrir ou não.

const countryPrefix = "55" // Brasil

// WhatsAppLink monta um link wa.me para o telefone com a mensagem
// pré-preenchida. Telefone vazio retorna "".
func WhatsAppLink(phone, message string) string {
	digits := onlyDigits(phone)
	if digits == "" {
		return ""
	}
	if !strings.HasPrefix(digits, countryPrefix) {
		digits = countryPrefix + digits
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}

// CancellationMessage é o texto enviado ao cliente quando a reserva
// dele é cancelada.
func CancellationMessage(clientName string, start time.Time) string {
	dateStr := start.Format("02/01 15:04")
	return fmt.Sprintf("Olá %s, informamos que seu agendamento para %s foi cancelado.", clientName, dateStr)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
