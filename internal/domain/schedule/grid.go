package schedule

import (
	"fmt"
	"time"
)

// ===============================
// Grade de horários
// ===============================

// A grade do dia é fixa: janela visível de 08:00 às 19:00, cadência de
// 40 minutos entre os rótulos ofertados, 2 pixels por minuto no grid.
const (
	StartHour       = 8
	EndHour         = 19
	PixelsPerMinute = 2
	SnapStepPixels  = 30 // ~15 minutos
	SlotCadenceMin  = 40
)

// TotalGridMinutes é a altura da janela em minutos.
const TotalGridMinutes = (EndHour - StartHour) * 60

// GridHeight é a altura total da grade em pixels.
const GridHeight = TotalGridMinutes * PixelsPerMinute

// DefaultSlots são os rótulos ofertados aos clientes, mesmos do link público.
var DefaultSlots = []string{
	"09:00", "09:40", "10:20", "11:00", "11:40", "12:20",
	"13:00", "13:40", "14:20", "15:00", "15:40", "16:20", "17:00",
}

// MinutesFromWindowStart converte um rótulo "HH:MM" em minutos desde o
// início da janela visível. Rótulo malformado é erro de programação
// (as listas de slots são fixas); quem renderiza deve degradar para
// "indisponível" em vez de derrubar a grade.
func MinutesFromWindowStart(label string) (int, error) {
	h, m, err := parseLabel(label)
	if err != nil {
		return 0, err
	}
	return (h-StartHour)*60 + m, nil
}

// IsGridLabel diz se o rótulo pertence à grade fixa ofertada.
func IsGridLabel(label string) bool {
	for _, s := range DefaultSlots {
		if s == label {
			return true
		}
	}
	return false
}

// PixelOffset converte minutos desde o início da janela em offset vertical.
func PixelOffset(minutes int) int {
	return minutes * PixelsPerMinute
}

// MinutesFromPixel é a inversa de PixelOffset.
func MinutesFromPixel(y int) int {
	return y / PixelsPerMinute
}

// SnapToGrid arredonda uma posição de ponteiro imprecisa para o múltiplo
// de step mais próximo, limitado a [0, GridHeight]. Garante que um drop
// de drag-and-drop sempre caia em uma fronteira limpa de horário.
func SnapToGrid(rawY, step int) int {
	if step <= 0 {
		step = SnapStepPixels
	}
	snapped := ((rawY + step/2) / step) * step
	if snapped < 0 {
		return 0
	}
	if snapped > GridHeight {
		return GridHeight
	}
	return snapped
}

// SlotLabelAt formata o horário de parede de t como rótulo "HH:MM".
func SlotLabelAt(t time.Time) string {
	return t.Format("15:04")
}

// TimeAtMinutes materializa "minutos desde o início da janela" em um
// instante no dia de date, preservando a localização.
func TimeAtMinutes(date time.Time, minutes int) time.Time {
	h := StartHour + minutes/60
	m := minutes % 60
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}

// LabelTimeOn materializa um rótulo "HH:MM" em um instante no dia de date.
func LabelTimeOn(date time.Time, label string) (time.Time, error) {
	h, m, err := parseLabel(label)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location()), nil
}

func parseLabel(label string) (hour, minute int, err error) {
	if len(label) != 5 || label[2] != ':' {
		return 0, 0, fmt.Errorf("schedule: invalid slot label %q", label)
	}
	// Os quatro bytes fora do ':' precisam ser dígitos ASCII.
	for _, i := range [4]int{0, 1, 3, 4} {
		if label[i] < '0' || label[i] > '9' {
			return 0, 0, fmt.Errorf("schedule: invalid slot label %q", label)
		}
	}
	hour = int(label[0]-'0')*10 + int(label[1]-'0')
	minute = int(label[3]-'0')*10 + int(label[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("schedule: invalid slot label %q", label)
	}
	return hour, minute, nil
}
