package tracking

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a shipment from a yaml file and validates it.
func Load(path string) (*Shipment, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Shipment
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("tracking: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default is the built-in shipment addressed to recipient.
func Default(recipient, orderID, eta string) *Shipment {
	return &Shipment{
		Summary: Summary{
			OrderID:          orderID,
			EstimatedArrival: eta,
			CurrentStatus:    "ДОСТАВЛЕНО",
			Recipient:        recipient,
		},
		Events: []Event{
			{
				ID: "ev-1", Title: "Заказ принят в Великом Устюге",
				Description: "Письмо " + recipient + " прочитано лично Дедом Морозом. Подарок одобрен.",
				Date:        "15.12", Time: "09:00", Location: "ВЕЛИКИЙ УСТЮГ",
				Status: Completed, OriginalLanguage: "RU", Icon: "gift",
			},
			{
				ID: "ev-2", Title: "Сборка в мастерской эльфов",
				Description: "Эльфы-инженеры собрали подарок и проверили его на крутость.",
				Date:        "20.12", Time: "14:30", Location: "NORTH POLE WORKSHOP",
				Status: Completed, OriginalLanguage: "ELF", Icon: "tool",
			},
			{
				ID: "ev-3", Title: "Погрузка в турбо-сани",
				Description: "Подарок закреплён в отсеке №9. Олени прошли техосмотр.",
				Date:        "28.12", Time: "23:59", Location: "ПОЛЯРНЫЙ КОСМОДРОМ",
				Status: Completed, OriginalLanguage: "EN", Icon: "rocket",
			},
			{
				ID: "ev-4", Title: "Межгалактическая пробка",
				Description: "Сани застряли у колец Сатурна. Подзаряжаем энергией Северного Сияния.",
				Date:        "02.01", Time: "03:14", Location: "СЕКТОР МАРС",
				Status: Warning, OriginalLanguage: "SYS", Icon: "alert", IsNew: true,
			},
			{
				ID: "ev-5", Title: "Апгрейд подарка",
				Description: "Эльфы добавляют легендарные свойства: +100 к крутости, +50 к магии.",
				Date:        "04.01", Time: "12:00", Location: "ОРБИТАЛЬНАЯ СТАНЦИЯ",
				Status: Current, OriginalLanguage: "ELF", Icon: "sparkles",
			},
			{
				ID: "ev-6", Title: "Вход в атмосферу",
				Description: "Яркая вспышка в небе будет означать, что сани рядом.",
				Date:        "06.01", Time: "--:--", Location: "ДОМ " + recipient,
				Status: Pending, OriginalLanguage: "RU", Icon: "star",
			},
		},
	}
}
