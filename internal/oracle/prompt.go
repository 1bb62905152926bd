package oracle

import (
	"bytes"
	"fmt"
	"text/template"
)

// PromptData fills the prompt and fallback templates.
type PromptData struct {
	Name string
	Age  int
}

const DefaultPrompt = `Обратись к мальчику по имени {{.Name}}, ему {{.Age}} лет. Он сын Деда Мороза и ждет подарок. ` +
	`Напиши ему крутое, развернутое сообщение (примерно на 15 строк), объясняющее на геймерско-магическом языке, ` +
	`что подарок задерживается из-за секретной дозаправки саней энергией Северного Сияния в секторе Марса. ` +
	`Напиши, что эльфы сейчас делают 'апгрейд' его подарка, добавляя в него легендарные свойства, ` +
	`и он будет самым мощным в этом году. Используй много праздничных эмодзи (ракеты, подарки, искры, дед мороз). ` +
	`В конце обязательно напиши: 'Конец связи, Спецагент {{.Name}}! Ты лучший!'.`

// EmptyReplyMessage replaces a successful call that produced no text.
const EmptyReplyMessage = `Эльфы говорят, что сани уже в гиперпрыжке. Держись, {{.Name}}! 🚀✨`

// FallbackMessages replace a failed call; they are used in rotation.
var FallbackMessages = []string{
	`Привет, {{.Name}}! Это экстренный протокол связи «Снежинка-9». ❄️
Наши магические антенны зафиксировали помехи в секторе Северного Полюса. 📡
Похоже, эльфы случайно пролили горячий шоколад на главный квантовый процессор! ☕️⚡️
А олени Рудольфа решили устроить дрифт вокруг колец Сатурна и временно вышли из зоны Wi-Fi. 🦌💨
Но ты не переживай, твой статус в нашей системе — «СУПЕР-ВАЖНЫЙ ГЕРОЙ». 🏆
Твой подарок сейчас проходит финальную стадию закалки звёздной пылью на Марсе. ✨🔴
Мы делаем полный «апгрейд» и добавляем +100 к крутости и +50 к магии! 🛠️💎
Главный эльф-инженер лично полирует каждую деталь твоего артефакта. 🧝‍♂️🔧
Мы уже активировали секретные гипер-двигатели, чтобы сократить время задержки. 🚀🔥
Пока ты ждешь, проверь уровень праздничного настроения — оно должно быть на максимуме! 🎄📈
Мы следим за каждым квантовым прыжком твоих саней в реальном времени. 🛰️🎯
Весь штаб Деда Мороза верит в твою выдержку и геймерский дух! 🎅🤘
Скоро небо озарится яркой вспышкой — это значит, мы входим в твою атмосферу. 🌌🌠
Оставайся на связи, {{.Name}}! Ты лучший агент в этом году! 🎖️✨
Конец связи, Спецагент {{.Name}}! Победа близко! 🚩🎁`,
	`{{.Name}}, приём! Говорит бортовой эльф турбо-саней. 🛷
Северное Сияние перегрузило наш передатчик, поэтому связь короткая. ⚡️
Подарок цел, упакован и охраняется тремя снеговиками-спецназовцами. ☃️☃️☃️
Олени уже доели морковный энергетик и готовы к финальному рывку. 🥕🦌
Держи праздничное настроение на максимуме — мы уже близко! 🎄
Конец связи, Спецагент {{.Name}}! 🎁`,
	`Секретный канал для агента {{.Name}} временно зашифрован звёздной пылью. ✨
Дед Мороз передаёт: всё идёт по плану, подарок получает легендарный апгрейд. 🎅💎
Жди яркую вспышку в небе! 🌠`,
}

func render(name, tmpl string, d PromptData) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("oracle: parse %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("oracle: render %s: %w", name, err)
	}
	return buf.String(), nil
}
