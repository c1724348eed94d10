package content

import (
	"fmt"
	"strings"
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown makes user-provided text safe inside a Markdown message
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func Welcome(firstName string) string {
	return fmt.Sprintf("👋 Здравствуйте, %s!\n\n"+
		"Вас приветствует команда *Дом Ремонта*\n\n"+
		"Поможем за 2 минуты:\n"+
		"1️⃣ рассчитать стоимость работ\n"+
		"2️⃣ понять, где у Вас риск _вылезти_ по бюджету\n\n"+
		"Начнём❓", EscapeMarkdown(firstName))
}

const (
	GeographyPrompt    = "🗺 *Где находится объект?*"
	ObjectTypePrompt   = "*Объект в каком варианте?*"
	ConditionPrompt    = "🛁 *В каком состоянии квартира сейчас?*"
	MetragePrompt      = "✏️ *Напишите метраж квартиры* (например: 72)"
	MetrageInvalid     = "❌ Пожалуйста, введите число (например: 72)"
	RepairFormatPrompt = "*Какой ремонт Вам нужен?*"
	PartialRepairAside = "🤝 Понял Вас. Мы делаем только полный ремонт под ключ, " +
		"чтобы не зависеть от чужих работ и отвечать за итог.\n\n" +
		"Но вы можете оставить заявку, обсудим варианты."
	KeysPrompt     = "🔑 *Ключи уже на руках?*"
	DeadlinePrompt = "📌 *Когда хотите заехать в готовую квартиру?*"
	MainFearPrompt = "😟 *Честно: что тревожит больше всего?*"
	BudgetPrompt   = "💸 *Чтобы не гадать на кофейной гуще: какой ориентир по бюджету на работы Вы рассматриваете?*"

	ContactPrompt = "📱 *Отлично! Оставьте ваш номер телефона*\n\n" +
		"Нажмите кнопку ниже, чтобы поделиться контактом:"
	ContactPromptDirect = "📱 *Отлично! Давайте сразу запишем вас на замер*\n\n" +
		"Нажмите кнопку ниже, чтобы поделиться контактом:"
	ContactRequired = "❌ Пожалуйста, нажмите кнопку «" + BtnShareContact + "»"
	LeadAccepted    = "✅ *Принято!*\n\n" +
		"Мы получили заявку на бесплатный замер.\n\n" +
		"📞 Менеджер свяжется с Вами и подтвердит точное время.\n\n" +
		"Спасибо за обращение!\n\n" +
		"📌 Если у вас есть вопросы, загляните в *FAQ*"

	MoreHelp        = "Чем еще могу помочь?"
	ReadyToBook     = "Готовы записаться на замер?"
	FAQIntro        = "❓ *Часто задаваемые вопросы*\n\nВыберите категорию вопросов:"
	FAQPickQuestion = "Выберите интересующий вопрос:"

	OwnQuestionPrompt = "❓ *Задайте свой вопрос*\n\n" +
		"Напишите ваш вопрос в ответном сообщении, и мы обязательно ответим вам 👇"
	QuestionReceived = "✅ *Спасибо за вопрос!*\n\nМенеджер ответит Вам в ближайшее время."

	CancelText = "Диалог прерван. Вы можете вернуться к нему в любой момент."
	HelpText   = "🤖 Команды бота:\n\n" +
		"/start - начать опрос\n" +
		"/cancel - отменить текущий диалог\n" +
		"/help - показать эту справку"
	UnknownCommand = "Неизвестная команда. /help покажет доступные команды."
	ChooseOption   = "Выберите вариант на клавиатуре ниже 👇"
)

// Values stored for answers the user never gave
const (
	NotSpecified        = "Не указан"
	NotSpecifiedNeuter  = "Не указано"
	DirectGeography     = "Не указан (прямая запись)"
	AppointmentAwaiting = "ожидает подтверждения"
)

// GeographyRejected lists the serviceable cities after an unknown answer
func GeographyRejected(cities []string) string {
	return fmt.Sprintf("❌ Мы работаем только в городах:\n%s\n\nВыберите из списка:", strings.Join(cities, " • "))
}

// OtherCityApology answers the "other city" choice
func OtherCityApology(cities []string) string {
	return fmt.Sprintf("😔 Понял, извините, мы работаем только здесь: %s.\n\nВыберите город из списка:", strings.Join(cities, ", "))
}

// SmallMetrage is the aside for objects below the size threshold
func SmallMetrage(min int) string {
	return fmt.Sprintf("🙏 Спасибо! Мы берём объекты от %d м², "+
		"чтобы отвечать за сроки и результат _под ключ_.\n\n"+
		"Но вы можете оставить заявку, обсудим индивидуально.", min)
}

func Portfolio(url string) string {
	return "👀 Примеры наших работ:\n\n" +
		"Наш Telegram-канал: " + url + "\n\n" +
		"Там вы найдете:\n" +
		"• Фото готовых объектов\n" +
		"• Видео процессов\n" +
		"• Отзывы клиентов\n" +
		"• Идеи для ремонта"
}

// Closing pitches selected by the stated main concern
const (
	CloserScopeCreep = "Понял. Ваш главный риск: _сюрпризы по ходу_.\n\n" +
		"Обычно смета улетает не из-за плохих людей, а из-за двух вещей:\n" +
		"— начали без чёткого состава работ\n" +
		"— изменения по ходу не фиксировали заранее\n\n" +
		"Мы сделаем так, чтобы у Вас было понятно по шагам: что делаем, " +
		"что может поменять сумму и как это согласуется заранее.\n\n" +
		"Готовы записаться на бесплатный замер?"
	CloserScheduleSlip = "Понял. Ваш главный риск: _ремонт растянется_.\n\n" +
		"Чаще всего сроки плывут, когда нет нормальной этапности и контроля.\n\n" +
		"На замере мы фиксируем объём и даём реальный план по этапам, " +
		"чтобы Вы понимали, когда сможете заехать.\n\n" +
		"Записать Вас на бесплатный замер?"
	CloserHiddenDefects = "Понимаю Вас. Самое обидное в ремонте, когда _с виду красиво_, " +
		"а потом вылезает то, что было скрыто.\n\n" +
		"Поэтому мы делаем акцент на этапах, которые обычно не видно, " +
		"но они решают всё: сантехника, электрика, подготовка, узлы.\n\n" +
		"На замере расскажем, где у Вашего объекта зона риска, " +
		"и что нужно проконтролировать, чтобы не платить дважды.\n\n" +
		"Записать Вас на бесплатный замер?"
	CloserOverwhelmed = "Честно, это нормальное состояние после ключей.\n" +
		"Голова шумит, все советуют разное, и Вы просто не хотите встрять.\n\n" +
		"Хорошая новость: это решается системой. Понятный объём, " +
		"план этапов и прозрачные согласования.\n\n" +
		"Давайте сделаем первый спокойный шаг: бесплатный замер."
	CloserDefault = "Спасибо за ответы! Теперь давайте определимся со следующим шагом.\n\n" +
		"Готовы записаться на бесплатный замер?"
)

// Broadcast captions
const (
	BroadcastFirstCaption = "🎁 *Дарим бесплатный дизайн-проект от нашего дизайнера* " +
		"за расчет стоимости ремонта до конца дня 👇"
	BroadcastSecondCaption = "☝️ *Абсолютно бесплатно забирайте гид по выбору материалов* от нашей команды."
)
