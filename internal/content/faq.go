package content

// QA is one FAQ leaf
type QA struct {
	Label  string
	Answer string
}

// Category groups FAQ questions under one menu label
type Category struct {
	Label     string
	Title     string
	Questions []QA
}

// NotFit is answered at category level and returns to the category keyboard.
var NotFit = QA{
	Label: "🚫 Кому вы не подойдёте?",
	Answer: "🚫 *Кому мы не подойдём*\n\n" +
		"Мы не подойдём, если:\n\n" +
		"• метраж меньше 40 м²\n" +
		"• нужен частичный ремонт\n" +
		"• объект не в Ростове/Аксае/Батайске",
}

var FAQ = []Category{
	{
		Label: "💰 Бюджет и смета",
		Title: "💰 *Вопросы по бюджету и смете*",
		Questions: []QA{
			{"💸 Смета может вырасти в процессе?", "💸 *Смета может вырасти в процессе?*\n\n" +
				"Может измениться только если меняется объём работ или Ваши решения.\n\n" +
				"Мы делаем так: любые изменения согласуем заранее, до выполнения, чтобы не было сюрпризов «в конце»."},
			{"💸 Почему нельзя назвать цену без замера?", "💸 *Почему нельзя назвать цену без замера?*\n\n" +
				"Потому что «на глаз» в ремонте чаще всего = ошибка и потом переделки/доплаты.\n\n" +
				"Замер нужен, чтобы зафиксировать объём работ, пожелания и нюансы квартиры."},
			{"💸 У вас есть цена за м²?", "💸 *У вас есть цена за м²?*\n\n" +
				"У нас расчёт индивидуальный, потому что на стоимость влияет состояние квартиры, инженерия и Ваши пожелания."},
		},
	},
	{
		Label: "⏳ Сроки ремонта",
		Title: "⏳ *Вопросы по срокам ремонта*",
		Questions: []QA{
			{"⏳ Сколько длится ремонт под ключ?", "⏳ *Сколько длится ремонт под ключ?*\n\n" +
				"В среднем 3–4 месяца, но точный срок зависит от метража, состояния квартиры и сложности проекта."},
			{"⏳ Как вы контролируете сроки?", "⏳ *Как вы контролируете сроки?*\n\n" +
				"Мы ведём ремонт по этапам и ежедневно фиксируем прогресс.\n\n" +
				"Плюс даём понятную последовательность работ, чтобы не было хаоса."},
		},
	},
	{
		Label: "🧱 Объем работ",
		Title: "🧱 *Вопросы по объему работ*",
		Questions: []QA{
			{"🧱 Что входит в ремонт под ключ?", "🧱 *Что входит в ремонт под ключ?*\n\n" +
				"Это полный цикл работ: черновые + чистовые работы, инженерка (электрика/сантехника), отделка."},
			{"🧱 Вы делаете частичный ремонт?", "🧱 *Вы делаете частичный ремонт?*\n\n" +
				"Нет. Мы берём только полный ремонт квартиры под ключ.\n\n" +
				"Так мы отвечаем за результат и сроки, без зависимости от чужих работ."},
		},
	},
	{
		Label: "🎨 Дизайн-проект",
		Title: "🎨 *Вопросы по дизайн-проекту*",
		Questions: []QA{
			{"🎨 Дизайн-проект входит?", "🎨 *Дизайн-проект входит?*\n\n" +
				"Да, дизайн-проект входит (обсуждаем на старте).\n\n" +
				"Это снижает переделки и помогает заранее продумать свет, розетки, функциональность."},
			{"🎨 Если у нас есть дизайн-проект?", "🎨 *Если у нас есть дизайн-проект?*\n\n" +
				"Да, конечно. Мы посмотрим проект, уточним нюансы на замере и дальше работаем по нему."},
		},
	},
	{
		Label: "🧰 Материалы",
		Title: "🧰 *Вопросы по материалам*",
		Questions: []QA{
			{"🧰 Кто закупает материалы?", "🧰 *Кто закупает материалы?*\n\n" +
				"Обычно материалы закупаем мы, так проще по логистике и срокам.\n\n" +
				"Но если Вам спокойнее, Вы можете закупать сами или частично."},
			{"🧰 Можно выбрать материалы с вами?", "🧰 *Можно выбрать материалы с вами?*\n\n" +
				"Да. Мы помогаем подобрать материалы под Ваш бюджет и задачи, чтобы не переплачивать и не ошибаться."},
		},
	},
	{
		Label: "📸 Контроль и отчетность",
		Title: "📸 *Вопросы по контролю и отчетности*",
		Questions: []QA{
			{"📸 Как увидеть что работы идут?", "📸 *Как увидеть что работы идут?*\n\n" +
				"Вы будете видеть прогресс: фото/видео с объектов + отчётность по этапам.\n\n" +
				"Никакого «мы работали, но показать нечего»."},
			{"📸 Можно посмотреть ваши объекты?", "📸 *Можно посмотреть ваши объекты?*\n\n" +
				"Да, по согласованию можем показать реальные объекты (в процессе или готовые)."},
		},
	},
	{
		Label: "📄 Договор и гарантии",
		Title: "📄 *Вопросы по договору и гарантиям*",
		Questions: []QA{
			{"📄 Вы работаете по договору?", "📄 *Вы работаете по договору?*\n\n" +
				"Да, работаем по договору на юрлицо.\n\n" +
				"Это фиксирует обязательства, условия и порядок работ."},
			{"📄 Какая гарантия?", "📄 *Какая гарантия?*\n\n" +
				"Гарантия прописывается в договоре.\n\n" +
				"На замере/созвоне менеджер пояснит сроки и что именно покрывает гарантия."},
			{"👷 Кто делает ремонт?", "👷 *Кто делает ремонт?*\n\n" +
				"Работает наша бригада под руководством прораба.\n\n" +
				"Ответственность не «размывается» между разными исполнителями."},
		},
	},
	{
		Label: "🚪 Начало ремонта",
		Title: "🚪 *Вопросы по началу ремонта*",
		Questions: []QA{
			{"🚪 Замер платный?", "🚪 *Замер платный?*\n\nНет, замер бесплатный."},
			{"🚪 Что подготовить к замеру?", "🚪 *Что подготовить к замеру?*\n\n" +
				"• планировку/план БТИ (фото или файл)\n" +
				"• 2–3 примера «как нравится» (скриншоты)\n" +
				"• ориентир по сроку заезда и бюджету"},
			{"🚪 Как быстро начать ремонт?", "🚪 *Как быстро начать ремонт?*\n\n" +
				"Зависит от загрузки и готовности проекта/ТЗ.\n\n" +
				"На созвоне/замере скажем ближайшие окна старта."},
		},
	},
}

// FindCategory looks up a category by its menu label
func FindCategory(label string) (Category, bool) {
	for _, c := range FAQ {
		if c.Label == label {
			return c, true
		}
	}
	return Category{}, false
}

// FindQuestion looks up a question leaf and the category it belongs to
func FindQuestion(label string) (QA, Category, bool) {
	for _, c := range FAQ {
		for _, q := range c.Questions {
			if q.Label == label {
				return q, c, true
			}
		}
	}
	return QA{}, Category{}, false
}
