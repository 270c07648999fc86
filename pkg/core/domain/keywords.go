package domain

// Default bilingual (RU/UZ, with EN spillover from real exports) keyword
// tables. These are the single source of truth for keyword-based
// classification; the adapters/config loader can override any of them.

// DefaultUsageKeywords returns the per-category keyword lists used by the
// equipment usage classifier. Substring match against the item's text bag.
func DefaultUsageKeywords() map[UsageCategory][]string {
	return map[UsageCategory][]string{
		UsageTechnological: {
			"технолог",
			"технологический",
			"технология",
			"агрегат",
			"аппарат",
			"насос технологический",
			"технологический насос",
			"компрессор технологический",
			"технологический компрессор",
			"печь",
			"печной",
			"печная",
			"реактор",
			"сушилка",
			"экструдер",
			"станок технологический",
			"технологический станок",
			"линия технологическая",
			"технологическая линия",
			"texnologik",
			"texnologiya",
		},
		UsageOwnNeeds: {
			"собственные нужды",
			"с.н.",
			"собств. нужды",
			"котельная",
			"котел",
			"котёл",
			"котельная собственных нужд",
			"подстанция",
			"тп-",
			"трансформатор",
			"насос котельной",
			"котельная насос",
			"вентиляция общеобменная",
			"освещение производственное",
			"kotelxona",
			"podstansiya",
		},
		UsageProduction: {
			"производств",
			"производственный",
			"цех",
			"цех №",
			"цех-",
			"участок",
			"участок №",
			"линия производственная",
			"производственная линия",
			"конвейер",
			"станок",
			"станок производственный",
			"механизм",
			"uchastok",
			"konveyer",
		},
		UsageHousehold: {
			"хоз-быт",
			"хозбыт",
			"хозяйственно-бытовые",
			"бытовые",
			"офис",
			"офисный",
			"административный",
			"админ",
			"администрация",
			"административный корпус",
			"склад",
			"склад готовой продукции",
			"раздевалка",
			"душ",
			"санузел",
			"освещение бытовое",
			"освещение офисное",
			"кондиционер офисный",
			"офисный кондиционер",
			"ofis",
			"ombor",
			"idora",
		},
	}
}

// NodeLocationHints maps node-location keywords to the usage category a
// colocated, otherwise-unclassified equipment item is promoted to. Checked
// in the listed order; the substation/boiler-house group is the primary
// "own needs" signal.
type NodeLocationHint struct {
	Keywords []string
	Category UsageCategory
}

// DefaultNodeLocationHints returns the location heuristics used when
// keyword matching on the item itself found nothing.
func DefaultNodeLocationHints() []NodeLocationHint {
	return []NodeLocationHint{
		{Keywords: []string{"котельная", "котел", "подстанц", "тп"}, Category: UsageOwnNeeds},
		{Keywords: []string{"офис", "админ", "склад"}, Category: UsageHousehold},
		{Keywords: []string{"цех", "участок"}, Category: UsageProduction},
	}
}

// FilenameRule binds one resource tag to the filename patterns that imply
// it. Patterns match as lowercase substrings, with and without extensions.
type FilenameRule struct {
	Resource ResourceType
	Patterns []string
}

// DefaultFilenameTable returns the static filename heuristic, checked in
// order. Pattern lists merge the concrete export names seen in audits with
// the generic keywords; electricity is first because mixed consumption
// workbooks default to it.
func DefaultFilenameTable() []FilenameRule {
	return []FilenameRule{
		{Resource: ResourceElectricity, Patterns: []string{
			"pererashod", "electricity", "electro", "потребление энергоресурсов",
			"consumption", "energy_resources", "edenic", "единиц", "kvt", "квт",
			"электр", "электроэнергия", "энергопотребление", "энергоресурсы",
			"реализация", "акт баланс", "коммерческий учёт", "коммерческий учет",
			"активная", "реактивная", "перерасход",
		}},
		{Resource: ResourceGas, Patterns: []string{
			"gaz", "газ", "gas", "расчет газа", "отопл", "неотпл", "газоснабжение",
			"природный газ", "газопотребление", "м³", "м3", "кубометр",
		}},
		{Resource: ResourceWater, Patterns: []string{
			"voda", "вода", "water", "сув", "водоснабжение", "водопотребление",
			"холодная вода", "горячая вода", "гвс", "хвс", "водоотведение",
		}},
		{Resource: ResourceFuel, Patterns: []string{
			"мазут", "mazut", "топливо", "fuel", "нефтепродукты",
			"дизельное топливо", "топливный", "мазутное",
		}},
		{Resource: ResourceCoal, Patterns: []string{
			"уголь", "coal", "ugol", "каменный уголь", "углепотребление",
		}},
		{Resource: ResourceHeat, Patterns: []string{
			"otoplenie", "отопление", "heat", "kotel", "тепло", "котел",
			"теплоэнергия", "теплоснабжение", "гкал", "gcal", "тепловая энергия",
		}},
		{Resource: ResourceEquipment, Patterns: []string{
			"oborudovanie", "оборудование", "equipment",
		}},
		{Resource: ResourceEnvelope, Patterns: []string{
			"ograjdayuschie", "ограждающие", "envelope", "teploprovodnost",
			"теплопроводность", "паспорт здани", "ццр", "здани",
			"строительные конструкции", "конструкции", "теплопотери",
		}},
		{Resource: ResourceNodes, Patterns: []string{
			"uzly_ucheta", "узлы", "узлы учета", "nodes", "schetchiki",
			"счетчики", "счётчики", "metering", "прибор", "узел учета",
			"счётчик", "счетчик",
		}},
	}
}

// DefaultContentKeywords returns per-resource keyword lists used by the
// built-in content signature fallback when no external content rule
// collaborator is injected. Matched against sheet names and header cells.
func DefaultContentKeywords() map[ResourceType][]string {
	return map[ResourceType][]string{
		ResourceElectricity: {
			"электр", "electricity", "электроэнергия", "квтч", "квт", "kwh",
			"потребление энергоресурсов", "энергопотребление", "энергоресурсы",
			"kvt", "electro", "активная", "реактивная",
		},
		ResourceGas: {
			"газ", "gas", "м³", "м3", "кубометр", "газоснабжение",
			"природный газ", "газопотребление",
		},
		ResourceWater: {
			"вода", "water", "водоснабжение", "сув", "водопотребление",
			"гвс", "хвс", "водоотведение",
		},
		ResourceFuel: {
			"мазут", "mazut", "топливо", "fuel", "нефтепродукты",
			"дизельное топливо",
		},
		ResourceCoal: {"уголь", "coal", "ugol", "каменный уголь"},
		ResourceHeat: {
			"отопление", "тепло", "heat", "otoplenie", "теплоэнергия",
			"теплоснабжение", "гкал", "gcal", "тепловая энергия",
		},
		ResourceNodes: {
			"узлы учета", "узел учета", "nodes", "metering", "счётчик",
			"счетчик", "прибор учета", "приборы учета", "показания",
		},
		ResourceEnvelope: {
			"ограждающие", "envelope", "конструкции", "расчет теплопотерь",
			"теплопотери по зданиям", "теплопроводность", "лямбда", "lambda",
			"стены", "окна", "крыша",
		},
		ResourceEquipment: {
			"оборудование", "equipment", "oborudovanie", "установленная мощность",
		},
	}
}

// DefaultRelevanceKeywords returns the equipment name/type keywords that
// mark an item as consuming a given non-electricity carrier. The
// transformer's by-usage split for those carriers only counts items that
// pass this gate (electricity relevance is positive nominal power instead).
func DefaultRelevanceKeywords() map[ResourceType][]string {
	return map[ResourceType][]string{
		ResourceGas:   {"газ", "gas", "котел", "котёл", "boiler"},
		ResourceWater: {"вода", "water", "насос", "pump"},
		ResourceHeat:  {"тепло", "heat", "гкал", "котел", "boiler"},
		ResourceFuel:  {"мазут", "fuel", "дизель", "нефте"},
		ResourceCoal:  {"уголь", "coal"},
	}
}

// DefaultMonthAliases maps lowercase RU month names to month numbers.
// The aggregator also accepts bare month numbers 1..12 in layout cells.
func DefaultMonthAliases() map[string]int {
	return map[string]int{
		"январь":   1,
		"февраль":  2,
		"март":     3,
		"апрель":   4,
		"май":      5,
		"июнь":     6,
		"июль":     7,
		"август":   8,
		"сентябрь": 9,
		"октябрь":  10,
		"ноябрь":   11,
		"декабрь":  12,
	}
}
