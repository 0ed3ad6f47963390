package analysis

import "regexp"

// CountryReferents groups the referent tables of one country. Multi-word
// entries are matched by substring search over the lowercased text.
type CountryReferents struct {
	Places       []string
	Foods        []string
	Festivities  []string
	Institutions []string
	Culture      []string
}

// Categories returns the referent lists in their fixed scan order.
func (c *CountryReferents) Categories() [][]string {
	return [][]string{c.Places, c.Foods, c.Festivities, c.Institutions, c.Culture}
}

// Lexicon is the immutable reference data every analyzer reads: pronoun and
// connector sets, emotion and topic vocabularies, per-country referents,
// cultural field and tension indicator lists, and the risk alert phrases.
// It is built once at startup and passed by reference into the analyzers;
// nothing in it is mutated at runtime, so concurrent use is safe.
type Lexicon struct {
	FirstPersonPronouns map[string]bool
	Connectors          map[string]bool

	// EmotionOrder fixes the tie-break priority for the dominant emotion.
	EmotionOrder []Emotion
	EmotionWords map[Emotion]map[string]bool

	PastTensePatterns []*regexp.Regexp

	// TopicOrder fixes the tie-break order when topic frequencies are equal.
	TopicOrder    []string
	TopicKeywords map[string]map[string]bool

	Countries map[string]*CountryReferents

	FieldOrder     []string
	CulturalFields map[string][]string

	// TensionOrder fixes the tie-break priority for the dominant tension.
	TensionOrder      []CulturalTension
	TensionIndicators map[CulturalTension][]string

	// EmotionallyLoadedTerms are scanned for under-elaborated mentions by
	// the blockage detector.
	EmotionallyLoadedTerms []string
	Generalizations        []string

	// RiskCategoryOrder fixes the scan order of the risk screener.
	RiskCategoryOrder []RiskCategory
	RiskSignals       map[RiskCategory][]string
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}

// DefaultLexicon builds the Spanish reference tables. The returned value is
// treated as read-only by every analyzer.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		FirstPersonPronouns: wordSet(
			"yo", "me", "mi", "mí", "mis", "conmigo", "nosotros", "nosotras",
			"nos", "nuestro", "nuestra", "nuestros", "nuestras",
		),

		// Multi-word connectors never match a single token; they are kept so
		// the table stays the complete reference list.
		Connectors: wordSet(
			// cause/consequence
			"porque", "por", "ya que", "dado que", "puesto que", "como",
			"por tanto", "por lo tanto", "así que", "entonces", "consecuentemente",
			// contrast
			"pero", "sin embargo", "no obstante", "aunque", "a pesar de",
			"mientras que", "en cambio", "sino",
			// addition
			"y", "además", "también", "asimismo", "igualmente", "incluso",
			// temporal
			"cuando", "mientras", "antes", "después", "luego",
			"finalmente", "posteriormente", "anteriormente",
		),

		EmotionOrder: []Emotion{EmotionJoy, EmotionSadness, EmotionFear, EmotionAnger},
		EmotionWords: map[Emotion]map[string]bool{
			EmotionJoy: wordSet(
				"feliz", "alegre", "contento", "contenta", "alegría", "gozo", "felicidad",
				"sonrisa", "risa", "reír", "disfrutar", "disfruté", "emocionado",
				"emocionada", "entusiasmo", "ilusión",
			),
			EmotionSadness: wordSet(
				"triste", "tristeza", "pena", "melancolía", "melancólico", "llorar",
				"llanto", "lágrimas", "deprimido", "deprimida", "desanimado", "desanimada",
				"soledad", "solo", "sola", "nostalgia", "nostálgico",
			),
			EmotionFear: wordSet(
				"miedo", "temor", "pánico", "terror", "asustado", "asustada",
				"angustia", "ansiedad", "ansioso", "ansiosa", "nervioso", "nerviosa",
				"preocupado", "preocupada", "inseguro", "insegura",
			),
			EmotionAnger: wordSet(
				"rabia", "ira", "enfado", "enfadado", "enfadada", "enojado", "enojada",
				"furia", "furioso", "furiosa", "molesto", "molesta", "irritado",
				"irritada", "frustrado", "frustrada", "indignación",
			),
		},

		// Preterite and imperfect endings, anchored at end of token. The
		// -amos pattern also matches present-tense first-person-plural forms
		// ("hablamos"); that over-count is part of the published heuristic
		// and must not be corrected.
		PastTensePatterns: []*regexp.Regexp{
			regexp.MustCompile(`^[\p{L}\p{N}_]+é$`),      // hablé, comí
			regexp.MustCompile(`^[\p{L}\p{N}_]+aste$`),   // hablaste
			regexp.MustCompile(`^[\p{L}\p{N}_]+ó$`),      // habló
			regexp.MustCompile(`^[\p{L}\p{N}_]+amos$`),   // hablamos
			regexp.MustCompile(`^[\p{L}\p{N}_]+asteis$`), // hablasteis
			regexp.MustCompile(`^[\p{L}\p{N}_]+aron$`),   // hablaron
			regexp.MustCompile(`^[\p{L}\p{N}_]+ieron$`),  // comieron
			regexp.MustCompile(`^[\p{L}\p{N}_]+aba$`),    // hablaba
			regexp.MustCompile(`^[\p{L}\p{N}_]+ían$`),    // hablaban
			regexp.MustCompile(`^[\p{L}\p{N}_]+ía$`),     // comía
		},

		TopicOrder: []string{"familia", "trabajo", "estudios", "salud", "vivienda"},
		TopicKeywords: map[string]map[string]bool{
			"familia": wordSet(
				"familia", "madre", "padre", "hermano", "hermana", "hijo", "hija",
				"abuelo", "abuela", "tío", "tía", "primo", "prima", "mamá", "papá",
				"padres", "hijos", "esposo", "esposa", "marido", "mujer",
			),
			"trabajo": wordSet(
				"trabajo", "empleo", "jefe", "jefa", "compañero", "compañera", "oficina",
				"empresa", "sueldo", "salario", "negocio", "profesión", "carrera",
				"desempleo", "paro", "contratar", "despedir",
			),
			"estudios": wordSet(
				"estudiar", "estudios", "escuela", "colegio", "instituto", "universidad",
				"profesor", "profesora", "maestro", "maestra", "clase", "curso",
				"examen", "aprender", "enseñar", "educación",
			),
			"salud": wordSet(
				"salud", "enfermedad", "enfermo", "enferma", "médico", "médica",
				"hospital", "clínica", "dolor", "medicina", "tratamiento", "curar",
			),
			"vivienda": wordSet(
				"casa", "hogar", "piso", "apartamento", "vivienda", "habitación",
				"vecino", "vecina", "barrio", "alquiler", "comprar", "vivir",
			),
		},

		Countries: map[string]*CountryReferents{
			"colombia": {
				Places:       []string{"bogotá", "medellín", "cartagena", "cali", "barranquilla"},
				Foods:        []string{"arepa", "bandeja paisa", "ajiaco", "sancocho", "empanada"},
				Festivities:  []string{"carnaval de barranquilla", "feria de las flores", "festival de música"},
				Institutions: []string{"sena", "icbf"},
				Culture:      []string{"vallenato", "cumbia", "salsa", "café", "aguardiente"},
			},
			"venezuela": {
				Places:      []string{"caracas", "maracaibo", "valencia", "maracay"},
				Foods:       []string{"arepa", "pabellón", "hallaca", "cachapa", "tequeño"},
				Festivities: []string{"carnaval", "día de la chinita"},
				Culture:     []string{"joropo", "gaita", "béisbol"},
			},
			"ecuador": {
				Places:      []string{"quito", "guayaquil", "cuenca"},
				Foods:       []string{"ceviche", "encebollado", "hornado", "llapingacho"},
				Festivities: []string{"inti raymi", "carnaval"},
				Culture:     []string{"pasillo", "san juanito"},
			},
			"perú": {
				Places:      []string{"lima", "cusco", "arequipa", "machu picchu"},
				Foods:       []string{"ceviche", "lomo saltado", "ají de gallina", "causa", "anticuchos"},
				Festivities: []string{"inti raymi", "fiestas patrias", "señor de los milagros"},
				Culture:     []string{"huayno", "marinera", "pisco"},
			},
			"méxico": {
				Places:      []string{"ciudad de méxico", "guadalajara", "monterrey", "cancún"},
				Foods:       []string{"tacos", "tamales", "mole", "pozole", "enchiladas"},
				Festivities: []string{"día de muertos", "cinco de mayo", "grito de independencia"},
				Culture:     []string{"mariachi", "ranchera", "tequila", "lucha libre"},
			},
			"argentina": {
				Places:      []string{"buenos aires", "córdoba", "rosario", "mendoza"},
				Foods:       []string{"asado", "empanadas", "milanesa", "dulce de leche"},
				Festivities: []string{"carnaval", "fiesta nacional de la vendimia"},
				Culture:     []string{"tango", "mate", "fútbol", "vino"},
			},
			"españa": {
				Places:      []string{"madrid", "barcelona", "valencia", "sevilla", "bilbao"},
				Foods:       []string{"paella", "tortilla", "jamón", "gazpacho", "tapas"},
				Festivities: []string{"semana santa", "feria de abril", "san fermines", "tomatina"},
				Culture:     []string{"flamenco", "fútbol", "siesta", "corrida"},
			},
		},

		FieldOrder: []string{"familia", "trabajo", "fiesta", "comida", "idioma", "educación", "religión"},
		CulturalFields: map[string][]string{
			"familia": {
				"familia", "madre", "padre", "hermano", "hermana", "abuelo", "hijo",
				"parientes", "tío", "primo", "familias", "hogar", "casa familiar",
			},
			"trabajo": {
				"trabajo", "empleo", "oficina", "empresa", "negocio", "jefe",
				"compañeros de trabajo", "sueldo", "horario", "profesión",
			},
			"fiesta": {
				"fiesta", "celebración", "festival", "carnaval", "navidad",
				"cumpleaños", "boda", "baile", "música", "tradición",
			},
			"comida": {
				"comida", "cocina", "plato", "receta", "restaurante",
				"comer", "almuerzo", "cena", "desayuno", "sabor",
			},
			"idioma": {
				"idioma", "lengua", "español", "hablar", "acento",
				"palabras", "expresión", "comunicación", "vocabulario",
			},
			"educación": {
				"escuela", "colegio", "universidad", "estudiar", "aprender",
				"clase", "curso", "profesor", "alumno", "educación",
			},
			"religión": {
				"iglesia", "dios", "fe", "religión", "oración", "misa",
				"santo", "virgen", "creencia", "espiritual",
			},
		},

		TensionOrder: []CulturalTension{
			TensionNostalgia, TensionShock, TensionIntegration,
			TensionExploration, TensionRejection,
		},
		TensionIndicators: map[CulturalTension][]string{
			TensionNostalgia: {
				"extrañar", "echar de menos", "añorar", "recordar", "antes",
				"allá", "mi país", "mi tierra", "nostalgia", "lejos", "distancia",
			},
			TensionShock: {
				"diferente", "extraño", "raro", "difícil", "no entiendo",
				"confuso", "incomprensible", "choque", "contraste", "distinto",
			},
			TensionIntegration: {
				"adaptado", "acostumbrado", "integrado", "comunidad", "pertenezco",
				"acepto", "comprendido", "cómodo", "bienvenido", "parte de",
			},
			TensionExploration: {
				"nuevo", "descubrir", "conocer", "aprender", "experiencia",
				"oportunidad", "aventura", "interesante", "curioso", "explorar",
			},
			TensionRejection: {
				"no me gusta", "odio", "malo", "peor", "horrible",
				"rechazar", "desprecio", "discriminación", "racismo",
			},
		},

		EmotionallyLoadedTerms: []string{
			"miedo", "angustia", "trauma", "violencia", "dolor",
			"tristeza", "depresión", "ansiedad", "pánico",
		},
		Generalizations: []string{
			"siempre", "nunca", "jamás", "todo", "nada", "todos", "nadie",
			"todo el mundo", "todo el tiempo", "para siempre", "en general",
		},

		RiskCategoryOrder: []RiskCategory{
			RiskSelfHarm, RiskHopelessness, RiskTrauma,
			RiskDissociation, RiskParanoia, RiskSubstanceUse,
		},
		RiskSignals: map[RiskCategory][]string{
			RiskSelfHarm: {
				"suicidarme", "suicidio", "quitarme la vida", "acabar con todo",
				"no quiero vivir", "mejor muerto", "mejor muerta", "matarme",
				"desaparecer para siempre", "cortarme", "hacerme daño",
				"terminar con mi vida", "dejar de existir",
			},
			RiskHopelessness: {
				"sin esperanza", "no hay salida", "todo está perdido",
				"nunca mejorará", "no tiene sentido", "inútil", "fracaso total",
				"sin futuro", "no hay solución", "imposible", "condenado",
				"condenada", "atrapado", "atrapada", "sin escape",
			},
			RiskTrauma: {
				"abuso", "violación", "maltrato", "golpes", "tortura",
				"trauma", "pesadillas", "flashback", "revivo", "atacado",
				"atacada", "violencia sexual", "agresión",
			},
			RiskDissociation: {
				"no soy yo", "fuera de mi cuerpo", "como si no fuera real",
				"no siento nada", "vacío total", "como un robot",
				"despersonalización", "irreal", "desconectado", "desconectada",
			},
			RiskParanoia: {
				"me persiguen", "conspiran contra mí", "me vigilan",
				"voces en mi cabeza", "escucho voces", "me hablan",
				"controlado por", "controlada por", "implantaron",
				"leen mis pensamientos", "me espían",
			},
			RiskSubstanceUse: {
				"drogas", "cocaína", "heroína", "adicto", "adicta",
				"dependencia", "alcoholismo", "beber todos los días",
				"necesito drogas", "síndrome de abstinencia",
			},
		},
	}
}
