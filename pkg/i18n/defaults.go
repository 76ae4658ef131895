package i18n

// defaultTable holds the compiled-in minimal translations per supported
// language. It covers only critical UI strings so the site header and section
// titles stay readable when a fetched tree is missing or incomplete. English
// is the universal fallback and must cover every key present here.
var defaultTable = map[string]Tree{
	"en": {
		"header": map[string]any{
			"title":    "Curriculum Vitae",
			"subtitle": "Software Engineer",
		},
		"sections": map[string]any{
			"profile":    "Profile",
			"experience": "Work Experience",
			"education":  "Education",
			"skills":     "Skills",
			"projects":   "Projects",
			"contact":    "Contact",
		},
		"actions": map[string]any{
			"download": "Download PDF",
			"language": "Language",
			"theme":    "Theme",
		},
	},
	"es": {
		"header": map[string]any{
			"title":    "Currículum Vitae",
			"subtitle": "Ingeniero de Software",
		},
		"sections": map[string]any{
			"profile":    "Perfil",
			"experience": "Experiencia Laboral",
			"education":  "Educación",
			"skills":     "Habilidades",
			"projects":   "Proyectos",
			"contact":    "Contacto",
		},
		"actions": map[string]any{
			"download": "Descargar PDF",
			"language": "Idioma",
			"theme":    "Tema",
		},
	},
	"fr": {
		"header": map[string]any{
			"title":    "Curriculum Vitae",
			"subtitle": "Ingénieur Logiciel",
		},
		"sections": map[string]any{
			"profile":    "Profil",
			"experience": "Expérience Professionnelle",
			"education":  "Formation",
			"skills":     "Compétences",
			"projects":   "Projets",
			"contact":    "Contact",
		},
		"actions": map[string]any{
			"download": "Télécharger le PDF",
			"language": "Langue",
			"theme":    "Thème",
		},
	},
	"de": {
		"header": map[string]any{
			"title":    "Lebenslauf",
			"subtitle": "Softwareentwickler",
		},
		"sections": map[string]any{
			"profile":    "Profil",
			"experience": "Berufserfahrung",
			"education":  "Ausbildung",
			"skills":     "Kenntnisse",
			"projects":   "Projekte",
			"contact":    "Kontakt",
		},
		"actions": map[string]any{
			"download": "PDF herunterladen",
			"language": "Sprache",
			"theme":    "Design",
		},
	},
}

// Defaults returns the compiled-in default tree for a language, or nil when
// the language has no defaults. The returned tree must not be mutated.
func Defaults(lang string) Tree {
	return defaultTable[lang]
}
