package vision

// spanishLabels maps the detector's English labels to the Spanish words used
// in generated descriptions. Unmapped labels pass through unchanged.
var spanishLabels = map[string]string{
	"person":        "persona",
	"car":           "carro",
	"bicycle":       "bicicleta",
	"motorcycle":    "motocicleta",
	"bus":           "autobús",
	"truck":         "camión",
	"traffic light": "semáforo",
	"stop sign":     "señal de alto",
	"dog":           "perro",
	"cat":           "gato",
	"backpack":      "mochila",
	"umbrella":      "paraguas",
	"handbag":       "bolso",
	"suitcase":      "maleta",
	"bottle":        "botella",
	"cup":           "taza",
	"bowl":          "tazón",
	"chair":         "silla",
	"sofa":          "sofá",
	"bed":           "cama",
	"diningtable":   "mesa de comedor",
	"laptop":        "portátil",
	"mouse":         "ratón",
	"remote":        "control remoto",
	"keyboard":      "teclado",
	"cell phone":    "teléfono celular",
	"microwave":     "microondas",
	"oven":          "horno",
	"sink":          "fregadero",
	"book":          "libro",
	"clock":         "reloj",
	"vase":          "jarrón",
	"scissors":      "tijeras",
}

// obstacleLabels are the detector labels that trigger the obstacle warning.
var obstacleLabels = map[string]struct{}{
	"car":        {},
	"person":     {},
	"bicycle":    {},
	"motorcycle": {},
	"truck":      {},
	"bus":        {},
}

func translateLabel(label string) string {
	if es, ok := spanishLabels[label]; ok {
		return es
	}
	return label
}
