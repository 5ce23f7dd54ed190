package models

// Module is a static entry of the game map.
type Module struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	CoinsReward int    `json:"coins_reward"`
	Difficulty  string `json:"difficulty"`
}

// Milestone badges, awarded on the number of completed modules.
const (
	BadgeFirstStep     = "Primer Paso"
	BadgeExplorer      = "Explorador Intermedio"
	BadgeFinanceMaster = "Maestro Financiero"
)

var milestoneBadges = map[int]string{
	1: BadgeFirstStep,
	4: BadgeExplorer,
	8: BadgeFinanceMaster,
}

// MilestoneBadge returns the badge earned when the completed count reaches n.
func MilestoneBadge(n int) (string, bool) {
	b, ok := milestoneBadges[n]
	return b, ok
}

var catalog = [...]Module{
	{ID: 1, Title: "Puerto del Descubrimiento", Subtitle: "El Mundo de las Finanzas", CoinsReward: 20, Difficulty: "Fácil"},
	{ID: 2, Title: "Valle de los Ingresos y Gastos", Subtitle: "¿De Dónde Viene y a Dónde Va?", CoinsReward: 25, Difficulty: "Fácil"},
	{ID: 3, Title: "Cueva del Ahorro", Subtitle: "La Magia del Ahorro", CoinsReward: 30, Difficulty: "Medio"},
	{ID: 4, Title: "Mercado del Emprendedor", Subtitle: "Tu Propio Negocio", CoinsReward: 35, Difficulty: "Medio"},
	{ID: 5, Title: "Bosque de la Honestidad", Subtitle: "La Ética en los Negocios", CoinsReward: 40, Difficulty: "Medio"},
	{ID: 6, Title: "Fuente del Crecimiento", Subtitle: "El Poder de la Inversión", CoinsReward: 45, Difficulty: "Difícil"},
	{ID: 7, Title: "Montañas de los Desafíos", Subtitle: "Los Obstáculos y Cómo Superarlos", CoinsReward: 50, Difficulty: "Difícil"},
	{ID: 8, Title: "Cima del Éxito", Subtitle: "Hacia el Éxito Financiero", CoinsReward: 100, Difficulty: "Maestro"},
}

// Modules returns a copy of the catalog in id order.
func Modules() []Module {
	out := make([]Module, len(catalog))
	copy(out, catalog[:])
	return out
}

func FindModule(id int) (Module, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

// Reward is the coins a completion of m pays for score.
func (m Module) Reward(score int) int {
	if score >= 80 {
		return m.CoinsReward * 3 / 2
	}
	return m.CoinsReward
}

// LevelFor is the level reached with n completed modules.
func LevelFor(n int) int {
	return n/3 + 1
}
