package domain

// Distance - помеченное значение дорожного расстояния.
// Недостижимость выражается самим типом, числовых сентинелов нет.
type Distance struct {
	km    float64
	known bool
}

// KnownDistance строит достижимое расстояние в километрах.
func KnownDistance(km float64) Distance {
	return Distance{km: km, known: true}
}

// UnreachableDistance строит недостижимую ячейку.
func UnreachableDistance() Distance {
	return Distance{}
}

// Km возвращает километры и признак достижимости.
func (d Distance) Km() (float64, bool) {
	return d.km, d.known
}

// IsUnreachable сообщает, что маршрут между точками не найден.
func (d Distance) IsUnreachable() bool {
	return !d.known
}

// DistanceMatrix - квадратная матрица дорожных расстояний в километрах.
// Матрица может быть несимметричной (односторонние дороги, развязки),
// значения никогда не усредняются.
type DistanceMatrix struct {
	n     int
	cells [][]Distance
}

// NewDistanceMatrix создаёт матрицу n x n: диагональ нулевая, остальные
// ячейки недостижимы, пока их не заполнит билдер.
func NewDistanceMatrix(n int) *DistanceMatrix {
	cells := make([][]Distance, n)
	for i := range cells {
		cells[i] = make([]Distance, n)
		cells[i][i] = KnownDistance(0)
	}
	return &DistanceMatrix{n: n, cells: cells}
}

// Size возвращает размерность матрицы.
func (m *DistanceMatrix) Size() int {
	return m.n
}

// At возвращает километры и признак достижимости ячейки (i, j).
func (m *DistanceMatrix) At(i, j int) (float64, bool) {
	return m.cells[i][j].Km()
}

// Cell возвращает ячейку как значение Distance.
func (m *DistanceMatrix) Cell(i, j int) Distance {
	return m.cells[i][j]
}

// Set записывает ячейку. Диагональ всегда остаётся нулевой.
func (m *DistanceMatrix) Set(i, j int, d Distance) {
	if i == j {
		return
	}
	m.cells[i][j] = d
}

// Grid возвращает матрицу в сетевом виде: nil-ячейка = недостижимо.
func (m *DistanceMatrix) Grid() [][]*float64 {
	grid := make([][]*float64, m.n)
	for i := 0; i < m.n; i++ {
		grid[i] = make([]*float64, m.n)
		for j := 0; j < m.n; j++ {
			if km, ok := m.cells[i][j].Km(); ok {
				v := km
				grid[i][j] = &v
			}
		}
	}
	return grid
}
