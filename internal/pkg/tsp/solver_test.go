package tsp_test

import (
	"testing"

	"github.com/route-optimizer/internal/pkg/tsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridMatrix - тестовая матрица; отрицательное значение = недостижимо
type gridMatrix [][]float64

func (g gridMatrix) Size() int { return len(g) }

func (g gridMatrix) At(i, j int) (float64, bool) {
	v := g[i][j]
	if v < 0 {
		return 0, false
	}
	return v, true
}

// Симметричная ловушка для жадной эвристики: цепочка дешёвых рёбер
// уводит ближайшего соседа к дорогому замыканию 3 -> 0.
func greedyTrap() gridMatrix {
	return gridMatrix{
		{0, 1, 2, 10},
		{1, 0, 1, 2},
		{2, 1, 0, 1},
		{10, 2, 1, 0},
	}
}

func TestSolveExact_FindsGlobalOptimum(t *testing.T) {
	// Классический 4-точечный пример: оптимальный цикл 0-1-3-2-0 = 80
	m := gridMatrix{
		{0, 10, 15, 20},
		{10, 0, 35, 25},
		{15, 35, 0, 30},
		{20, 25, 30, 0},
	}

	sol, err := tsp.SolveExact(m)
	require.NoError(t, err)

	assert.Equal(t, 80.0, sol.TotalKm)
	assert.Equal(t, []int{0, 1, 3, 2, 0}, sol.Tour)
	assert.Empty(t, sol.UnreachableLegs)
	assert.Equal(t, tsp.AlgorithmExact, sol.Algorithm)
}

func TestSolveExact_TriangleTotal(t *testing.T) {
	// Три точки: любой цикл проходит все три ребра, суммарно 23
	m := gridMatrix{
		{0, 5, 10},
		{5, 0, 8},
		{10, 8, 0},
	}

	sol, err := tsp.SolveExact(m)
	require.NoError(t, err)

	assert.Equal(t, 23.0, sol.TotalKm)
	assert.Len(t, sol.Tour, 4)
	assert.Equal(t, 0, sol.Tour[0])
	assert.Equal(t, 0, sol.Tour[len(sol.Tour)-1])
}

func TestSolveExact_DeterministicOnTies(t *testing.T) {
	// Все рёбра равны: побеждает первая перестановка в лексикографическом
	// порядке перебора
	m := gridMatrix{
		{0, 1, 1, 1},
		{1, 0, 1, 1},
		{1, 1, 0, 1},
		{1, 1, 1, 0},
	}

	sol, err := tsp.SolveExact(m)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 0}, sol.Tour)
	assert.Equal(t, 4.0, sol.TotalKm)
}

func TestSolveExact_PrefersFullyReachableTour(t *testing.T) {
	// Ребро 1 -> 2 отсутствует: перебор должен выбрать цикл без него
	m := gridMatrix{
		{0, 1, 2},
		{1, 0, -1},
		{2, 1, 0},
	}

	sol, err := tsp.SolveExact(m)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 1, 0}, sol.Tour)
	assert.Empty(t, sol.UnreachableLegs)
	assert.Equal(t, 4.0, sol.TotalKm)
}

func TestSolveExact_SurfacesUnreachableLegs(t *testing.T) {
	// Точки 1 и 2 не связаны в обе стороны: любой цикл содержит одно
	// недостижимое ребро. Сумма берётся только по достижимым рёбрам.
	m := gridMatrix{
		{0, 1, 2},
		{1, 0, -1},
		{2, -1, 0},
	}

	sol, err := tsp.SolveExact(m)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 0}, sol.Tour, "equal cost: first permutation wins")
	require.Len(t, sol.UnreachableLegs, 1)
	assert.Equal(t, tsp.Leg{From: 1, To: 2}, sol.UnreachableLegs[0])
	assert.Equal(t, 3.0, sol.TotalKm)
}

func TestSolveExact_TooFewPlaces(t *testing.T) {
	_, err := tsp.SolveExact(gridMatrix{{0}})
	assert.ErrorIs(t, err, tsp.ErrTooFewPlaces)

	_, err = tsp.SolveExact(gridMatrix{})
	assert.ErrorIs(t, err, tsp.ErrTooFewPlaces)
}

func TestNearestNeighbor_TourShape(t *testing.T) {
	m := greedyTrap()

	sol, err := tsp.NearestNeighbor(m, 0)
	require.NoError(t, err)

	require.Len(t, sol.Tour, m.Size()+1)
	assert.Equal(t, 0, sol.Tour[0])
	assert.Equal(t, 0, sol.Tour[len(sol.Tour)-1])
	assert.Positive(t, sol.TotalKm)
	assert.Equal(t, tsp.AlgorithmNearestNeighbor, sol.Algorithm)

	// Каждая точка посещается ровно один раз
	seen := make(map[int]int)
	for _, idx := range sol.Tour[:len(sol.Tour)-1] {
		seen[idx]++
	}
	assert.Len(t, seen, m.Size())
	for idx, count := range seen {
		assert.Equalf(t, 1, count, "place %d visited more than once", idx)
	}
}

func TestNearestNeighbor_TieBreaksToLowestIndex(t *testing.T) {
	// Из точки 0 расстояния до 1 и 2 равны: выбирается меньший индекс
	m := gridMatrix{
		{0, 5, 5},
		{5, 0, 4},
		{5, 4, 0},
	}

	sol, err := tsp.NearestNeighbor(m, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 0}, sol.Tour)
	assert.Equal(t, 14.0, sol.TotalKm)
}

func TestNearestNeighbor_SelectableStart(t *testing.T) {
	m := greedyTrap()

	sol, err := tsp.NearestNeighbor(m, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, sol.Tour[0])
	assert.Equal(t, 2, sol.Tour[len(sol.Tour)-1])
}

func TestNearestNeighbor_StartOutOfRange(t *testing.T) {
	m := greedyTrap()

	_, err := tsp.NearestNeighbor(m, -1)
	assert.ErrorIs(t, err, tsp.ErrStartOutOfRange)

	_, err = tsp.NearestNeighbor(m, m.Size())
	assert.ErrorIs(t, err, tsp.ErrStartOutOfRange)
}

func TestNearestNeighbor_JumpsWhenAllUnreachable(t *testing.T) {
	// Из точки 0 никуда не доехать: эвристика продолжает тур с
	// наименьшего непосещённого индекса и помечает ребро
	m := gridMatrix{
		{0, -1, -1},
		{3, 0, 4},
		{2, 4, 0},
	}

	sol, err := tsp.NearestNeighbor(m, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 0}, sol.Tour)
	require.Len(t, sol.UnreachableLegs, 1)
	assert.Equal(t, tsp.Leg{From: 0, To: 1}, sol.UnreachableLegs[0])
	// 1->2 = 4, 2->0 = 2; недостижимое ребро в сумму не входит
	assert.Equal(t, 6.0, sol.TotalKm)
}

func TestNearestNeighbor_NeverBeatsExact(t *testing.T) {
	m := greedyTrap()

	exact, err := tsp.SolveExact(m)
	require.NoError(t, err)

	heuristic, err := tsp.NearestNeighbor(m, 0)
	require.NoError(t, err)

	assert.Equal(t, 6.0, exact.TotalKm)
	assert.Equal(t, 13.0, heuristic.TotalKm)
	assert.GreaterOrEqual(t, heuristic.TotalKm, exact.TotalKm)
}

func TestNearestNeighborBestStart(t *testing.T) {
	m := greedyTrap()

	sol, err := tsp.NearestNeighborBestStart(m)
	require.NoError(t, err)

	// Старт из точки 1 обходит ловушку дорогого замыкания
	assert.Equal(t, 1, sol.Tour[0])
	assert.Equal(t, 6.0, sol.TotalKm)
}

func TestSolve_DispatchesByThreshold(t *testing.T) {
	m := greedyTrap()

	exact, err := tsp.Solve(m, 10)
	require.NoError(t, err)
	assert.Equal(t, tsp.AlgorithmExact, exact.Algorithm)

	heuristic, err := tsp.Solve(m, 3)
	require.NoError(t, err)
	assert.Equal(t, tsp.AlgorithmNearestNeighbor, heuristic.Algorithm)
	assert.Equal(t, 0, heuristic.Tour[0], "dispatcher pins the heuristic start to index 0")
}
