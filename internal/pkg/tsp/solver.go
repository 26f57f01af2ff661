// Package tsp решает задачу порядка обхода точек по матрице дорожных
// расстояний: полный перебор для малых задач, эвристика ближайшего
// соседа для остальных.
package tsp

import "errors"

// Matrix - источник расстояний для солвера. At возвращает километры и
// признак достижимости ребра: false означает, что маршрута между точками
// нет. Матрица может быть несимметричной.
type Matrix interface {
	Size() int
	At(i, j int) (float64, bool)
}

// Algorithm - использованный алгоритм решения
type Algorithm string

const (
	AlgorithmExact           Algorithm = "exact_brute_force"
	AlgorithmNearestNeighbor Algorithm = "nearest_neighbor"
)

var (
	ErrTooFewPlaces    = errors.New("tsp: at least 2 places are required")
	ErrStartOutOfRange = errors.New("tsp: start index out of range")
)

// Leg - ребро тура в индексах матрицы
type Leg struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Solution - найденный тур. Tour замкнут: len(Tour) == n+1, первый
// и последний элементы - стартовая точка. TotalKm суммирует только
// достижимые рёбра; недостижимые перечислены в UnreachableLegs
// и никогда не попадают в сумму как фиктивные числа.
type Solution struct {
	Tour            []int
	TotalKm         float64
	UnreachableLegs []Leg
	Algorithm       Algorithm
}

// tourCost упорядочивает туры: сначала меньше недостижимых рёбер,
// затем меньше суммарных километров.
type tourCost struct {
	unreachable int
	km          float64
}

func (c tourCost) less(o tourCost) bool {
	if c.unreachable != o.unreachable {
		return c.unreachable < o.unreachable
	}
	return c.km < o.km
}

func cost(s Solution) tourCost {
	return tourCost{unreachable: len(s.UnreachableLegs), km: s.TotalKm}
}

// Solve выбирает алгоритм по размеру задачи: полный перебор с фиксированным
// стартом в индексе 0 при n <= exactThreshold, иначе ближайший сосед от 0.
func Solve(m Matrix, exactThreshold int) (Solution, error) {
	if m.Size() <= exactThreshold {
		return SolveExact(m)
	}
	return NearestNeighbor(m, 0)
}

// SolveExact перебирает все перестановки точек 1..n-1 при фиксированном
// старте 0. Перестановки идут в лексикографическом порядке, выигрывает
// строго лучший тур, поэтому при равной стоимости остаётся первый
// встреченный - результат детерминирован.
func SolveExact(m Matrix) (Solution, error) {
	n := m.Size()
	if n < 2 {
		return Solution{}, ErrTooFewPlaces
	}

	order := make([]int, 0, n-1)
	used := make([]bool, n)

	var best Solution
	found := false

	var walk func()
	walk = func() {
		if len(order) == n-1 {
			tour, km, unreachable := walkTour(m, 0, order)
			cand := Solution{
				Tour:            tour,
				TotalKm:         km,
				UnreachableLegs: unreachable,
				Algorithm:       AlgorithmExact,
			}
			if !found || cost(cand).less(cost(best)) {
				best = cand
				found = true
			}
			return
		}
		// восходящий порядок кандидатов даёт лексикографический перебор
		for v := 1; v < n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			order = append(order, v)
			walk()
			order = order[:len(order)-1]
			used[v] = false
		}
	}
	walk()

	return best, nil
}

// NearestNeighbor строит тур жадно от заданного старта: на каждом шаге
// выбирается ближайшая непосещённая точка, при равенстве расстояний -
// точка с меньшим индексом. Если все оставшиеся точки недостижимы,
// тур продолжается с наименьшего непосещённого индекса, а ребро
// помечается недостижимым.
func NearestNeighbor(m Matrix, start int) (Solution, error) {
	n := m.Size()
	if n < 2 {
		return Solution{}, ErrTooFewPlaces
	}
	if start < 0 || start >= n {
		return Solution{}, ErrStartOutOfRange
	}

	visited := make([]bool, n)
	visited[start] = true

	tour := make([]int, 1, n+1)
	tour[0] = start

	var totalKm float64
	var unreachable []Leg

	current := start
	for step := 1; step < n; step++ {
		next := -1
		var nextKm float64
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			km, ok := m.At(current, j)
			if !ok {
				continue
			}
			// строгое < сохраняет меньший индекс при равных расстояниях
			if next == -1 || km < nextKm {
				next = j
				nextKm = km
			}
		}

		if next == -1 {
			for j := 0; j < n; j++ {
				if !visited[j] {
					next = j
					break
				}
			}
			unreachable = append(unreachable, Leg{From: current, To: next})
		} else {
			totalKm += nextKm
		}

		visited[next] = true
		tour = append(tour, next)
		current = next
	}

	// замыкание тура на стартовую точку
	if km, ok := m.At(current, start); ok {
		totalKm += km
	} else {
		unreachable = append(unreachable, Leg{From: current, To: start})
	}
	tour = append(tour, start)

	return Solution{
		Tour:            tour,
		TotalKm:         totalKm,
		UnreachableLegs: unreachable,
		Algorithm:       AlgorithmNearestNeighbor,
	}, nil
}

// NearestNeighborBestStart запускает эвристику от каждой стартовой точки
// и возвращает лучший тур. При равной стоимости выигрывает меньший
// стартовый индекс.
func NearestNeighborBestStart(m Matrix) (Solution, error) {
	n := m.Size()
	if n < 2 {
		return Solution{}, ErrTooFewPlaces
	}

	var best Solution
	found := false
	for start := 0; start < n; start++ {
		sol, err := NearestNeighbor(m, start)
		if err != nil {
			return Solution{}, err
		}
		if !found || cost(sol).less(cost(best)) {
			best = sol
			found = true
		}
	}
	return best, nil
}

// walkTour обходит тур start -> order... -> start и собирает сумму
// достижимых рёбер и список недостижимых.
func walkTour(m Matrix, start int, order []int) ([]int, float64, []Leg) {
	tour := make([]int, 0, len(order)+2)
	tour = append(tour, start)
	tour = append(tour, order...)
	tour = append(tour, start)

	var km float64
	var unreachable []Leg
	for k := 0; k < len(tour)-1; k++ {
		from, to := tour[k], tour[k+1]
		if d, ok := m.At(from, to); ok {
			km += d
		} else {
			unreachable = append(unreachable, Leg{From: from, To: to})
		}
	}
	return tour, km, unreachable
}
