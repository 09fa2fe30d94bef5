package sweep

// leaderboard.go — top-K acotado e incremental. Min-heap con el peor resultado
// en la raíz: push y, solo si se supera la capacidad, pop del mínimo. Cada
// inserción es O(log K) bajo el mutex, en vez de reconstruir la cola entera
// en cada insert.

import (
	"container/heap"
	"sort"
	"sync"

	"github.com/alejandrodnm/gridbot/internal/domain"
)

// Leaderboard mantiene los K mejores resultados por PnL. Seguro para
// inserciones concurrentes desde los workers; TopK copia el estado bajo el
// mutex sin bloquear el progreso más que lo justo.
type Leaderboard struct {
	mu    sync.Mutex
	k     int
	items resultHeap
}

// NewLeaderboard crea un leaderboard con capacidad k.
func NewLeaderboard(k int) *Leaderboard {
	if k < 1 {
		k = 1
	}
	return &Leaderboard{k: k, items: make(resultHeap, 0, k+1)}
}

// Push inserta un resultado, expulsando el peor si se supera la capacidad.
// A igual PnL sobrevive el label lexicográficamente menor.
func (l *Leaderboard) Push(res domain.BacktestResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	heap.Push(&l.items, res)
	if l.items.Len() > l.k {
		heap.Pop(&l.items)
	}
}

// TopK devuelve una copia de los resultados actuales ordenada por PnL
// descendente.
func (l *Leaderboard) TopK() []domain.BacktestResult {
	l.mu.Lock()
	out := make([]domain.BacktestResult, len(l.items))
	copy(out, l.items)
	l.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Better(out[j])
	})
	return out
}

// Len devuelve cuántos resultados hay actualmente.
func (l *Leaderboard) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items.Len()
}

// Reset vacía el leaderboard para un nuevo sweep.
func (l *Leaderboard) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = l.items[:0]
}

// resultHeap es un min-heap: la raíz es el resultado que primero se expulsa.
type resultHeap []domain.BacktestResult

func (h resultHeap) Len() int { return len(h) }

func (h resultHeap) Less(i, j int) bool {
	// el "menor" del heap es el peor resultado del ranking
	return h[j].Better(h[i])
}

func (h resultHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *resultHeap) Push(x any) {
	*h = append(*h, x.(domain.BacktestResult))
}

func (h *resultHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
