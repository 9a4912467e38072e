package model

// SnackMenu lists the pantry items offered before booking, keyed by menu choice.
var SnackMenu = []string{"Chips", "Juice", "Popcorn"}

// SnackFor maps a 1-based menu choice to its pantry item.
func SnackFor(choice int) (string, bool) {
	if choice < 1 || choice > len(SnackMenu) {
		return "", false
	}
	return SnackMenu[choice-1], true
}

// SnackQueue keeps snack selections in the order they were made.
type SnackQueue struct {
	items []string
}

func (q *SnackQueue) Enqueue(item string) {
	q.items = append(q.items, item)
}

// Items returns the selections in insertion order. The queue is left untouched.
func (q *SnackQueue) Items() []string {
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}

func (q *SnackQueue) Len() int {
	return len(q.items)
}

func (q *SnackQueue) Empty() bool {
	return len(q.items) == 0
}
