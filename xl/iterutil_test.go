package xl

import "testing"

func TestEnumerateVisitsInSortedKeyOrder(t *testing.T) {
	m := map[string]int{"zebra": 1, "apple": 2, "mango": 3}
	var order []string
	enumerate(m, func(k string, v int) {
		order = append(order, k)
	})
	want := []string{"apple", "mango", "zebra"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}
