package usecase

// unionFind - структура непересекающихся множеств для транзитивной
// группировки дубликатов: если A~B и B~C, все три попадают в одну группу
type unionFind struct {
	parent []int
}

func newUnionFind(size int) *unionFind {
	parent := make([]int, size)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	rootA := uf.find(a)
	rootB := uf.find(b)
	if rootA != rootB {
		// меньший корень побеждает для детерминированности
		if rootA < rootB {
			uf.parent[rootB] = rootA
		} else {
			uf.parent[rootA] = rootB
		}
	}
}
