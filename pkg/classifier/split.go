package classifier

import "math/rand/v2"

// stratifiedSplit shuffles each class with a seeded rng and holds out
// round(fraction * count) of it, keeping at least one sample of a class on
// each side when the class has two or more members.
func stratifiedSplit(y []int, fraction float64, seed int64) (train, validation []int) {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)+1))

	byClass := [2][]int{}
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}

	for _, members := range byClass {
		rng.Shuffle(len(members), func(a, b int) {
			members[a], members[b] = members[b], members[a]
		})

		hold := int(fraction*float64(len(members)) + 0.5)
		if len(members) >= 2 {
			hold = min(max(hold, 1), len(members)-1)
		} else {
			hold = 0
		}
		validation = append(validation, members[:hold]...)
		train = append(train, members[hold:]...)
	}
	return train, validation
}
