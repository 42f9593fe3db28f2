package examples

import (
	"context"

	"github.com/gamekit-dev/gamekit/pkg/lazylist"
)

func runLazyList(_ context.Context, env *Env) error {
	env.separator()

	someNumbers := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	square := func(x int) int { return x * x }

	squares := lazylist.New(someNumbers, square)
	env.printf("3 squared is %d\n", squares.At(3))

	for n := range squares.Values() {
		env.printf("%d ", n)
	}
	env.println()

	env.separator()
	return nil
}
