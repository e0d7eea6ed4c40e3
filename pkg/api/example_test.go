package api_test

import (
	"fmt"

	"github.com/whit3rabbit/relang/pkg/api"
)

func ExampleNew() {
	g, err := api.New(`[ab]{2}`, api.Options{})
	if err != nil {
		panic(err)
	}
	for w, ok := g.Next(); ok; w, ok = g.Next() {
		fmt.Println(w)
	}
	// Output:
	// aa
	// ab
	// ba
	// bb
}

func ExampleGenerator_At() {
	g, err := api.New(`[1-9][0-9]{0,2}`, api.Options{})
	if err != nil {
		panic(err)
	}
	fmt.Println(g.Len())
	for _, i := range []int64{0, 9, 99, 998} {
		w, _ := g.At(i)
		fmt.Println(w)
	}
	// Output:
	// 999
	// 1
	// 10
	// 100
	// 999
}

func ExampleGenerator_Slice() {
	g, err := api.New(`a*`, api.Options{})
	if err != nil {
		panic(err)
	}
	s, err := g.Slice(2, 5)
	if err != nil {
		panic(err)
	}
	for w, ok := s.Next(); ok; w, ok = s.Next() {
		fmt.Println(w)
	}
	// Output:
	// aa
	// aaa
	// aaaa
}
