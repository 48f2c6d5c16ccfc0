package expressivo_test

import (
	"fmt"

	"github.com/zephyrtronium/expressivo"
)

func ExampleParseString() {
	e, err := expressivo.ParseString("(1 + x) * (x * 1)")
	if err != nil {
		panic(err)
	}
	fmt.Println(e)
	fmt.Printf("%+v\n", e)
	fmt.Println(e.Vars())

	_, err = expressivo.ParseString("3 x")
	fmt.Println(err)

	// Output:
	// (1.0+x)*(x*1.0)
	// (1.0 + x) * (x * 1.0)
	// [x]
	// 3: invalid expression syntax: expected operator or end of input, found "x"
}

func ExampleExpr_Differentiate() {
	x := expressivo.Variable("x")
	e := expressivo.Multiply(x, expressivo.Number(1))
	fmt.Println(e.Differentiate("x"))
	fmt.Println(e.Differentiate("y"))

	// Output:
	// (1.0*1.0)+(x*0.0)
	// (0.0*1.0)+(x*0.0)
}

func ExampleExpr_Equal() {
	a := expressivo.Add(expressivo.Number(1), expressivo.Number(2))
	b := expressivo.MustParse("1.0 + 2.0")
	c := expressivo.MustParse("2 + 1")
	fmt.Println(a.Equal(b), a.Hash() == b.Hash())
	fmt.Println(a.Equal(c))

	// Output:
	// true true
	// false
}
