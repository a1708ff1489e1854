// Package a exercises the docstring analyzer.
package a

// Add returns the sum of both operands.
//
// :param (int) a: first operand
// :param (int) b: second operand
// :return: the sum
func Add(a, b int) int { // want "':rtype: .*' is missing."
	return a + b
}

// Mul returns the product.
//
// :param (int) a: first operand
// :return: the product
// :rtype: int
func Mul(a, b int) int { // want "Missing :param for parameter: b"
	return a * b
}

// Reset restores the counter.
//
// :return: nothing
func Reset() {} // want "Docstring describes return values but function does not return anything!"

// Scale multiplies the thing by a factor.
//
// :param f: factor
// :type f: int
// :return: the scaled thing
// :rtype: Thing
func (t Thing) Scale(f int) Thing {
	return t
}

// Thing holds the analyzer fixture state.
type Thing struct{}

type widget struct{} // want "Docstring for class is missing"

func Describe(w widget) string { // want "Docstring missing"
	return ""
}

func helper() {}
