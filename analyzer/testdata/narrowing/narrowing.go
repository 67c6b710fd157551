package narrowing

func sum(values []int64) int32 {
	var total int32
	for _, v := range values {
		total += int32(v) // want "Compound assignment converts int64 operand to int32"
	}

	return total
}

func scale(x float64) int {
	n := 3
	n *= int(x) // want "converts float64 operand to int"

	return n
}

func widening(values []int16) int64 {
	var total int64
	for _, v := range values {
		total += int64(v)
	}

	return total
}
