// Code generated by hand. DO NOT EDIT.

package generated

func narrow(total int32, v int64) int32 {
	total += int32(v)

	return total
}
