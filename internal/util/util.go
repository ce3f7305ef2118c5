package util

func Plural(number int, one, many string) string {
	if number == 1 {
		return one
	}
	return many
}
