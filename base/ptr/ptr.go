package ptr

import "time"

// String return a pointer to the input value
func String(value string) *string {
	return &value
}

// Int return a pointer to the input value
func Int(value int) *int {
	return &value
}

// Int64 return a pointer to the input value
func Int64(value int64) *int64 {
	return &value
}

// Uint64 return a pointer to the input value
func Uint64(value uint64) *uint64 {
	return &value
}

// Float64 return a pointer to the input value
func Float64(value float64) *float64 {
	return &value
}

// Bool return a pointer to the input value
func Bool(value bool) *bool {
	return &value
}

// Time return a pointer to the input value
func Time(value time.Time) *time.Time {
	return &value
}
