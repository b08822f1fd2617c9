package units

import "testing"

func BenchmarkConvert_Linear(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Convert(float64(i), "km", "mi", Length)
	}
}

func BenchmarkConvert_Temperature(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Convert(float64(i), Fahrenheit, Kelvin, Temperature)
	}
}

func BenchmarkFormat(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Format(1234.56789)
	}
}
