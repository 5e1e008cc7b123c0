package capture

import (
	"testing"
)

func BenchmarkResolver_Resolve(b *testing.B) {
	r := NewResolver([]ShortLink{{Host: "mq.example", Path: "/intro", Scene: 1}})
	inputs := []string{
		"scene:3",
		"https://melody.example/play?scene=4",
		"https://mq.example/intro",
		"not a code",
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resolve(inputs[i%len(inputs)])
	}
}

func BenchmarkDebouncer_Observe(b *testing.B) {
	d := NewDebouncer(NewResolver(nil), 8, 3)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := d.Observe("scene:5"); ok {
			d.Reset()
		}
	}
}
