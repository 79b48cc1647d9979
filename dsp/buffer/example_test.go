package buffer_test

import (
	"fmt"

	"github.com/bmisiak/ssstretch/dsp/buffer"
)

func ExamplePlanar() {
	p, _ := buffer.New(2, 3)
	copy(p.Channel(0), []float32{1, 2, 3})
	copy(p.Channel(1), []float32{10, 20, 30})

	flat := make([]float32, 6)
	_ = p.Interleaved(flat)

	fmt.Println(flat)
	fmt.Println(p.NumChannels(), p.Len())

	// Output:
	// [1 10 2 20 3 30]
	// 2 3
}
