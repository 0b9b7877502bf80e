package denoise_test

import (
	"fmt"

	"github.com/gogpu/denoise"
)

func Example() {
	color, _ := denoise.NewImage(4, 4, 1)
	color.SetPixel(1, 1, 1)

	albedo, _ := denoise.NewImage(4, 4, 3)
	albedo.Fill(0.5, 0.5, 0.5)

	cfg, err := denoise.NewConfig(denoise.WithRadius(1))
	if err != nil {
		fmt.Println(err)
		return
	}

	out, err := denoise.NewCrossBilateral(cfg).Run(denoise.BufferSet{
		Color:  color,
		Albedo: albedo,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%.4f %.4f\n", out.Pixel(1, 1)[0], out.Pixel(3, 3)[0])
	// Output: 0.1267 0.0000
}

func ExampleNewConfig() {
	_, err := denoise.NewConfig(denoise.WithRadius(-1))
	fmt.Println(err)
	// Output: denoise: invalid parameter: radius -1 is negative
}
