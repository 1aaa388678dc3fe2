// Package main provides the scidiag CLI.
package main

import (
	"fmt"
	"os"

	dataset "github.com/scicore-go/dataset/dataset"
	"github.com/scicore-go/dataset/dim"
	"github.com/scicore-go/dataset/tag"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("scidiag %s\n", version)
		return
	}

	fmt.Println("scidiag - diagnostics for the dataset library")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("Example: add two spectra sharing a time-of-flight axis")

	dims, err := dataset.NewDimensions(dataset.DE(dim.Tof, 3))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	a, err := dataset.MakeVariableFrom(tag.TofData, "counts", dims, []float64{1, 2, 3})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	b, err := dataset.MakeVariableFrom(tag.TofData, "counts", dims, []float64{10, 20, 30})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	sum, err := dataset.Add(a, b)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	view, err := dataset.Get[float64](sum)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print("  result:")
	for i := 0; i < view.Dims().Volume(); i++ {
		fmt.Printf(" %g", view.At(i))
	}
	fmt.Println()
}
