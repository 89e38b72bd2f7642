package dataset

import (
	_ "embed"
	"fmt"
)

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the built-in sample dataset.
func Demo() *Dataset {
	d, err := Parse(demoYAML)
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded demo is invalid: %v", err))
	}
	return d
}
